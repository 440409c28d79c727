package main

import (
	"fmt"

	"github.com/sourceplane/blendsubmit/internal/loader"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	submissionFile string
	outputFile     string
	outputFormat   string
	envFile        string
	debugMode      bool
	longFormat     bool
	viewTemplate   string
	describeView   string
	paramsFormat   string
	layerName      string

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:           "blendsubmit",
	Short:         "Blender submission → render farm job bundle",
	Long:          "blendsubmit fills render farm job templates, parameter values and asset references from Blender submitter settings",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if debugMode {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l

		return loader.LoadEnvFile(envFile)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&submissionFile, "submission", "s", "submission.yaml", "Submission file path")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Env file with host overrides (ignored when missing)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug output")

	registerTemplateCommand(rootCmd)
	registerParamsCommand(rootCmd)
	registerAssetsCommand(rootCmd)
	registerBundleCommand(rootCmd)
	registerValidateCommand(rootCmd)
	registerDescribeCommand(rootCmd)
	registerLayersCommand(rootCmd)
}
