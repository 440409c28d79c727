package main

import (
	"fmt"
	"os"

	"github.com/sourceplane/blendsubmit/internal/assets"
	"github.com/spf13/cobra"
)

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "List the input files and directories detected next to the scene",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listAssets()
	},
}

func registerAssetsCommand(root *cobra.Command) {
	root.AddCommand(assetsCmd)
}

func listAssets() error {
	sub, _, err := loadSubmission()
	if err != nil {
		return err
	}
	if sub.Settings.ProjectPath == "" {
		return fmt.Errorf("submission has no projectPath")
	}

	detected, err := classifyAssets(sub)
	if err != nil {
		return err
	}

	fmt.Println("Input files:")
	for _, f := range assets.Sorted(detected.InputFilenames) {
		fmt.Printf("  • %s\n", f)
	}
	fmt.Println("Input directories:")
	for _, d := range assets.Sorted(detected.InputDirectories) {
		fmt.Printf("  • %s/\n", d)
	}

	fmt.Fprintf(os.Stderr, "✓ %d files, %d directories\n", len(detected.InputFilenames), len(detected.InputDirectories))
	return nil
}
