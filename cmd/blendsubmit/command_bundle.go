package main

import (
	"fmt"
	"os"

	"github.com/sourceplane/blendsubmit/internal/bundle"
	"github.com/sourceplane/blendsubmit/internal/render"
	"github.com/spf13/cobra"
)

var (
	bundleDir    string
	bundleRoot   string
	bundleDryRun bool
	bundleFormat string
	bundleNoScan bool
)

var bundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Write a complete job bundle",
	Long:  "Write the job template, parameter values and asset references for a submission into one directory, ready to submit.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeBundle()
	},
}

func registerBundleCommand(root *cobra.Command) {
	root.AddCommand(bundleCmd)

	bundleCmd.Flags().StringVarP(&bundleDir, "dir", "d", "", "Bundle directory (default: <root>/<job-name>-<id>)")
	bundleCmd.Flags().StringVar(&bundleRoot, "root", ".", "Parent directory for generated bundle directories")
	bundleCmd.Flags().StringVarP(&bundleFormat, "format", "f", "yaml", "Template format (json/yaml)")
	bundleCmd.Flags().StringVarP(&layerName, "layer", "l", "", "Layer whose settings feed parameter values (default: first layer)")
	bundleCmd.Flags().BoolVarP(&bundleDryRun, "dry-run", "n", false, "Print the files instead of writing them")
	bundleCmd.Flags().BoolVar(&bundleNoScan, "no-assets", false, "Skip asset detection")
}

func writeBundle() error {
	sub, validator, err := loadSubmission()
	if err != nil {
		return err
	}

	tmpl, err := fillAndValidate(sub, validator)
	if err != nil {
		return err
	}

	ls, err := layerSettingsFor(sub, layerName)
	if err != nil {
		return err
	}
	values, err := resolveParameterValues(sub, ls)
	if err != nil {
		return err
	}

	b := bundle.Bundle{
		Template:          tmpl,
		ParameterValues:   values,
		OutputDirectories: bundle.OutputDirectories(sub.ResolvedLayers),
	}
	if !bundleNoScan && sub.Settings.ProjectPath != "" {
		detected, err := classifyAssets(sub)
		if err != nil {
			return err
		}
		b.Assets = detected
	}

	format, err := render.ParseFormat(bundleFormat)
	if err != nil {
		return err
	}

	dir := bundleDir
	if dir == "" {
		dir = bundle.DefaultDir(bundleRoot, tmpl.Name)
	}

	if bundleDryRun {
		fmt.Fprintln(os.Stderr, "□ Dry-run mode enabled. Files that would be written:")
	} else {
		fmt.Fprintln(os.Stderr, "□ Writing bundle...")
	}

	w := bundle.NewWriter(fs, format, os.Stdout, bundleDryRun, logger)
	written, err := w.Write(dir, b)
	if err != nil {
		return err
	}

	if bundleDryRun {
		fmt.Fprintln(os.Stderr, "✓ Dry-run complete")
	} else {
		fmt.Fprintf(os.Stderr, "✓ Bundle written with %d files\n", len(written))
		fmt.Fprintf(os.Stderr, "✓ Saved to: %s\n", dir)
	}

	return nil
}
