package main

import (
	"fmt"

	"github.com/sourceplane/blendsubmit/internal/render"
	"github.com/spf13/cobra"
)

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Resolve parameter values for a layer",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printParameterValues()
	},
}

func registerParamsCommand(root *cobra.Command) {
	root.AddCommand(paramsCmd)

	paramsCmd.Flags().StringVarP(&layerName, "layer", "l", "", "Layer to resolve (default: first layer)")
	paramsCmd.Flags().StringVarP(&paramsFormat, "format", "f", "yaml", "Output format (json/yaml)")
}

func printParameterValues() error {
	sub, _, err := loadSubmission()
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

	format, err := render.ParseFormat(paramsFormat)
	if err != nil {
		return err
	}
	data, err := render.NewRenderer().Render(map[string]interface{}{"parameterValues": values}, format)
	if err != nil {
		return fmt.Errorf("failed to render parameter values: %w", err)
	}
	fmt.Println(string(data))

	return nil
}
