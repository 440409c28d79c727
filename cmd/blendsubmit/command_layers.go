package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var layersCmd = &cobra.Command{
	Use:     "layers [layer-name]",
	Aliases: []string{"layer"},
	Short:   "List view layers and their settings",
	Long:    "List all view layers with their resolved settings. Use 'blendsubmit layers <name>' for details.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listLayers(args)
	},
}

func registerLayersCommand(root *cobra.Command) {
	root.AddCommand(layersCmd)

	layersCmd.Flags().BoolVarP(&longFormat, "long", "l", false, "Show detailed information")
}

func listLayers(args []string) error {
	sub, _, err := loadSubmission()
	if err != nil {
		return err
	}

	infos := ExtractLayerInfo(sub)

	if len(args) > 0 {
		for _, info := range infos {
			if info.Name == args[0] {
				PrintLongFormat(info)
				return nil
			}
		}
		return fmt.Errorf("layer not found: %s", args[0])
	}

	for _, info := range infos {
		if longFormat {
			PrintLongFormat(info)
		} else {
			PrintShortFormat(info)
		}
	}

	return nil
}
