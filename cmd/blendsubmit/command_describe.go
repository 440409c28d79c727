package main

import (
	"fmt"

	"github.com/sourceplane/blendsubmit/internal/render"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Describe the job template a submission produces",
	RunE: func(cmd *cobra.Command, args []string) error {
		return describeTemplate()
	},
}

func registerDescribeCommand(root *cobra.Command) {
	root.AddCommand(describeCmd)

	describeCmd.Flags().StringVarP(&describeView, "view", "v", "steps", "View (steps/parameters/all)")
}

func describeTemplate() error {
	sub, validator, err := loadSubmission()
	if err != nil {
		return err
	}

	tmpl, err := fillAndValidate(sub, validator)
	if err != nil {
		return err
	}

	viewer := render.NewTemplateViewer(tmpl)
	switch describeView {
	case "parameters":
		fmt.Println(viewer.ViewParameters())
	case "all":
		fmt.Println(viewer.ViewParameters())
		fmt.Println(viewer.ViewSteps())
	default:
		fmt.Println(viewer.ViewSteps())
	}

	return nil
}
