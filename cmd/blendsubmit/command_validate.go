package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a submission and the template it produces",
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateSubmission()
	},
}

func registerValidateCommand(root *cobra.Command) {
	root.AddCommand(validateCmd)
}

func validateSubmission() error {
	sub, validator, err := loadSubmission()
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "✓ Submission is valid")

	if _, err := fillAndValidate(sub, validator); err != nil {
		return err
	}

	// Every layer must resolve on its own without queue parameter clashes
	for _, layer := range sub.ResolvedLayers {
		if _, err := resolveParameterValues(sub, layer.Settings); err != nil {
			return fmt.Errorf("layer %s: %w", layer.Name, err)
		}
	}

	fmt.Fprintln(os.Stderr, "✓ All validation passed")
	return nil
}
