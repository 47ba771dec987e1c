package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corey/vesselmatch/internal/app"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the registry, corpus, and output paths are usable",
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	checks := app.ValidateSetup(cfg)
	for _, c := range checks {
		if c.Err != nil {
			fmt.Printf("FAIL %-14s %v\n", c.Name, c.Err)
		} else {
			fmt.Printf("ok   %s\n", c.Name)
		}
	}
	if !app.Passed(checks) {
		return fmt.Errorf("setup validation failed")
	}
	fmt.Println("all checks passed")
	return nil
}
