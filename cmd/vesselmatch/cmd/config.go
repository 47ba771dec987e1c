package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration",
	Long:  "Shows the configuration after merging defaults, the config file, and flags.",
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	db := cfg.DBPath
	if db == "" {
		db = "(persistence disabled)"
	}

	fmt.Printf("  Registry:   %s\n", cfg.RegistryPath)
	fmt.Printf("  Corpus:     %s\n", cfg.CorpusDir)
	fmt.Printf("  Output:     %s\n", cfg.OutputPath)
	fmt.Printf("  DB:         %s\n", db)
	fmt.Printf("  Threshold:  %d\n", cfg.Threshold)
	fmt.Printf("  Workers:    %d\n", cfg.Workers)
	fmt.Printf("  Logging:    %s/%s\n", cfg.Logging.Level, cfg.Logging.Format)

	return nil
}
