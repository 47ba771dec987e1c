package cmd

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/corey/vesselmatch/internal/app"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Run one matching pass over the corpus",
	Long:  "Loads the registry and corpus, matches every document, writes the updated CSV, and persists the run record.",
	RunE:  runMatch,
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	runner, err := app.NewRunner(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	rows := result.Table.Rows()
	fmt.Printf("matched %d vessels across %d documents (threshold %d)\n",
		len(rows), result.Record.Stats.DocsScanned, cfg.Threshold)
	for _, row := range rows {
		fmt.Printf("  %s: %s\n", row.Display, strings.Join(row.DocIDs, ", "))
	}
	if n := len(result.Failed); n > 0 {
		fmt.Printf("%d document(s) failed and were excluded:\n", n)
		for _, f := range result.Failed {
			fmt.Printf("  - %s: %v\n", f.DocID, f.Err)
		}
	}
	return nil
}
