package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/corey/vesselmatch/internal/app"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run once, then keep the output current as the corpus changes",
	Long:  "Performs an initial matching pass, then watches the corpus directory and incrementally rematches documents as they are added, modified, or removed. Runs until interrupted.",
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
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

	return runner.Watch(ctx)
}
