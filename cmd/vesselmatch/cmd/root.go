package cmd

import (
	"github.com/spf13/cobra"

	"github.com/corey/vesselmatch/internal/app"
)

var (
	flagConfig    string
	flagRegistry  string
	flagCorpus    string
	flagOutput    string
	flagDB        string
	flagThreshold int
	flagWorkers   int
	flagLogLevel  string
	flagLogFormat string
)

var rootCmd = &cobra.Command{
	Use:   "vesselmatch",
	Short: "Vessel name matching over report text",
	Long:  "Matches a vessel registry (Latin and Thai spellings) against a corpus of extracted report text and records which reports mention which vessels.",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "path to YAML config file")
	pf.StringVar(&flagRegistry, "registry", "", "vessel registry CSV")
	pf.StringVar(&flagCorpus, "corpus", "", "directory of extracted report text")
	pf.StringVar(&flagOutput, "output", "", "output CSV path")
	pf.StringVar(&flagDB, "db", "", "run store path (empty disables persistence)")
	pf.IntVar(&flagThreshold, "threshold", -1, "fuzzy match threshold 0-100")
	pf.IntVar(&flagWorkers, "workers", 0, "parallel document workers")
	pf.StringVar(&flagLogLevel, "log-level", "", "debug, info, warn, error")
	pf.StringVar(&flagLogFormat, "log-format", "", "text or json")

	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig merges defaults, the config file, and explicitly set flags,
// then installs logging.
func loadConfig(cmd *cobra.Command) (app.Config, error) {
	cfg, err := app.LoadConfig(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagRegistry != "" {
		cfg.RegistryPath = flagRegistry
	}
	if flagCorpus != "" {
		cfg.CorpusDir = flagCorpus
	}
	if flagOutput != "" {
		cfg.OutputPath = flagOutput
	}
	if cmd.Flags().Changed("db") {
		cfg.DBPath = flagDB
	}
	if flagThreshold >= 0 {
		cfg.Threshold = flagThreshold
	}
	if flagWorkers > 0 {
		cfg.Workers = flagWorkers
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}
	if flagLogFormat != "" {
		cfg.Logging.Format = flagLogFormat
	}

	app.SetupLogging(cfg.Logging)
	return cfg, nil
}
