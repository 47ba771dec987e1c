package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/corey/vesselmatch/internal/adapters/csvfile"
	"github.com/corey/vesselmatch/internal/domain/match"
)

// Check is one setup validation outcome. Err is nil when the check passed.
type Check struct {
	Name string
	Err  error
}

// ValidateSetup runs every pre-flight check and reports all failures, not
// just the first, so a broken environment can be fixed in one pass.
func ValidateSetup(cfg Config) []Check {
	checks := []Check{
		{Name: "configuration", Err: cfg.Validate()},
		{Name: "registry", Err: checkRegistry(cfg)},
		{Name: "corpus", Err: checkCorpus(cfg)},
		{Name: "output", Err: checkWritableDir(filepath.Dir(cfg.OutputPath))},
	}
	if cfg.DBPath != "" {
		checks = append(checks, Check{Name: "run store", Err: checkWritableDir(filepath.Dir(cfg.DBPath))})
	}
	return checks
}

// Passed reports whether every check succeeded.
func Passed(checks []Check) bool {
	for _, c := range checks {
		if c.Err != nil {
			return false
		}
	}
	return true
}

func checkRegistry(cfg Config) error {
	f, err := csvfile.Open(cfg.RegistryPath, cfg.Columns)
	if err != nil {
		return err
	}
	vessels, err := f.Vessels()
	if err != nil {
		return err
	}
	if _, err := match.NewMatcher(vessels, cfg.Threshold); err != nil {
		return err
	}
	return nil
}

func checkCorpus(cfg Config) error {
	entries, err := os.ReadDir(cfg.CorpusDir)
	if err != nil {
		return fmt.Errorf("corpus dir: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".txt") {
			return nil
		}
	}
	return fmt.Errorf("corpus dir %s contains no .txt files", cfg.CorpusDir)
}

func checkWritableDir(dir string) error {
	if dir == "" || dir == "." {
		dir = "."
	}
	if err := ensureDir(dir); err != nil {
		return err
	}
	probe, err := os.CreateTemp(dir, ".vesselmatch-probe-*")
	if err != nil {
		return fmt.Errorf("dir %s not writable: %w", dir, err)
	}
	name := probe.Name()
	probe.Close()
	return os.Remove(name)
}
