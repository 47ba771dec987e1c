package app

import (
	"fmt"
	"os"
)

// ensureDir creates a directory (and parents) when missing.
func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	return nil
}
