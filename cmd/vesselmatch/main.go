// vesselmatch finds vessel registry names in extracted report text and writes
// the vessel-to-report association table back into the registry CSV.
package main

import (
	"os"

	"github.com/corey/vesselmatch/cmd/vesselmatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
