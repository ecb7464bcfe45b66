// Command newsctl inspects the source catalog and runs one-off aggregations
// from the terminal.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand(defaultDeps()).Execute(); err != nil {
		os.Exit(1)
	}
}
