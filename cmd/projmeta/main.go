// Command projmeta scans, validates, generates and queries projection metadata.
package main

import (
	"os"

	"projmeta/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
