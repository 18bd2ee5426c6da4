package main

import (
	"os"

	"github.com/ledgerlift/ledgerlift/internal/commands"
	"github.com/ledgerlift/ledgerlift/internal/extract/plumber"
)

func main() {
	if err := commands.NewRootCommand(plumber.New()).Execute(); err != nil {
		os.Exit(1)
	}
}
