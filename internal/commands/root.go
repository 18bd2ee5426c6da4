package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerlift/ledgerlift/internal/buildinfo"
	"github.com/ledgerlift/ledgerlift/internal/extract"
)

// NewRootCommand creates the root CLI command with all subcommands
// registered. The extraction source is injected so tests can run the
// commands against canned documents.
func NewRootCommand(src extract.Source) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "ledgerlift",
		Short:   "Normalize bank statements into verified transaction ledgers",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().Bool("verbose", false, "log row-level diagnostics")

	rootCmd.AddCommand(newExtractCommand(src))
	rootCmd.AddCommand(newBanksCommand())
	rootCmd.AddCommand(newInitCommand())

	return rootCmd
}
