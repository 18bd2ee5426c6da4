package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ledgerlift/ledgerlift/internal/config"
)

func newInitCommand() *cobra.Command {
	var output string
	var edit bool
	var pageSize int

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a starter ledgerlift.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg := config.Default()
			cfg.Output.File = output
			cfg.Editor.Enabled = edit
			cfg.Editor.PageSize = pageSize

			return runInit(cmd.OutOrStdout(), absDir, cfg)
		},
	}

	cmd.Flags().StringVar(&output, "output", "tables.csv", "default CSV output path")
	cmd.Flags().BoolVar(&edit, "edit", false, "open the editor after every clean extraction")
	cmd.Flags().IntVar(&pageSize, "page-size", config.Default().Editor.PageSize, "rows per editor page")

	return cmd
}

func runInit(out io.Writer, dir string, cfg *config.Config) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(out, "Initialized ledgerlift config at %s\n", path)
	return nil
}
