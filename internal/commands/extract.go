package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ledgerlift/ledgerlift/internal/config"
	"github.com/ledgerlift/ledgerlift/internal/editor"
	"github.com/ledgerlift/ledgerlift/internal/extract"
	"github.com/ledgerlift/ledgerlift/internal/ledger"
	"github.com/ledgerlift/ledgerlift/internal/model"
	"github.com/ledgerlift/ledgerlift/internal/pipeline"
)

type extractOptions struct {
	path     string
	password string
	output   string
	edit     bool
	pageSize int
}

func newExtractCommand(src extract.Source) *cobra.Command {
	var protected bool
	var password string
	var output string
	var edit bool
	var pageSize int

	cmd := &cobra.Command{
		Use:   "extract <document>",
		Short: "Extract a statement's transactions into CSV and spreadsheet ledgers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(config.FileName)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("output") && cfg.Output.File != "" {
				output = cfg.Output.File
			}
			if !cmd.Flags().Changed("page-size") && cfg.Editor.PageSize > 0 {
				pageSize = cfg.Editor.PageSize
			}
			if !cmd.Flags().Changed("edit") && cfg.Editor.Enabled {
				edit = true
			}

			// The password is only honored for documents declared protected.
			pw := ""
			if protected {
				if password == "" {
					return errors.New("a protected document needs --password")
				}
				pw = password
			}

			return runExtract(cmd, src, extractOptions{
				path:     args[0],
				password: pw,
				output:   output,
				edit:     edit,
				pageSize: pageSize,
			})
		},
	}

	cmd.Flags().BoolVar(&protected, "protected", false, "document is password protected")
	cmd.Flags().StringVar(&password, "password", "", "password for a protected document")
	cmd.Flags().StringVar(&output, "output", "tables.csv", "CSV path; the spreadsheet lands beside it")
	cmd.Flags().BoolVar(&edit, "edit", false, "review particulars before export")
	cmd.Flags().IntVar(&pageSize, "page-size", editor.DefaultPageSize, "rows per page in the editor")

	return cmd
}

func runExtract(cmd *cobra.Command, src extract.Source, opts extractOptions) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	verbose, _ := cmd.Flags().GetBool("verbose")
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))

	var bar *progressbar.ProgressBar
	res, err := pipeline.NewRunner(src, log).Run(cmd.Context(), pipeline.Options{
		Path:     opts.path,
		Password: opts.password,
		OnDetect: func(bank string) {
			fmt.Fprintf(out, "Opened %s successfully\n", opts.path)
			color.New(color.FgGreen).Fprintf(out, "Detected bank: %s\n", bank)
		},
		Progress: func(done, total int) {
			if bar == nil {
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetDescription("Reading pages"),
					progressbar.OptionSetWriter(errOut),
					progressbar.OptionShowCount(),
				)
			}
			_ = bar.Add(1)
		},
	})
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(errOut)
	}
	if errors.Is(err, pipeline.ErrUnknownBank) {
		fmt.Fprintln(out, "Unknown bank: no registered profile matches this statement.")
		fmt.Fprintln(out, "Run 'ledgerlift banks' to see the supported banks.")
		return nil
	}
	if err != nil {
		return err
	}

	if !res.Report.Consistent {
		red := color.New(color.FgRed)
		red.Fprintf(out, "Ledger verification failed: %d mismatched balance(s)\n", len(res.Report.Mismatches))
		for _, m := range res.Report.Mismatches {
			red.Fprintf(out, "  %s\n", m)
		}
		return fmt.Errorf("ledger verification failed: %d mismatched balance(s)", len(res.Report.Mismatches))
	}

	if len(res.Ledger.Transactions) == 0 {
		color.New(color.FgYellow).Fprintln(out, "No transactions found. Are you sure this is a bank statement?")
		return nil
	}

	if opts.edit {
		if err := editor.New(cmd.InOrStdin(), out, opts.pageSize).Run(&res.Ledger); err != nil {
			return err
		}
	}

	if err := writeOutputs(out, opts.output, res.Ledger); err != nil {
		return err
	}

	printSummary(out, opts.path, res)
	return nil
}

func writeOutputs(out io.Writer, csvPath string, led model.Ledger) error {
	if err := writeFile(csvPath, func(w io.Writer) error { return ledger.WriteCSV(w, led) }); err != nil {
		return err
	}
	fmt.Fprintf(out, "CSV saved to %s\n", csvPath)

	xlsxPath := ledger.XLSXPath(csvPath)
	if err := writeFile(xlsxPath, func(w io.Writer) error { return ledger.WriteXLSX(w, led) }); err != nil {
		return err
	}
	fmt.Fprintf(out, "Spreadsheet saved to %s\n", xlsxPath)
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

func printSummary(out io.Writer, path string, res *pipeline.Result) {
	fmt.Fprintln(out, "\n--- Summary ---")
	fmt.Fprintf(out, "File processed: %s\n", path)
	fmt.Fprintf(out, "Total pages processed: %d\n", res.Stats.Pages)
	fmt.Fprintf(out, "Total transactions extracted: %d\n", res.Stats.Build.Transactions)

	warn := color.New(color.FgYellow)
	if res.Stats.EmptyPages > 0 {
		warn.Fprintf(out, "Pages without tables: %d\n", res.Stats.EmptyPages)
	}
	if res.Stats.Build.SkippedRows > 0 {
		warn.Fprintf(out, "Rows skipped as unclassifiable: %d\n", res.Stats.Build.SkippedRows)
	}
	if res.Stats.Build.MalformedAmounts > 0 {
		warn.Fprintf(out, "Amounts defaulted to zero: %d\n", res.Stats.Build.MalformedAmounts)
	}
}
