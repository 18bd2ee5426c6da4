// Package pipeline wires bank detection, table extraction, ledger
// building, and verification into a single run over one document.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ledgerlift/ledgerlift/internal/bank"
	"github.com/ledgerlift/ledgerlift/internal/extract"
	"github.com/ledgerlift/ledgerlift/internal/ledger"
	"github.com/ledgerlift/ledgerlift/internal/model"
	"github.com/ledgerlift/ledgerlift/internal/statement"
)

// ErrUnknownBank reports that no registered bank name appears in the
// document's first-page text.
var ErrUnknownBank = errors.New("unknown bank")

// Options configure a run.
type Options struct {
	Path     string
	Password string
	// OnDetect, when set, is called once the bank has been identified,
	// before any tables are extracted.
	OnDetect func(bank string)
	// Progress, when set, is called after each processed page.
	Progress func(done, total int)
}

// Stats aggregates page accounting with the builder's row accounting.
type Stats struct {
	Pages      int
	EmptyPages int
	Build      statement.Stats
}

// Result is everything one run produced. The report is returned rather
// than enforced here; callers decide what an inconsistent ledger stops.
type Result struct {
	Bank    string
	Profile bank.Profile
	Ledger  model.Ledger
	Report  ledger.Report
	Stats   Stats
}

// Runner executes runs against an extraction source.
type Runner struct {
	source extract.Source
	log    *slog.Logger
}

// NewRunner returns a runner over the given source. A nil logger
// discards diagnostics.
func NewRunner(source extract.Source, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{source: source, log: log}
}

// Run detects the bank from the first page, extracts every page's tables
// with the profile's settings, folds the rows into a ledger in document
// order, and verifies the balance chain.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	text, err := r.source.FirstPageText(ctx, opts.Path, opts.Password)
	if err != nil {
		return nil, fmt.Errorf("reading first page: %w", err)
	}

	key, ok := bank.Detect(text)
	if !ok {
		return nil, ErrUnknownBank
	}
	profile, ok := bank.Lookup(key)
	if !ok {
		return nil, ErrUnknownBank
	}
	r.log.Info("detected bank", "bank", key, "path", opts.Path)
	if opts.OnDetect != nil {
		opts.OnDetect(key)
	}

	doc, err := r.source.ExtractTables(ctx, opts.Path, opts.Password, profile.Extraction)
	if err != nil {
		return nil, fmt.Errorf("extracting tables: %w", err)
	}

	builder := statement.New(profile, r.log)
	var stats Stats
	total := doc.PageCount()
	for _, page := range doc.Pages {
		stats.Pages++
		if group, ok := selectRowGroup(profile.RowGroups, page.RowGroups); ok {
			builder.ProcessRows(group)
		} else {
			stats.EmptyPages++
			r.log.Warn("page has no tables", "page", page.Number)
		}
		if opts.Progress != nil {
			opts.Progress(stats.Pages, total)
		}
	}
	stats.Build = builder.Stats()

	led := builder.Ledger()
	return &Result{
		Bank:    key,
		Profile: profile,
		Ledger:  led,
		Report:  ledger.Verify(led),
		Stats:   stats,
	}, nil
}

// selectRowGroup picks the group holding the transactions on pages where
// extraction found more than one table.
func selectRowGroup(policy bank.RowGroupPolicy, groups []extract.RowGroup) (extract.RowGroup, bool) {
	if len(groups) == 0 {
		return nil, false
	}
	if policy == bank.RowGroupLater && len(groups) > 1 {
		return groups[1], true
	}
	return groups[0], true
}
