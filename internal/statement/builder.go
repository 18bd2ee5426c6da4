// Package statement turns the raw per-page row stream of a bank statement
// into a transaction ledger, driven by a bank profile.
//
// The builder is a small state machine. It starts out seeking an opening
// balance; once one is established (by an opening-marker row, a
// split-opening first row, or the implicit zero start) it accumulates
// transactions, classifying each row's amount as a deposit or a
// withdrawal by the direction the balance moved. Rows must be fed in
// document order: every classification compares against the balance the
// previous row left behind.
package statement

import (
	"io"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerlift/ledgerlift/internal/bank"
	"github.com/ledgerlift/ledgerlift/internal/extract"
	"github.com/ledgerlift/ledgerlift/internal/model"
	"github.com/ledgerlift/ledgerlift/internal/money"
)

type phase int

const (
	seekingOpening phase = iota
	accumulating
)

// Stats counts what a build consumed and what it had to drop. Skips are
// lossy, so they are surfaced here and in the logs rather than buried.
type Stats struct {
	Rows             int // rows offered
	Candidates       int // rows whose first filled cell carried a date
	Transactions     int
	OpeningRows      int // marker rows absorbed into the running balance
	SkippedRows      int // candidate rows dropped as shape or date anomalies
	MalformedAmounts int // non-blank amount cells that defaulted to zero
}

// Builder folds extracted rows into a model.Ledger.
type Builder struct {
	profile bank.Profile
	log     *slog.Logger

	phase        phase
	running      decimal.Decimal
	opening      decimal.Decimal
	hasOpening   bool
	splitPending bool

	txns  []model.Transaction
	stats Stats
}

// New returns a builder for one document under the given profile. A nil
// logger discards diagnostics.
func New(p bank.Profile, log *slog.Logger) *Builder {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Builder{
		profile:      p,
		log:          log,
		splitPending: p.SplitOpeningFirstRow,
	}
}

// ProcessRow runs one raw row through candidacy, normalization, the
// opening-marker test, and classification. Rows that fail candidacy are
// continuation lines, headers, or footers and are dropped silently;
// candidate rows that cannot be classified are skipped with a warning.
func (b *Builder) ProcessRow(row extract.Row) {
	b.stats.Rows++

	first, ok := firstFilled(row)
	if !ok || !b.profile.DatePattern.MatchString(first) {
		return
	}
	b.stats.Candidates++

	if b.splitPending {
		// Consumed on the first qualifying row whether or not it fires.
		b.splitPending = false
		b.absorbSplitOpening(row)
	}

	cells := Normalize(b.profile, row)

	// Opening-marker rows re-seed the running balance and emit nothing.
	if len(cells) >= 2 && len(cells) <= b.profile.ColumnCountThreshold &&
		b.profile.OpeningMarker.MatchString(cells[1]) {
		if len(cells) < 3 {
			b.skipRow(cells, "opening row missing balance cell")
			return
		}
		b.seedOpening(b.amount(cells[2]))
		b.stats.OpeningRows++
		return
	}

	if len(cells) < 4 {
		b.skipRow(cells, "too few cells to classify")
		return
	}

	date, ok := b.parseDate(cells[0])
	if !ok {
		b.skipRow(cells, "unparsable date")
		return
	}

	if b.phase == seekingOpening {
		// No opening marker anywhere before the first transaction row.
		// Classify against an implicit zero start instead of refusing
		// the document; the verifier still sees every recorded balance.
		b.log.Warn("no opening balance established, starting from zero",
			"bank", b.profile.Name)
		b.phase = accumulating
	}

	amount := b.amount(cells[2])
	balance := b.amount(cells[3])

	txn := model.Transaction{
		Date:        date,
		Particulars: cells[1],
		Balance:     balance,
	}
	// The layouts do not pin deposits and withdrawals to distinguishable
	// columns, so the direction of the balance move decides the side.
	if b.running.Sub(balance).IsPositive() {
		txn.Withdrawal = amount
	} else {
		txn.Deposit = amount
	}
	b.txns = append(b.txns, txn)
	b.running = balance
	b.stats.Transactions++
}

// ProcessRows feeds rows through ProcessRow in order.
func (b *Builder) ProcessRows(rows []extract.Row) {
	for _, r := range rows {
		b.ProcessRow(r)
	}
}

// Ledger returns the accumulated ledger.
func (b *Builder) Ledger() model.Ledger {
	return model.Ledger{
		Bank:         b.profile.Name,
		DateLayout:   b.profile.DateLayout,
		Transactions: b.txns,
		Opening:      b.opening,
		HasOpening:   b.hasOpening,
	}
}

// Stats reports row accounting for the run summary.
func (b *Builder) Stats() Stats {
	return b.stats
}

// absorbSplitOpening handles layouts that split the carried-forward
// balance across the two trailing cells of the first qualifying row. The
// adjustment fires only when both cells hold clean numbers.
func (b *Builder) absorbSplitOpening(row extract.Row) {
	if len(row) < 2 {
		return
	}
	pair := row[len(row)-2:]
	if pair[0] == nil || pair[1] == nil {
		return
	}
	if !money.Numeric(*pair[0]) || !money.Numeric(*pair[1]) {
		return
	}
	b.seedOpening(money.Parse(*pair[0]).Add(money.Parse(*pair[1])))
}

func (b *Builder) seedOpening(v decimal.Decimal) {
	b.running = v
	// Marker rows later in the document restate the carried-forward
	// balance at page breaks. The ledger's opening stays whatever seed
	// was in effect for the first transaction.
	if len(b.txns) == 0 {
		b.opening = v
		b.hasOpening = true
	}
	b.phase = accumulating
}

// parseDate pulls the date token out of the cell and parses it with the
// profile's layout. The cell may carry trailing text after the token.
func (b *Builder) parseDate(cell string) (time.Time, bool) {
	token := b.profile.DatePattern.FindString(cell)
	if token == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(b.profile.DateLayout, token)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// amount parses a money cell leniently. Blank cells are a legitimate
// rendering of "no value" and stay silent; malformed non-blank input is
// counted and warned about before defaulting to zero, so one bad cell
// never aborts a run.
func (b *Builder) amount(cell string) decimal.Decimal {
	v, err := money.ParseStrict(cell)
	if err != nil {
		b.stats.MalformedAmounts++
		b.log.Warn("malformed amount, defaulting to zero", "cell", cell)
		return decimal.Zero
	}
	return v
}

func (b *Builder) skipRow(cells []string, reason string) {
	b.stats.SkippedRows++
	b.log.Warn("skipping unclassifiable row", "reason", reason, "cells", len(cells))
}
