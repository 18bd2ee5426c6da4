// Package bank holds the per-bank parsing profiles and picks the right one
// for a statement. Profiles are compiled in: supporting a new bank means
// adding an entry to the registry, not registering anything at runtime.
package bank

import (
	"regexp"
	"slices"

	"github.com/ledgerlift/ledgerlift/internal/extract"
)

// RowGroupPolicy selects which of a page's candidate row groups holds the
// transactions when extraction returns more than one.
type RowGroupPolicy int

const (
	// RowGroupLater prefers the second group on pages that yield several;
	// the recognized layouts print a summary table above the transaction
	// table. Verify this holds before reusing it for a new bank.
	RowGroupLater RowGroupPolicy = iota
	// RowGroupFirst always takes the first group.
	RowGroupFirst
)

// Profile is one bank's parsing configuration. Immutable after startup.
type Profile struct {
	// Name is the registry key and the display name searched for during
	// detection.
	Name string

	// DatePattern is anchored; a row qualifies as a transaction row when
	// its first non-blank cell starts with a date token.
	DatePattern *regexp.Regexp
	// DateLayout is the time layout matching DatePattern's tokens.
	DateLayout string

	// AmountPattern documents the amount format this layout prints.
	// Informational; amounts are parsed leniently, not validated by it.
	AmountPattern *regexp.Regexp
	// BalancePattern matches the page-footer balance marker. Part of the
	// profile contract; the row classifier has no use for it today.
	BalancePattern *regexp.Regexp

	// OpeningMarker identifies an opening/brought-forward row by its
	// second cell. Search semantics, not anchored.
	OpeningMarker *regexp.Regexp
	// ColumnCountThreshold is the largest normalized cell count at which
	// a row can still be an opening-balance row.
	ColumnCountThreshold int

	// EmptyCellTokens are trimmed cell values this layout uses to render
	// a missing value; they are dropped during row normalization.
	EmptyCellTokens []string

	// SplitOpeningFirstRow marks layouts that split the carried-forward
	// balance across the two trailing cells of the very first
	// transaction row.
	SplitOpeningFirstRow bool

	// RowGroups picks the transaction table on multi-table pages.
	RowGroups RowGroupPolicy

	// Extraction is handed to the extraction primitive untouched.
	Extraction extract.Settings
}

// textLineSettings suit layouts whose columns are separated by whitespace
// under ruled horizontal lines.
var textLineSettings = extract.Settings{
	"vertical_strategy":      "text",
	"horizontal_strategy":    "lines",
	"intersection_tolerance": 5,
	"snap_tolerance":         3,
	"join_tolerance":         5,
}

// ruledSettings suit fully ruled grids.
var ruledSettings = extract.Settings{
	"vertical_strategy":      "lines",
	"horizontal_strategy":    "lines",
	"intersection_tolerance": 5,
	"snap_tolerance":         3,
	"join_tolerance":         5,
}

// profiles is the registry, in detection priority order.
var profiles = []Profile{
	{
		Name:           "HDFC",
		DatePattern:    regexp.MustCompile(`^\d{2}-\d{2}-\d{4}`), // 01-01-2024
		DateLayout:     "02-01-2006",
		AmountPattern:  regexp.MustCompile(`\d{1,3}(?:,\d{3})*\.\d{2}`), // 1,234.56
		BalancePattern: regexp.MustCompile(`Balance\s*:\s*\d+\.\d{2}`),
		// The marker is a literal question mark, so it is quoted.
		OpeningMarker:        regexp.MustCompile(`\?`),
		ColumnCountThreshold: 3,
		EmptyCellTokens:      []string{""},
		RowGroups:            RowGroupLater,
		Extraction:           textLineSettings,
	},
	{
		Name:                 "ICICI",
		DatePattern:          regexp.MustCompile(`^\d{2}-\d{2}-\d{4}`), // 01-01-2024
		DateLayout:           "02-01-2006",
		AmountPattern:        regexp.MustCompile(`INR\s*\d+\.\d{2}`), // INR 1234.56
		BalancePattern:       regexp.MustCompile(`Closing\s*Balance\s*:\s*\d+\.\d{2}`),
		OpeningMarker:        regexp.MustCompile(`B/F`),
		ColumnCountThreshold: 3,
		EmptyCellTokens:      []string{""},
		RowGroups:            RowGroupLater,
		Extraction:           textLineSettings,
	},
	{
		Name:                 "SBI",
		DatePattern:          regexp.MustCompile(`^\d{2}-\d{2}-\d{2}`), // 01-01-25
		DateLayout:           "02-01-06",
		AmountPattern:        regexp.MustCompile(`\d+\.\d{2}`),
		BalancePattern:       regexp.MustCompile(`Avail\. Balance\s*:\s*\d+\.\d{2}`),
		OpeningMarker:        regexp.MustCompile(`on\s+\d{2}-\d{2}-\d{2}`),
		ColumnCountThreshold: 7,
		EmptyCellTokens:      []string{"-", "None", "null"},
		SplitOpeningFirstRow: true,
		RowGroups:            RowGroupLater,
		Extraction:           ruledSettings,
	},
}

// Lookup returns the profile registered under key.
func Lookup(key string) (Profile, bool) {
	for _, p := range profiles {
		if p.Name == key {
			return p, true
		}
	}
	return Profile{}, false
}

// Profiles returns every registered profile in declared priority order.
func Profiles() []Profile {
	return slices.Clone(profiles)
}

// Names returns the registered bank names in declared priority order.
func Names() []string {
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}
	return names
}
