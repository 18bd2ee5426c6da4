package statement

import (
	"strings"

	"github.com/ledgerlift/ledgerlift/internal/bank"
	"github.com/ledgerlift/ledgerlift/internal/extract"
)

// Normalize flattens a raw extracted row into trimmed cell values. Nil
// cells are dropped, every remaining cell is trimmed, and cells whose
// trimmed value is one of the profile's empty tokens are dropped. Running
// it over its own output is a no-op.
func Normalize(p bank.Profile, row extract.Row) []string {
	cells := make([]string, 0, len(row))
	for _, c := range row {
		if c == nil {
			continue
		}
		v := strings.TrimSpace(*c)
		if isEmptyToken(p, v) {
			continue
		}
		cells = append(cells, v)
	}
	return cells
}

func isEmptyToken(p bank.Profile, v string) bool {
	for _, tok := range p.EmptyCellTokens {
		if v == tok {
			return true
		}
	}
	return false
}

// firstFilled returns the first cell that is non-nil and non-empty before
// any trimming. Candidacy works on the raw row so that the anchored date
// pattern sees the cell exactly as extracted.
func firstFilled(row extract.Row) (string, bool) {
	for _, c := range row {
		if c != nil && *c != "" {
			return *c, true
		}
	}
	return "", false
}
