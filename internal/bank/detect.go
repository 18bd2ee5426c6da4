package bank

import "strings"

// Detect scans the first page's text for a registered bank name. Matching
// is a case-insensitive substring test, tried in registry order; the first
// hit wins. ok is false when no registered name appears.
func Detect(firstPageText string) (string, bool) {
	text := strings.ToLower(firstPageText)
	for _, p := range profiles {
		if strings.Contains(text, strings.ToLower(p.Name)) {
			return p.Name, true
		}
	}
	return "", false
}
