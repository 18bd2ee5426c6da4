// Package extract defines the boundary to the external document-table
// extraction primitive. The engine consumes tables through the Source
// interface and never looks inside the extraction settings it forwards.
package extract

import (
	"context"
	"errors"
)

// Access failures the primitive must keep distinguishable, so the operator
// knows whether to fix the path or re-supply the password.
var (
	// ErrNotFound means the source document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrBadPassword means the document is protected and the supplied
	// password was wrong (or missing).
	ErrBadPassword = errors.New("incorrect document password")
)

// Settings is the opaque table-extraction configuration carried by a bank
// profile. It is handed to the primitive verbatim and never inspected here.
type Settings map[string]any

// Row is one physical table row: an ordered sequence of nullable cells.
type Row []*string

// RowGroup is one candidate table detected on a page. A page may yield
// several groups; selecting the one that holds transactions is the
// caller's business.
type RowGroup []Row

// Page holds the row groups extracted from one document page.
type Page struct {
	Number    int // 1-based
	RowGroups []RowGroup
}

// Document is the extraction result for one source document.
type Document struct {
	Path  string
	Pages []Page
}

// PageCount returns the number of extracted pages.
func (d *Document) PageCount() int { return len(d.Pages) }

// Source is the extraction primitive the pipeline consumes.
type Source interface {
	// FirstPageText returns the plain text of the first page only.
	// Bank detection needs nothing else.
	FirstPageText(ctx context.Context, path, password string) (string, error)

	// ExtractTables runs table extraction over every page with the given
	// profile settings.
	ExtractTables(ctx context.Context, path, password string, settings Settings) (*Document, error)
}
