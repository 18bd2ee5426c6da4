package plumber

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/ledgerlift/ledgerlift/internal/extract"
)

// decodeText reads the single {"text": ...} line of a text-mode run.
func decodeText(r io.Reader) (string, error) {
	var ln struct {
		Text *string `json:"text"`
	}
	if err := json.NewDecoder(r).Decode(&ln); err != nil {
		return "", fmt.Errorf("decoding extractor output: %w", err)
	}
	if ln.Text == nil {
		return "", errors.New("extractor output missing text")
	}
	return *ln.Text, nil
}

// decodeTables reads a tables-mode stream: a {"pages": N} header followed
// by one {"page", "tables"} line per page. Cells arrive as strings or
// nulls and are kept that way.
func decodeTables(r io.Reader) (*extract.Document, error) {
	dec := json.NewDecoder(r)

	var header struct {
		Pages *int `json:"pages"`
	}
	if err := dec.Decode(&header); err != nil {
		return nil, fmt.Errorf("decoding extractor header: %w", err)
	}
	if header.Pages == nil {
		return nil, errors.New("extractor output missing page count")
	}

	doc := &extract.Document{Pages: make([]extract.Page, 0, *header.Pages)}
	for {
		var ln struct {
			Page   int           `json:"page"`
			Tables [][][]*string `json:"tables"`
		}
		if err := dec.Decode(&ln); err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("decoding page %d: %w", len(doc.Pages)+1, err)
		}

		page := extract.Page{Number: ln.Page}
		if page.Number == 0 {
			page.Number = len(doc.Pages) + 1
		}
		page.RowGroups = make([]extract.RowGroup, len(ln.Tables))
		for gi, tbl := range ln.Tables {
			group := make(extract.RowGroup, len(tbl))
			for ri, cells := range tbl {
				group[ri] = extract.Row(cells)
			}
			page.RowGroups[gi] = group
		}
		doc.Pages = append(doc.Pages, page)
	}

	if len(doc.Pages) != *header.Pages {
		return nil, fmt.Errorf("extractor promised %d pages, sent %d", *header.Pages, len(doc.Pages))
	}
	return doc, nil
}
