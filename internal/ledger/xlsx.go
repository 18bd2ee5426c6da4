package ledger

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ledgerlift/ledgerlift/internal/model"
)

const sheetName = "Sheet1"

// WriteXLSX writes the ledger to w as a spreadsheet with the same columns
// and cell rendering as the CSV export.
func WriteXLSX(w io.Writer, led model.Ledger) error {
	f := excelize.NewFile()
	defer f.Close()

	for col, name := range strings.Split(Header, ",") {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell %d: %w", col+1, err)
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return fmt.Errorf("writing header cell %s: %w", cell, err)
		}
	}

	for i, txn := range led.Transactions {
		row := MarshalTransaction(txn, led.DateLayout)
		for col, value := range row {
			if value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("row %d cell %d: %w", i+2, col+1, err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("writing cell %s: %w", cell, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing spreadsheet: %w", err)
	}
	return nil
}

// XLSXPath derives the spreadsheet path from the tabular output path by
// swapping its extension.
func XLSXPath(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + ".xlsx"
}
