package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerlift/ledgerlift/internal/model"
)

// Header is the CSV header for an exported ledger.
const Header = "DATE,MODE,PARTICULARS,DEPOSITS,WITHDRAWALS,BALANCE"

const (
	numFields      = 6
	colDate        = 0
	colMode        = 1
	colParticulars = 2
	colDeposits    = 3
	colWithdrawals = 4
	colBalance     = 5
)

// WriteCSV writes the ledger to w (including header). Dates render with
// the ledger's date layout so the export reads like the source statement.
func WriteCSV(w io.Writer, led model.Ledger) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range led.Transactions {
		if err := cw.Write(MarshalTransaction(txn, led.DateLayout)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// ReadCSV reads an exported ledger back from r. layout is the date layout
// the export was written with.
func ReadCSV(r io.Reader, layout string) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := UnmarshalTransaction(rec, layout)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// MarshalTransaction converts a Transaction to a CSV row ([]string). The
// zero side of deposit/withdrawal renders as an empty cell.
func MarshalTransaction(txn model.Transaction, layout string) []string {
	row := make([]string, numFields)
	row[colDate] = txn.Date.Format(layout)
	row[colMode] = txn.Mode
	row[colParticulars] = txn.Particulars

	if !txn.Deposit.IsZero() {
		row[colDeposits] = txn.Deposit.StringFixed(2)
	}
	if !txn.Withdrawal.IsZero() {
		row[colWithdrawals] = txn.Withdrawal.StringFixed(2)
	}

	row[colBalance] = txn.Balance.StringFixed(2)
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string, layout string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(layout, record[colDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	var deposit, withdrawal, balance decimal.Decimal

	if record[colDeposits] != "" {
		deposit, err = decimal.NewFromString(record[colDeposits])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing deposits %q: %w", record[colDeposits], err)
		}
	}

	if record[colWithdrawals] != "" {
		withdrawal, err = decimal.NewFromString(record[colWithdrawals])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing withdrawals %q: %w", record[colWithdrawals], err)
		}
	}

	if record[colBalance] != "" {
		balance, err = decimal.NewFromString(record[colBalance])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing balance %q: %w", record[colBalance], err)
		}
	}

	return model.Transaction{
		Date:        date,
		Mode:        record[colMode],
		Particulars: record[colParticulars],
		Deposit:     deposit,
		Withdrawal:  withdrawal,
		Balance:     balance,
	}, nil
}
