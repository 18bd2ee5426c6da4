package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one classified statement row.
type Transaction struct {
	Date        time.Time
	Mode        string // reserved column; always blank today
	Particulars string
	Deposit     decimal.Decimal // zero unless the balance went up
	Withdrawal  decimal.Decimal // zero unless the balance went down
	Balance     decimal.Decimal // running balance after this transaction
}

// Amount returns whichever side of the transaction is set. At most one of
// Deposit/Withdrawal is non-zero; both are zero when the source cell was
// blank or unreadable.
func (t Transaction) Amount() decimal.Decimal {
	if !t.Withdrawal.IsZero() {
		return t.Withdrawal
	}
	return t.Deposit
}

// Ledger is the ordered result of classifying one statement document.
// Insertion order is the order rows appeared in the source pages.
type Ledger struct {
	Bank         string
	DateLayout   string // the profile's date format, kept for export
	Transactions []Transaction

	// Opening is the running-balance seed in effect when the first
	// transaction was classified, when one was established. Verification
	// checks the first transaction against it. Marker rows appearing
	// later in the document restate the running balance without touching
	// this seed.
	Opening    decimal.Decimal
	HasOpening bool
}
