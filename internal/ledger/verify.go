// Package ledger verifies a built transaction ledger and exports it.
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ledgerlift/ledgerlift/internal/model"
)

// Mismatch is one row whose recorded balance disagrees with the balance
// recomputed from the chain of deposits and withdrawals.
type Mismatch struct {
	Index    int
	Expected decimal.Decimal
	Actual   decimal.Decimal
}

func (m Mismatch) String() string {
	return fmt.Sprintf("row %d: expected balance %s, recorded %s",
		m.Index, m.Expected.StringFixed(2), m.Actual.StringFixed(2))
}

// Report is the outcome of one verification pass.
type Report struct {
	Consistent bool
	Mismatches []Mismatch
}

// Verify walks the ledger recomputing each expected balance from the
// previous one plus the row's deposit minus its withdrawal, rounded to 2
// places, and compares it with the recorded balance. When the ledger
// carries an opening seed the chain starts there and row 0 is checked
// like any other row; otherwise row 0's recorded balance is ground truth.
// Every mismatch is collected; the pass never stops early and never
// mutates the ledger.
func Verify(led model.Ledger) Report {
	report := Report{Consistent: true}
	if len(led.Transactions) == 0 {
		return report
	}

	expected := led.Opening
	start := 0
	if !led.HasOpening {
		expected = led.Transactions[0].Balance.Round(2)
		start = 1
	}

	for i := start; i < len(led.Transactions); i++ {
		txn := led.Transactions[i]
		expected = expected.Add(txn.Deposit).Sub(txn.Withdrawal).Round(2)
		if !expected.Equal(txn.Balance.Round(2)) {
			report.Consistent = false
			report.Mismatches = append(report.Mismatches, Mismatch{
				Index:    i,
				Expected: expected,
				Actual:   txn.Balance,
			})
		}
	}
	return report
}
