package statement

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerlift/ledgerlift/internal/extract"
	"github.com/ledgerlift/ledgerlift/internal/ledger"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestBuild_OpeningThenWithdrawal(t *testing.T) {
	b := New(mustProfile(t, "ICICI"), nil)

	b.ProcessRow(row("01-01-2024", "B/F", "1000.00"))
	b.ProcessRow(row("02-01-2024", "Rent", "200.00", "800.00"))

	led := b.Ledger()
	require.Len(t, led.Transactions, 1)

	txn := led.Transactions[0]
	assert.True(t, txn.Date.Equal(date(2024, 1, 2)))
	assert.Equal(t, "Rent", txn.Particulars)
	assert.True(t, txn.Withdrawal.Equal(dec("200.00")), "withdrawal: got %s", txn.Withdrawal)
	assert.True(t, txn.Deposit.IsZero())
	assert.True(t, txn.Balance.Equal(dec("800.00")))

	assert.True(t, led.HasOpening)
	assert.True(t, led.Opening.Equal(dec("1000.00")))

	report := ledger.Verify(led)
	assert.True(t, report.Consistent)
	assert.Empty(t, report.Mismatches)

	stats := b.Stats()
	assert.Equal(t, 2, stats.Rows)
	assert.Equal(t, 2, stats.Candidates)
	assert.Equal(t, 1, stats.OpeningRows)
	assert.Equal(t, 1, stats.Transactions)
	assert.Zero(t, stats.SkippedRows)
}

func TestBuild_WrongBalanceCaughtByVerifier(t *testing.T) {
	b := New(mustProfile(t, "ICICI"), nil)

	b.ProcessRow(row("01-01-2024", "B/F", "1000.00"))
	b.ProcessRow(row("02-01-2024", "Rent", "200.00", "900.00"))

	report := ledger.Verify(b.Ledger())
	assert.False(t, report.Consistent)
	require.Len(t, report.Mismatches, 1)
	assert.Equal(t, 0, report.Mismatches[0].Index)
	assert.True(t, report.Mismatches[0].Expected.Equal(dec("800.00")))
	assert.True(t, report.Mismatches[0].Actual.Equal(dec("900.00")))
}

func TestBuild_DepositWhenBalanceRises(t *testing.T) {
	b := New(mustProfile(t, "ICICI"), nil)

	b.ProcessRow(row("01-01-2024", "B/F", "1000.00"))
	b.ProcessRow(row("02-01-2024", "Salary", "2500.00", "3500.00"))

	led := b.Ledger()
	require.Len(t, led.Transactions, 1)
	txn := led.Transactions[0]
	assert.True(t, txn.Deposit.Equal(dec("2500.00")))
	assert.True(t, txn.Withdrawal.IsZero())
	assert.True(t, ledger.Verify(led).Consistent)
}

func TestBuild_RunningBalanceCarriesAcrossRows(t *testing.T) {
	b := New(mustProfile(t, "ICICI"), nil)

	b.ProcessRow(row("01-01-2024", "B/F", "1000.00"))
	// Fed as two batches to mirror page boundaries.
	b.ProcessRows([]extract.Row{
		row("02-01-2024", "Salary", "2500.00", "3500.00"),
	})
	b.ProcessRows([]extract.Row{
		row("03-01-2024", "Groceries", "700.00", "2800.00"),
		row("04-01-2024", "Refund", "150.00", "2950.00"),
	})

	led := b.Ledger()
	require.Len(t, led.Transactions, 3)
	assert.True(t, led.Transactions[1].Withdrawal.Equal(dec("700.00")))
	assert.True(t, led.Transactions[2].Deposit.Equal(dec("150.00")))
	assert.True(t, ledger.Verify(led).Consistent)

	for i, txn := range led.Transactions {
		assert.True(t, txn.Deposit.IsZero() || txn.Withdrawal.IsZero(),
			"row %d has both sides set", i)
	}
}

func TestBuild_MarkerRowReseedsMidStream(t *testing.T) {
	b := New(mustProfile(t, "ICICI"), nil)

	b.ProcessRow(row("01-01-2024", "B/F", "1000.00"))
	b.ProcessRow(row("02-01-2024", "Rent", "200.00", "800.00"))
	// A fresh brought-forward row, as printed at a page break.
	b.ProcessRow(row("02-01-2024", "B/F", "800.00"))
	b.ProcessRow(row("03-01-2024", "Fuel", "300.00", "500.00"))

	led := b.Ledger()
	require.Len(t, led.Transactions, 2)
	assert.True(t, led.Transactions[1].Withdrawal.Equal(dec("300.00")))
	assert.Equal(t, 2, b.Stats().OpeningRows)
	// The document's opening is the seed the first transaction saw, not
	// the page-break restatement.
	assert.True(t, led.Opening.Equal(dec("1000.00")))
	assert.True(t, ledger.Verify(led).Consistent)
}

func TestBuild_NonCandidateRowsIgnored(t *testing.T) {
	b := New(mustProfile(t, "ICICI"), nil)

	b.ProcessRow(row("DATE", "PARTICULARS", "AMOUNT", "BALANCE"))
	b.ProcessRow(row("Statement of account for Jan 2024"))
	b.ProcessRow(extract.Row{nil, nil})
	b.ProcessRow(row("", "", ""))
	b.ProcessRow(row("Page 1 of 3"))

	stats := b.Stats()
	assert.Equal(t, 5, stats.Rows)
	assert.Zero(t, stats.Candidates)
	assert.Empty(t, b.Ledger().Transactions)
}

func TestBuild_CandidacySkipsLeadingNilAndEmptyCells(t *testing.T) {
	b := New(mustProfile(t, "ICICI"), nil)

	b.ProcessRow(row("01-01-2024", "B/F", "1000.00"))

	d := "02-01-2024"
	p := "Rent"
	a := "200.00"
	bal := "800.00"
	empty := ""
	b.ProcessRow(extract.Row{nil, &empty, &d, &p, &a, &bal})

	led := b.Ledger()
	require.Len(t, led.Transactions, 1)
	assert.True(t, led.Transactions[0].Date.Equal(date(2024, 1, 2)))
	assert.True(t, led.Transactions[0].Withdrawal.Equal(dec("200.00")))
}

func TestBuild_NoOpeningStartsFromZero(t *testing.T) {
	b := New(mustProfile(t, "ICICI"), nil)

	b.ProcessRow(row("02-01-2024", "Salary", "2500.00", "2500.00"))

	led := b.Ledger()
	require.Len(t, led.Transactions, 1)
	// Zero start means the balance rose, so the amount is a deposit.
	assert.True(t, led.Transactions[0].Deposit.Equal(dec("2500.00")))
	assert.False(t, led.HasOpening)
	assert.True(t, ledger.Verify(led).Consistent)
}

func TestBuild_ShortRowSkippedNotFatal(t *testing.T) {
	b := New(mustProfile(t, "ICICI"), nil)

	b.ProcessRow(row("01-01-2024", "B/F", "1000.00"))
	b.ProcessRow(row("02-01-2024", "Rent"))
	b.ProcessRow(row("03-01-2024", "Fuel", "300.00", "700.00"))

	led := b.Ledger()
	require.Len(t, led.Transactions, 1)
	assert.True(t, led.Transactions[0].Withdrawal.Equal(dec("300.00")))
	assert.Equal(t, 1, b.Stats().SkippedRows)
}

func TestBuild_UnparsableDateSkipped(t *testing.T) {
	b := New(mustProfile(t, "ICICI"), nil)

	b.ProcessRow(row("01-01-2024", "B/F", "1000.00"))
	b.ProcessRow(row("99-99-2024", "Ghost", "100.00", "900.00"))

	assert.Empty(t, b.Ledger().Transactions)
	assert.Equal(t, 1, b.Stats().SkippedRows)
}

func TestBuild_DateCellMayCarryTrailingText(t *testing.T) {
	b := New(mustProfile(t, "ICICI"), nil)

	b.ProcessRow(row("01-01-2024", "B/F", "1000.00"))
	b.ProcessRow(row("02-01-2024 14:05", "Rent", "200.00", "800.00"))

	led := b.Ledger()
	require.Len(t, led.Transactions, 1)
	assert.True(t, led.Transactions[0].Date.Equal(date(2024, 1, 2)))
}

func TestBuild_MalformedAmountDoesNotAbort(t *testing.T) {
	b := New(mustProfile(t, "ICICI"), nil)

	b.ProcessRow(row("01-01-2024", "B/F", "1000.00"))
	b.ProcessRow(row("02-01-2024", "Smudged", "2O0.00", "800.00"))
	b.ProcessRow(row("03-01-2024", "Fuel", "300.00", "500.00"))

	led := b.Ledger()
	require.Len(t, led.Transactions, 2)
	// The smudged cell defaults to zero but the row still lands.
	assert.True(t, led.Transactions[0].Withdrawal.IsZero())
	assert.True(t, led.Transactions[0].Deposit.IsZero())
	assert.True(t, led.Transactions[0].Balance.Equal(dec("800.00")))
	assert.True(t, led.Transactions[1].Withdrawal.Equal(dec("300.00")))
	assert.Equal(t, 1, b.Stats().MalformedAmounts)
}

func TestBuild_HDFCLiteralMarker(t *testing.T) {
	b := New(mustProfile(t, "HDFC"), nil)

	b.ProcessRow(row("01-01-2024", "Opening Balance ?", "5,000.00"))
	b.ProcessRow(row("02-01-2024", "NEFT-RECVD", "1,000.00", "6,000.00"))

	led := b.Ledger()
	require.True(t, led.HasOpening)
	assert.True(t, led.Opening.Equal(dec("5000.00")))
	require.Len(t, led.Transactions, 1)
	assert.True(t, led.Transactions[0].Deposit.Equal(dec("1000.00")))
}

func TestBuild_SplitOpeningFirstRow(t *testing.T) {
	b := New(mustProfile(t, "SBI"), nil)

	// The first row's trailing pair carries the split opening balance.
	b.ProcessRow(row("01-01-25", "BY TRANSFER", "-", "400.00", "9,600.00"))
	b.ProcessRow(row("02-01-25", "ATM WDL", "-", "600.00", "9,000.00"))

	led := b.Ledger()
	require.True(t, led.HasOpening)
	assert.True(t, led.Opening.Equal(dec("10000.00")), "opening: got %s", led.Opening)

	require.Len(t, led.Transactions, 2)
	assert.True(t, led.Transactions[0].Withdrawal.Equal(dec("400.00")))
	assert.True(t, led.Transactions[0].Balance.Equal(dec("9600.00")))
	assert.True(t, led.Transactions[1].Withdrawal.Equal(dec("600.00")))
	assert.True(t, ledger.Verify(led).Consistent)
}

func TestBuild_SplitOpeningConsumedOnFirstQualifyingRow(t *testing.T) {
	b := New(mustProfile(t, "SBI"), nil)

	// The first qualifying row's trailing pair is not numeric, so the
	// adjustment cannot fire; it is still spent and must not fire on the
	// later row even though that one's pair would qualify.
	b.ProcessRow(row("01-01-25", "CHQ DEP", "pending"))
	b.ProcessRow(row("02-01-25", "BY CASH", "-", "500.00", "500.00"))

	led := b.Ledger()
	assert.False(t, led.HasOpening)
	require.Len(t, led.Transactions, 1)
	assert.True(t, led.Transactions[0].Deposit.Equal(dec("500.00")))
	assert.Equal(t, 1, b.Stats().SkippedRows)
}

func TestBuild_SBIKeepsEmptyCellsPositional(t *testing.T) {
	b := New(mustProfile(t, "SBI"), nil)

	b.ProcessRow(row("01-01-25", "BROUGHT FORWARD on 01-01-25", "1,000.00", "1,000.00"))
	// A blank amount cell survives normalization and holds its column.
	b.ProcessRow(row("02-01-25", "ANNUAL FEE REVERSAL", "", "1,000.00"))

	led := b.Ledger()
	require.Len(t, led.Transactions, 1)
	txn := led.Transactions[0]
	assert.True(t, txn.Deposit.IsZero())
	assert.True(t, txn.Withdrawal.IsZero())
	assert.True(t, txn.Balance.Equal(dec("1000.00")))
	// The marker row won over the split-pair guess for the opening seed.
	assert.True(t, led.Opening.Equal(dec("1000.00")))
}
