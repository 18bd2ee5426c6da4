// Package editor runs the interactive particulars-editing session over a
// built ledger. It is a synchronous prompt/response loop over plain
// reader/writer ports, so sessions can be scripted in tests. Only the
// particulars of a transaction can change; dates and money fields are
// out of reach by construction.
package editor

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ledgerlift/ledgerlift/internal/model"
)

// DefaultPageSize is the rows-per-page used when none is configured.
const DefaultPageSize = 5

const fallbackDateLayout = "02-01-2006"

// Editor pages through a ledger letting the operator rewrite particulars.
type Editor struct {
	in       *bufio.Scanner
	out      io.Writer
	pageSize int
}

// New returns an editor reading commands from in and prompting on out.
// A non-positive pageSize falls back to DefaultPageSize.
func New(in io.Reader, out io.Writer, pageSize int) *Editor {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Editor{
		in:       bufio.NewScanner(in),
		out:      out,
		pageSize: pageSize,
	}
}

// Run walks the ledger page by page. Every row on a page is offered for
// rewriting (empty input keeps it), then a navigation command moves to
// the next or previous page or quits. Navigating past either end stays on
// the current page with a notice. End of input behaves like quit: edits
// made so far are kept.
func (e *Editor) Run(led *model.Ledger) error {
	if len(led.Transactions) == 0 {
		fmt.Fprintln(e.out, "Nothing to edit.")
		return nil
	}

	layout := led.DateLayout
	if layout == "" {
		layout = fallbackDateLayout
	}
	pages := (len(led.Transactions) + e.pageSize - 1) / e.pageSize

	page := 0
	for {
		start := page * e.pageSize
		end := min(start+e.pageSize, len(led.Transactions))

		fmt.Fprintf(e.out, "\n-- Page %d of %d --\n", page+1, pages)
		for i := start; i < end; i++ {
			txn := led.Transactions[i]
			fmt.Fprintf(e.out, "%4d) %s  %s  [%s, balance %s]\n",
				i+1, txn.Date.Format(layout), txn.Particulars, sideLabel(txn), txn.Balance.StringFixed(2))
		}

		for i := start; i < end; i++ {
			fmt.Fprintf(e.out, "%4d) %s\n      new particulars (enter to keep): ", i+1, led.Transactions[i].Particulars)
			line, ok := e.readLine()
			if !ok {
				return e.scanErr()
			}
			if line != "" {
				led.Transactions[i].Particulars = line
			}
		}

		for {
			fmt.Fprint(e.out, "command [n]ext/[p]revious/[q]uit: ")
			cmd, ok := e.readLine()
			if !ok {
				return e.scanErr()
			}
			switch strings.ToLower(cmd) {
			case "n", "next":
				if page == pages-1 {
					fmt.Fprintln(e.out, "Already on the last page.")
				} else {
					page++
				}
			case "p", "prev", "previous":
				if page == 0 {
					fmt.Fprintln(e.out, "Already on the first page.")
				} else {
					page--
				}
			case "q", "quit":
				return nil
			default:
				fmt.Fprintf(e.out, "Unknown command %q (use n/p/q).\n", cmd)
				continue
			}
			break
		}
	}
}

func (e *Editor) readLine() (string, bool) {
	if !e.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(e.in.Text()), true
}

// scanErr turns end of input into a clean quit and real read failures
// into errors.
func (e *Editor) scanErr() error {
	if err := e.in.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}

func sideLabel(txn model.Transaction) string {
	switch {
	case !txn.Withdrawal.IsZero():
		return "withdrawal " + txn.Withdrawal.StringFixed(2)
	case !txn.Deposit.IsZero():
		return "deposit " + txn.Deposit.StringFixed(2)
	default:
		return "no amount"
	}
}
