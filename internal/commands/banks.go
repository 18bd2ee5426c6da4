package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ledgerlift/ledgerlift/internal/bank"
)

func newBanksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "banks",
		Short: "List the registered bank profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDATE FORMAT\tOPENING MARKER\tMARKER COLUMNS\tSPLIT FIRST ROW")
			for _, p := range bank.Profiles() {
				fmt.Fprintf(w, "%s\t%s\t%s\t<=%d\t%t\n",
					p.Name, p.DateLayout, p.OpeningMarker, p.ColumnCountThreshold, p.SplitOpeningFirstRow)
			}
			return w.Flush()
		},
	}
}
