package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

func newHistoryCmd(a *app) *cobra.Command {
	var recipient string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List distributions, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.openPantry()
			if err != nil {
				return err
			}
			defer p.Close()

			history := make([]types.Distribution, 0)
			for _, d := range p.History() {
				if recipient == "" || d.Recipient == recipient {
					history = append(history, d)
				}
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), history)
			}
			out := cmd.OutOrStdout()
			if len(history) == 0 {
				fmt.Fprintln(out, "No distributions yet.")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "WHEN\tRECIPIENT\tITEM\tQUANTITY")
			for _, d := range history {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", types.FormatTime(d.Timestamp), d.Recipient, d.Item, d.Quantity)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&recipient, "recipient", "", "only list distributions to this recipient")
	return cmd
}
