package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDistributeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "distribute <item> <recipient> <quantity>",
		Short: "Give stock to a registered recipient",
		Long: `Distribute gives quantity of an item to a recipient. The stock is
decremented, the recipient's receipt log and the history are appended to, and
the pantry is saved. Nothing changes if the quantity is not positive, the item
or recipient is unknown, or the stock is too low.

Example:
  pantry distribute Rice "Alice Johnson" 5`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := parseInt("quantity", args[2])
			if err != nil {
				return err
			}
			p, err := a.openPantry()
			if err != nil {
				return err
			}
			defer p.Close()

			out := p.RecordDistribution(args[0], args[1], quantity)
			if !out.OK() {
				err := &outcomeError{msg: out.Message(), err: out.Err}
				if out.Distribution != nil {
					// Recorded in memory but the save failed.
					return sysError(err)
				}
				return userError(err)
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), out.Distribution)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Message())
			return nil
		},
	}
}
