package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/internal/query"
)

func newQueryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "query <jsonpath>",
		Short: "Evaluate a JSONPath expression against the pantry data",
		Long: `Query evaluates a JSONPath expression against the pantry document as it is
saved in pantry_data.json and prints the result as JSON.

Example:
  pantry query '$.inventory[?(@.quantity <= 5)].name'
  pantry query '$.recipients[*].received_items[*].item_name'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.openPantry()
			if err != nil {
				return err
			}
			defer p.Close()

			result, err := query.Eval(p.Snapshot(), args[0])
			if err != nil {
				return userError(fmt.Errorf("query %q: %w", args[0], err))
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
}
