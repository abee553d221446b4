package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

func newItemCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage inventory items",
	}
	cmd.AddCommand(newItemAddCmd(a))
	cmd.AddCommand(newItemAdjustCmd(a))
	cmd.AddCommand(newItemListCmd(a))
	cmd.AddCommand(newItemLowCmd(a))
	return cmd
}

func newItemAddCmd(a *app) *cobra.Command {
	var (
		category string
		quantity int
	)
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Record a donation",
		Long: `Add records a donation. A new name creates the item; an existing name has
the quantity added to its stock and keeps its original category.

Example:
  pantry item add Rice --category Grains --quantity 50`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.openPantry()
			if err != nil {
				return err
			}
			defer p.Close()

			if err := p.AddItem(args[0], category, quantity); err != nil {
				return classify(err)
			}
			if err := save(p); err != nil {
				return err
			}
			item, err := p.Item(args[0])
			if err != nil {
				return classify(err)
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), item)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s): %d in stock\n", item.Name, item.Category, item.Quantity)
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "item category")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "quantity donated")
	return cmd
}

func newItemAdjustCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "adjust <name> <amount>",
		Short: "Add to or remove from an item's stock",
		Long: `Adjust adds amount to the stock of an existing item. Use -- before a
negative amount.

Example:
  pantry item adjust Rice 10
  pantry item adjust Rice -- -3`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseInt("amount", args[1])
			if err != nil {
				return err
			}
			p, err := a.openPantry()
			if err != nil {
				return err
			}
			defer p.Close()

			if err := p.UpdateItemQuantity(args[0], amount); err != nil {
				return classify(err)
			}
			if err := save(p); err != nil {
				return err
			}
			item, err := p.Item(args[0])
			if err != nil {
				return classify(err)
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), item)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d in stock\n", item.Name, item.Quantity)
			return nil
		},
	}
}

func newItemListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.openPantry()
			if err != nil {
				return err
			}
			defer p.Close()

			items := p.Inventory()
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), items)
			}
			printItems(cmd.OutOrStdout(), items, "No items.")
			return nil
		},
	}
}

func newItemLowCmd(a *app) *cobra.Command {
	var threshold int
	cmd := &cobra.Command{
		Use:   "low",
		Short: "List items at or below the low-stock threshold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.openPantry()
			if err != nil {
				return err
			}
			defer p.Close()

			if !cmd.Flags().Changed("threshold") {
				threshold = p.Threshold()
			}
			items := p.LowStockItems(threshold)
			if a.flags.jsonMode {
				if items == nil {
					items = []types.Item{}
				}
				return writeJSON(cmd.OutOrStdout(), items)
			}
			printItems(cmd.OutOrStdout(), items, "Nothing is running low.")
			return nil
		},
	}
	cmd.Flags().IntVar(&threshold, "threshold", 0, "low-stock threshold (default from config)")
	return cmd
}

func printItems(w io.Writer, items []types.Item, empty string) {
	if len(items) == 0 {
		fmt.Fprintln(w, empty)
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCATEGORY\tQUANTITY")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", it.Name, it.Category, it.Quantity)
	}
	tw.Flush()
}
