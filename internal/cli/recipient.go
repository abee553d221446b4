package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

func newRecipientCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipient",
		Short: "Manage registered recipients",
	}
	cmd.AddCommand(newRecipientAddCmd(a))
	cmd.AddCommand(newRecipientListCmd(a))
	cmd.AddCommand(newRecipientShowCmd(a))
	return cmd
}

func newRecipientAddCmd(a *app) *cobra.Command {
	var (
		household int
		notes     string
	)
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a recipient",
		Long: `Add registers a recipient. Registering a name that already exists does
nothing unless strict_recipients is set in config.yaml.

Example:
  pantry recipient add "Alice Johnson" --household 4 --notes "Gluten-free preferred"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.openPantry()
			if err != nil {
				return err
			}
			defer p.Close()

			if err := p.AddRecipient(args[0], household, notes); err != nil {
				return classify(err)
			}
			if err := save(p); err != nil {
				return err
			}
			r, err := p.Recipient(args[0])
			if err != nil {
				return classify(err)
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), r)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (household of %d)\n", r.Name, r.HouseholdSize)
			return nil
		},
	}
	cmd.Flags().IntVar(&household, "household", 1, "household size")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	return cmd
}

func newRecipientListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered recipients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.openPantry()
			if err != nil {
				return err
			}
			defer p.Close()

			recipients := p.Recipients()
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), recipients)
			}
			out := cmd.OutOrStdout()
			if len(recipients) == 0 {
				fmt.Fprintln(out, "No recipients.")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tHOUSEHOLD\tRECEIPTS\tNOTES")
			for _, r := range recipients {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", r.Name, r.HouseholdSize, len(r.ReceivedItems), r.Notes)
			}
			return tw.Flush()
		},
	}
}

func newRecipientShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a recipient and the items they received",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.openPantry()
			if err != nil {
				return err
			}
			defer p.Close()

			r, err := p.Recipient(args[0])
			if err != nil {
				return classify(err)
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), r)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:      %s\n", r.Name)
			fmt.Fprintf(out, "Household: %d\n", r.HouseholdSize)
			if r.Notes != "" {
				fmt.Fprintf(out, "Notes:     %s\n", r.Notes)
			}
			if len(r.ReceivedItems) == 0 {
				fmt.Fprintln(out, "No items received.")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "WHEN\tITEM\tQUANTITY")
			for _, rc := range r.ReceivedItems {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", types.FormatTime(rc.Timestamp), rc.ItemName, rc.Quantity)
			}
			return tw.Flush()
		},
	}
}
