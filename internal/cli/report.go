package cli

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/internal/report"
)

const reportWrapWidth = 100

func newReportCmd(a *app) *cobra.Command {
	var (
		threshold int
		recent    int
		raw       bool
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize stock, recipients, and recent distributions",
		Long: `Report renders a Markdown summary of the pantry for the terminal. Use --raw
to print the Markdown source instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.openPantry()
			if err != nil {
				return err
			}
			defer p.Close()

			if !cmd.Flags().Changed("threshold") {
				threshold = p.Threshold()
			}
			md := report.Markdown(p.Snapshot(), report.Options{Threshold: threshold, Recent: recent})
			if raw {
				fmt.Fprint(cmd.OutOrStdout(), md)
				return nil
			}

			r, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(reportWrapWidth),
			)
			if err != nil {
				return sysError(fmt.Errorf("create renderer: %w", err))
			}
			rendered, err := r.Render(md)
			if err != nil {
				return sysError(fmt.Errorf("render report: %w", err))
			}
			fmt.Fprint(cmd.OutOrStdout(), rendered)
			return nil
		},
	}
	cmd.Flags().IntVar(&threshold, "threshold", 0, "low-stock threshold (default from config)")
	cmd.Flags().IntVar(&recent, "recent", report.DefaultRecent, "number of recent distributions to list")
	cmd.Flags().BoolVar(&raw, "raw", false, "print Markdown without rendering")
	return cmd
}
