// Package report renders a Markdown summary of a pantry.
package report

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// DefaultRecent is the number of distributions listed when Options.Recent
// is zero.
const DefaultRecent = 10

// Options controls what Markdown includes.
type Options struct {
	// Threshold selects low-stock items (quantity <= Threshold).
	Threshold int
	// Recent caps the distributions listed, newest first.
	Recent int
	// Lang selects number formatting. Defaults to English.
	Lang language.Tag
}

// Markdown renders the inventory, the low-stock items, the recipients, and
// the most recent distributions of st.
func Markdown(st *types.State, opts Options) string {
	if opts.Recent <= 0 {
		opts.Recent = DefaultRecent
	}
	if opts.Lang == language.Und {
		opts.Lang = language.English
	}
	p := message.NewPrinter(opts.Lang)

	var b strings.Builder
	fmt.Fprint(&b, "# Pantry Report\n\n")

	total := 0
	for _, it := range st.Inventory {
		total += it.Quantity
	}
	p.Fprintf(&b, "%d items in stock across %d products, %d recipients, %d distributions.\n\n",
		total, len(st.Inventory), len(st.Recipients), len(st.History))

	fmt.Fprint(&b, "## Inventory\n\n")
	if len(st.Inventory) == 0 {
		fmt.Fprint(&b, "No items.\n\n")
	} else {
		fmt.Fprintln(&b, "| Item | Category | Quantity |")
		fmt.Fprintln(&b, "|:---|:---|---:|")
		for _, it := range st.Inventory {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", cell(it.Name), cell(it.Category), p.Sprintf("%d", it.Quantity))
		}
		fmt.Fprintln(&b)
	}

	p.Fprintf(&b, "## Low Stock (%d or fewer)\n\n", opts.Threshold)
	low := 0
	for _, it := range st.Inventory {
		if it.Quantity <= opts.Threshold {
			p.Fprintf(&b, "- **%s**: %d\n", escape(it.Name), it.Quantity)
			low++
		}
	}
	if low == 0 {
		fmt.Fprint(&b, "Nothing is running low.\n")
	}
	fmt.Fprintln(&b)

	fmt.Fprint(&b, "## Recipients\n\n")
	if len(st.Recipients) == 0 {
		fmt.Fprint(&b, "No recipients.\n\n")
	} else {
		fmt.Fprintln(&b, "| Name | Household | Receipts | Notes |")
		fmt.Fprintln(&b, "|:---|---:|---:|:---|")
		for _, r := range st.Recipients {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				cell(r.Name), p.Sprintf("%d", r.HouseholdSize), p.Sprintf("%d", len(r.ReceivedItems)), cell(r.Notes))
		}
		fmt.Fprintln(&b)
	}

	fmt.Fprint(&b, "## Recent Distributions\n\n")
	if len(st.History) == 0 {
		fmt.Fprint(&b, "No distributions yet.\n")
		return b.String()
	}
	fmt.Fprintln(&b, "| When | Recipient | Item | Quantity |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|")
	for i := len(st.History) - 1; i >= 0 && i >= len(st.History)-opts.Recent; i-- {
		d := st.History[i]
		when := ""
		if !d.Timestamp.IsZero() {
			when = d.Timestamp.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", when, cell(d.Recipient), cell(d.Item), p.Sprintf("%d", d.Quantity))
	}
	return b.String()
}

// markdownEscaper backslash-escapes the characters that start inline
// Markdown formatting.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"#", `\#`,
)

// escape makes s render literally in inline Markdown.
func escape(s string) string {
	return markdownEscaper.Replace(s)
}

// cell escapes a value for a Markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(escape(s), "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
