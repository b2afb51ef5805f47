package report

import (
	"fmt"
	"strings"
)

// Markdown renders the report as the summary.md document.
func Markdown(r *Report) string {
	var b strings.Builder

	b.WriteString("# Negotiation Experiment Summary\n")
	fmt.Fprintf(&b, "Run: %s\n", r.RunID)
	fmt.Fprintf(&b, "Participants: %d\n\n", r.Rows)

	b.WriteString("## Payoffs\n")
	writeHistogram(&b, "All payoffs", r.Payoff.All)
	writeHistogram(&b, "Payoffs when players reach a deal", r.Payoff.HumanDeal)

	b.WriteString("## Comprehension Mistakes by Role\n")
	if len(r.Comprehension.Rows) == 0 {
		b.WriteString("No participants.\n\n")
	} else {
		b.WriteString("| is_manager | n |")
		for _, m := range r.Comprehension.Mistakes {
			fmt.Fprintf(&b, " %d |", m)
		}
		b.WriteString("\n|---|---|")
		b.WriteString(strings.Repeat("---|", len(r.Comprehension.Mistakes)))
		b.WriteString("\n")
		for _, row := range r.Comprehension.Rows {
			fmt.Fprintf(&b, "| %t | %d |", row.IsManager, row.Count)
			for _, p := range row.Percent {
				fmt.Fprintf(&b, " %.1f%% |", p)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("## Decisions by Class (managers)\n")
	for _, cd := range r.Decisions {
		fmt.Fprintf(&b, "### Class %s (superior: Option %s)\n", cd.Class, cd.Superior)
		if len(cd.Choices) == 0 {
			b.WriteString("No decisions.\n\n")
			continue
		}
		b.WriteString("| Choice | AI Treatment | Control |\n|---|---|---|\n")
		for _, c := range cd.Choices {
			fmt.Fprintf(&b, "| %s | %d | %d |\n", c.Label, c.Treatment, c.Control)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func writeHistogram(b *strings.Builder, title string, h Histogram) {
	fmt.Fprintf(b, "### %s\n", title)
	if h.Empty() {
		b.WriteString("No payoffs.\n\n")
		return
	}
	fmt.Fprintf(b, "- n: %d\n- Mean: %.1f\n- Median: %.1f\n\n", h.Count, h.Mean, h.Median)
	b.WriteString("| Bin | Count |\n|---|---|\n")
	for i, c := range h.Counts {
		fmt.Fprintf(b, "| %s | %d |\n", binLabel(h, i), c)
	}
	b.WriteString("\n")
}

// binLabel formats bin i as [lo, hi), closing the last bin.
func binLabel(h Histogram, i int) string {
	closer := ")"
	if i == len(h.Counts)-1 {
		closer = "]"
	}
	return fmt.Sprintf("[%.2f, %.2f%s", h.Edges[i], h.Edges[i+1], closer)
}
