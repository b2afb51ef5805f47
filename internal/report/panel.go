package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	panelTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	panelLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
	panelBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

// Panel renders a compact boxed summary for the terminal.
func Panel(r *Report) string {
	lines := []string{
		panelTitle.Render("bargain-cli run " + r.RunID),
		field("participants", fmt.Sprintf("%d", r.Rows)),
		field("payoff (all)", histogramLine(r.Payoff.All)),
		field("payoff (deal)", histogramLine(r.Payoff.HumanDeal)),
	}

	for _, cr := range r.Comprehension.Rows {
		group := "non-managers"
		if cr.IsManager {
			group = "managers"
		}
		parts := make([]string, len(cr.Percent))
		for i, p := range cr.Percent {
			parts[i] = fmt.Sprintf("%d:%.0f%%", r.Comprehension.Mistakes[i], p)
		}
		lines = append(lines, field("mistakes "+group, strings.Join(parts, " ")))
	}

	for _, cd := range r.Decisions {
		parts := make([]string, len(cd.Choices))
		for i, c := range cd.Choices {
			parts[i] = fmt.Sprintf("%s %d/%d", c.Choice, c.Treatment, c.Control)
		}
		value := "none"
		if len(parts) > 0 {
			value = strings.Join(parts, ", ")
		}
		lines = append(lines, field(fmt.Sprintf("class %s (AI/ctl)", cd.Class), value))
	}

	return panelBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func field(label, value string) string {
	return panelLabel.Render(fmt.Sprintf("%-18s", label)) + " " + value
}

func histogramLine(h Histogram) string {
	if h.Empty() {
		return "n=0"
	}
	return fmt.Sprintf("n=%d mean=%.1f median=%.1f", h.Count, h.Mean, h.Median)
}
