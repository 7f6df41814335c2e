package preview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderTerminal draws a preview as a framed block for a terminal of the given
// width. A width of zero leaves the block unconstrained.
func RenderTerminal(p Preview, width int) string {
	accent := lipgloss.Color(p.Header.ChromeColor)
	chrome := lipgloss.NewStyle().Bold(true).Foreground(accent)
	name := lipgloss.NewStyle().Bold(true)
	faint := lipgloss.NewStyle().Faint(true)

	var lines []string
	lines = append(lines, chrome.Render(p.Header.Chrome))
	if p.Header.Title != "" {
		lines = append(lines, name.Render(p.Header.Title))
	}

	sender := name.Render(p.Header.Name)
	if p.Header.Subtitle != "" {
		sender += " " + faint.Render(p.Header.Subtitle)
	}
	if p.Header.Meta != "" {
		sender += " " + faint.Render(p.Header.Meta)
	}
	lines = append(lines, sender)
	for _, f := range p.Header.Fields {
		lines = append(lines, faint.Render(f.Label+":")+" "+f.Value)
	}

	lines = append(lines, "")
	if p.Greeting != "" {
		lines = append(lines, p.Greeting, "")
	}
	lines = append(lines, p.DisplayText)
	if p.Expandable {
		lines = append(lines, faint.Render("see more"))
	}
	if p.LinkCard != nil {
		lines = append(lines, faint.Render("↗ "+p.LinkCard.Domain))
	}
	if p.Signature != "" {
		lines = append(lines, "", faint.Render(plainText(string(p.Signature))))
	}
	if len(p.Reactions)+len(p.Affordances) > 0 {
		actions := append(append([]string(nil), p.Reactions...), p.Affordances...)
		lines = append(lines, "", faint.Render(strings.Join(actions, "  ")))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1)
	if width > 4 {
		box = box.Width(width - 2)
	}
	return box.Render(strings.Join(lines, "\n"))
}
