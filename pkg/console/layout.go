package console

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2).
			Bold(true)

	labelStyle = lipgloss.NewStyle().Bold(true)
)

// LayoutTitleBox renders a bordered title header at the given width.
func LayoutTitleBox(title string, width int) string {
	style := titleBoxStyle
	if width > 4 {
		style = style.Width(width - 2)
	}
	return style.Render(title)
}

// LayoutInfoSection renders a "Label: value" line with a styled label.
func LayoutInfoSection(label, value string) string {
	return fmt.Sprintf("%s %s", render(labelStyle, label+":"), value)
}

// LayoutEmphasisBox renders content inside a bordered box tinted with the
// given color.
func LayoutEmphasisBox(content string, color lipgloss.AdaptiveColor) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(color).
		Padding(0, 1)
	return style.Render(content)
}

// LayoutJoinVertical stacks rendered sections top to bottom.
func LayoutJoinVertical(sections ...string) string {
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
