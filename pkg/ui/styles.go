package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Chrome colours around the chart. Cards carry their own palette.
var (
	ColorBg          = lipgloss.Color("#282A36")
	ColorBgSubtle    = lipgloss.Color("#363949")
	ColorBgHighlight = lipgloss.Color("#44475A")
	ColorText        = lipgloss.Color("#F8F8F2")
	ColorSubtext     = lipgloss.Color("#BFBFBF")
	ColorMuted       = lipgloss.Color("#6272A4")

	ColorPrimary = lipgloss.Color("#BD93F9")
	ColorInfo    = lipgloss.Color("#8BE9FD")
	ColorSuccess = lipgloss.Color("#50FA7B")
	ColorWarning = lipgloss.Color("#FFB86C")
	ColorDanger  = lipgloss.Color("#FF5555")
)

// Styles groups the chrome styles.
type Styles struct {
	Header    lipgloss.Style
	Crumb     lipgloss.Style
	Mode      lipgloss.Style
	Footer    lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Empty     lipgloss.Style
	Panel     lipgloss.Style
	Focused   lipgloss.Style
	Section   lipgloss.Style
	Key       lipgloss.Style
	Desc      lipgloss.Style
	Hint      lipgloss.Style
	Match     lipgloss.Style
	Resource  lipgloss.Style
	AdminFlag lipgloss.Style
}

// DefaultStyles returns the chrome styles.
func DefaultStyles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(ColorText).Background(ColorBgSubtle).Padding(0, 1),
		Crumb:     lipgloss.NewStyle().Foreground(ColorInfo).Background(ColorBgSubtle),
		Mode:      lipgloss.NewStyle().Foreground(ColorBg).Background(ColorPrimary).Bold(true).Padding(0, 1),
		Footer:    lipgloss.NewStyle().Foreground(ColorMuted),
		Status:    lipgloss.NewStyle().Foreground(ColorSuccess),
		Error:     lipgloss.NewStyle().Foreground(ColorDanger).Bold(true),
		Empty:     lipgloss.NewStyle().Foreground(ColorSubtext).Italic(true).Padding(1, 2),
		Panel:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorBgHighlight).Padding(0, 1),
		Focused:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorPrimary).Padding(1, 2),
		Section:   lipgloss.NewStyle().Bold(true).Foreground(ColorMuted),
		Key:       lipgloss.NewStyle().Foreground(ColorPrimary).Width(12),
		Desc:      lipgloss.NewStyle().Foreground(ColorSubtext),
		Hint:      lipgloss.NewStyle().Faint(true).Italic(true),
		Match:     lipgloss.NewStyle().Foreground(ColorWarning).Bold(true),
		Resource:  lipgloss.NewStyle().Foreground(ColorSubtext),
		AdminFlag: lipgloss.NewStyle().Foreground(ColorBg).Background(ColorWarning).Padding(0, 1),
	}
}

// RenderDivider renders a horizontal rule.
func RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Foreground(ColorBgHighlight).Render(strings.Repeat("─", width))
}
