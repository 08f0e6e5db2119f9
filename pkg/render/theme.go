// Package render paints placed chart boxes and connector segments onto a
// terminal cell canvas.
package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/model"
)

// ══════════════════════════════════════════════════════════════════════════════
// CARD PALETTE - colours by depth, shared with the image exporters
// ══════════════════════════════════════════════════════════════════════════════

// CardColors are hex colours for one card.
type CardColors struct {
	Background string
	Text       string
	Border     string
}

var depthPalette = []CardColors{
	{Background: "#7FC5E4", Text: "#092C48", Border: "#19557F"},
	{Background: "#C3CFDA", Text: "#344A5B", Border: "#778EA0"},
	{Background: "#F0F7DC", Text: "#74922C", Border: "#CCED7B"},
}

var deepColors = CardColors{Background: "#FFFFFF", Text: "#334155", Border: "#C3CFDA"}

// GroupColors style collapsible group headers.
var GroupColors = CardColors{Background: "#FFFBEB", Text: "#78350F", Border: "#FCD34D"}

// LineColor is the connector stroke.
const LineColor = "#5B7183"

// DepthPalette returns the card colours for a depth.
func DepthPalette(depth int) CardColors {
	if depth >= 0 && depth < len(depthPalette) {
		return depthPalette[depth]
	}
	return deepColors
}

// RegionAbbrev is the short tag shown on terminal cards.
var RegionAbbrev = map[string]string{
	"South":     "S",
	"Southeast": "SE",
	"Midwest":   "MW",
	"Northeast": "NE",
	"Pacific":   "PAC",
}

// Theme holds the lipgloss styles the surface paints with.
type Theme struct {
	Line     lipgloss.Style
	Note     lipgloss.Style
	Selected lipgloss.Style
	Border   lipgloss.Border
}

// DefaultTheme uses rounded borders and the card palette.
func DefaultTheme() Theme {
	return Theme{
		Line:     lipgloss.NewStyle().Foreground(lipgloss.Color(LineColor)),
		Note:     lipgloss.NewStyle().Foreground(lipgloss.Color("#64748B")).Italic(true),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("#F26C6C")).Bold(true),
		Border:   lipgloss.RoundedBorder(),
	}
}

func (t Theme) card(c CardColors) (border, name, title lipgloss.Style) {
	bg := lipgloss.Color(c.Background)
	border = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Border)).Background(bg)
	name = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Text)).Background(bg).Bold(true)
	title = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Text)).Background(bg)
	return border, name, title
}

func regionStyle(region string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#092C48")).
		Background(lipgloss.Color(model.RegionColors[region]))
}
