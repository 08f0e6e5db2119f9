package render

import (
	"math"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/connector"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/layout"
)

// DefaultNodeWidth is the card width in cells.
const DefaultNodeWidth = 28

// CellMetrics sizes a chart in terminal cells.
func CellMetrics(nodeWidth int) layout.Metrics {
	if nodeWidth < 8 {
		nodeWidth = DefaultNodeWidth
	}
	return layout.Metrics{
		NodeWidth:    float64(nodeWidth),
		Gap:          2,
		RowGap:       1,
		LevelGap:     3,
		Indent:       4,
		HeaderHeight: 3,
		Height:       CardHeight,
	}
}

// Paint commits a placement to s: the canvas is resized to fit and every
// box is mounted. Connectors are drawn separately once measured.
func Paint(s *Surface, p *layout.Placement) {
	w := int(math.Ceil(p.Width))
	h := int(math.Ceil(p.Height)) + 1
	if cw, ch := s.Size(); cw != w || ch != h {
		s.Resize(w, h)
	} else {
		s.Reset()
	}
	for _, b := range p.Boxes {
		s.Mount(b)
	}
}

// Chart renders a placement to a string in one pass: paint the boxes, then
// measure them and draw the connectors.
func Chart(p *layout.Placement, theme Theme, selected string) string {
	s := NewSurface(0, 0, theme)
	s.Select(selected)
	Paint(s, p)
	calc := connector.NewCalculator(s, connector.CellOptions)
	if segs, ok := calc.Recompute(p.Links); ok {
		s.DrawSegments(segs)
	}
	return s.String()
}
