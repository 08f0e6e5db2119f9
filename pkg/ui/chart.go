package ui

import (
	"math"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/connector"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/hierarchy"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/layout"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/model"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/render"
)

// chartView owns the chart of one scope. Every input change goes through
// relayout, which commits boxes to the surface and schedules the connector
// measurement for the next frame.
type chartView struct {
	hier    *hierarchy.Hierarchy
	mode    layout.Mode
	policy  layout.Policy
	expand  layout.ExpandState
	metrics layout.Metrics
	width   int

	chart     layout.Chart
	placement *layout.Placement
	surface   *render.Surface
	calc      *connector.Calculator
	frames    *connector.FrameScheduler
	selected  string
}

func newChartView(theme render.Theme, nodeWidth int, mode layout.Mode) *chartView {
	s := render.NewSurface(0, 0, theme)
	if mode == "" {
		mode = layout.ModeRecursive
	}
	return &chartView{
		mode:    mode,
		expand:  layout.ExpandState{},
		metrics: render.CellMetrics(nodeWidth),
		surface: s,
		calc:    connector.NewCalculator(s, connector.CellOptions),
		frames:  &connector.FrameScheduler{},
	}
}

// setData replaces the people and policy. Expand state survives so a
// reload keeps open groups open.
func (c *chartView) setData(people []model.Person, policy layout.Policy, ranks hierarchy.RankTable) {
	c.hier = hierarchy.Build(people, hierarchy.WithRanks(ranks))
	c.policy = policy
}

func (c *chartView) empty() bool { return c.chart == nil }

func (c *chartView) relayout(reason connector.Reason) tea.Cmd {
	c.chart = nil
	if c.hier != nil {
		switch c.mode {
		case layout.ModeLeveled:
			if l := layout.BuildLeveled(c.hier); !l.Empty() {
				c.chart = l
			}
		default:
			if t, ok := layout.BuildTree(c.hier, c.policy, c.expand); ok {
				c.chart = t
			}
		}
	}
	if c.chart == nil {
		c.placement = nil
		c.selected = ""
		c.surface.Resize(0, 0)
		c.calc.Clear()
		return nil
	}

	width := float64(max(c.width, int(c.metrics.NodeWidth)))
	c.placement = c.chart.Place(width, c.metrics)
	if _, ok := c.placement.Box(c.selected); !ok {
		c.selected = ""
		if people := c.placement.People(); len(people) > 0 {
			c.selected = people[0].ID
		}
	}
	c.surface.Select(c.selected)
	render.Paint(c.surface, c.placement)
	return c.frames.Schedule(reason)
}

// measure runs on the frame after a commit. Only the newest frame measures;
// an unmounted rect leaves the previous connectors in place.
func (c *chartView) measure(msg connector.FrameMsg) bool {
	if c.placement == nil || !c.frames.Due(msg) {
		return false
	}
	segs, ok := c.calc.Recompute(c.placement.Links)
	if !ok {
		return false
	}
	c.surface.Repaint()
	c.surface.DrawSegments(segs)
	return true
}

func (c *chartView) view() string {
	if c.chart == nil {
		return ""
	}
	return c.surface.String()
}

func (c *chartView) selectedBox() (layout.Box, bool) {
	if c.placement == nil {
		return layout.Box{}, false
	}
	return c.placement.Box(c.selected)
}

// selectedRect is the selection's rect on the surface.
func (c *chartView) selectedRect() (model.Rect, bool) {
	return c.surface.Rect(c.selected)
}

func (c *chartView) selectBox(id string) bool {
	if c.placement == nil {
		return false
	}
	if _, ok := c.placement.Box(id); !ok || id == c.selected {
		return false
	}
	c.selected = id
	c.surface.Select(id)
	c.surface.Repaint()
	c.surface.DrawSegments(c.calc.Segments())
	return true
}

// move selects the nearest box in direction (dx, dy), favouring boxes in
// line with the current one.
func (c *chartView) move(dx, dy float64) bool {
	cur, ok := c.selectedBox()
	if !ok {
		return false
	}
	cx, cy := cur.Rect.CenterX(), cur.Rect.Y+cur.Rect.H/2
	best, bestScore := "", math.Inf(1)
	for _, b := range c.placement.Boxes {
		if b.ID == cur.ID || b.Kind == layout.KindEmptyNote {
			continue
		}
		ox := b.Rect.CenterX() - cx
		oy := b.Rect.Y + b.Rect.H/2 - cy
		along := ox*dx + oy*dy
		if along <= 0 {
			continue
		}
		across := math.Abs(ox*dy) + math.Abs(oy*dx)
		if score := along + 2*across; score < bestScore {
			best, bestScore = b.ID, score
		}
	}
	if best == "" {
		return false
	}
	return c.selectBox(best)
}

func (c *chartView) selectTop() bool {
	if c.placement == nil {
		return false
	}
	people := c.placement.People()
	if len(people) == 0 {
		return false
	}
	return c.selectBox(people[0].ID)
}

// toggleGroup flips the group under the selection. Only recursive charts
// have groups.
func (c *chartView) toggleGroup() tea.Cmd {
	b, ok := c.selectedBox()
	if !ok || b.Kind != layout.KindGroupHeader {
		return nil
	}
	c.expand.Toggle(b.GroupID)
	return c.relayout(connector.ReasonToggle)
}

func (c *chartView) setMode(m layout.Mode) tea.Cmd {
	c.mode = m
	return c.relayout(connector.ReasonLayout)
}

// resize relayouts for a new container width. Heights do not affect
// placement.
func (c *chartView) resize(width int) tea.Cmd {
	if width == c.width && c.placement != nil {
		return nil
	}
	c.width = width
	return c.relayout(connector.ReasonResize)
}

// person returns the hierarchy's record for key.
func (c *chartView) person(key string) (model.Person, bool) {
	if c.hier == nil {
		return model.Person{}, false
	}
	p, ok := c.hier.Index[key]
	return p, ok
}

func (c *chartView) reports(key string) []model.Person {
	if c.hier == nil {
		return nil
	}
	return c.hier.Children(key)
}
