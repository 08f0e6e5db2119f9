package connector

import "github.com/Dicklesworthstone/orgchart_viewer/pkg/model"

// RectSource is what the rendering layer offers for measurement: the current
// rect of a mounted box and the origin of the chart container, both in the
// surface's own coordinates.
type RectSource interface {
	Rect(id string) (model.Rect, bool)
	Origin() (x, y float64)
}

// Calculator turns links into segments by measuring a RectSource. It keeps
// the last good result so an unready surface leaves the overlay unchanged.
type Calculator struct {
	source   RectSource
	opts     Options
	segments []model.Segment
	runs     int
}

// NewCalculator measures src with opts.
func NewCalculator(src RectSource, opts Options) *Calculator {
	return &Calculator{source: src, opts: opts}
}

// SetSource swaps the surface being measured. Prior segments are kept until
// the next successful recompute.
func (c *Calculator) SetSource(src RectSource) {
	c.source = src
}

// Recompute measures every link and replaces the stored segments. If any
// referenced box is not mounted it changes nothing and returns the previous
// segments with false; the caller retries on its next frame.
func (c *Calculator) Recompute(links []model.Link) ([]model.Segment, bool) {
	if c.source == nil {
		return c.Segments(), false
	}
	ox, oy := c.source.Origin()
	measure := func(id string) (model.Rect, bool) {
		r, ok := c.source.Rect(id)
		if !ok {
			return model.Rect{}, false
		}
		return r.Translate(-ox, -oy), true
	}

	var segs []model.Segment
	for _, l := range links {
		parent, ok := measure(l.Parent)
		if !ok {
			return c.Segments(), false
		}
		children := make([]model.Rect, 0, len(l.Children))
		for _, id := range l.Children {
			r, ok := measure(id)
			if !ok {
				return c.Segments(), false
			}
			children = append(children, r)
		}
		segs = append(segs, ForLink(l.Kind, parent, children, c.opts)...)
	}

	c.segments = segs
	c.runs++
	return c.Segments(), true
}

// Segments returns a copy of the last computed segments.
func (c *Calculator) Segments() []model.Segment {
	if len(c.segments) == 0 {
		return nil
	}
	out := make([]model.Segment, len(c.segments))
	copy(out, c.segments)
	return out
}

// Runs reports how many recomputes have completed.
func (c *Calculator) Runs() int {
	return c.runs
}

// Clear drops the stored segments.
func (c *Calculator) Clear() {
	c.segments = nil
}
