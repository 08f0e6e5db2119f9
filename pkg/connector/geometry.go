// Package connector computes the lines that join a parent box to its
// children once both have been placed on a surface.
package connector

import (
	"math"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/model"
)

// Options tunes connector geometry. Units follow the rects.
type Options struct {
	Gap  float64 // minimum distance of the crossbar from parent and children
	Pad  float64 // crossbar overhang on each side when there is a single child
	Rail float64 // rail offset from the parent's left edge
}

// PixelOptions are the defaults for pixel surfaces.
var PixelOptions = Options{Gap: 24, Pad: 24, Rail: 20}

// CellOptions are the defaults for terminal surfaces.
var CellOptions = Options{Gap: 1, Pad: 2, Rail: 2}

// Compute joins parent to children with a trunk from the parent's bottom
// centre, a crossbar spanning the children's centres and one branch down to
// each child's top centre. It returns nil when there are no children.
func Compute(parent model.Rect, children []model.Rect, opts Options) []model.Segment {
	if len(children) == 0 {
		return nil
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	topMost := math.Inf(1)
	for _, c := range children {
		x := c.CenterX()
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
		topMost = math.Min(topMost, c.Y)
	}

	px := parent.CenterX()
	bottom := parent.Bottom()
	midY := math.Max(bottom+opts.Gap, topMost-opts.Gap)

	pad := 0.0
	if len(children) == 1 {
		pad = opts.Pad
	}

	segs := make([]model.Segment, 0, len(children)+2)
	segs = append(segs,
		model.Segment{X1: px, Y1: bottom, X2: px, Y2: midY},
		model.Segment{X1: minX - pad, Y1: midY, X2: maxX + pad, Y2: midY},
	)
	for _, c := range children {
		x := c.CenterX()
		segs = append(segs, model.Segment{X1: x, Y1: midY, X2: x, Y2: c.Y})
	}
	return segs
}

// ComputeRail joins parent to a vertical stack of children: a rail runs down
// from under the parent and a tick enters each child at its vertical middle.
func ComputeRail(parent model.Rect, children []model.Rect, opts Options) []model.Segment {
	if len(children) == 0 {
		return nil
	}
	x := parent.X + opts.Rail
	top := parent.Bottom()
	last := top

	segs := make([]model.Segment, 0, len(children)+1)
	ticks := make([]model.Segment, 0, len(children))
	for _, c := range children {
		y := math.Floor(c.Y + c.H/2)
		last = math.Max(last, y)
		if c.X > x {
			ticks = append(ticks, model.Segment{X1: x, Y1: y, X2: c.X, Y2: y})
		}
	}
	if last > top {
		segs = append(segs, model.Segment{X1: x, Y1: top, X2: x, Y2: last})
	}
	return append(segs, ticks...)
}

// ForLink dispatches on the link kind.
func ForLink(kind model.LinkKind, parent model.Rect, children []model.Rect, opts Options) []model.Segment {
	if kind == model.LinkRail {
		return ComputeRail(parent, children, opts)
	}
	return Compute(parent, children, opts)
}
