package model

// Rect is an axis-aligned box. Units are whatever the rendering surface uses:
// terminal cells for the TUI, pixels for exports.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// CenterX returns the horizontal centre of the rect.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// Right returns the x coordinate just past the rect.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate just past the rect.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Translate returns the rect shifted by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Segment is one straight connector line in container-relative coordinates.
type Segment struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Horizontal reports whether the segment runs along the x axis.
func (s Segment) Horizontal() bool { return s.Y1 == s.Y2 && s.X1 != s.X2 }

// Vertical reports whether the segment runs along the y axis.
func (s Segment) Vertical() bool { return s.X1 == s.X2 && s.Y1 != s.Y2 }

// Length returns the length of an axis-aligned segment.
func (s Segment) Length() float64 {
	dx := s.X2 - s.X1
	dy := s.Y2 - s.Y1
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// LinkKind selects how a parent is joined to its children.
type LinkKind int

const (
	// LinkTree draws a trunk, a crossbar and one branch per child.
	LinkTree LinkKind = iota
	// LinkRail draws a vertical rail down the left with a tick into each child.
	LinkRail
)

// Link names the boxes a connector must join. Boxes are referenced by ID so
// geometry can be measured after the layout is committed.
type Link struct {
	Parent   string   `json:"parent"`
	Children []string `json:"children"`
	Kind     LinkKind `json:"kind"`
}
