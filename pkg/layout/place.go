package layout

import (
	"math"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/model"
)

// BoxKind distinguishes what a placed box shows.
type BoxKind int

const (
	KindPerson BoxKind = iota
	KindGroupHeader
	KindEmptyNote
)

// EmptyGroupNote is shown inside an open group that has nobody to draw.
const EmptyGroupNote = "No records in this department."

// Box is one placed element of the chart.
type Box struct {
	ID      string
	Kind    BoxKind
	Person  model.Person // KindPerson only
	Depth   int
	Rect    model.Rect
	Label   string // group label or note text
	GroupID string // owning group for headers and notes
	Open    bool   // group headers: current expand state
	Size    int    // group headers: people in the bucket
}

// GroupHeaderID is the box ID of a group's header.
func GroupHeaderID(groupID string) string { return "group:" + groupID }

// EmptyNoteID is the box ID of an open group's empty-state note.
func EmptyNoteID(groupID string) string { return "empty:" + groupID }

// Metrics sizes the chart. Units are the caller's: cells or pixels.
type Metrics struct {
	NodeWidth    float64
	Gap          float64 // between boxes in a row
	RowGap       float64 // between stacked items
	LevelGap     float64 // between a parent and its row of children, and between wrapped lines
	Indent       float64 // stacked children's left offset
	HeaderHeight float64 // group headers and notes
	Height       func(model.Person) float64
}

func (m Metrics) height(p model.Person) float64 {
	if m.Height == nil {
		return 1
	}
	return m.Height(p)
}

// Placement is a layout positioned inside a container.
type Placement struct {
	Boxes  []Box
	Links  []model.Link
	Width  float64
	Height float64

	index map[string]int
}

// Box returns the box with the given ID.
func (p *Placement) Box(id string) (Box, bool) {
	if i, ok := p.index[id]; ok {
		return p.Boxes[i], true
	}
	return Box{}, false
}

// Rect returns the placed rect of a box. Together with Origin it lets a
// placement stand in for a live surface when nothing is drawn on screen.
func (p *Placement) Rect(id string) (model.Rect, bool) {
	b, ok := p.Box(id)
	return b.Rect, ok
}

// Origin is always the placement's own top-left corner.
func (p *Placement) Origin() (float64, float64) { return 0, 0 }

// People returns the person boxes in placement order.
func (p *Placement) People() []Box {
	var out []Box
	for _, b := range p.Boxes {
		if b.Kind == KindPerson {
			out = append(out, b)
		}
	}
	return out
}

func newPlacement(f frame, width float64, links []model.Link) *Placement {
	w := math.Max(width, f.w)
	dx := math.Max(0, (w-f.w)/2)
	p := &Placement{Width: w, Height: f.h, index: make(map[string]int, len(f.boxes))}
	for _, b := range f.boxes {
		b.Rect = b.Rect.Translate(dx, 0)
		p.index[b.ID] = len(p.Boxes)
		p.Boxes = append(p.Boxes, b)
	}
	for _, l := range links {
		if _, ok := p.index[l.Parent]; !ok {
			continue
		}
		var kept []string
		for _, c := range l.Children {
			if _, ok := p.index[c]; ok {
				kept = append(kept, c)
			}
		}
		if len(kept) > 0 {
			l.Children = kept
			p.Links = append(p.Links, l)
		}
	}
	return p
}

// frame is a block of boxes in local coordinates.
type frame struct {
	w, h  float64
	boxes []Box
}

func (f *frame) put(child frame, dx, dy float64) {
	for _, b := range child.boxes {
		b.Rect = b.Rect.Translate(dx, dy)
		f.boxes = append(f.boxes, b)
	}
	f.w = math.Max(f.w, dx+child.w)
	f.h = math.Max(f.h, dy+child.h)
}

// wrap flows frames left to right, starting a new line when the next frame
// would overflow avail. Lines are centred and top aligned.
func (m Metrics) wrap(items []frame, avail float64) frame {
	type line struct {
		items []frame
		w, h  float64
	}
	var lines []line
	var cur line
	for _, it := range items {
		if len(cur.items) > 0 && cur.w+m.Gap+it.w > avail {
			lines = append(lines, cur)
			cur = line{}
		}
		if len(cur.items) > 0 {
			cur.w += m.Gap
		}
		cur.items = append(cur.items, it)
		cur.w += it.w
		cur.h = math.Max(cur.h, it.h)
	}
	if len(cur.items) > 0 {
		lines = append(lines, cur)
	}

	var out frame
	for _, l := range lines {
		out.w = math.Max(out.w, l.w)
	}
	y := 0.0
	for n, l := range lines {
		if n > 0 {
			y += m.LevelGap
		}
		x := (out.w - l.w) / 2
		for _, it := range l.items {
			out.put(it, x, y)
			x += it.w + m.Gap
		}
		y += l.h
	}
	out.h = y
	return out
}

func (m Metrics) card(p model.Person, depth int) frame {
	h := m.height(p)
	return frame{w: m.NodeWidth, h: h, boxes: []Box{{
		ID:     p.SelfKey,
		Kind:   KindPerson,
		Person: p,
		Depth:  depth,
		Rect:   model.Rect{W: m.NodeWidth, H: h},
	}}}
}

// PlaceLeveled centres each row of l inside width, wrapping long rows.
func PlaceLeveled(l Leveled, width float64, m Metrics) *Placement {
	bands := make([]frame, len(l.Rows))
	for d, row := range l.Rows {
		cards := make([]frame, len(row))
		for i, n := range row {
			cards[i] = m.card(n.Person, n.Depth)
		}
		bands[d] = m.wrap(cards, width)
	}
	return newPlacement(m.column(frame{}, bands), width, l.Links())
}

// PlaceTree positions a recursive layout: the top centred, its bands of
// direct reports below, each subtree nested under its owner.
func PlaceTree(t *Tree, width float64, m Metrics) *Placement {
	top := t.Top()
	bands := make([]frame, len(t.Bands))
	for b, band := range t.Bands {
		items := make([]frame, len(band))
		for i, idx := range band {
			items[i] = m.subtree(t, idx, width)
		}
		bands[b] = m.wrap(items, width)
	}
	return newPlacement(m.column(m.card(top.Person, top.Depth), bands), width, t.Links())
}

// column centres head above rows, leaving LevelGap between consecutive
// blocks. An empty head starts the column with the first row.
func (m Metrics) column(head frame, rows []frame) frame {
	w := head.w
	for _, r := range rows {
		w = math.Max(w, r.w)
	}
	var out frame
	y := 0.0
	if len(head.boxes) > 0 {
		out.put(head, (w-head.w)/2, 0)
		y = head.h
	}
	for _, r := range rows {
		if y > 0 || len(out.boxes) > 0 {
			y += m.LevelGap
		}
		out.put(r, (w-r.w)/2, y)
		y += r.h
	}
	out.w = w
	out.h = y
	return out
}

// subtree lays out node i with everything drawn beneath it.
func (m Metrics) subtree(t *Tree, i int, avail float64) frame {
	n := t.Nodes[i]
	out := m.card(n.Person, n.Depth)
	y := out.h

	if len(n.Children) > 0 {
		switch n.Arrange {
		case ArrangePeers:
			items := make([]frame, len(n.Children))
			for k, c := range n.Children {
				items[k] = m.subtree(t, c, avail)
			}
			out = m.column(out, []frame{m.wrap(items, avail)})
			y = out.h
		default:
			for _, c := range n.Children {
				y += m.RowGap
				child := m.subtree(t, c, avail-m.Indent)
				out.put(child, m.Indent, y)
				y += child.h
			}
		}
	}

	for _, g := range n.Groups {
		y += m.RowGap
		out.put(frame{w: m.NodeWidth, h: m.HeaderHeight, boxes: []Box{{
			ID:      GroupHeaderID(g.ID),
			Kind:    KindGroupHeader,
			Depth:   n.Depth + 1,
			Rect:    model.Rect{W: m.NodeWidth, H: m.HeaderHeight},
			Label:   g.Label,
			GroupID: g.ID,
			Open:    g.Open,
			Size:    g.Size,
		}}}, 0, y)
		y += m.HeaderHeight
		if !g.Open {
			continue
		}
		if g.Empty {
			y += m.RowGap
			w := math.Max(m.NodeWidth-m.Indent, 1)
			out.put(frame{w: w, h: m.HeaderHeight, boxes: []Box{{
				ID:      EmptyNoteID(g.ID),
				Kind:    KindEmptyNote,
				Depth:   n.Depth + 1,
				Rect:    model.Rect{W: w, H: m.HeaderHeight},
				Label:   EmptyGroupNote,
				GroupID: g.ID,
			}}}, m.Indent, y)
			y += m.HeaderHeight
			continue
		}
		for _, r := range g.Roots {
			y += m.RowGap
			child := m.subtree(t, r, avail-m.Indent)
			out.put(child, m.Indent, y)
			y += child.h
		}
	}
	out.h = y
	return out
}


// Chart is a layout that can be positioned inside a container.
type Chart interface {
	Place(width float64, m Metrics) *Placement
	Links() []model.Link
}

// Place implements Chart.
func (l Leveled) Place(width float64, m Metrics) *Placement { return PlaceLeveled(l, width, m) }

// Place implements Chart.
func (t *Tree) Place(width float64, m Metrics) *Placement { return PlaceTree(t, width, m) }
