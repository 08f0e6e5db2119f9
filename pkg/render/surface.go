package render

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/layout"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/model"
)

type styleID int

const noStyle styleID = -1

type cell struct {
	r     rune // 0 marks the right half of a wide rune
	style styleID
	owner bool // part of a mounted box
	link  uint8
}

// Surface is a cell canvas that mounted boxes are painted on. It reports the
// rect of every mounted box, which is what connector measurement needs.
type Surface struct {
	width, height int
	cells         []cell

	theme  Theme
	styles []lipgloss.Style

	rects    map[string]model.Rect
	boxes    map[string]layout.Box
	order    []string
	selected string

	originX, originY float64
}

// NewSurface returns a blank surface.
func NewSurface(width, height int, theme Theme) *Surface {
	s := &Surface{theme: theme}
	s.Resize(width, height)
	return s
}

// Resize changes the canvas size and unmounts everything.
func (s *Surface) Resize(width, height int) {
	s.width = max(width, 0)
	s.height = max(height, 0)
	s.Reset()
}

// Size returns the canvas size in cells.
func (s *Surface) Size() (int, int) {
	return s.width, s.height
}

// Reset clears the canvas and forgets every mounted box.
func (s *Surface) Reset() {
	s.cells = make([]cell, s.width*s.height)
	for i := range s.cells {
		s.cells[i] = cell{r: ' ', style: noStyle}
	}
	s.styles = s.styles[:0]
	s.rects = make(map[string]model.Rect)
	s.boxes = make(map[string]layout.Box)
	s.order = s.order[:0]
}

// SetOrigin records where the chart container starts on the canvas.
func (s *Surface) SetOrigin(x, y float64) {
	s.originX, s.originY = x, y
}

// Origin implements connector.RectSource.
func (s *Surface) Origin() (float64, float64) {
	return s.originX, s.originY
}

// Rect implements connector.RectSource. Only mounted boxes have a rect.
func (s *Surface) Rect(id string) (model.Rect, bool) {
	r, ok := s.rects[id]
	return r, ok
}

// Mounted returns the IDs of mounted boxes in mount order.
func (s *Surface) Mounted() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Select highlights a mounted box. Repaint to see the change.
func (s *Surface) Select(id string) {
	s.selected = id
}

// HitTest returns the mounted box under a cell.
func (s *Surface) HitTest(x, y int) (string, bool) {
	for i := len(s.order) - 1; i >= 0; i-- {
		r := s.rects[s.order[i]]
		fx, fy := float64(x), float64(y)
		if fx >= r.X && fx < r.Right() && fy >= r.Y && fy < r.Bottom() {
			return s.order[i], true
		}
	}
	return "", false
}

// Mount paints a box at its placed rect, offset by the origin.
func (s *Surface) Mount(b layout.Box) {
	r := b.Rect.Translate(s.originX, s.originY)
	if _, ok := s.rects[b.ID]; !ok {
		s.order = append(s.order, b.ID)
	}
	s.rects[b.ID] = r
	s.boxes[b.ID] = b

	switch b.Kind {
	case layout.KindPerson:
		s.paintPerson(b, r)
	case layout.KindGroupHeader:
		s.paintGroup(b, r)
	case layout.KindEmptyNote:
		s.paintNote(b, r)
	}
}

// Unmount blanks a box and forgets its rect.
func (s *Surface) Unmount(id string) {
	r, ok := s.rects[id]
	if !ok {
		return
	}
	x0, y0, x1, y1 := cellBounds(r)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if c := s.at(x, y); c != nil {
				*c = cell{r: ' ', style: noStyle}
			}
		}
	}
	delete(s.rects, id)
	delete(s.boxes, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Repaint paints every mounted box again, picking up selection changes.
func (s *Surface) Repaint() {
	boxes := make([]layout.Box, 0, len(s.order))
	for _, id := range s.order {
		b := s.boxes[id]
		b.Rect = s.rects[id].Translate(-s.originX, -s.originY)
		boxes = append(boxes, b)
	}
	s.Reset()
	for _, b := range boxes {
		s.Mount(b)
	}
}

func (s *Surface) style(st lipgloss.Style) styleID {
	s.styles = append(s.styles, st)
	return styleID(len(s.styles) - 1)
}

func (s *Surface) at(x, y int) *cell {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return nil
	}
	return &s.cells[y*s.width+x]
}

func (s *Surface) set(x, y int, r rune, st styleID) {
	if c := s.at(x, y); c != nil {
		c.r = r
		c.style = st
		c.owner = true
		c.link = 0
	}
}

// text writes str starting at (x, y), clipped to width cells. Wide runes
// take two cells.
func (s *Surface) text(x, y, width int, str string, st styleID) {
	col := 0
	for _, r := range str {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > width {
			break
		}
		s.set(x+col, y, r, st)
		if w == 2 {
			s.set(x+col+1, y, 0, st)
		}
		col += w
	}
}

func cellBounds(r model.Rect) (x0, y0, x1, y1 int) {
	return int(math.Round(r.X)), int(math.Round(r.Y)), int(math.Round(r.Right())), int(math.Round(r.Bottom()))
}

// String renders the canvas with styles applied, trimming trailing blank
// rows.
func (s *Surface) String() string {
	last := s.height - 1
	for ; last >= 0; last-- {
		if !s.blankRow(last) {
			break
		}
	}
	var sb strings.Builder
	for y := 0; y <= last; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		s.writeRow(&sb, y)
	}
	return sb.String()
}

func (s *Surface) blankRow(y int) bool {
	for x := 0; x < s.width; x++ {
		if c := s.at(x, y); c.r != ' ' || c.style != noStyle {
			return false
		}
	}
	return true
}

func (s *Surface) writeRow(sb *strings.Builder, y int) {
	var run strings.Builder
	cur := noStyle
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if cur == noStyle {
			sb.WriteString(run.String())
		} else {
			sb.WriteString(s.styles[cur].Render(run.String()))
		}
		run.Reset()
	}
	end := s.width
	for end > 0 {
		c := s.at(end-1, y)
		if c.r != ' ' || c.style != noStyle {
			break
		}
		end--
	}
	for x := 0; x < end; x++ {
		c := s.at(x, y)
		if c.r == 0 {
			continue
		}
		if c.style != cur {
			flush()
			cur = c.style
		}
		run.WriteRune(c.r)
	}
	flush()
}

// Boxes returns the mounted boxes sorted top to bottom, then left to right.
func (s *Surface) Boxes() []layout.Box {
	out := make([]layout.Box, 0, len(s.order))
	for _, id := range s.order {
		b := s.boxes[id]
		b.Rect = s.rects[id]
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rect.Y != out[j].Rect.Y {
			return out[i].Rect.Y < out[j].Rect.Y
		}
		return out[i].Rect.X < out[j].Rect.X
	})
	return out
}
