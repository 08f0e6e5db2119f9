package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/layout"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/model"
)

// CardHeight is the height in cells of a person card: borders, the name and,
// when present, the title and the region tags.
func CardHeight(p model.Person) float64 {
	return float64(len(cardLines(p)) + 2)
}

func cardLines(p model.Person) []string {
	name := p.Name
	if name == "" && p.Record != nil {
		name = p.Record.DisplayName()
	}
	if name == "" {
		name = p.SelfKey
	}
	lines := []string{name}
	if p.Title != "" {
		lines = append(lines, p.Title)
	}
	if len(p.Regions) > 0 {
		lines = append(lines, "")
	}
	return lines
}

// Fit truncates s to width cells with an ellipsis.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// centred pads s so it sits in the middle of width cells.
func centred(s string, width int) (string, int) {
	s = Fit(s, width)
	return s, (width - runewidth.StringWidth(s)) / 2
}

// frameBox draws a bordered rectangle filled with fill.
func (s *Surface) frameBox(x0, y0, x1, y1 int, border, fill styleID) {
	b := s.theme.Border
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			var r string
			switch {
			case y == y0 && x == x0:
				r = b.TopLeft
			case y == y0 && x == x1-1:
				r = b.TopRight
			case y == y1-1 && x == x0:
				r = b.BottomLeft
			case y == y1-1 && x == x1-1:
				r = b.BottomRight
			case y == y0:
				r = b.Top
			case y == y1-1:
				r = b.Bottom
			case x == x0:
				r = b.Left
			case x == x1-1:
				r = b.Right
			default:
				s.set(x, y, ' ', fill)
				continue
			}
			s.set(x, y, []rune(r)[0], border)
		}
	}
}

func (s *Surface) paintPerson(b layout.Box, r model.Rect) {
	x0, y0, x1, y1 := cellBounds(r)
	border, name, title := s.theme.card(DepthPalette(b.Depth))
	if b.ID == s.selected {
		border = s.theme.Selected.Background(name.GetBackground())
	}
	borderID := s.style(border)
	s.frameBox(x0, y0, x1, y1, borderID, s.style(title))

	inner := x1 - x0 - 4
	lines := cardLines(b.Person)
	y := y0 + 1
	for i, line := range lines {
		if y >= y1-1 {
			break
		}
		st := title
		if i == 0 {
			st = name
		}
		if line == "" && len(b.Person.Regions) > 0 {
			s.pills(x0+2, y, inner, b.Person.Regions)
		} else {
			text, pad := centred(line, inner)
			s.text(x0+2+pad, y, inner-pad, text, s.style(st))
		}
		y++
	}
}

// pills writes the region tags centred on one line.
func (s *Surface) pills(x, y, width int, regions []string) {
	tags := make([]string, len(regions))
	total := 0
	for i, reg := range regions {
		tag := RegionAbbrev[reg]
		if tag == "" {
			tag = reg
		}
		tags[i] = " " + tag + " "
		total += runewidth.StringWidth(tags[i])
	}
	total += len(tags) - 1
	col := x + max((width-total)/2, 0)
	for i, tag := range tags {
		w := runewidth.StringWidth(tag)
		if col+w > x+width {
			break
		}
		s.text(col, y, w, tag, s.style(regionStyle(regions[i])))
		col += w + 1
	}
}

// GroupLabel is the text of a group header.
func GroupLabel(b layout.Box) string {
	marker := "▸"
	if b.Open {
		marker = "▾"
	}
	return fmt.Sprintf("%s %s (%d)", marker, b.Label, b.Size)
}

func (s *Surface) paintGroup(b layout.Box, r model.Rect) {
	x0, y0, x1, y1 := cellBounds(r)
	border, _, text := s.theme.card(GroupColors)
	if b.ID == s.selected {
		border = s.theme.Selected.Background(text.GetBackground())
	}
	textID := s.style(text)
	s.frameBox(x0, y0, x1, y1, s.style(border), textID)
	if y1-y0 >= 3 {
		inner := x1 - x0 - 4
		s.text(x0+2, y0+1, inner, Fit(GroupLabel(b), inner), textID)
	}
}

func (s *Surface) paintNote(b layout.Box, r model.Rect) {
	x0, y0, x1, y1 := cellBounds(r)
	y := y0 + (y1-y0)/2
	s.text(x0, y, x1-x0, Fit(strings.TrimSpace(b.Label), x1-x0), s.style(s.theme.Note))
}
