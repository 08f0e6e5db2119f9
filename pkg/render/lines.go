package render

import (
	"math"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/model"
)

const (
	up uint8 = 1 << iota
	down
	left
	right
)

var junctions = map[uint8]rune{
	up:                       '│',
	down:                     '│',
	up | down:                '│',
	left:                     '─',
	right:                    '─',
	left | right:             '─',
	down | right:             '┌',
	down | left:              '┐',
	up | right:               '└',
	up | left:                '┘',
	up | down | right:        '├',
	up | down | left:         '┤',
	down | left | right:      '┬',
	up | left | right:        '┴',
	up | down | left | right: '┼',
}

// DrawSegments rasterizes axis-aligned segments underneath the mounted
// boxes. Where lines meet they merge into junction glyphs; where a line
// touches a card border the border gets a tee.
func (s *Surface) DrawSegments(segs []model.Segment) {
	lineID := s.style(s.theme.Line)
	ox, oy := s.originX, s.originY

	for _, seg := range segs {
		x1 := int(math.Round(seg.X1 + ox))
		y1 := int(math.Round(seg.Y1 + oy))
		x2 := int(math.Round(seg.X2 + ox))
		y2 := int(math.Round(seg.Y2 + oy))

		switch {
		case x1 == x2 && y1 != y2:
			lo, hi := min(y1, y2), max(y1, y2)
			for y := lo; y <= hi; y++ {
				var bits uint8
				if y > lo {
					bits |= up
				}
				if y < hi {
					bits |= down
				}
				s.mark(x1, y, bits)
			}
			s.tee(x1, lo-1, '┬', s.theme.Border.Bottom)
			s.tee(x1, hi, '┴', s.theme.Border.Top)
		case y1 == y2 && x1 != x2:
			lo, hi := min(x1, x2), max(x1, x2)
			for x := lo; x <= hi; x++ {
				var bits uint8
				if x > lo {
					bits |= left
				}
				if x < hi {
					bits |= right
				}
				s.mark(x, y1, bits)
			}
			s.tee(hi, y1, '┤', s.theme.Border.Left)
		}
	}

	for i := range s.cells {
		c := &s.cells[i]
		if c.owner || c.link == 0 {
			continue
		}
		c.r = junctions[c.link]
		c.style = lineID
	}
}

func (s *Surface) mark(x, y int, bits uint8) {
	if c := s.at(x, y); c != nil && !c.owner {
		c.link |= bits
	}
}

// tee replaces a straight border glyph of a mounted box with a junction.
func (s *Surface) tee(x, y int, r rune, border string) {
	c := s.at(x, y)
	if c == nil || !c.owner || border == "" {
		return
	}
	if c.r == []rune(border)[0] {
		c.r = r
	}
}
