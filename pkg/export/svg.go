package export

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/layout"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/model"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/render"
)

const fontFamily = "system-ui,-apple-system,Segoe UI,sans-serif"

// charWidth approximates glyph advance for text fitting.
const charWidth = 7.0

func fitPixels(s string, width float64) string {
	return render.Fit(s, int(width/charWidth))
}

func renderSVG(w io.Writer, snap *snapshot) error {
	canvas := svg.New(w)
	canvas.Start(snap.width, snap.height)
	canvas.Title(snap.title)
	canvas.Rect(0, 0, snap.width, snap.height, "fill:#ffffff")

	if snap.title != "" {
		canvas.Text(int(margin), int(margin)+20, snap.title,
			fmt.Sprintf("fill:#092C48;font-size:20px;font-weight:600;font-family:%s", fontFamily))
		if snap.subtitle != "" {
			canvas.Text(int(margin), int(margin)+40, snap.subtitle,
				fmt.Sprintf("fill:#64748B;font-size:12px;font-family:%s", fontFamily))
		}
	}

	canvas.Gtransform(fmt.Sprintf("translate(%d,%d)", int(margin), int(snap.offsetY)))

	canvas.Gstyle(fmt.Sprintf("stroke:%s;stroke-opacity:0.6;stroke-width:2;fill:none", render.LineColor))
	for _, s := range snap.segments {
		canvas.Line(int(s.X1), int(s.Y1), int(s.X2), int(s.Y2))
	}
	canvas.Gend()

	for _, b := range snap.placement.Boxes {
		switch b.Kind {
		case layout.KindPerson:
			svgPerson(canvas, b)
		case layout.KindGroupHeader:
			svgGroup(canvas, b)
		case layout.KindEmptyNote:
			canvas.Text(int(b.Rect.X), int(b.Rect.Y+b.Rect.H/2+4), b.Label,
				fmt.Sprintf("fill:#64748B;font-size:13px;font-style:italic;font-family:%s", fontFamily))
		}
	}

	canvas.Gend()
	canvas.End()
	return nil
}

func svgPerson(canvas *svg.SVG, b layout.Box) {
	c := render.DepthPalette(b.Depth)
	r := b.Rect
	x, y, w, h := int(r.X), int(r.Y), int(r.W), int(r.H)
	canvas.Roundrect(x, y, w, h, 12, 12,
		fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", c.Background, c.Border))

	cx := int(r.CenterX())
	ty := r.Y + cardPad + 13
	canvas.Text(cx, int(ty), fitPixels(displayName(b.Person), r.W-24),
		fmt.Sprintf("fill:%s;font-size:14px;font-weight:600;text-anchor:middle;font-family:%s", c.Text, fontFamily))
	ty += nameLine
	if b.Person.Title != "" {
		canvas.Text(cx, int(ty)-2, fitPixels(b.Person.Title, r.W-24),
			fmt.Sprintf("fill:%s;fill-opacity:0.9;font-size:12px;text-anchor:middle;font-family:%s", c.Text, fontFamily))
		ty += titleLine
	}
	if len(b.Person.Regions) > 0 {
		pills := layoutPills(b.Person.Regions, r.CenterX())
		for _, p := range pills {
			canvas.Roundrect(int(p.x), int(ty), int(p.w), 18, 9, 9, fmt.Sprintf("fill:%s", model.RegionColors[p.region]))
			canvas.Text(int(p.x+p.w/2), int(ty)+13, p.tag,
				fmt.Sprintf("fill:#092C48;font-size:11px;text-anchor:middle;font-family:%s", fontFamily))
		}
	}
}

func svgGroup(canvas *svg.SVG, b layout.Box) {
	c := render.GroupColors
	r := b.Rect
	canvas.Roundrect(int(r.X), int(r.Y), int(r.W), int(r.H), 10, 10,
		fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", c.Background, c.Border))
	canvas.Text(int(r.X)+12, int(r.Y+r.H/2)+5, fitPixels(render.GroupLabel(b), r.W-24),
		fmt.Sprintf("fill:%s;font-size:14px;font-weight:500;font-family:%s", c.Text, fontFamily))
}

func displayName(p model.Person) string {
	if p.Name != "" {
		return p.Name
	}
	if p.Record != nil {
		if n := p.Record.DisplayName(); n != "" {
			return n
		}
	}
	return p.SelfKey
}

type pill struct {
	region string
	tag    string
	x, w   float64
}

// layoutPills centres region pills around cx.
func layoutPills(regions []string, cx float64) []pill {
	const gap = 4.0
	out := make([]pill, len(regions))
	total := 0.0
	for i, reg := range regions {
		tag := render.RegionAbbrev[reg]
		if tag == "" {
			tag = reg
		}
		w := float64(len(tag))*charWidth + 12
		out[i] = pill{region: reg, tag: tag, w: w}
		total += w
	}
	total += gap * float64(len(regions)-1)
	x := cx - total/2
	for i := range out {
		out[i].x = x
		x += out[i].w + gap
	}
	return out
}
