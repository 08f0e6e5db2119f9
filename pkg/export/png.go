package export

import (
	"io"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/layout"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/model"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/render"
)

func renderPNG(w io.Writer, snap *snapshot) error {
	dc := gg.NewContext(snap.width, snap.height)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetHexColor("#FFFFFF")
	dc.Clear()

	if snap.title != "" {
		dc.SetHexColor("#092C48")
		dc.DrawString(snap.title, margin, margin+16)
		if snap.subtitle != "" {
			dc.SetHexColor("#64748B")
			dc.DrawString(snap.subtitle, margin, margin+36)
		}
	}

	dc.Push()
	dc.Translate(margin, snap.offsetY)

	dc.SetHexColor(render.LineColor + "99")
	dc.SetLineWidth(2)
	for _, s := range snap.segments {
		dc.DrawLine(s.X1, s.Y1, s.X2, s.Y2)
		dc.Stroke()
	}

	for _, b := range snap.placement.Boxes {
		switch b.Kind {
		case layout.KindPerson:
			pngPerson(dc, b)
		case layout.KindGroupHeader:
			pngGroup(dc, b)
		case layout.KindEmptyNote:
			dc.SetHexColor("#64748B")
			dc.DrawStringAnchored(b.Label, b.Rect.X, b.Rect.Y+b.Rect.H/2, 0, 0.5)
		}
	}
	dc.Pop()

	return dc.EncodePNG(w)
}

func pngPerson(dc *gg.Context, b layout.Box) {
	c := render.DepthPalette(b.Depth)
	r := b.Rect

	dc.SetHexColor(c.Background)
	dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, 12)
	dc.Fill()
	dc.SetHexColor(c.Border)
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, 12)
	dc.Stroke()

	dc.SetHexColor(c.Text)
	y := r.Y + cardPad + nameLine/2
	dc.DrawStringAnchored(fitPixels(displayName(b.Person), r.W-24), r.CenterX(), y, 0.5, 0.5)
	y += nameLine
	if b.Person.Title != "" {
		dc.DrawStringAnchored(fitPixels(b.Person.Title, r.W-24), r.CenterX(), y-2, 0.5, 0.5)
		y += titleLine
	}
	if len(b.Person.Regions) > 0 {
		top := y - nameLine/2
		for _, p := range layoutPills(b.Person.Regions, r.CenterX()) {
			dc.SetHexColor(model.RegionColors[p.region])
			dc.DrawRoundedRectangle(p.x, top, p.w, 18, 9)
			dc.Fill()
			dc.SetHexColor("#092C48")
			dc.DrawStringAnchored(p.tag, p.x+p.w/2, top+9, 0.5, 0.5)
		}
	}
}

func pngGroup(dc *gg.Context, b layout.Box) {
	c := render.GroupColors
	r := b.Rect
	dc.SetHexColor(c.Background)
	dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, 10)
	dc.Fill()
	dc.SetHexColor(c.Border)
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, 10)
	dc.Stroke()
	dc.SetHexColor(c.Text)
	dc.DrawStringAnchored(fitPixels(render.GroupLabel(b), r.W-24), r.X+12, r.Y+r.H/2, 0, 0.5)
}
