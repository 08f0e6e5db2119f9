// Package export writes org charts as SVG or PNG images and serves an
// exported bundle for previewing in a browser.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/connector"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/layout"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/model"
)

// ChartSnapshotOptions configures a chart image export.
type ChartSnapshotOptions struct {
	Path     string
	Format   string // "svg" or "png"; inferred from Path when empty
	Title    string
	Subtitle string
	Chart    layout.Chart
	Width    float64 // container width in pixels; DefaultWidth when zero
}

// DefaultWidth is the export container width in pixels.
const DefaultWidth = 1200

const (
	margin      = 32.0
	titleHeight = 56.0
)

// snapshot is a chart placed and connected in pixel space, ready to draw.
type snapshot struct {
	placement *layout.Placement
	segments  []model.Segment
	title     string
	subtitle  string
	offsetY   float64
	width     int
	height    int
}

// PixelMetrics sizes a chart in pixels.
func PixelMetrics() layout.Metrics {
	return layout.Metrics{
		NodeWidth:    256,
		Gap:          24,
		RowGap:       12,
		LevelGap:     64,
		Indent:       40,
		HeaderHeight: 44,
		Height:       CardHeight,
	}
}

// CardHeight is the pixel height of a person card.
func CardHeight(p model.Person) float64 {
	h := 2*cardPad + nameLine
	if p.Title != "" {
		h += titleLine
	}
	if len(p.Regions) > 0 {
		h += pillLine
	}
	return h
}

const (
	cardPad   = 10.0
	nameLine  = 18.0
	titleLine = 16.0
	pillLine  = 24.0
)

func prepare(opts ChartSnapshotOptions) (*snapshot, error) {
	if opts.Chart == nil {
		return nil, fmt.Errorf("no chart to export")
	}
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	p := opts.Chart.Place(width-2*margin, PixelMetrics())
	if len(p.Boxes) == 0 {
		return nil, fmt.Errorf("chart is empty")
	}

	calc := connector.NewCalculator(p, connector.PixelOptions)
	segs, ok := calc.Recompute(p.Links)
	if !ok {
		return nil, fmt.Errorf("chart links reference unplaced boxes")
	}

	offsetY := margin
	if opts.Title != "" {
		offsetY += titleHeight
	}
	return &snapshot{
		placement: p,
		segments:  segs,
		title:     opts.Title,
		subtitle:  opts.Subtitle,
		offsetY:   offsetY,
		width:     int(p.Width + 2*margin),
		height:    int(p.Height + offsetY + margin),
	}, nil
}

// DetectFormat returns the export format for a path and an explicit format.
func DetectFormat(path, format string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "" {
		f = strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	}
	switch f {
	case "svg", "png":
		return f, nil
	case "":
		return "svg", nil
	default:
		return "", fmt.Errorf("unsupported format %q", f)
	}
}

// SaveChartSnapshot renders the chart and writes it to opts.Path.
func SaveChartSnapshot(opts ChartSnapshotOptions) error {
	format, err := DetectFormat(opts.Path, opts.Format)
	if err != nil {
		return err
	}
	snap, err := prepare(opts)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	f, err := os.Create(opts.Path)
	if err != nil {
		return fmt.Errorf("create %s: %w", opts.Path, err)
	}
	defer f.Close()

	switch format {
	case "png":
		err = renderPNG(f, snap)
	default:
		err = renderSVG(f, snap)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}
	return f.Close()
}

// SaveAll writes the chart to every path concurrently. The first failure
// cancels the paths not yet started.
func SaveAll(ctx context.Context, opts ChartSnapshotOptions, paths ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, path := range paths {
		o := opts
		o.Path = path
		o.Format = ""
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := SaveChartSnapshot(o); err != nil {
				return fmt.Errorf("%s: %w", o.Path, err)
			}
			return nil
		})
	}
	return g.Wait()
}
