package export

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"
)

// Bundle file names.
const (
	BundleIndex = "index.html"
	BundleSVG   = "chart.svg"
	BundlePNG   = "chart.png"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { margin: 0; font-family: system-ui, -apple-system, "Segoe UI", sans-serif; background: #F8FAFC; color: #092C48; }
header { padding: 16px 24px; border-bottom: 1px solid #C3CFDA; background: #FFFFFF; }
header h1 { margin: 0; font-size: 18px; }
header p { margin: 4px 0 0; font-size: 12px; color: #64748B; }
main { padding: 24px; overflow: auto; }
main img { max-width: none; }
</style>
</head>
<body>
<header>
<h1>{{.Title}}</h1>
{{if .Subtitle}}<p>{{.Subtitle}}</p>{{end}}
<p>Generated {{.Generated}} · <a href="{{.PNG}}">PNG</a></p>
</header>
<main><img src="{{.SVG}}" alt="{{.Title}}"></main>
</body>
</html>
`))

// WriteBundle writes a previewable bundle (index page plus SVG and PNG
// renders of the chart) into dir.
func WriteBundle(ctx context.Context, dir string, opts ChartSnapshotOptions) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create bundle dir: %w", err)
	}
	if err := SaveAll(ctx, opts, filepath.Join(dir, BundleSVG), filepath.Join(dir, BundlePNG)); err != nil {
		return err
	}

	title := opts.Title
	if title == "" {
		title = "Org chart"
	}
	f, err := os.Create(filepath.Join(dir, BundleIndex))
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer f.Close()

	err = indexTemplate.Execute(f, struct {
		Title, Subtitle, Generated, SVG, PNG string
	}{
		Title:     title,
		Subtitle:  opts.Subtitle,
		Generated: time.Now().Format("2006-01-02 15:04"),
		SVG:       BundleSVG,
		PNG:       BundlePNG,
	})
	if err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return f.Close()
}
