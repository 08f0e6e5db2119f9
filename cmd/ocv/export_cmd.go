package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/export"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		sf      scopeFlags
		mode    string
		format  string
		outPath string
		title   string
		width   float64
		expand  []string
		preview bool
		open    bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the chart of a scope as SVG, PNG or a previewable bundle",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.cfg.Admin {
				return withCode(exitUsage, fmt.Errorf("export is available to admins only (set admin: true or OCV_ADMIN=true)"))
			}
			if err := sf.validRegion(); err != nil {
				return err
			}
			m, err := a.mode(mode)
			if err != nil {
				return err
			}
			format = strings.ToLower(strings.TrimSpace(format))
			if preview {
				format = "bundle"
			}
			if outPath == "" {
				outPath = a.cfg.ExportDir
				if format != "bundle" {
					f := format
					if f == "" {
						f = "svg"
					}
					outPath = filepath.Join(a.cfg.ExportDir, "orgchart."+f)
				}
			}

			records, err := a.records()
			if err != nil {
				return err
			}
			b := a.buildChart(records, sf, m, expand)
			if b.chart == nil {
				return withCode(exitData, fmt.Errorf("nothing to export: scope has no hierarchy data"))
			}

			scope := sf.scope(a.cfg.Scope)
			opts := export.ChartSnapshotOptions{
				Path:     outPath,
				Format:   format,
				Title:    title,
				Subtitle: scope.String() + " · " + string(m),
				Chart:    b.chart,
				Width:    width,
			}
			log := a.log.WithFields(logrus.Fields{"path": outPath, "format": format, "people": b.people})
			out := cmd.OutOrStdout()

			if format == "bundle" {
				if err := export.WriteBundle(cmd.Context(), outPath, opts); err != nil {
					return err
				}
				log.Info("bundle written")
				fmt.Fprintf(out, "Wrote bundle to %s\n", outPath)
				if !preview {
					return nil
				}
				fmt.Fprintln(out, "Serving preview; press Ctrl+C to stop.")
				return export.Preview(cmd.Context(), outPath, open, a.log)
			}

			if err := export.SaveChartSnapshot(opts); err != nil {
				return err
			}
			log.Info("chart exported")
			fmt.Fprintf(out, "Wrote %s\n", outPath)
			return nil
		},
	}

	sf.bind(cmd)
	f := cmd.Flags()
	f.StringVar(&mode, "mode", "", "Layout mode: leveled|recursive (default from config)")
	f.StringVar(&format, "format", "", "svg|png|bundle (default from --out extension)")
	f.StringVarP(&outPath, "out", "o", "", "Output file, or directory for bundles (default under export_dir)")
	f.StringVar(&title, "title", "Org chart", "Title drawn above the chart")
	f.Float64Var(&width, "width", export.DefaultWidth, "Chart width in pixels")
	f.StringSliceVar(&expand, "expand", nil, `Group IDs to open ("owner/label"), or "all"`)
	f.BoolVar(&preview, "preview", false, "Write a bundle and serve it locally until interrupted")
	f.BoolVar(&open, "open", false, "Open the preview in a browser")
	return cmd
}
