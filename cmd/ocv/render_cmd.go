package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/model"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/render"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/ui"
)

const fallbackWidth = 120

func newRenderCmd(a *app) *cobra.Command {
	var (
		sf     scopeFlags
		mode   string
		width  int
		expand []string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the chart of a scope to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sf.validRegion(); err != nil {
				return err
			}
			m, err := a.mode(mode)
			if err != nil {
				return err
			}
			records, err := a.records()
			if err != nil {
				return err
			}
			if width <= 0 {
				width = terminalWidth(cmd.OutOrStdout())
			}

			b := a.buildChart(records, sf, m, expand)
			out := cmd.OutOrStdout()
			if b.chart == nil {
				fmt.Fprintln(out, ui.EmptyMessage)
			} else {
				metrics := render.CellMetrics(a.cfg.NodeWidth)
				fmt.Fprint(out, render.Chart(b.chart.Place(float64(width), metrics), render.DefaultTheme(), ""))
			}
			writeResources(out, b.resources)
			a.log.WithFields(logrus.Fields{"mode": m, "people": b.people, "width": width}).Info("chart rendered")
			return nil
		},
	}

	sf.bind(cmd)
	cmd.Flags().StringVar(&mode, "mode", "", "Layout mode: leveled|recursive (default from config)")
	cmd.Flags().IntVar(&width, "width", 0, "Chart width in cells (default terminal width)")
	cmd.Flags().StringSliceVar(&expand, "expand", nil, `Group IDs to open ("owner/label"), or "all"`)
	return cmd
}

// terminalWidth measures w when it is a terminal.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			return cols
		}
	}
	return fallbackWidth
}

func writeResources(w io.Writer, resources []model.DirectoryRecord) {
	if len(resources) == 0 {
		return
	}
	fmt.Fprintln(w, "\nResources:")
	for _, r := range resources {
		line := "  " + r.DisplayName()
		for _, v := range []string{r.TeamEmail, r.SupportPhone, r.Hours, r.Location} {
			if !model.IsNonValue(v) {
				line += " · " + v
			}
		}
		fmt.Fprintln(w, line)
	}
}
