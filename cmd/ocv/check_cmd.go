package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/hierarchy"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/loader"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/quality"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		sf     scopeFlags
		format string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report data quality problems in the directory",
		Long: "Reports duplicate identities, rows without an identity, dangling and self\n" +
			"manager references, invalid emails and manager cycles. The chart itself\n" +
			"tolerates all of these; this command surfaces them for cleanup.",
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			if format != "yaml" && format != "json" {
				return withCode(exitUsage, fmt.Errorf("unsupported --format: %s", format))
			}
			if err := sf.validRegion(); err != nil {
				return err
			}
			records, err := a.records()
			if err != nil {
				return err
			}
			records = loader.FilterRegion(records, sf.region)
			scoped := loader.FilterScope(records, sf.scope(a.cfg.Scope))
			report := quality.Check(hierarchy.People(scoped))
			a.log.WithField("findings", len(report.Findings)).Info("quality check finished")

			if err := report.Write(cmd.OutOrStdout(), format); err != nil {
				return err
			}
			if strict && !report.OK() {
				return withCode(exitFindings, fmt.Errorf("%d data quality findings", len(report.Findings)))
			}
			return nil
		},
	}

	sf.bind(cmd)
	cmd.Flags().StringVar(&format, "format", "yaml", "Output format: yaml|json")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with status 2 when there are findings")
	return cmd
}
