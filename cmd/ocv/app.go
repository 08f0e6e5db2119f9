package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/config"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/hierarchy"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/layout"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/loader"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/model"
)

// app is the state shared by every command: flags, config and logger.
type app struct {
	configPath string
	dataPath   string
	logFile    string

	cfg    *config.Config
	log    *logrus.Logger
	closer io.Closer
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return withCode(exitUsage, err)
	}
	if a.dataPath != "" {
		cfg.DataPath = a.dataPath
	}
	if a.logFile != "" {
		cfg.LogFile = a.logFile
	}
	log, closer, err := cfg.Logger()
	if err != nil {
		return err
	}
	a.cfg, a.log, a.closer = cfg, log, closer
	return nil
}

func (a *app) close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// records loads the configured directory file.
func (a *app) records() ([]model.DirectoryRecord, error) {
	if a.cfg.DataPath == "" {
		return nil, withCode(exitUsage, fmt.Errorf("no directory file: pass --data or set OCV_DATA"))
	}
	log := a.log.WithField("path", a.cfg.DataPath)
	records, err := loader.LoadRecords(a.cfg.DataPath, loader.WithWarningHandler(func(w loader.Warning) {
		log.Warn(w.String())
	}))
	if err != nil {
		return nil, withCode(exitData, err)
	}
	log.WithField("records", len(records)).Info("directory loaded")
	return records, nil
}

// scopeFlags select the partition a command works on. Set flags override
// the configured scope.
type scopeFlags struct {
	division   string
	department string
	team       string
	region     string
}

func (s *scopeFlags) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&s.division, "division", "", "Division to chart")
	f.StringVar(&s.department, "department", "", "Department within the division")
	f.StringVar(&s.team, "team", "", "Team within the department")
	f.StringVar(&s.region, "region", "", "Only people flagged for this region ("+strings.Join(model.RegionKeys, ", ")+")")
}

func (s scopeFlags) scope(def model.Scope) model.Scope {
	if s.division == "" && s.department == "" && s.team == "" {
		return def
	}
	return model.Scope{
		Division:   strings.TrimSpace(s.division),
		Department: strings.TrimSpace(s.department),
		Team:       strings.TrimSpace(s.team),
	}
}

func (s scopeFlags) validRegion() error {
	if s.region == "" {
		return nil
	}
	for _, r := range model.RegionKeys {
		if r == s.region {
			return nil
		}
	}
	return withCode(exitUsage, fmt.Errorf("unknown region %q: want one of %s", s.region, strings.Join(model.RegionKeys, ", ")))
}

// built is a scope's chart plus the resource rows drawn beside it.
type built struct {
	chart     layout.Chart
	resources []model.DirectoryRecord
	people    int
}

// expandAll opens every group when passed to buildChart's expand.
const expandAll = "all"

// buildChart narrows records to scope and lays the chart out in mode. A nil
// chart means the scope has no hierarchy data.
func (a *app) buildChart(records []model.DirectoryRecord, sf scopeFlags, mode layout.Mode, expand []string) built {
	scope := sf.scope(a.cfg.Scope)
	records = loader.FilterRegion(records, sf.region)
	policy := a.cfg.Policies.For(scope.Division)
	people, resources := loader.Select(records, scope, policy.IncludeLeaders)
	h := hierarchy.Build(hierarchy.People(people), hierarchy.WithRanks(a.cfg.Ranks()))

	out := built{resources: resources, people: len(people)}
	if mode == layout.ModeLeveled {
		if l := layout.BuildLeveled(h); !l.Empty() {
			out.chart = l
		}
		return out
	}

	state := layout.ExpandState{}
	all := false
	for _, id := range expand {
		if id == expandAll {
			all = true
			continue
		}
		state[id] = true
	}
	tree, ok := layout.BuildTree(h, policy, state)
	if !ok {
		return out
	}
	if all {
		for _, g := range tree.Groups() {
			state[g.ID] = true
		}
		tree, _ = layout.BuildTree(h, policy, state)
	}
	out.chart = tree
	return out
}

func (a *app) mode(flag string) (layout.Mode, error) {
	switch layout.Mode(flag) {
	case "":
		return a.cfg.Mode, nil
	case layout.ModeLeveled, layout.ModeRecursive:
		return layout.Mode(flag), nil
	}
	return "", withCode(exitUsage, fmt.Errorf("unknown mode %q: want leveled or recursive", flag))
}
