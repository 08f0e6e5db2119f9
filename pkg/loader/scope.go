package loader

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/hierarchy"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/model"
)

// InScope reports whether r belongs to s. Empty scope components match
// anything; set components must equal the trimmed field.
func InScope(r model.DirectoryRecord, s model.Scope) bool {
	match := func(want, got string) bool {
		return want == "" || strings.TrimSpace(got) == want
	}
	return match(s.Division, r.Division) && match(s.Department, r.Department) && match(s.Team, r.Team)
}

// FilterScope returns the records inside s, preserving input order.
func FilterScope(records []model.DirectoryRecord, s model.Scope) []model.DirectoryRecord {
	out := make([]model.DirectoryRecord, 0, len(records))
	for _, r := range records {
		if InScope(r, s) {
			out = append(out, r)
		}
	}
	return out
}

// FilterRegion keeps records flagged for region. An empty region keeps all.
func FilterRegion(records []model.DirectoryRecord, region string) []model.DirectoryRecord {
	if region == "" {
		return records
	}
	out := make([]model.DirectoryRecord, 0, len(records))
	for _, r := range records {
		if model.TruthyFlag(r.Get(region)) {
			out = append(out, r)
		}
	}
	return out
}

// SplitPeople separates records with a resolvable identity from resource
// rows (shared mailboxes, support lines) that have none.
func SplitPeople(records []model.DirectoryRecord) (people, resources []model.DirectoryRecord) {
	for _, r := range records {
		if hierarchy.ResolveSelf(&r) != "" {
			people = append(people, r)
		} else {
			resources = append(resources, r)
		}
	}
	return people, resources
}

// IncludeDivisionLeaders adds the division's senior vice presidents from all
// to scoped so a narrow scope still shows who its chain reports to. Records
// already in scoped are not repeated.
func IncludeDivisionLeaders(all, scoped []model.DirectoryRecord, division string) []model.DirectoryRecord {
	if division == "" {
		return scoped
	}
	have := make(map[string]bool, len(scoped))
	for i := range scoped {
		if k := hierarchy.ResolveSelf(&scoped[i]); k != "" {
			have[k] = true
		}
	}
	out := append([]model.DirectoryRecord(nil), scoped...)
	for i := range all {
		r := &all[i]
		if strings.TrimSpace(r.Division) != division || !hierarchy.IsSeniorVicePresident(r.Title) {
			continue
		}
		k := hierarchy.ResolveSelf(r)
		if k == "" || have[k] {
			continue
		}
		have[k] = true
		out = append(out, *r)
	}
	return out
}

// Options are the distinct, non-placeholder values available at each level
// of the scope picker.
type Options struct {
	Divisions   []string
	Departments []string
	Teams       []string
}

// ScopeOptions lists the choices for a picker that has already selected the
// non-empty components of s: departments are limited to s.Division and teams
// to s.Division and s.Department.
func ScopeOptions(records []model.DirectoryRecord, s model.Scope) Options {
	var o Options
	o.Divisions = uniqSorted(records, func(r model.DirectoryRecord) (string, bool) {
		return r.Division, true
	})
	o.Departments = uniqSorted(records, func(r model.DirectoryRecord) (string, bool) {
		return r.Department, InScope(r, model.Scope{Division: s.Division})
	})
	o.Teams = uniqSorted(records, func(r model.DirectoryRecord) (string, bool) {
		return r.Team, InScope(r, model.Scope{Division: s.Division, Department: s.Department})
	})
	return o
}

func uniqSorted(records []model.DirectoryRecord, pick func(model.DirectoryRecord) (string, bool)) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		v, ok := pick(r)
		v = strings.TrimSpace(v)
		if !ok || model.IsNonValue(v) || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	collate.New(language.English, collate.IgnoreCase).SortStrings(out)
	return out
}

// Select narrows all to scope and splits the result into chart people and
// resource rows. With leaders set, a team scope also gets its division's
// senior vice presidents.
func Select(all []model.DirectoryRecord, scope model.Scope, leaders bool) (people, resources []model.DirectoryRecord) {
	scoped := FilterScope(all, scope)
	if leaders && scope.Team != "" {
		scoped = IncludeDivisionLeaders(all, scoped, scope.Division)
	}
	return SplitPeople(scoped)
}
