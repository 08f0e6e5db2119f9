package layout

import (
	"strings"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/hierarchy"
)

// Mode selects between the two layout styles.
type Mode string

const (
	ModeLeveled   Mode = "leveled"
	ModeRecursive Mode = "recursive"
)

// Next returns the other mode.
func (m Mode) Next() Mode {
	if m == ModeLeveled {
		return ModeRecursive
	}
	return ModeLeveled
}

// Policy adjusts the recursive layout for one division.
type Policy struct {
	Name string `yaml:"name" json:"name"`
	// Match lists lower-case fragments that must all occur in the division
	// name for the policy to apply.
	Match []string `yaml:"match" json:"match" validate:"required,min=1,dive,required"`
	// GroupBy buckets each direct report's descendants by a scope attribute.
	GroupBy string `yaml:"group_by,omitempty" json:"group_by,omitempty" validate:"omitempty,oneof=department team"`
	// SplitTiers puts the top's vice presidents on their own band above the
	// other direct reports.
	SplitTiers bool `yaml:"split_tiers,omitempty" json:"split_tiers,omitempty"`
	// IncludeLeaders adds the division's senior vice presidents to team
	// scopes so the chart keeps its top.
	IncludeLeaders bool `yaml:"include_leaders,omitempty" json:"include_leaders,omitempty"`

	// TopRanks overrides the table used to pick the top of the chart.
	TopRanks hierarchy.RankTable `yaml:"-" json:"-"`
}

// Matches reports whether the policy applies to division.
func (p Policy) Matches(division string) bool {
	if len(p.Match) == 0 {
		return false
	}
	d := strings.ToLower(division)
	for _, frag := range p.Match {
		if !strings.Contains(d, strings.ToLower(frag)) {
			return false
		}
	}
	return true
}

// Policies is an ordered rule list; the first match wins.
type Policies []Policy

// DefaultPolicies reproduces the built-in division rules.
func DefaultPolicies() Policies {
	return Policies{
		{Name: "field-marketing", Match: []string{"field", "market"}, GroupBy: "department"},
		{Name: "sales", Match: []string{"sales"}, SplitTiers: true, IncludeLeaders: true},
	}
}

// For returns the policy for division, or the zero Policy (plain recursive
// layout) when nothing matches.
func (ps Policies) For(division string) Policy {
	for _, p := range ps {
		if p.Matches(division) {
			return p
		}
	}
	return Policy{}
}
