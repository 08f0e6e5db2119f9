package hierarchy

import (
	"regexp"
	"strings"
)

const (
	// UnmatchedRank is given to titles that match no seniority keyword.
	UnmatchedRank = 900
	// UntitledRank is given to people without a title.
	UntitledRank = 999
)

// RankRule pairs a lower-case title keyword with its rank. Lower ranks are
// more senior.
type RankRule struct {
	Pattern string `yaml:"pattern" json:"pattern"`
	Rank    int    `yaml:"rank" json:"rank"`
}

// RankTable is an ordered keyword scan: the first rule whose pattern is a
// substring of the lower-cased title decides the rank.
type RankTable []RankRule

// NewRankTable ranks patterns by their position.
func NewRankTable(patterns ...string) RankTable {
	t := make(RankTable, len(patterns))
	for i, p := range patterns {
		t[i] = RankRule{Pattern: strings.ToLower(p), Rank: i}
	}
	return t
}

// SeniorityRanks orders siblings in the chart.
var SeniorityRanks = NewRankTable(
	"chief",
	"senior vice president",
	"svp",
	"senior vp",
	"vice president",
	"vp",
	"assistant vice president",
	"avp",
	"director",
	"manager",
	"supervisor",
	"lead",
	"senior",
	"associate",
	"analyst",
	"coordinator",
)

// TopTierRanks only distinguishes executives; it picks the top of a chart.
var TopTierRanks = NewRankTable(
	"chief",
	"senior vice president",
	"svp",
	"senior vp",
	"vice president",
	"vp",
)

// Rank classifies a title.
func (t RankTable) Rank(title string) int {
	s := strings.ToLower(strings.TrimSpace(title))
	if s == "" {
		return UntitledRank
	}
	for _, rule := range t {
		if rule.Pattern != "" && strings.Contains(s, rule.Pattern) {
			return rule.Rank
		}
	}
	return UnmatchedRank
}

// With returns a copy of the table with extra keywords ranked after the
// existing ones.
func (t RankTable) With(patterns ...string) RankTable {
	out := make(RankTable, len(t), len(t)+len(patterns))
	copy(out, t)
	next := 0
	for _, r := range t {
		if r.Rank >= next {
			next = r.Rank + 1
		}
	}
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		out = append(out, RankRule{Pattern: p, Rank: next})
		next++
	}
	return out
}

var (
	managerTierRe   = regexp.MustCompile(`manager|director|vice\s+president|vp|chief|president|avp|assistant\s+vice\s+president`)
	vicePresidentRe = regexp.MustCompile(`vice\s+president|\bvp\b`)
	assistantVPRe   = regexp.MustCompile(`assistant\s+vice\s+president|\bavp\b`)
	seniorVPRe      = regexp.MustCompile(`senior\s+vice\s+president`)
)

// IsManagerTier reports whether a title belongs to people-managers and up.
func IsManagerTier(title string) bool {
	return managerTierRe.MatchString(strings.ToLower(title))
}

// IsVicePresident reports whether a title is a vice president but not an
// assistant vice president.
func IsVicePresident(title string) bool {
	t := strings.ToLower(title)
	return vicePresidentRe.MatchString(t) && !assistantVPRe.MatchString(t)
}

// IsSeniorVicePresident reports whether a title spells out senior vice
// president.
func IsSeniorVicePresident(title string) bool {
	return seniorVPRe.MatchString(strings.ToLower(title))
}
