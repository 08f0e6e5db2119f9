// Package quality audits a directory for the data problems the chart
// tolerates silently: duplicate and missing identities, broken manager
// references, and reporting cycles.
package quality

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/model"
)

var validate = validator.New()

// Kind classifies a finding.
type Kind string

const (
	KindDuplicate    Kind = "duplicate"
	KindUnresolvable Kind = "unresolvable"
	KindDangling     Kind = "dangling_manager"
	KindSelfManaged  Kind = "self_managed"
	KindInvalidEmail Kind = "invalid_email"
	KindCycle        Kind = "cycle"
)

// Finding is one data problem.
type Finding struct {
	Kind    Kind     `json:"kind" yaml:"kind"`
	Key     string   `json:"key,omitempty" yaml:"key,omitempty"`
	Row     int      `json:"row" yaml:"row"` // 1-based input position; 0 for cycles
	Members []string `json:"members,omitempty" yaml:"members,omitempty"`
	Message string   `json:"message" yaml:"message"`
}

// Report is the result of Check.
type Report struct {
	Records  int       `json:"records" yaml:"records"`
	People   int       `json:"people" yaml:"people"`
	Findings []Finding `json:"findings" yaml:"findings"`
}

// OK reports whether no problems were found.
func (r Report) OK() bool { return len(r.Findings) == 0 }

// Count returns the number of findings of kind k.
func (r Report) Count(k Kind) int {
	n := 0
	for _, f := range r.Findings {
		if f.Kind == k {
			n++
		}
	}
	return n
}

// Summary counts findings per kind.
func (r Report) Summary() map[Kind]int {
	out := make(map[Kind]int)
	for _, f := range r.Findings {
		out[f.Kind]++
	}
	return out
}

// Check audits people in input order. Records without an identity are
// reported as unresolvable unless they are resource rows.
func Check(people []model.Person) Report {
	rep := Report{Records: len(people)}

	first := make(map[string]int)
	for _, p := range people {
		if p.SelfKey == "" {
			if p.Record == nil || p.Record.Resource == "" {
				rep.add(Finding{Kind: KindUnresolvable, Row: p.Index + 1,
					Message: fmt.Sprintf("%s has no Person ID or Email", label(p))})
			}
			continue
		}
		rep.People++
		if prev, ok := first[p.SelfKey]; ok {
			rep.add(Finding{Kind: KindDuplicate, Key: p.SelfKey, Row: p.Index + 1,
				Message: fmt.Sprintf("%s repeats the identity of row %d; the later row wins", p.SelfKey, prev)})
		} else {
			first[p.SelfKey] = p.Index + 1
		}
	}

	for _, p := range people {
		if p.SelfKey == "" {
			continue
		}
		if p.Record != nil {
			if e := strings.TrimSpace(p.Record.Email); !model.IsNonValue(e) && validate.Var(e, "email") != nil {
				rep.add(Finding{Kind: KindInvalidEmail, Key: p.SelfKey, Row: p.Index + 1,
					Message: fmt.Sprintf("%s has an invalid email %q", p.SelfKey, e)})
			}
		}
		switch {
		case p.ManagerKey == "":
		case p.ManagerKey == p.SelfKey:
			rep.add(Finding{Kind: KindSelfManaged, Key: p.SelfKey, Row: p.Index + 1,
				Message: fmt.Sprintf("%s lists itself as manager", p.SelfKey)})
		default:
			if _, ok := first[p.ManagerKey]; !ok {
				rep.add(Finding{Kind: KindDangling, Key: p.SelfKey, Row: p.Index + 1,
					Message: fmt.Sprintf("%s reports to %s, which is not in the directory", p.SelfKey, p.ManagerKey)})
			}
		}
	}

	for _, members := range Cycles(people) {
		rep.add(Finding{Kind: KindCycle, Members: members,
			Message: fmt.Sprintf("reporting cycle: %s", strings.Join(members, " → "))})
	}
	return rep
}

func (r *Report) add(f Finding) { r.Findings = append(r.Findings, f) }

func label(p model.Person) string {
	if p.Record != nil {
		if n := p.Record.DisplayName(); n != "" {
			return fmt.Sprintf("row %d (%s)", p.Index+1, n)
		}
	}
	return fmt.Sprintf("row %d", p.Index+1)
}

// Cycles returns the manager cycles among people as strongly connected
// components with more than one member. Each cycle is sorted, and cycles
// are ordered by their first member. Self-management is not a cycle here.
func Cycles(people []model.Person) [][]string {
	g := simple.NewDirectedGraph()
	ids := make(map[string]int64)
	keys := make(map[int64]string)
	node := func(key string) int64 {
		if id, ok := ids[key]; ok {
			return id
		}
		id := int64(len(ids))
		ids[key] = id
		keys[id] = key
		g.AddNode(simple.Node(id))
		return id
	}

	// last write wins, as in the hierarchy index
	manager := make(map[string]string)
	for _, p := range people {
		if p.SelfKey != "" {
			manager[p.SelfKey] = p.ManagerKey
		}
	}
	for self, mgr := range manager {
		if mgr == "" || mgr == self {
			continue
		}
		if _, ok := manager[mgr]; !ok {
			continue
		}
		g.SetEdge(g.NewEdge(g.Node(node(self)), g.Node(node(mgr))))
	}

	var out [][]string
	for _, scc := range topo.TarjanSCC(g) {
		if len(scc) < 2 {
			continue
		}
		members := make([]string, len(scc))
		for i, n := range scc {
			members[i] = keys[n.ID()]
		}
		sort.Strings(members)
		out = append(out, members)
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

// Write encodes the report as "yaml" or "json".
func (r Report) Write(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "", "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}
