package hierarchy

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/model"
)

// RootKey is the adjacency bucket for people without an in-scope manager.
// No addressable identity is empty, so it never names a real manager.
const RootKey = ""

// Hierarchy is the reporting structure of one scope. Relationships are held
// as identity-keyed buckets, never as pointers between people.
type Hierarchy struct {
	People     []model.Person            // input order
	Index      map[string]model.Person   // identity -> person, last write wins
	Adjacency  map[string][]model.Person // manager identity (or RootKey) -> sorted reports
	Duplicates []string                  // identities claimed by more than one record

	ranks RankTable
}

// Option configures Build.
type Option func(*Hierarchy)

// WithRanks replaces the seniority table used to order siblings.
func WithRanks(t RankTable) Option {
	return func(h *Hierarchy) {
		if len(t) > 0 {
			h.ranks = t
		}
	}
}

// Build groups people under their managers. A manager reference only links
// when it resolves to someone in the same input; otherwise the person becomes
// a root. People without an identity are left out of the tree.
func Build(people []model.Person, opts ...Option) *Hierarchy {
	h := &Hierarchy{
		People:    people,
		Index:     make(map[string]model.Person, len(people)),
		Adjacency: make(map[string][]model.Person),
		ranks:     SeniorityRanks,
	}
	for _, opt := range opts {
		opt(h)
	}

	seen := make(map[string]int)
	for _, p := range people {
		if !p.Addressable() {
			continue
		}
		h.Index[p.SelfKey] = p
		seen[p.SelfKey]++
		if seen[p.SelfKey] == 2 {
			h.Duplicates = append(h.Duplicates, p.SelfKey)
		}
	}

	for _, p := range people {
		if !p.Addressable() {
			continue
		}
		key := RootKey
		if p.ManagerKey != "" {
			if _, ok := h.Index[p.ManagerKey]; ok {
				key = p.ManagerKey
			}
		}
		h.Adjacency[key] = append(h.Adjacency[key], p)
	}

	less := SiblingLess(h.ranks)
	for _, bucket := range h.Adjacency {
		sort.SliceStable(bucket, func(i, j int) bool {
			return less(bucket[i], bucket[j])
		})
	}

	return h
}

// SiblingLess returns the sibling comparator: title rank, then explicit sort
// order, then name in locale order.
func SiblingLess(ranks RankTable) func(a, b model.Person) bool {
	col := collate.New(language.English)
	return func(a, b model.Person) bool {
		ra, rb := ranks.Rank(a.Title), ranks.Rank(b.Title)
		if ra != rb {
			return ra < rb
		}
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		return col.CompareString(a.Name, b.Name) < 0
	}
}

// Ranks returns the seniority table the hierarchy was sorted with.
func (h *Hierarchy) Ranks() RankTable {
	return h.ranks
}

// Roots returns the root bucket.
func (h *Hierarchy) Roots() []model.Person {
	return h.Adjacency[RootKey]
}

// Children returns the sorted direct reports of key.
func (h *Hierarchy) Children(key string) []model.Person {
	if key == "" {
		return nil
	}
	return h.Adjacency[key]
}

// HasChildren reports whether anyone reports to key.
func (h *Hierarchy) HasChildren(key string) bool {
	return len(h.Children(key)) > 0
}

// Len returns the number of distinct identities.
func (h *Hierarchy) Len() int {
	return len(h.Index)
}

// Descendants returns everyone below key, breadth first. Each identity is
// returned once even when manager references loop.
func (h *Hierarchy) Descendants(key string) []model.Person {
	var out []model.Person
	seen := map[string]bool{key: true}
	queue := []string{key}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, child := range h.Children(current) {
			if seen[child.SelfKey] {
				continue
			}
			seen[child.SelfKey] = true
			out = append(out, child)
			queue = append(queue, child.SelfKey)
		}
	}
	return out
}

// EntryPoints returns where a traversal has to start to reach every identity:
// the roots, followed by one member of each manager cycle that no root leads
// to. The promoted member is the cycle member that appears first in the
// input.
func (h *Hierarchy) EntryPoints() []model.Person {
	roots := h.Roots()
	entries := make([]model.Person, 0, len(roots))
	reached := make(map[string]bool, len(h.Index))

	mark := func(p model.Person) {
		reached[p.SelfKey] = true
		for _, d := range h.Descendants(p.SelfKey) {
			reached[d.SelfKey] = true
		}
	}

	for _, r := range roots {
		if reached[r.SelfKey] {
			continue
		}
		entries = append(entries, r)
		mark(r)
	}

	for _, p := range h.People {
		if !p.Addressable() || reached[p.SelfKey] {
			continue
		}
		entry, ok := h.cycleEntry(p.SelfKey)
		if !ok || reached[entry.SelfKey] {
			continue
		}
		entries = append(entries, entry)
		mark(entry)
	}

	return entries
}

// cycleEntry follows manager links up from key until one repeats and returns
// the cycle member with the lowest input position.
func (h *Hierarchy) cycleEntry(key string) (model.Person, bool) {
	pos := make(map[string]int)
	var path []string
	for {
		if i, ok := pos[key]; ok {
			cycle := path[i:]
			best := h.Index[cycle[0]]
			for _, k := range cycle[1:] {
				if p := h.Index[k]; p.Index < best.Index {
					best = p
				}
			}
			return best, true
		}
		p, ok := h.Index[key]
		if !ok {
			return model.Person{}, false
		}
		pos[key] = len(path)
		path = append(path, key)
		if _, ok := h.Index[p.ManagerKey]; !ok || p.ManagerKey == "" {
			// reached a root; nothing to promote
			return model.Person{}, false
		}
		key = p.ManagerKey
	}
}
