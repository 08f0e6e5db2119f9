package layout

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/hierarchy"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/model"
)

// Arrange says how a node's children are laid out.
type Arrange int

const (
	// ArrangeStack lists children vertically, indented under the parent.
	ArrangeStack Arrange = iota
	// ArrangePeers puts children side by side in a wrapping row.
	ArrangePeers
)

func (a Arrange) String() string {
	if a == ArrangePeers {
		return "peers"
	}
	return "stack"
}

// TreeNode is one person in a recursive layout. Nodes live in Tree.Nodes and
// refer to each other by index.
type TreeNode struct {
	Person   model.Person
	Depth    int
	Parent   int   // index of the parent node, -1 for the top
	Children []int // indexes of the rendered direct reports
	Arrange  Arrange
	Groups   []Group
}

// Group is a collapsible bucket of a direct report's descendants that share a
// scope attribute value.
type Group struct {
	ID    string // "<owner identity>/<label>"
	Label string
	Open  bool  // copied from the caller's ExpandState
	Empty bool  // open, but nobody in the bucket could be placed
	Size  int   // descendants in the bucket
	Roots []int // node indexes drawn inside the group when open
}

// ExpandState is the caller-owned open/closed flag per group ID.
type ExpandState map[string]bool

// Toggle flips a group's state.
func (s ExpandState) Toggle(id string) {
	s[id] = !s[id]
}

var groupIDEscaper = strings.NewReplacer("%", "%25", "/", "%2F")

// GroupID returns the identifier of the group labelled label under owner.
// Slashes inside either part are escaped so distinct pairs never share an ID.
func GroupID(owner, label string) string {
	return groupIDEscaper.Replace(owner) + "/" + groupIDEscaper.Replace(label)
}

// Tree is a recursive layout rooted at Nodes[0].
type Tree struct {
	Nodes  []TreeNode
	Bands  [][]int // the top's direct reports, one slice per band
	Policy Policy
}

// Top returns the node at the top of the chart.
func (t *Tree) Top() TreeNode {
	return t.Nodes[0]
}

// Len returns the number of rendered people.
func (t *Tree) Len() int {
	return len(t.Nodes)
}

// Find returns the node index for an identity.
func (t *Tree) Find(key string) (int, bool) {
	for i, n := range t.Nodes {
		if n.Person.SelfKey == key {
			return i, true
		}
	}
	return -1, false
}

// Groups returns every group in the tree in render order.
func (t *Tree) Groups() []Group {
	var out []Group
	for _, n := range t.Nodes {
		out = append(out, n.Groups...)
	}
	return out
}

// Links lists the connectors the tree needs: the top to all its direct
// reports, peer rows as trees, stacks and open groups as rails.
func (t *Tree) Links() []model.Link {
	var links []model.Link
	for i, n := range t.Nodes {
		if len(n.Children) > 0 {
			kind := model.LinkRail
			if i == 0 || n.Arrange == ArrangePeers {
				kind = model.LinkTree
			}
			links = append(links, model.Link{Parent: n.Person.SelfKey, Children: t.keys(n.Children), Kind: kind})
		}
		for _, g := range n.Groups {
			if len(g.Roots) > 0 {
				links = append(links, model.Link{Parent: GroupHeaderID(g.ID), Children: t.keys(g.Roots), Kind: model.LinkRail})
			}
		}
	}
	return links
}

func (t *Tree) keys(idx []int) []string {
	out := make([]string, len(idx))
	for i, n := range idx {
		out[i] = t.Nodes[n].Person.SelfKey
	}
	return out
}

type treeBuilder struct {
	tree   *Tree
	policy Policy
	state  ExpandState
	seen   map[string]bool
	limit  int
	ranks  hierarchy.RankTable
}

// BuildTree lays out the scope under its canonical top. It reports false when
// the scope has no hierarchy data. Entry points other than the top are not
// drawn in this mode.
func BuildTree(h *hierarchy.Hierarchy, policy Policy, state ExpandState) (*Tree, bool) {
	topRanks := policy.TopRanks
	if len(topRanks) == 0 {
		topRanks = hierarchy.TopTierRanks
	}
	top, ok := hierarchy.PickTopRanked(h.EntryPoints(), topRanks)
	if !ok {
		return nil, false
	}
	if state == nil {
		state = ExpandState{}
	}

	b := &treeBuilder{
		tree:   &Tree{Policy: policy},
		policy: policy,
		state:  state,
		seen:   make(map[string]bool, h.Len()),
		limit:  h.Len() + 1,
		ranks:  h.Ranks(),
	}
	b.seen[top.SelfKey] = true
	root := b.add(top, 0, -1, true)
	b.tree.Nodes[root].Arrange = ArrangePeers

	directs := b.claim(h.Children(top.SelfKey))
	idx := make([]int, len(directs))
	for i, d := range directs {
		idx[i] = b.add(d, 1, root, true)
	}
	b.tree.Bands = b.bands(idx)

	for _, i := range idx {
		if policy.GroupBy != "" {
			b.group(h, i)
		} else {
			b.expand(h, i)
		}
	}
	return b.tree, true
}

// add appends a node; attach links it into the parent's Children.
func (b *treeBuilder) add(p model.Person, depth, parent int, attach bool) int {
	i := len(b.tree.Nodes)
	b.tree.Nodes = append(b.tree.Nodes, TreeNode{Person: p, Depth: depth, Parent: parent})
	if attach && parent >= 0 {
		b.tree.Nodes[parent].Children = append(b.tree.Nodes[parent].Children, i)
	}
	return i
}

// claim filters out people already drawn and marks the rest as drawn.
func (b *treeBuilder) claim(people []model.Person) []model.Person {
	var out []model.Person
	for _, p := range people {
		if b.seen[p.SelfKey] {
			continue
		}
		b.seen[p.SelfKey] = true
		out = append(out, p)
	}
	return out
}

func (b *treeBuilder) bands(directs []int) [][]int {
	if len(directs) == 0 {
		return nil
	}
	if !b.policy.SplitTiers {
		return [][]int{directs}
	}
	var vps, rest []int
	for _, i := range directs {
		if hierarchy.IsVicePresident(b.tree.Nodes[i].Person.Title) {
			vps = append(vps, i)
		} else {
			rest = append(rest, i)
		}
	}
	var out [][]int
	if len(vps) > 0 {
		out = append(out, vps)
	}
	if len(rest) > 0 {
		out = append(out, rest)
	}
	return out
}

// expand draws the subtree under node i from h. Children that are all
// manager-tier become a peer row; anything else stacks.
func (b *treeBuilder) expand(h *hierarchy.Hierarchy, i int) {
	depth := b.tree.Nodes[i].Depth
	if depth >= b.limit {
		return
	}
	kids := b.claim(h.Children(b.tree.Nodes[i].Person.SelfKey))
	if len(kids) == 0 {
		return
	}
	arrange := ArrangePeers
	for _, k := range kids {
		if !hierarchy.IsManagerTier(k.Title) {
			arrange = ArrangeStack
			break
		}
	}
	b.tree.Nodes[i].Arrange = arrange

	idx := make([]int, len(kids))
	for n, k := range kids {
		idx[n] = b.add(k, depth+1, i, true)
	}
	for _, c := range idx {
		b.expand(h, c)
	}
}

// group buckets the descendants of node i by the policy's scope attribute.
// Open buckets are rebuilt as their own hierarchy and drawn from the owner's
// reports in that bucket; closed buckets only report their size.
func (b *treeBuilder) group(h *hierarchy.Hierarchy, i int) {
	owner := b.tree.Nodes[i].Person
	buckets := make(map[string][]model.Person)
	var labels []string
	for _, d := range h.Descendants(owner.SelfKey) {
		label := strings.TrimSpace(d.Scope.Attribute(b.policy.GroupBy))
		if model.IsNonValue(label) {
			continue
		}
		if _, ok := buckets[label]; !ok {
			labels = append(labels, label)
		}
		buckets[label] = append(buckets[label], d)
	}
	col := collate.New(language.English)
	sort.SliceStable(labels, func(x, y int) bool {
		return col.CompareString(labels[x], labels[y]) < 0
	})

	for _, label := range labels {
		bucket := buckets[label]
		g := Group{
			ID:    GroupID(owner.SelfKey, label),
			Label: label,
			Size:  len(bucket),
		}
		g.Open = b.state[g.ID]
		if g.Open {
			g.Roots = b.openGroup(owner, bucket, i)
			g.Empty = len(g.Roots) == 0
		}
		b.tree.Nodes[i].Groups = append(b.tree.Nodes[i].Groups, g)
	}
}

func (b *treeBuilder) openGroup(owner model.Person, bucket []model.Person, i int) []int {
	members := []model.Person{owner}
	for _, p := range bucket {
		if !b.seen[p.SelfKey] {
			members = append(members, p)
		}
	}
	sub := hierarchy.Build(members, hierarchy.WithRanks(b.ranks))

	// the owner's reports in the bucket first, then people whose manager
	// sits in another bucket
	heads := append([]model.Person(nil), sub.Children(owner.SelfKey)...)
	for _, r := range sub.Roots() {
		if r.SelfKey != owner.SelfKey {
			heads = append(heads, r)
		}
	}

	var roots []int
	depth := b.tree.Nodes[i].Depth + 1
	for _, p := range b.claim(heads) {
		c := b.add(p, depth, i, false)
		roots = append(roots, c)
		b.expand(sub, c)
	}
	return roots
}
