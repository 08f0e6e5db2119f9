// Package layout turns a hierarchy into a renderable structure: breadth-first
// rows (leveled mode) or a nested tree under one canonical top (recursive
// mode), and places either one inside a container of bounded width.
package layout

import (
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/hierarchy"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/model"
)

// Node is one person in a leveled layout.
type Node struct {
	Person model.Person
	Depth  int    // row index; 0 for entry points
	Parent string // manager identity, "" for entry points
}

// Leveled is a breadth-first layout: Rows[d] holds every node at depth d in
// traversal order.
type Leveled struct {
	Rows [][]Node
}

// queueItem mirrors the BFS queue entries used across the UI.
type queueItem struct {
	Person model.Person
	Depth  int
	Parent string
}

// BuildLeveled walks h breadth-first from its entry points. A visited set
// keyed by identity guarantees every person appears once and that manager
// cycles terminate.
func BuildLeveled(h *hierarchy.Hierarchy) Leveled {
	var out Leveled
	visited := make(map[string]bool, h.Len())

	var queue []queueItem
	for _, p := range h.EntryPoints() {
		if visited[p.SelfKey] {
			continue
		}
		visited[p.SelfKey] = true
		queue = append(queue, queueItem{Person: p})
	}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		for len(out.Rows) <= item.Depth {
			out.Rows = append(out.Rows, nil)
		}
		out.Rows[item.Depth] = append(out.Rows[item.Depth], Node{
			Person: item.Person,
			Depth:  item.Depth,
			Parent: item.Parent,
		})

		for _, child := range h.Children(item.Person.SelfKey) {
			if visited[child.SelfKey] {
				continue
			}
			visited[child.SelfKey] = true
			queue = append(queue, queueItem{Person: child, Depth: item.Depth + 1, Parent: item.Person.SelfKey})
		}
	}
	return out
}

// Empty reports whether the layout has nothing to draw.
func (l Leveled) Empty() bool {
	return len(l.Rows) == 0
}

// Len returns the number of nodes across all rows.
func (l Leveled) Len() int {
	n := 0
	for _, row := range l.Rows {
		n += len(row)
	}
	return n
}

// Links joins each parent to its children in the next row.
func (l Leveled) Links() []model.Link {
	var links []model.Link
	index := make(map[string]int)
	for _, row := range l.Rows {
		for _, n := range row {
			if n.Parent == "" {
				continue
			}
			i, ok := index[n.Parent]
			if !ok {
				i = len(links)
				index[n.Parent] = i
				links = append(links, model.Link{Parent: n.Parent, Kind: model.LinkTree})
			}
			links[i].Children = append(links[i].Children, n.Person.SelfKey)
		}
	}
	return links
}
