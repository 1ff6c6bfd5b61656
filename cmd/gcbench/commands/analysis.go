// ABOUTME: Snapshot analysis shared by the explain and inspect commands
// ABOUTME: Ranks retainers by dominated size and renders paths to roots

package commands

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/prateek/tracegc/graph"
)

// analysis is the offline view of one heap snapshot.
type analysis struct {
	objects     int
	roots       int
	reachable   int
	unreachable int
	maxDepth    int
	top         []retainer
	types       []typeCount
}

// retainer is an object that keeps a large part of the heap alive.
type retainer struct {
	id       graph.ObjID
	typ      string
	retained uint64
	idom     graph.ObjID
	paths    []graph.Path
}

type typeCount struct {
	typ   string
	count int
	size  uint64
}

// analyze ranks reachable objects by retained size and keeps the first
// top of them together with up to maxPaths reference chains each.
func analyze(g graph.Graph, top, maxPaths int) analysis {
	idom := graph.Dominators(g)
	tree := graph.DominatorTree(idom)
	retained := graph.RetainedSize(g)
	live := graph.Reachable(g)

	a := analysis{
		objects:   g.NumObjects(),
		roots:     len(g.GetRoots().IDs),
		reachable: len(live),
	}
	a.unreachable = a.objects - a.reachable

	for id, d := range graph.DominatorDepth(tree) {
		if id != graph.SuperRoot && d > a.maxDepth {
			a.maxDepth = d
		}
	}

	byType := make(map[string]*typeCount)
	g.ForEachObject(func(obj *graph.Object) {
		tc, ok := byType[obj.Type]
		if !ok {
			tc = &typeCount{typ: obj.Type}
			byType[obj.Type] = tc
		}
		tc.count++
		tc.size += obj.Size
	})
	for _, tc := range byType {
		a.types = append(a.types, *tc)
	}
	sort.Slice(a.types, func(i, j int) bool {
		if a.types[i].count != a.types[j].count {
			return a.types[i].count > a.types[j].count
		}
		return a.types[i].typ < a.types[j].typ
	})

	ids := make([]graph.ObjID, 0, len(retained))
	for id := range retained {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if retained[ids[i]] != retained[ids[j]] {
			return retained[ids[i]] > retained[ids[j]]
		}
		return ids[i] < ids[j]
	})
	if len(ids) > top {
		ids = ids[:top]
	}
	for _, id := range ids {
		var typ string
		if obj := g.GetObject(id); obj != nil {
			typ = obj.Type
		}
		a.top = append(a.top, retainer{
			id:       id,
			typ:      typ,
			retained: retained[id],
			idom:     idom[id],
			paths:    graph.PathsToRoots(g, id, maxPaths),
		})
	}
	return a
}

func printAnalysis(w io.Writer, a analysis) {
	printPairs(w, [][2]string{
		{"Objects", humanize.Comma(int64(a.objects))},
		{"Rooted", humanize.Comma(int64(a.roots))},
		{"Reachable", humanize.Comma(int64(a.reachable))},
		{"Awaiting collection", humanize.Comma(int64(a.unreachable))},
		{"Dominator tree depth", strconv.Itoa(a.maxDepth)},
	})
	fmt.Fprintln(w)

	rows := make([][]string, 0, len(a.types))
	for _, tc := range a.types {
		rows = append(rows, []string{tc.typ, humanize.Comma(int64(tc.count)), humanize.Comma(int64(tc.size))})
	}
	printTable(w, []string{"Type", "Count", "Size"}, rows)
	fmt.Fprintln(w)

	rows = rows[:0]
	for _, r := range a.top {
		dom := "root"
		if r.idom != graph.SuperRoot {
			dom = strconv.FormatUint(uint64(r.idom), 10)
		}
		rows = append(rows, []string{
			strconv.FormatUint(uint64(r.id), 10),
			r.typ,
			humanize.Comma(int64(r.retained)),
			dom,
			formatPaths(r.paths),
		})
	}
	printTable(w, []string{"ID", "Type", "Retained", "Dominator", "Paths to roots"}, rows)
}

// formatPaths renders each path as "target <- ... <- root", separated by
// " | ".
func formatPaths(paths []graph.Path) string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		ids := make([]string, len(p.IDs))
		for i, id := range p.IDs {
			ids[i] = strconv.FormatUint(uint64(id), 10)
		}
		out = append(out, strings.Join(ids, " <- "))
	}
	return strings.Join(out, " | ")
}
