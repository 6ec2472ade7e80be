package sampler

import (
	"math"
	"sort"
	"testing"

	da "github.com/navbench/odgen/pkg/datastructure"
)

type testEdge struct {
	tail, head   da.Index
	weight, dist float64
}

func buildGraph(t *testing.T, n int, edges []testEdge) *da.Graph {
	t.Helper()
	in := make([]da.EdgeInput, len(edges))
	for i, e := range edges {
		in[i] = da.NewEdgeInput(e.tail, e.head, e.weight, e.dist)
	}
	g, err := da.NewGraphFromEdges(n, in)
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}
	return g
}

// undirected unit-cost cycle 0-1-...-(n-1)-0
func buildUnitCycle(t *testing.T, n int) *da.Graph {
	t.Helper()
	edges := make([]testEdge, 0, 2*n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		edges = append(edges,
			testEdge{da.Index(i), da.Index(j), 1, 1},
			testEdge{da.Index(j), da.Index(i), 1, 1})
	}
	return buildGraph(t, n, edges)
}

// bruteForceDistances runs a naive O(n^2) Dijkstra for cross-checking the
// explorer. Unreachable vertices get +Inf.
func bruteForceDistances(g *da.Graph, source da.Index) []float64 {
	n := g.NumberOfVertices()
	dist := make([]float64, n)
	for v := range dist {
		dist[v] = math.Inf(1)
	}
	dist[source] = 0

	settled := make([]bool, n)
	for {
		u := -1
		for v := 0; v < n; v++ {
			if settled[v] || math.IsInf(dist[v], 1) {
				continue
			}
			if u == -1 || dist[v] < dist[u] {
				u = v
			}
		}
		if u == -1 {
			break
		}
		settled[u] = true
		g.ForOutEdgesOf(da.Index(u), func(outArc *da.OutEdge) {
			if nd := dist[u] + outArc.GetWeight(); nd < dist[outArc.GetHead()] {
				dist[outArc.GetHead()] = nd
			}
		})
	}
	return dist
}

// settleOrder lists the reachable vertices sorted by (distance, index), the
// total order the explorer promises.
func settleOrder(dist []float64) []da.Index {
	order := make([]da.Index, 0, len(dist))
	for v, d := range dist {
		if !math.IsInf(d, 1) {
			order = append(order, da.Index(v))
		}
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if dist[a] != dist[b] {
			return dist[a] < dist[b]
		}
		return a < b
	})
	return order
}

// a fixed weighted digraph with distance ties and an unreachable vertex (7)
func buildFixture(t *testing.T) *da.Graph {
	t.Helper()
	return buildGraph(t, 8, []testEdge{
		{0, 1, 2, 10},
		{0, 2, 2, 20},
		{1, 3, 1, 30},
		{2, 3, 1, 40},
		{3, 4, 5, 50},
		{0, 4, 9, 60},
		{4, 5, 1, 70},
		{5, 6, 0, 80},
		{1, 6, 8, 90},
		{6, 0, 3, 15},
	})
}
