package datastructure

import (
	"math"

	"github.com/navbench/odgen/pkg/util"
)

// OutEdge is a directed edge owned by its tail vertex. weight is the active
// cost used for shortest-path distances (travel time in seconds by default),
// dist is the physical length in meters.
type OutEdge struct {
	head   Index
	weight float64
	dist   float64
}

func NewOutEdge(head Index, weight, dist float64) OutEdge {
	return OutEdge{head: head, weight: weight, dist: dist}
}

func (e *OutEdge) GetHead() Index {
	return e.head
}

func (e *OutEdge) GetWeight() float64 {
	return e.weight
}

func (e *OutEdge) GetDist() float64 {
	return e.dist
}

// EdgeInput is one edge of the raw edge list before CSR compression.
type EdgeInput struct {
	tail   Index
	head   Index
	weight float64
	dist   float64
}

func NewEdgeInput(tail, head Index, weight, dist float64) EdgeInput {
	return EdgeInput{tail: tail, head: head, weight: weight, dist: dist}
}

// Graph is a static adjacency structure in compressed sparse row form:
// the outgoing edges of vertex v are outEdges[firstOut[v]:firstOut[v+1]].
// It is immutable for the duration of a run (UseLengthAsCost mutates the
// active cost once at load time, before any sampling starts).
type Graph struct {
	firstOut []Index
	outEdges []OutEdge
}

func NewGraphFromEdges(numVertices int, edges []EdgeInput) (*Graph, error) {
	for _, e := range edges {
		if int(e.tail) >= numVertices || int(e.head) >= numVertices {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
				"edge (%d,%d) references a vertex outside [0,%d)", e.tail, e.head, numVertices)
		}
		if !validCost(e.weight) || !validCost(e.dist) {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
				"edge (%d,%d) has an invalid cost (weight=%v dist=%v), costs must be finite and >= 0",
				e.tail, e.head, e.weight, e.dist)
		}
	}

	firstOut := make([]Index, numVertices+1)
	for _, e := range edges {
		firstOut[e.tail+1]++
	}
	for v := 1; v <= numVertices; v++ {
		firstOut[v] += firstOut[v-1]
	}

	outEdges := make([]OutEdge, len(edges))
	nextSlot := make([]Index, numVertices)
	for _, e := range edges {
		slot := firstOut[e.tail] + nextSlot[e.tail]
		outEdges[slot] = NewOutEdge(e.head, e.weight, e.dist)
		nextSlot[e.tail]++
	}

	return &Graph{firstOut: firstOut, outEdges: outEdges}, nil
}

// NewGraphFromCSR wraps already-compressed adjacency arrays without copying.
// It trusts the caller: loaders validate index ranges and costs before
// calling it.
func NewGraphFromCSR(firstOut []Index, outEdges []OutEdge) *Graph {
	return &Graph{firstOut: firstOut, outEdges: outEdges}
}

func validCost(c float64) bool {
	return c >= 0 && !math.IsInf(c, 1) && !math.IsNaN(c)
}

func (g *Graph) NumberOfVertices() int {
	return len(g.firstOut) - 1
}

func (g *Graph) NumberOfEdges() int {
	return len(g.outEdges)
}

func (g *Graph) GetOutDegree(u Index) int {
	return int(g.firstOut[u+1] - g.firstOut[u])
}

func (g *Graph) GetFirstOut(u Index) Index {
	return g.firstOut[u]
}

func (g *Graph) GetOutEdge(edgeId Index) *OutEdge {
	return &g.outEdges[edgeId]
}

// ForOutEdgesOf calls fn for every outgoing edge of u.
func (g *Graph) ForOutEdgesOf(u Index, fn func(outArc *OutEdge)) {
	for e := g.firstOut[u]; e < g.firstOut[u+1]; e++ {
		fn(&g.outEdges[e])
	}
}

// UseLengthAsCost copies the physical length of every edge into its active
// cost slot, so that shortest-path distances are measured in meters instead
// of travel time. Call once right after loading, never during sampling.
func (g *Graph) UseLengthAsCost() {
	for e := range g.outEdges {
		g.outEdges[e].weight = g.outEdges[e].dist
	}
}
