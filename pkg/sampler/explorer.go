package sampler

import (
	"errors"

	"github.com/navbench/odgen/pkg"
	da "github.com/navbench/odgen/pkg/datastructure"
)

var (
	ErrNegativeWeight = errors.New("negative edge weight")
	ErrEmptyGraph     = errors.New("graph has no vertices")

	// ErrExhausted: the frontier ran dry before the requested rank or
	// distance was reached. Retry policy is the caller's business.
	ErrExhausted = errors.New("destination not found, frontier exhausted")
)

// VisitFunc sees every settled vertex in non-decreasing distance order.
// rank is 1-based (rank 1 = the source at distance 0). Returning true stops
// the exploration.
type VisitFunc func(v da.Index, dist float64, rank int) bool

// Explorer runs single-source shortest-path expansions and reports vertices
// in the order they are settled. Distance ties among simultaneously queued
// vertices break by vertex index; a zero-weight edge can still reveal an
// equal-distance vertex late. Either way the settle order is deterministic,
// so reruns reproduce it.
//
// Labels are preallocated once and reset per call via the touched list, so
// the cost of a bounded query stays proportional to the searched region.
// An Explorer holds per-search state and must not be shared across goroutines.
type Explorer struct {
	graph *da.Graph

	dist      []float64
	heapNodes []*da.PriorityQueueNode[da.Index]
	touched   []da.Index

	pq *da.MinHeap[da.Index]
}

func NewExplorer(graph *da.Graph) *Explorer {
	n := graph.NumberOfVertices()

	dist := make([]float64, n)
	for v := 0; v < n; v++ {
		dist[v] = pkg.INF_WEIGHT
	}

	pq := da.NewFourAryHeap[da.Index]()
	pq.Preallocate(preallocSize(n))

	return &Explorer{
		graph:     graph,
		dist:      dist,
		heapNodes: make([]*da.PriorityQueueNode[da.Index], n),
		touched:   make([]da.Index, 0, preallocSize(n)),
		pq:        pq,
	}
}

func preallocSize(n int) int {
	if n < 1024 {
		return n
	}
	return 1024
}

// ExploreFrom settles vertices outward from source until visit returns true
// or the frontier is exhausted, and returns the number of settled vertices.
// A negative edge weight aborts the search with ErrNegativeWeight: it breaks
// the non-decreasing settle order the whole contract rests on.
func (e *Explorer) ExploreFrom(source da.Index, visit VisitFunc) (int, error) {
	if e.graph.NumberOfVertices() == 0 {
		return 0, ErrEmptyGraph
	}

	e.reset()

	e.dist[source] = 0
	sNode := da.NewPriorityQueueNode(0, source)
	e.heapNodes[source] = sNode
	e.touched = append(e.touched, source)
	e.pq.Insert(sNode)

	numSettled := 0
	for !e.pq.IsEmpty() {
		uNode, _ := e.pq.ExtractMin()
		u := uNode.GetItem()

		numSettled++
		if visit != nil && visit(u, e.dist[u], numSettled) {
			return numSettled, nil
		}

		var relaxErr error
		e.graph.ForOutEdgesOf(u, func(outArc *da.OutEdge) {
			if relaxErr != nil {
				return
			}

			edgeWeight := outArc.GetWeight()
			if edgeWeight < 0 {
				relaxErr = ErrNegativeWeight
				return
			}

			v := outArc.GetHead()
			newDist := e.dist[u] + edgeWeight
			if da.Ge(newDist, pkg.INF_WEIGHT) {
				return
			}

			vAlreadyLabelled := da.Lt(e.dist[v], pkg.INF_WEIGHT)
			if vAlreadyLabelled && da.Ge(newDist, e.dist[v]) {
				// newDist is not better, do nothing
				return
			}

			e.dist[v] = newDist

			if vAlreadyLabelled {
				// key already in the priority queue, decrease it
				e.pq.DecreaseKey(e.heapNodes[v], newDist)
			} else {
				vNode := da.NewPriorityQueueNode(newDist, v)
				e.heapNodes[v] = vNode
				e.touched = append(e.touched, v)
				e.pq.Insert(vNode)
			}
		})
		if relaxErr != nil {
			return numSettled, relaxErr
		}
	}

	return numSettled, nil
}

func (e *Explorer) reset() {
	for _, v := range e.touched {
		e.dist[v] = pkg.INF_WEIGHT
		e.heapNodes[v] = nil
	}
	e.touched = e.touched[:0]
	e.pq.Clear()
}
