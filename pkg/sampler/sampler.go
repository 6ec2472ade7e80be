package sampler

import (
	"math"
	"math/rand"

	da "github.com/navbench/odgen/pkg/datastructure"
	"github.com/navbench/odgen/pkg/util"
)

// Sampler draws origin-destination pairs for benchmark workloads. The origin
// is always uniform over [0, n); the destination is picked uniformly, by
// target distance, or by Dijkstra rank.
//
// The *rand.Rand is caller-owned and consumed in a fixed order per call
// (origin first, then any distance draw), so a given seed always yields the
// same pair sequence. Nothing guards against origin == destination: uniform
// draws may collide and rank 1 is the origin itself, both by contract.
type Sampler struct {
	graph    *da.Graph
	rng      *rand.Rand
	explorer *Explorer
}

func NewSampler(graph *da.Graph, rng *rand.Rand) *Sampler {
	return NewSamplerWithExplorer(graph, rng, NewExplorer(graph))
}

// NewSamplerWithExplorer reuses a caller-owned Explorer, so parallel batch
// workers can pool the O(|V|) label arrays instead of reallocating per pair.
func NewSamplerWithExplorer(graph *da.Graph, rng *rand.Rand, explorer *Explorer) *Sampler {
	return &Sampler{
		graph:    graph,
		rng:      rng,
		explorer: explorer,
	}
}

// Random draws both endpoints uniformly and independently, no shortest-path
// work involved.
func (s *Sampler) Random() (da.OriginDestination, error) {
	n := s.graph.NumberOfVertices()
	if n == 0 {
		return da.OriginDestination{}, ErrEmptyGraph
	}

	origin := da.Index(s.rng.Intn(n))
	destination := da.Index(s.rng.Intn(n))

	return da.NewOriginDestination(origin, destination), nil
}

// ChosenByDistance expands from a random origin until the first settled
// vertex at distance >= target and returns that vertex as the destination.
// This approximates "a vertex at the target distance": the stopping vertex
// may lie past the target when no vertex sits at it exactly, but when one
// does exist the returned distance equals the target.
//
// With geometric set, the per-call target is drawn from a geometric
// distribution with mean target (success probability 1/target), so repeated
// calls spread around the expected distance. A drawn target of 0 stops at
// the origin itself.
func (s *Sampler) ChosenByDistance(target float64, geometric bool) (da.OriginDestination, error) {
	n := s.graph.NumberOfVertices()
	if n == 0 {
		return da.OriginDestination{}, ErrEmptyGraph
	}

	origin := da.Index(s.rng.Intn(n))

	actualTarget := target
	if geometric {
		actualTarget = float64(s.drawGeometric(target))
	}

	destination := da.INVALID_INDEX
	_, err := s.explorer.ExploreFrom(origin, func(v da.Index, dist float64, rank int) bool {
		if da.Ge(dist, actualTarget) {
			destination = v
			return true
		}
		return false
	})
	if err != nil {
		return da.OriginDestination{}, err
	}
	if destination == da.INVALID_INDEX {
		return da.OriginDestination{}, util.WrapErrorf(ErrExhausted, util.ErrNotFound,
			"no vertex at distance >= %v is reachable from origin %d", actualTarget, origin)
	}

	return da.NewOriginDestination(origin, destination), nil
}

// ChosenByDijkstraRank expands from a random origin until exactly rank
// vertices are settled and returns the rank-th one (the origin settles
// first, at rank 1). The result carries the requested rank for downstream
// labeling.
func (s *Sampler) ChosenByDijkstraRank(rank int) (da.OriginDestination, error) {
	if rank < 1 {
		return da.OriginDestination{}, util.WrapErrorf(nil, util.ErrBadParamInput,
			"dijkstra rank must be >= 1, got %d", rank)
	}

	n := s.graph.NumberOfVertices()
	if n == 0 {
		return da.OriginDestination{}, ErrEmptyGraph
	}

	origin := da.Index(s.rng.Intn(n))

	destination := da.INVALID_INDEX
	_, err := s.explorer.ExploreFrom(origin, func(v da.Index, dist float64, r int) bool {
		if r == rank {
			destination = v
			return true
		}
		return false
	})
	if err != nil {
		return da.OriginDestination{}, err
	}
	if destination == da.INVALID_INDEX {
		return da.OriginDestination{}, util.WrapErrorf(ErrExhausted, util.ErrNotFound,
			"dijkstra rank %d exceeds the reachable set of origin %d", rank, origin)
	}

	return da.NewOriginDestinationWithRank(origin, destination, rank), nil
}

// drawGeometric samples the number of failures before the first success of a
// Bernoulli trial with success probability 1/mean, by inverse transform.
// Support is {0, 1, 2, ...}; mean <= 1 degenerates to 0.
func (s *Sampler) drawGeometric(mean float64) int {
	u := s.rng.Float64()
	if mean <= 1 {
		return 0
	}
	p := 1.0 / mean

	// log1p keeps precision for small p; u < 1 so log1p(-u) is finite.
	return int(math.Floor(math.Log1p(-u) / math.Log1p(-p)))
}
