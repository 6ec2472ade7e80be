package datastructure

import (
	"math"
	"testing"
)

func TestNewGraphFromEdges(t *testing.T) {
	edges := []EdgeInput{
		NewEdgeInput(0, 1, 2.0, 100),
		NewEdgeInput(0, 2, 3.0, 200),
		NewEdgeInput(2, 0, 1.0, 50),
		NewEdgeInput(1, 2, 4.0, 300),
	}

	g, err := NewGraphFromEdges(3, edges)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if g.NumberOfVertices() != 3 || g.NumberOfEdges() != 4 {
		t.Fatalf("got %d vertices %d edges, want 3 and 4", g.NumberOfVertices(), g.NumberOfEdges())
	}

	if g.GetOutDegree(0) != 2 || g.GetOutDegree(1) != 1 || g.GetOutDegree(2) != 1 {
		t.Fatalf("wrong out degrees: %d %d %d", g.GetOutDegree(0), g.GetOutDegree(1), g.GetOutDegree(2))
	}

	heads := make(map[Index]float64)
	g.ForOutEdgesOf(0, func(outArc *OutEdge) {
		heads[outArc.GetHead()] = outArc.GetWeight()
	})
	if heads[1] != 2.0 || heads[2] != 3.0 {
		t.Fatalf("vertex 0 adjacency wrong: %v", heads)
	}
}

func TestNewGraphFromEdgesRejectsBadInput(t *testing.T) {
	testCases := []struct {
		name  string
		n     int
		edges []EdgeInput
	}{
		{
			name:  "head out of range",
			n:     2,
			edges: []EdgeInput{NewEdgeInput(0, 2, 1, 1)},
		},
		{
			name:  "negative weight",
			n:     2,
			edges: []EdgeInput{NewEdgeInput(0, 1, -1, 1)},
		},
		{
			name:  "negative length",
			n:     2,
			edges: []EdgeInput{NewEdgeInput(0, 1, 1, -1)},
		},
		{
			name:  "nan cost",
			n:     2,
			edges: []EdgeInput{NewEdgeInput(0, 1, math.NaN(), 1)},
		},
		{
			name:  "infinite cost",
			n:     2,
			edges: []EdgeInput{NewEdgeInput(0, 1, math.Inf(1), 1)},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewGraphFromEdges(tt.n, tt.edges); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestUseLengthAsCost(t *testing.T) {
	g, err := NewGraphFromEdges(2, []EdgeInput{NewEdgeInput(0, 1, 7.5, 120)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	g.UseLengthAsCost()

	e := g.GetOutEdge(0)
	if e.GetWeight() != 120 || e.GetDist() != 120 {
		t.Fatalf("active cost not switched to length: weight=%v dist=%v", e.GetWeight(), e.GetDist())
	}
}

func TestEmptyGraph(t *testing.T) {
	g, err := NewGraphFromEdges(0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.NumberOfVertices() != 0 || g.NumberOfEdges() != 0 {
		t.Fatal("empty graph reports wrong sizes")
	}
}
