package datastructure

import (
	"math"
	"strconv"
)

// Index identifies a vertex or an edge slot in the graph. Vertex ids are
// dense in [0, NumberOfVertices).
type Index uint32

const INVALID_INDEX Index = math.MaxUint32

func ParseIndex(s string) (Index, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return Index(v), nil
}
