package datastructure

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/dsnet/compress/bzip2"
	"github.com/navbench/odgen/pkg/util"
)

// Compiled graph format: bzip2-compressed, line-oriented.
// Line 1: "n m". Then n lines with firstOut[v] (firstOut[n] == m is implied),
// then m lines with "head weight dist".

func (g *Graph) WriteGraph(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	defer bz.Close()

	w := bufio.NewWriter(bz)

	fmt.Fprintf(w, "%d %d\n", g.NumberOfVertices(), g.NumberOfEdges())

	for v := 0; v < g.NumberOfVertices(); v++ {
		fmt.Fprintf(w, "%d\n", g.firstOut[v])
	}

	for _, e := range g.outEdges {
		weightF := strconv.FormatFloat(e.weight, 'f', -1, 64)
		distF := strconv.FormatFloat(e.dist, 'f', -1, 64)

		fmt.Fprintf(w, "%d %s %s\n", e.head, weightF, distF)
	}

	return w.Flush()
}

func ReadGraph(filename string) (*Graph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %s, err: %w", filename, err)
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, &bzip2.ReaderConfig{})
	if err != nil {
		return nil, err
	}
	defer bz.Close()

	br := bufio.NewReader(bz)

	line, err := util.ReadLine(br)
	if err != nil {
		return nil, err
	}
	ff := util.Fields(line)
	if len(ff) != 2 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
			"malformed graph header %q in %s", line, filename)
	}

	n, err := strconv.Atoi(ff[0])
	if err != nil {
		return nil, err
	}
	m, err := strconv.Atoi(ff[1])
	if err != nil {
		return nil, err
	}
	if n < 0 || m < 0 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
			"graph header of %s has negative counts (n=%d m=%d)", filename, n, m)
	}

	firstOut := make([]Index, n+1)
	for v := 0; v < n; v++ {
		line, err = util.ReadLine(br)
		if err != nil {
			return nil, err
		}
		firstOut[v], err = ParseIndex(line)
		if err != nil {
			return nil, err
		}
		if firstOut[v] > Index(m) {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
				"firstOut[%d] = %d points past the %d edges of %s", v, firstOut[v], m, filename)
		}
		if v == 0 && firstOut[0] != 0 {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
				"firstOut[0] = %d must be 0 in %s", firstOut[0], filename)
		}
		if v > 0 && firstOut[v] < firstOut[v-1] {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
				"firstOut is not non-decreasing at vertex %d in %s", v, filename)
		}
	}
	firstOut[n] = Index(m)

	outEdges := make([]OutEdge, m)
	for e := 0; e < m; e++ {
		line, err = util.ReadLine(br)
		if err != nil {
			return nil, err
		}
		ff = util.Fields(line)
		if len(ff) != 3 {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
				"malformed edge record %q in %s", line, filename)
		}

		head, err := ParseIndex(ff[0])
		if err != nil {
			return nil, err
		}
		weight, err := util.StringToFloat64(ff[1])
		if err != nil {
			return nil, err
		}
		dist, err := util.StringToFloat64(ff[2])
		if err != nil {
			return nil, err
		}

		if int(head) >= n {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
				"edge %d of %s points at vertex %d outside [0,%d)", e, filename, head, n)
		}
		if !validCost(weight) || !validCost(dist) {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
				"edge %d of %s has an invalid cost (weight=%v dist=%v), costs must be finite and >= 0",
				e, filename, weight, dist)
		}

		outEdges[e] = NewOutEdge(head, weight, dist)
	}

	return NewGraphFromCSR(firstOut, outEdges), nil
}
