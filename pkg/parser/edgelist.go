package parser

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	da "github.com/navbench/odgen/pkg/datastructure"
	ut "github.com/navbench/odgen/pkg/util"
	"go.uber.org/zap"
)

// EdgeListParser reads a plain-text weighted graph:
//
//	c <comment>            comment lines start with 'c' or '#'
//	<n> <m>                vertex and edge count
//	<tail> <head> <travel_time> <length>   m edge lines
//
// Indices are 0-based; both costs must be finite and non-negative.
type EdgeListParser struct{}

func NewEdgeListParser() *EdgeListParser {
	return &EdgeListParser{}
}

func (p *EdgeListParser) Parse(filename string, logger *zap.Logger) (*da.Graph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %s, err: %w", filename, err)
	}
	defer f.Close()

	br := bufio.NewReader(f)

	line, err := p.nextDataLine(br)
	if err != nil {
		return nil, ut.WrapErrorf(err, ut.ErrBadParamInput, "%s: missing header line", filename)
	}

	ff := ut.Fields(line)
	if len(ff) != 2 {
		return nil, ut.WrapErrorf(nil, ut.ErrBadParamInput,
			"%s: header must be '<n> <m>', got %q", filename, line)
	}

	n, err := strconv.Atoi(ff[0])
	if err != nil {
		return nil, ut.WrapErrorf(err, ut.ErrBadParamInput, "%s: bad vertex count %q", filename, ff[0])
	}
	m, err := strconv.Atoi(ff[1])
	if err != nil {
		return nil, ut.WrapErrorf(err, ut.ErrBadParamInput, "%s: bad edge count %q", filename, ff[1])
	}
	if n < 0 || m < 0 {
		return nil, ut.WrapErrorf(nil, ut.ErrBadParamInput,
			"%s: vertex and edge counts must be non-negative", filename)
	}

	edges := make([]da.EdgeInput, 0, m)
	for i := 0; i < m; i++ {
		line, err = p.nextDataLine(br)
		if err != nil {
			return nil, ut.WrapErrorf(err, ut.ErrBadParamInput,
				"%s: expected %d edge lines, got %d", filename, m, i)
		}

		ff = ut.Fields(line)
		if len(ff) != 4 {
			return nil, ut.WrapErrorf(nil, ut.ErrBadParamInput,
				"%s: edge line %d must be '<tail> <head> <travel_time> <length>', got %q", filename, i, line)
		}

		tail, err := da.ParseIndex(ff[0])
		if err != nil {
			return nil, ut.WrapErrorf(err, ut.ErrBadParamInput, "%s: bad tail on edge line %d", filename, i)
		}
		head, err := da.ParseIndex(ff[1])
		if err != nil {
			return nil, ut.WrapErrorf(err, ut.ErrBadParamInput, "%s: bad head on edge line %d", filename, i)
		}
		weight, err := ut.StringToFloat64(ff[2])
		if err != nil {
			return nil, ut.WrapErrorf(err, ut.ErrBadParamInput, "%s: bad travel time on edge line %d", filename, i)
		}
		dist, err := ut.StringToFloat64(ff[3])
		if err != nil {
			return nil, ut.WrapErrorf(err, ut.ErrBadParamInput, "%s: bad length on edge line %d", filename, i)
		}

		edges = append(edges, da.NewEdgeInput(tail, head, weight, dist))
	}

	g, err := da.NewGraphFromEdges(n, edges)
	if err != nil {
		return nil, err
	}

	logger.Info("parsed edge list",
		zap.String("file", filename),
		zap.Int("vertices", g.NumberOfVertices()),
		zap.Int("edges", g.NumberOfEdges()))

	return g, nil
}

func (p *EdgeListParser) nextDataLine(br *bufio.Reader) (string, error) {
	for {
		line, err := ut.ReadLine(br)
		if err != nil {
			return "", err
		}
		if len(line) == 0 || line[0] == 'c' || line[0] == '#' {
			continue
		}
		return line, nil
	}
}
