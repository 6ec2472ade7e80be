package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	log "github.com/navbench/odgen/pkg/logger"
	"github.com/navbench/odgen/pkg/parser"
	"go.uber.org/zap"
)

var (
	input  = flag.String("i", "", "the input graph as a text edge list")
	output = flag.String("o", "", "the output file (\".graph\" is appended)")
)

// compilegraph converts a text edge list into the bzip2-compressed binary
// format that odgen loads without reparsing.
func main() {
	flag.Parse()

	logger, err := log.New()
	if err != nil {
		panic(err)
	}

	if *input == "" || *output == "" {
		fmt.Fprintf(os.Stderr, "%s: both -i and -o are required\n", os.Args[0])
		os.Exit(1)
	}

	start := time.Now()
	g, err := parser.NewEdgeListParser().Parse(*input, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", os.Args[0], err)
		os.Exit(1)
	}

	outPath := *output + ".graph"
	if err := g.WriteGraph(outPath); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", os.Args[0], err)
		os.Exit(1)
	}

	logger.Info("compiled graph",
		zap.String("output", outPath),
		zap.Int("vertices", g.NumberOfVertices()),
		zap.Int("edges", g.NumberOfEdges()),
		zap.Duration("took", time.Since(start)))
}
