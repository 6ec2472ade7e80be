package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/navbench/odgen/pkg"
	"github.com/navbench/odgen/pkg/batch"
	da "github.com/navbench/odgen/pkg/datastructure"
	log "github.com/navbench/odgen/pkg/logger"
	"github.com/navbench/odgen/pkg/parser"
	"github.com/navbench/odgen/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	numPairs   = flag.Int("n", 0, "the number of OD-pairs to be generated (per Dijkstra rank)")
	seed       = flag.Int64("s", pkg.DEFAULT_SEED, "the seed for the random number generator")
	useLen     = flag.Bool("len", false, "use physical length as cost function (default: travel time)")
	ranks      = flag.String("r", "", "a comma-separated list of Dijkstra rank exponents k (rank = 2^k)")
	distance   = flag.Float64("d", 0, "(expected) distance between a pair's origin and destination")
	geo        = flag.Bool("geo", false, "geometrically distributed distances with expected value -d")
	input      = flag.String("i", "", "the input graph (text edge list, or compiled .graph)")
	output     = flag.String("o", "", "the output file (\".csv\" is appended)")
	workers    = flag.Int("workers", 1, "generate pairs in parallel with split random streams")
	maxRetries = flag.Int("max_retries", pkg.DEFAULT_MAX_RETRIES, "fresh-origin retries per pair on exhaustion (-1 disables retries)")
	configDir  = flag.String("config", "", "directory holding an optional config.yaml with generator defaults")
)

func printUsage() {
	fmt.Fprint(os.Stderr,
		"Usage: odgen -n <num> [-s <seed>] -i <file> -o <file>\n"+
			"       odgen -n <num> [-s <seed>] -i <file> -o <file> -r <ranks>\n"+
			"       odgen -n <num> [-s <seed>] -i <file> -o <file> -d <dist> [-geo]\n"+
			"This program generates OD-pairs, with the origin chosen uniformly at random.\n"+
			"The destination is also picked uniformly at random, or chosen by distance or\n"+
			"Dijkstra rank. Dijkstra ranks are specified in terms of powers of two.\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = printUsage
	flag.Parse()

	logger, err := log.New()
	if err != nil {
		panic(err)
	}

	if *configDir != "" {
		if err := util.ReadConfig(*configDir); err != nil {
			exitError(err)
		}
		applyConfigDefaults()
	}

	if *numPairs < 1 {
		exitError(fmt.Errorf("the number of OD-pairs must be >= 1 -- '-n %d'", *numPairs))
	}
	if *input == "" {
		exitError(fmt.Errorf("no input graph given -- '-i'"))
	}
	if *output == "" {
		exitError(fmt.Errorf("no output file given -- '-o'"))
	}

	rankExponents, err := parseRanks(*ranks)
	if err != nil {
		exitError(err)
	}

	costMode := pkg.COST_TRAVEL_TIME
	if *useLen {
		costMode = pkg.COST_LENGTH
	}

	cfg := batch.Config{
		GraphPath:  *input,
		Count:      *numPairs,
		Seed:       *seed,
		CostMode:   costMode,
		Ranks:      rankExponents,
		Distance:   *distance,
		Geometric:  *geo,
		MaxRetries: *maxRetries,
		Workers:    *workers,
	}
	// catch configuration errors before the output file exists
	if err := cfg.Validate(); err != nil {
		exitError(err)
	}

	logger.Info("reading the input graph", zap.String("file", *input))
	g, err := loadGraph(*input, logger)
	if err != nil {
		exitError(err)
	}

	if *useLen {
		g.UseLengthAsCost()
	}

	outPath := *output + ".csv"
	f, err := os.Create(outPath)
	if err != nil {
		exitError(fmt.Errorf("file cannot be opened -- '%s'", outPath))
	}

	driver := batch.NewDriver(g, cfg, logger)
	if err := driver.Run(f); err != nil {
		f.Close()
		os.Remove(outPath)
		exitError(err)
	}
	if err := f.Close(); err != nil {
		exitError(err)
	}

	logger.Info("done", zap.String("output", outPath))
}

func loadGraph(path string, logger *zap.Logger) (*da.Graph, error) {
	if strings.HasSuffix(path, ".graph") {
		return da.ReadGraph(path)
	}
	return parser.NewEdgeListParser().Parse(path, logger)
}

func parseRanks(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	exponents := make([]int, 0, len(parts))
	for _, part := range parts {
		k, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("malformed Dijkstra rank -- '-r %s'", s)
		}
		exponents = append(exponents, k)
	}
	return exponents, nil
}

// applyConfigDefaults fills flags the user did not set from the viper config.
func applyConfigDefaults() {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["i"] && viper.IsSet("generator.graph") {
		*input = viper.GetString("generator.graph")
	}
	if !set["o"] && viper.IsSet("generator.output") {
		*output = viper.GetString("generator.output")
	}
	if !set["n"] && viper.IsSet("generator.count") {
		*numPairs = viper.GetInt("generator.count")
	}
	if !set["s"] && viper.IsSet("generator.seed") {
		*seed = viper.GetInt64("generator.seed")
	}
	if !set["len"] && viper.IsSet("generator.cost_mode") {
		*useLen = pkg.GetCostType(viper.GetString("generator.cost_mode")) == pkg.COST_LENGTH
	}
}

func exitError(err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", os.Args[0], err)
	fmt.Fprintf(os.Stderr, "Try '%s -help' for more information.\n", os.Args[0])
	os.Exit(1)
}
