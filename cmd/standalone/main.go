// SPDX-License-Identifier: MIT

// Command standalone computes a distributed MST inside one process: every
// rank runs as a goroutine behind the in-process transport.
//
//	standalone -graph loader/testdata/six_zeros.txt -absent 0
//	standalone -random 300 -density 0.05 -seed 7 -workers 6 -strategy blockpairs
//	standalone -store-driver bolt -store-path runs.db -list
//
// The tree is printed on stdout as u0-v0/u1-v1/...; failures exit with
// status 1 and print nothing there.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/katalvlaran/distmst/builder"
	"github.com/katalvlaran/distmst/cluster"
	"github.com/katalvlaran/distmst/config"
	"github.com/katalvlaran/distmst/core"
	"github.com/katalvlaran/distmst/loader"
	"github.com/katalvlaran/distmst/logging"
	"github.com/katalvlaran/distmst/oracle"
	"github.com/katalvlaran/distmst/partition"
	"github.com/katalvlaran/distmst/store"
)

type flags struct {
	graph      string
	format     string
	absent     string
	random     int
	density    float64
	seed       int64
	workers    int
	strategy   string
	oracle     string
	crossCheck bool
	driver     string
	storePath  string
	list       bool
	logLevel   string
	logFormat  string
}

func main() {
	var f flags
	flag.StringVar(&f.graph, "graph", "", "graph file (compact matrix or .csv edge list)")
	flag.StringVar(&f.format, "format", "", "graph format: matrix or edgelist (default: by extension)")
	flag.StringVar(&f.absent, "absent", "", "comma-separated weights meaning no edge")
	flag.IntVar(&f.random, "random", 0, "generate a random connected graph with this many vertices")
	flag.Float64Var(&f.density, "density", 0.1, "extra edge probability for -random")
	flag.Int64Var(&f.seed, "seed", 1, "seed for -random")
	flag.IntVar(&f.workers, "workers", config.DefaultWorkers, "number of ranks, coordinator included")
	flag.StringVar(&f.strategy, "strategy", partition.StrategyThirds, "covering strategy: thirds or blockpairs")
	flag.StringVar(&f.oracle, "oracle", oracle.NameKruskal, "local solver: kruskal, prim or boruvka")
	flag.BoolVar(&f.crossCheck, "cross-check", false, "compare with a full-graph reference MST")
	flag.StringVar(&f.driver, "store-driver", "", "persist runs: bolt or badger")
	flag.StringVar(&f.storePath, "store-path", "", "store file or directory")
	flag.BoolVar(&f.list, "list", false, "list stored runs and exit")
	flag.StringVar(&f.logLevel, "log-level", config.DefaultLogLevel, "log level")
	flag.StringVar(&f.logFormat, "log-format", config.DefaultLogFormat, "log format: console or json")
	flag.Parse()

	logger, err := logging.New(f.logLevel, f.logFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "standalone: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	out, err := run(ctx, f, logger)
	stop()
	if err != nil {
		logger.Error("run failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	fmt.Print(out)
	_ = logger.Sync()
}

// run returns everything destined for stdout, so a failure prints nothing.
func run(ctx context.Context, f flags, logger *zap.Logger) (string, error) {
	var s store.Store
	if f.driver != "" {
		var err error
		if s, err = store.Open(f.driver, f.storePath); err != nil {
			return "", err
		}
		defer s.Close()
	}
	if f.list {
		if s == nil {
			return "", errors.New("-list needs -store-driver")
		}
		return listRuns(ctx, s)
	}

	g, err := graph(f)
	if err != nil {
		return "", err
	}
	planner, err := partition.ByName(f.strategy)
	if err != nil {
		return "", err
	}
	o, err := oracle.ByName(f.oracle)
	if err != nil {
		return "", err
	}

	opts := []cluster.Option{
		cluster.WithPlanner(planner),
		cluster.WithOracle(o),
		cluster.WithLogger(logger),
		cluster.WithCrossCheck(f.crossCheck),
	}
	if s != nil {
		opts = append(opts, cluster.WithStore(s))
	}
	coord, err := cluster.NewCoordinator(f.workers, opts...)
	if err != nil {
		return "", err
	}
	defer coord.Close()

	report, err := coord.Run(ctx, g)
	if err != nil {
		return "", err
	}

	return report.String() + "\n", nil
}

func graph(f flags) (*core.Graph, error) {
	if f.random > 0 {
		return builder.BuildGraph(f.random,
			[]builder.BuilderOption{builder.WithSeed(f.seed), builder.WithWeightFn(builder.IntegerWeightFn(1, 100))},
			builder.RandomConnected(f.density))
	}
	if f.graph == "" {
		return nil, errors.New("one of -graph or -random is required")
	}
	absent, err := config.ParseAbsent(f.absent)
	if err != nil {
		return nil, fmt.Errorf("-absent: %w", err)
	}

	return loader.Load(f.graph, f.format, loader.WithAbsent(absent...))
}

func listRuns(ctx context.Context, s store.Store) (string, error) {
	runs, err := s.List(ctx)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, r := range runs {
		fmt.Fprintf(&b, "%s\t%s\tV=%d\tW=%d\t%s/%s\t%g\t%s\n",
			r.ID, r.CreatedAt.Format("2006-01-02T15:04:05Z"), r.Vertices, r.Workers,
			r.Strategy, r.Oracle, r.TotalWeight, r.MST)
	}

	return b.String(), nil
}
