// SPDX-License-Identifier: MIT

// Command node runs one member of a distributed MST cluster.
//
// A worker node listens for subgraph messages and answers them until it is
// interrupted. A coordinator node loads the graph, drives one run over the
// configured peers, prints the tree on stdout and exits:
//
//	node -config worker.yaml
//	node -config coordinator.yaml
//
// Any failure exits with status 1 and prints no tree.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/katalvlaran/distmst/cluster"
	"github.com/katalvlaran/distmst/config"
	"github.com/katalvlaran/distmst/loader"
	"github.com/katalvlaran/distmst/logging"
	"github.com/katalvlaran/distmst/oracle"
	"github.com/katalvlaran/distmst/partition"
	"github.com/katalvlaran/distmst/store"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (YAML)")
	envPath := flag.String("env", ".env", "optional .env file")
	flag.Parse()

	cfg, err := config.Load(*configPath, *envPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "node: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "node: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Role == config.RoleWorker {
		err = runWorker(ctx, cfg, logger)
	} else {
		err = runCoordinator(ctx, cfg, logger)
	}
	if err != nil {
		logger.Error("node failed", zap.String("role", cfg.Role), zap.Error(err))
		_ = logger.Sync()
		stop()
		os.Exit(1)
	}
}

func runWorker(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	o, err := oracle.ByName(cfg.Algorithm.Oracle)
	if err != nil {
		return err
	}
	lis, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Listen, err)
	}

	return cluster.Serve(ctx, lis, cluster.NewWorker(o, logger.Named("worker")))
}

func runCoordinator(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if cfg.Graph.Path == "" {
		return errors.New("coordinator needs graph.path")
	}
	g, err := loader.Load(cfg.Graph.Path, cfg.Graph.Format, cfg.LoaderOptions()...)
	if err != nil {
		return err
	}
	planner, err := partition.ByName(cfg.Algorithm.Strategy)
	if err != nil {
		return err
	}
	o, err := oracle.ByName(cfg.Algorithm.Oracle)
	if err != nil {
		return err
	}

	opts := []cluster.Option{
		cluster.WithPlanner(planner),
		cluster.WithOracle(o),
		cluster.WithLogger(logger.Named("coordinator")),
		cluster.WithCrossCheck(cfg.Algorithm.CrossCheck),
	}
	if peers := cfg.PeerMap(); len(peers) > 0 {
		opts = append(opts, cluster.WithTransport(cluster.NewRPCTransport(peers,
			cluster.WithDialTimeout(cfg.Cluster.DialTimeout),
			cluster.WithRPCLogger(logger.Named("rpc")),
		)))
	}
	if cfg.Store.Driver != "" {
		s, err := store.Open(cfg.Store.Driver, cfg.Store.Path)
		if err != nil {
			return err
		}
		defer s.Close()
		opts = append(opts, cluster.WithStore(s))
	}

	coord, err := cluster.NewCoordinator(cfg.Cluster.Workers, opts...)
	if err != nil {
		return err
	}
	defer coord.Close()

	ctx, cancel := context.WithTimeout(ctx, cfg.Cluster.Timeout)
	defer cancel()
	report, err := coord.Run(ctx, g)
	if err != nil {
		return err
	}
	fmt.Println(report.String())

	return nil
}
