// SPDX-License-Identifier: MIT

// Package config loads node settings from a YAML file, an optional .env
// file and DISTMST_* environment variables, in that order of precedence
// (environment wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/distmst/loader"
	"github.com/katalvlaran/distmst/oracle"
	"github.com/katalvlaran/distmst/partition"
	"github.com/katalvlaran/distmst/store"
)

// ErrInvalidConfig indicates settings that cannot start a node.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Node roles.
const (
	RoleCoordinator = "coordinator"
	RoleWorker      = "worker"
)

// Config is the full node configuration.
type Config struct {
	Role      string    `yaml:"role"`
	Listen    string    `yaml:"listen"`
	Cluster   Cluster   `yaml:"cluster"`
	Algorithm Algorithm `yaml:"algorithm"`
	Graph     Graph     `yaml:"graph"`
	Store     Store     `yaml:"store"`
	Log       Log       `yaml:"log"`
}

// Cluster describes the ranks of a run.
type Cluster struct {
	Workers     int           `yaml:"workers"`
	Peers       []Peer        `yaml:"peers"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
	Timeout     time.Duration `yaml:"timeout"`
}

// Peer is the address of one remote rank.
type Peer struct {
	Rank    int    `yaml:"rank"`
	Address string `yaml:"address"`
}

// Algorithm selects the covering strategy and the local solver.
type Algorithm struct {
	Strategy   string `yaml:"strategy"`
	Oracle     string `yaml:"oracle"`
	CrossCheck bool   `yaml:"cross_check"`
}

// Graph locates the input.
type Graph struct {
	Path   string    `yaml:"path"`
	Format string    `yaml:"format"`
	Absent []float64 `yaml:"absent"`
}

// Store enables run persistence when Driver is set.
type Store struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

// Log configures the zap logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Defaults.
const (
	DefaultWorkers     = partition.ThirdsWorkers
	DefaultListen      = ":7070"
	DefaultDialTimeout = 5 * time.Second
	DefaultTimeout     = 60 * time.Second
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "console"
)

// Default returns a single-host coordinator configuration.
func Default() *Config {
	return &Config{
		Role:   RoleCoordinator,
		Listen: DefaultListen,
		Cluster: Cluster{
			Workers:     DefaultWorkers,
			DialTimeout: DefaultDialTimeout,
			Timeout:     DefaultTimeout,
		},
		Algorithm: Algorithm{
			Strategy: partition.StrategyThirds,
			Oracle:   oracle.NameKruskal,
		},
		Log: Log{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// empty), the .env file at envPath (skipped when empty or missing) and the
// process environment, then validates it.
func Load(path, envPath string) (*Config, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("Load: env file %s: %w", envPath, err)
		}
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("Load: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("Load: parse %s: %v: %w", path, err, ErrInvalidConfig)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv overrides fields from DISTMST_* variables.
func (c *Config) applyEnv() error {
	c.Role = getEnv("DISTMST_ROLE", c.Role)
	c.Listen = getEnv("DISTMST_LISTEN", c.Listen)
	c.Cluster.Workers = getEnvInt("DISTMST_WORKERS", c.Cluster.Workers)
	c.Cluster.DialTimeout = getEnvDuration("DISTMST_DIAL_TIMEOUT", c.Cluster.DialTimeout)
	c.Cluster.Timeout = getEnvDuration("DISTMST_TIMEOUT", c.Cluster.Timeout)
	c.Algorithm.Strategy = getEnv("DISTMST_STRATEGY", c.Algorithm.Strategy)
	c.Algorithm.Oracle = getEnv("DISTMST_ORACLE", c.Algorithm.Oracle)
	c.Algorithm.CrossCheck = getEnvBool("DISTMST_CROSS_CHECK", c.Algorithm.CrossCheck)
	c.Graph.Path = getEnv("DISTMST_GRAPH", c.Graph.Path)
	c.Graph.Format = getEnv("DISTMST_GRAPH_FORMAT", c.Graph.Format)
	c.Store.Driver = getEnv("DISTMST_STORE_DRIVER", c.Store.Driver)
	c.Store.Path = getEnv("DISTMST_STORE_PATH", c.Store.Path)
	c.Log.Level = getEnv("DISTMST_LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("DISTMST_LOG_FORMAT", c.Log.Format)

	if raw := os.Getenv("DISTMST_PEERS"); raw != "" {
		peers, err := ParsePeers(raw)
		if err != nil {
			return err
		}
		c.Cluster.Peers = peers
	}
	if raw, ok := os.LookupEnv("DISTMST_GRAPH_ABSENT"); ok {
		absent, err := ParseAbsent(raw)
		if err != nil {
			return err
		}
		c.Graph.Absent = absent
	}

	return nil
}

// ParsePeers parses "1=host:port,2=host:port".
func ParsePeers(raw string) ([]Peer, error) {
	var peers []Peer
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		rank, addr, ok := strings.Cut(item, "=")
		r, err := strconv.Atoi(strings.TrimSpace(rank))
		if !ok || err != nil || strings.TrimSpace(addr) == "" {
			return nil, fmt.Errorf("ParsePeers: %q: %w", item, ErrInvalidConfig)
		}
		peers = append(peers, Peer{Rank: r, Address: strings.TrimSpace(addr)})
	}

	return peers, nil
}

// ParseAbsent parses a comma-separated list of weights that mark absent
// pairs, e.g. "0,-1". An empty list clears the set.
func ParseAbsent(raw string) ([]float64, error) {
	out := []float64{}
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		w, err := strconv.ParseFloat(item, 64)
		if err != nil {
			return nil, fmt.Errorf("ParseAbsent: %q: %w", item, ErrInvalidConfig)
		}
		out = append(out, w)
	}

	return out, nil
}

// PeerMap returns peer addresses keyed by rank.
func (c *Config) PeerMap() map[int]string {
	out := make(map[int]string, len(c.Cluster.Peers))
	for _, p := range c.Cluster.Peers {
		out[p.Rank] = p.Address
	}

	return out
}

// LoaderOptions returns the loader options implied by the graph section.
func (c *Config) LoaderOptions() []loader.Option {
	if len(c.Graph.Absent) == 0 {
		return nil
	}

	return []loader.Option{loader.WithAbsent(c.Graph.Absent...)}
}

// Validate checks cross-field consistency. A coordinator with W > 1 needs
// exactly one peer per remote rank 1..W−1 unless it runs in-process.
func (c *Config) Validate() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("Validate: "+format+": %w", append(args, ErrInvalidConfig)...)
	}

	switch c.Role {
	case RoleCoordinator, RoleWorker:
	default:
		return fail("role %q", c.Role)
	}
	if c.Cluster.Workers < 1 {
		return fail("workers %d", c.Cluster.Workers)
	}
	if c.Cluster.DialTimeout <= 0 || c.Cluster.Timeout <= 0 {
		return fail("timeouts must be positive")
	}
	if _, err := partition.ByName(c.Algorithm.Strategy); err != nil {
		return fail("strategy %q", c.Algorithm.Strategy)
	}
	if _, err := oracle.ByName(c.Algorithm.Oracle); err != nil {
		return fail("oracle %q", c.Algorithm.Oracle)
	}
	switch c.Graph.Format {
	case "", loader.FormatMatrix, loader.FormatEdgeList:
	default:
		return fail("graph format %q", c.Graph.Format)
	}
	switch c.Store.Driver {
	case "":
	case store.DriverBolt, store.DriverBadger:
		if c.Store.Path == "" {
			return fail("store %s needs a path", c.Store.Driver)
		}
	default:
		return fail("store driver %q", c.Store.Driver)
	}

	if c.Role == RoleWorker {
		if c.Listen == "" {
			return fail("worker needs a listen address")
		}
		return nil
	}

	seen := make(map[int]bool, len(c.Cluster.Peers))
	for _, p := range c.Cluster.Peers {
		if p.Rank < 1 || p.Rank >= c.Cluster.Workers {
			return fail("peer rank %d outside [1,%d)", p.Rank, c.Cluster.Workers)
		}
		if seen[p.Rank] {
			return fail("peer rank %d repeated", p.Rank)
		}
		seen[p.Rank] = true
	}
	if len(seen) > 0 && len(seen) != c.Cluster.Workers-1 {
		return fail("%d peers for %d workers", len(seen), c.Cluster.Workers)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
