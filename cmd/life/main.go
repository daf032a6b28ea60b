package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"sparse-life/pkg/core"
	"sparse-life/pkg/sims/life"
)

type config struct {
	Pattern string
	File    string
	Soup    int
	Density float64
	Seed    int64
	Steps   int
	Max     int
	Dense   bool
	List    bool
	Board   options
}

// options collects repeated -config key=value pairs for life.FromMap.
type options map[string]string

func (o options) String() string {
	pairs := make([]string, 0, len(o))
	for k, v := range o {
		pairs = append(pairs, k+"="+v)
	}
	return strings.Join(pairs, ",")
}

func (o options) Set(s string) error {
	k, v, ok := strings.Cut(s, "=")
	if !ok || k == "" {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	o[k] = v
	return nil
}

func newConfig() *config {
	return &config{Pattern: "glider", Density: 0.35, Seed: 42, Steps: 1, Max: life.DefaultMaxIterations, Board: options{}}
}

// boardConfig resolves the engine config. -config max_iterations overrides -max.
func (c *config) boardConfig() life.Config {
	opts := map[string]string{"max_iterations": strconv.Itoa(c.Max)}
	for k, v := range c.Board {
		opts[k] = v
	}
	return life.FromMap(opts)
}

func (c *config) bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "registered pattern to start from")
	fs.StringVar(&c.File, "file", c.File, "JSON board state to start from (overrides -pattern)")
	fs.IntVar(&c.Soup, "soup", c.Soup, "start from a random NxN soup instead of a pattern")
	fs.Float64Var(&c.Density, "density", c.Density, "live cell density for -soup")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for -soup")
	fs.IntVar(&c.Steps, "steps", c.Steps, "iterations to run")
	fs.IntVar(&c.Max, "max", c.Max, "per-board iteration ceiling")
	fs.BoolVar(&c.Dense, "dense", c.Dense, "print the dense view after running")
	fs.BoolVar(&c.List, "list", c.List, "list registered patterns and exit")
	fs.Var(c.Board, "config", "board setting as key=value (max_iterations, finished); repeatable")
}

func main() {
	cfg := newConfig()
	cfg.bind(flag.CommandLine)
	flag.Parse()

	if cfg.List {
		for _, p := range core.Patterns() {
			fmt.Printf("%-12s %s\n", p.Name, p.Description)
		}
		return
	}

	board, err := load(cfg)
	if err != nil {
		log.Fatalf("life: %v", err)
	}

	completed, err := board.RunIterations(cfg.Steps)
	if err != nil {
		log.Fatalf("life: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	if err := enc.Encode(board); err != nil {
		log.Fatalf("life: %v", err)
	}
	fmt.Fprintf(os.Stderr, "generations=%d population=%d finished=%v completed=%v\n",
		board.Generation(), board.Population(), board.IsFinished(), completed)
	if cfg.Dense {
		grid, err := board.Dense()
		if err != nil {
			log.Fatalf("life: %v", err)
		}
		fmt.Printf("origin %v\n%s", grid.Origin, grid)
	}
}

func load(cfg *config) (*life.Board, error) {
	bc := cfg.boardConfig()
	switch {
	case cfg.File != "":
		data, err := os.ReadFile(cfg.File)
		if err != nil {
			return nil, err
		}
		return life.Parse(data, bc.MaxIterations)
	case cfg.Soup > 0:
		cells := core.Soup(core.NewRNG(cfg.Seed), core.Coord{}, cfg.Soup, cfg.Soup, cfg.Density)
		return life.NewWithConfig(cells, bc)
	default:
		p, ok := core.LookupPattern(cfg.Pattern)
		if !ok {
			return nil, fmt.Errorf("unknown pattern %q", cfg.Pattern)
		}
		return life.NewWithConfig(p.Cells, bc)
	}
}
