package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/gogpu/voronoi"
	"github.com/gogpu/voronoi/internal/config"
	"github.com/gogpu/voronoi/internal/store"
)

// commonFlags are the settings shared by every command. Values given on
// the command line override the config file.
type commonFlags struct {
	fs         *flag.FlagSet
	configPath string
	verbose    bool
	load       string
	rngSeed    uint64
	backend    string
	values     config.Config
}

func newCommonFlags(name string, stderr io.Writer) *commonFlags {
	c := &commonFlags{
		fs:     flag.NewFlagSet(name, flag.ContinueOnError),
		values: config.Default(),
	}
	c.fs.SetOutput(stderr)
	fs := c.fs
	fs.StringVar(&c.configPath, "config", "", "YAML config `file`")
	fs.BoolVar(&c.verbose, "v", false, "verbose logging")
	fs.IntVar(&c.values.Width, "width", c.values.Width, "image width in pixels")
	fs.IntVar(&c.values.Height, "height", c.values.Height, "image height in pixels")
	fs.IntVar(&c.values.Seeds, "seeds", c.values.Seeds, "number of seeds (clamped to capacity)")
	fs.IntVar(&c.values.Capacity, "capacity", c.values.Capacity, "seed buffer capacity")
	fs.Uint64Var(&c.rngSeed, "rng-seed", 0, "random seed (default: nondeterministic)")
	fs.StringVar(&c.backend, "backend", string(c.values.Backend), "evaluation backend: cpu, gpu or auto")
	fs.IntVar(&c.values.Workers, "workers", c.values.Workers, "CPU worker goroutines (0 = GOMAXPROCS)")
	fs.StringVar(&c.values.Output, "o", c.values.Output, "output `file` (.png, .bmp, .tif)")
	fs.StringVar(&c.values.Background, "background", c.values.Background, "hex color shown when no seeds are active")
	fs.StringVar(&c.values.Store, "store", c.values.Store, "seed snapshot database `path`")
	fs.StringVar(&c.load, "load", "", "use the stored seed set `name` instead of generating")
	return c
}

// parse parses args and resolves the effective config: defaults, then
// the config file, then explicitly set flags.
func (c *commonFlags) parse(args []string) (config.Config, error) {
	if err := c.fs.Parse(args); err != nil {
		return config.Config{}, err
	}

	cfg := config.Default()
	if c.configPath != "" {
		var err error
		if cfg, err = config.Load(c.configPath); err != nil {
			return config.Config{}, err
		}
	}

	c.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = c.values.Width
		case "height":
			cfg.Height = c.values.Height
		case "seeds":
			cfg.Seeds = c.values.Seeds
		case "capacity":
			cfg.Capacity = c.values.Capacity
		case "rng-seed":
			seed := c.rngSeed
			cfg.RNGSeed = &seed
		case "backend":
			cfg.Backend = config.Backend(c.backend)
		case "workers":
			cfg.Workers = c.values.Workers
		case "o":
			cfg.Output = c.values.Output
		case "background":
			cfg.Background = c.values.Background
		case "store":
			cfg.Store = c.values.Store
		}
	})
	if err := cfg.ExpandPaths(); err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newGenerator returns a generator seeded from cfg.RNGSeed, or drawing
// from the global source when it is unset.
func newGenerator(cfg config.Config) (*voronoi.Generator, error) {
	var rng *rand.Rand
	if cfg.RNGSeed != nil {
		rng = rand.New(rand.NewPCG(*cfg.RNGSeed, *cfg.RNGSeed))
	}
	return voronoi.NewGenerator(rng, cfg.Capacity)
}

// seedBuffer produces the packed seeds for a run: the stored snapshot
// named by load if set, otherwise a freshly generated set.
func seedBuffer(ctx context.Context, cfg config.Config, load string) (*voronoi.PackedBuffer, error) {
	if load != "" {
		st, err := store.Open(cfg.Store)
		if err != nil {
			return nil, err
		}
		defer st.Close()
		return st.Load(ctx, load)
	}
	gen, err := newGenerator(cfg)
	if err != nil {
		return nil, err
	}
	return packGenerated(gen, cfg.Seeds)
}

// packGenerated draws count seeds from gen and packs them at the
// generator's capacity.
func packGenerated(gen *voronoi.Generator, count int) (*voronoi.PackedBuffer, error) {
	buf, err := voronoi.Pack(gen.Generate(count), gen.Capacity())
	if err != nil {
		return nil, fmt.Errorf("pack seeds: %w", err)
	}
	return buf, nil
}
