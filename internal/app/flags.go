package app

import (
	"flag"
	"fmt"
	"strings"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Sim          string
	Scale        int
	TPS          int
	Seed         int64
	StepsPerTick int
	Codec        string
	Set          string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "latticegas", Scale: 6, TPS: 60, Seed: 1, StepsPerTick: 10, Codec: "gzip"}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.StepsPerTick, "steps-per-tick", c.StepsPerTick, "automaton steps per rendered tick")
	fs.StringVar(&c.Codec, "codec", c.Codec, "compressor used for the entropy readout")
	fs.StringVar(&c.Set, "set", c.Set, "comma separated key=value simulation settings, e.g. n=64,encoding=f64")
}

// SimConfig parses the -set flag into the string map consumed by sim
// factories.
func (c *Config) SimConfig() (map[string]string, error) {
	out := map[string]string{}
	if strings.TrimSpace(c.Set) == "" {
		return out, nil
	}
	for _, pair := range strings.Split(c.Set, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("malformed -set entry %q, want key=value", pair)
		}
		out[key] = value
	}
	return out, nil
}
