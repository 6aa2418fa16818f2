package latticegas

import (
	"strconv"

	"lattice-entropy/internal/entropy"
)

// Config holds parameters for the lattice-gas automaton.
type Config struct {
	Size     int
	Seed     int64
	Codec    string
	Encoding entropy.Encoding
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Size:     100,
		Seed:     1,
		Codec:    string(entropy.DefaultCodec),
		Encoding: entropy.DefaultEncoding,
	}
}

// FromMap populates a Config from a string map. Unknown keys and malformed
// values are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["n"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Size = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["codec"]; ok && v != "" {
		c.Codec = v
	}
	if v, ok := cfg["encoding"]; ok {
		if parsed, err := entropy.ParseEncoding(v); err == nil {
			c.Encoding = parsed
		}
	}
	return c
}
