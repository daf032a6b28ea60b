package life

import "strconv"

// DefaultMaxIterations is the per-board ceiling used when none is configured.
const DefaultMaxIterations = 1000

// MaxDenseCells caps the bounding box area a dense view may allocate.
const MaxDenseCells = 1 << 22

// Config controls a Board's advancement policy.
type Config struct {
	// MaxIterations bounds the steps a single RunIterations call may request.
	MaxIterations int
	// Finished pre-sets the terminal flag, as when restoring a stored board.
	Finished bool
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{MaxIterations: DefaultMaxIterations}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["max_iterations"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.MaxIterations = parsed
		}
	}
	if v, ok := cfg["finished"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Finished = parsed
		}
	}
	return c
}
