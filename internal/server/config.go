package server

// Config bounds the MCP surface.
type Config struct {
	// Name is the implementation name announced during initialize.
	Name string `conf:"name" yaml:"name" json:"name"`

	// MaxConcurrency caps simultaneously executing tool calls. Calls past the
	// cap wait; they are not rejected.
	MaxConcurrency int `conf:"max_concurrency" yaml:"max_concurrency" json:"max_concurrency"`
}

func (c Config) withDefaults() Config {
	if c.Name == "" {
		c.Name = "neuromux"
	}

	if c.MaxConcurrency <= 0 {
		c.MaxConcurrency = 8
	}

	return c
}
