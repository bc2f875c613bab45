package counter

// Config carries the construction-time settings shared by all kinds. Both
// fields are immutable once the counter exists.
type Config struct {
	// Name is the optional display name.
	Name string
	// Shards overrides the shard count; 0 means the default (64).
	Shards int
}

// Option mutates a Config during construction.
type Option func(*Config)

// WithName sets the counter's display name.
func WithName(name string) Option {
	return func(c *Config) {
		c.Name = name
	}
}

// WithShards overrides the number of shards. More shards mean less
// contention and more memory (one cache line per shard); values <= 0 fall
// back to the default.
func WithShards(n int) Option {
	return func(c *Config) {
		c.Shards = n
	}
}

// ApplyOptions folds opts into a fresh Config.
func ApplyOptions(opts ...Option) *Config {
	c := &Config{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
