package linelog

import (
	"time"

	"github.com/willibrandon/linelog/core"
)

// config holds the configuration for building a logger.
type config struct {
	channel string
	minimum core.Level
	tags    *TagStore
	sinks   []core.Sink
	limit   int
	addr    core.AddrSource
	clock   func() time.Time
}

// Option is a functional option for configuring a logger.
type Option func(*config)

// WithChannel sets the channel name rendered in the [channel:severity]
// segment.
func WithChannel(name string) Option {
	return func(c *config) {
		c.channel = name
	}
}

// WithMinimumLevel sets the minimum log level.
func WithMinimumLevel(level core.Level) Option {
	return func(c *config) {
		c.minimum = level
	}
}

// WithTagStore injects the ambient tag store. Loggers sharing a store see
// each other's tag changes.
func WithTagStore(store *TagStore) Option {
	return func(c *config) {
		c.tags = store
	}
}

// WithSink adds a sink receiving completed lines.
func WithSink(sink core.Sink) Option {
	return func(c *config) {
		c.sinks = append(c.sinks, sink)
	}
}

// WithLineLimit sets the per-line byte budget. Zero means the default.
func WithLineLimit(limit int) Option {
	return func(c *config) {
		c.limit = limit
	}
}

// WithAddrSource sets the best-effort client address collaborator.
func WithAddrSource(source core.AddrSource) Option {
	return func(c *config) {
		c.addr = source
	}
}

// WithClock overrides the timestamp source. Intended for tests.
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}
