package configuration

import (
	"fmt"
	"os"
	"sort"

	"github.com/willibrandon/linelog"
	"github.com/willibrandon/linelog/core"
	"github.com/willibrandon/linelog/sinks"
)

// SinkFactory creates a sink from configuration args.
type SinkFactory func(args map[string]any) (core.Sink, error)

// LoggerBuilder builds a logger from configuration.
type LoggerBuilder struct {
	sinkFactories map[string]SinkFactory
}

// NewLoggerBuilder creates a builder with the default sink factories:
// Console, File, and Memory.
func NewLoggerBuilder() *LoggerBuilder {
	lb := &LoggerBuilder{sinkFactories: make(map[string]SinkFactory)}
	lb.RegisterSink("Console", createConsoleSink)
	lb.RegisterSink("File", createFileSink)
	lb.RegisterSink("Memory", createMemorySink)
	return lb
}

// RegisterSink registers a custom sink factory under name.
func (lb *LoggerBuilder) RegisterSink(name string, factory SinkFactory) {
	lb.sinkFactories[name] = factory
}

// Build constructs a logger from the configuration.
func (lb *LoggerBuilder) Build(config *Configuration) (*linelog.Logger, error) {
	level, err := ParseLevel(config.Linelog.MinimumLevel)
	if err != nil {
		return nil, err
	}

	opts := []linelog.Option{
		linelog.WithChannel(config.Linelog.Channel),
		linelog.WithMinimumLevel(level),
	}
	if config.Linelog.LineLimit > 0 {
		opts = append(opts, linelog.WithLineLimit(config.Linelog.LineLimit))
	}

	for _, sinkConfig := range config.Linelog.WriteTo {
		factory, ok := lb.sinkFactories[sinkConfig.Name]
		if !ok {
			return nil, fmt.Errorf("unknown sink: %s", sinkConfig.Name)
		}
		sink, err := factory(sinkConfig.Args)
		if err != nil {
			return nil, fmt.Errorf("failed to create sink %s: %w", sinkConfig.Name, err)
		}
		opts = append(opts, linelog.WithSink(sink))
	}

	if len(config.Linelog.Tags) > 0 {
		store := linelog.NewTagStore()
		// Config maps are unordered; sort names for a stable tag order.
		names := make([]string, 0, len(config.Linelog.Tags))
		for name := range config.Linelog.Tags {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			store.Add(name, config.Linelog.Tags[name])
		}
		opts = append(opts, linelog.WithTagStore(store))
	}

	return linelog.New(opts...), nil
}

func createConsoleSink(args map[string]any) (core.Sink, error) {
	if GetBool(args, "stderr", false) {
		return sinks.NewWriterSink(os.Stderr), nil
	}
	return sinks.NewWriterSink(os.Stdout), nil
}

// createFileSink resolves the destination path from the LINELOG_FILE
// environment variable first, then the configured path.
func createFileSink(args map[string]any) (core.Sink, error) {
	path := os.Getenv("LINELOG_FILE")
	if path == "" {
		path = GetString(args, "path", "")
	}
	if path == "" {
		return nil, fmt.Errorf("file sink requires a path")
	}
	return sinks.NewFileSink(path)
}

func createMemorySink(map[string]any) (core.Sink, error) {
	return sinks.NewMemorySink(), nil
}
