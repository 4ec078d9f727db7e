package linelog

import "sync"

// The named-logger registry memoizes loggers by channel name so call sites
// can share one lazily built instance without threading it through every
// package.
var (
	registryMu sync.Mutex
	registry   = make(map[string]*Logger)
)

// Named returns the logger registered under name, building it on first use
// with the given options plus WithChannel(name). Subsequent calls return
// the same instance and ignore opts.
func Named(name string, opts ...Option) *Logger {
	registryMu.Lock()
	defer registryMu.Unlock()
	if logger, ok := registry[name]; ok {
		return logger
	}
	logger := New(append([]Option{WithChannel(name)}, opts...)...)
	registry[name] = logger
	return logger
}

// resetRegistry clears the named-logger registry. Tests only.
func resetRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]*Logger)
}
