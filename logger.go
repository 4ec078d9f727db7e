package linelog

import (
	"time"

	"github.com/willibrandon/linelog/core"
	"github.com/willibrandon/linelog/internal/formatters/line"
)

// Logger is the leveled logging front-end. It validates the message,
// merges ambient tags with call-site tags, formats one bounded line per
// call, and hands the completed line to its sinks.
//
// Formatting is synchronous and reentrant; concurrent use from multiple
// goroutines is safe. The tag store is the only shared mutable state.
type Logger struct {
	channel   string
	minimum   core.Level
	tags      *TagStore
	extra     []core.Tag
	sinks     []core.Sink
	formatter *line.Formatter
	clock     func() time.Time
}

// New creates a logger from the given options. Without options it logs to
// nothing: add at least one sink with WithSink.
func New(opts ...Option) *Logger {
	cfg := &config{
		channel: "app",
		minimum: core.InfoLevel,
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.tags == nil {
		cfg.tags = NewTagStore()
	}
	return &Logger{
		channel: cfg.channel,
		minimum: cfg.minimum,
		tags:    cfg.tags,
		sinks:   cfg.sinks,
		formatter: &line.Formatter{
			Limit: cfg.limit,
			Addr:  cfg.addr,
		},
		clock: cfg.clock,
	}
}

// Tags returns the logger's ambient tag store.
func (l *Logger) Tags() *TagStore {
	return l.tags
}

// ForTag returns a logger that renders the given call-site tag on every
// line. Call-site tags are merged after the ambient snapshot, so on a name
// collision the call-site value wins.
func (l *Logger) ForTag(name string, value any) *Logger {
	child := *l
	child.extra = append(append([]core.Tag{}, l.extra...), core.Tag{Name: name, Value: value})
	return &child
}

// Debug writes a debug-level line.
func (l *Logger) Debug(message string) { _ = l.Log(core.DebugLevel, message) }

// Info writes an info-level line.
func (l *Logger) Info(message string) { _ = l.Log(core.InfoLevel, message) }

// Warn writes a warning-level line.
func (l *Logger) Warn(message string) { _ = l.Log(core.WarningLevel, message) }

// Error writes an error-level line.
func (l *Logger) Error(message string) { _ = l.Log(core.ErrorLevel, message) }

// DebugWith writes a debug-level line with a context value.
func (l *Logger) DebugWith(message string, context any) {
	_ = l.LogWith(core.DebugLevel, message, context)
}

// InfoWith writes an info-level line with a context value.
func (l *Logger) InfoWith(message string, context any) {
	_ = l.LogWith(core.InfoLevel, message, context)
}

// WarnWith writes a warning-level line with a context value.
func (l *Logger) WarnWith(message string, context any) {
	_ = l.LogWith(core.WarningLevel, message, context)
}

// ErrorWith writes an error-level line with a context value.
func (l *Logger) ErrorWith(message string, context any) {
	_ = l.LogWith(core.ErrorLevel, message, context)
}

// Log writes a line without a context value. It returns
// core.ErrMessageNotText if message is not a string; that is the only
// error logging can surface.
func (l *Logger) Log(level core.Level, message any) error {
	return l.write(level, message, nil, false)
}

// LogWith writes a line with a context value. An explicit nil context is
// rendered as JSON null, distinct from no context at all.
func (l *Logger) LogWith(level core.Level, message any, context any) error {
	return l.write(level, message, context, true)
}

func (l *Logger) write(level core.Level, message, context any, hasContext bool) error {
	if level < l.minimum {
		return nil
	}
	rec := &core.Record{
		Timestamp:  l.clock(),
		Channel:    l.channel,
		Level:      level,
		Message:    message,
		Context:    context,
		HasContext: hasContext,
		Tags:       mergeTags(l.tags.Snapshot(), l.extra),
	}
	formatted, err := l.formatter.Format(rec)
	if err != nil {
		return err
	}
	for _, sink := range l.sinks {
		sink.Emit(formatted)
	}
	return nil
}

// mergeTags overlays call-site tags onto the ambient snapshot. Ambient
// positions are preserved; colliding names take the call-site value; new
// names are appended.
func mergeTags(ambient, extra []core.Tag) []core.Tag {
	if len(extra) == 0 {
		return ambient
	}
	merged := append([]core.Tag{}, ambient...)
	for _, tag := range extra {
		replaced := false
		for i := range merged {
			if merged[i].Name == tag.Name {
				merged[i].Value = tag.Value
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, tag)
		}
	}
	return merged
}

// Close closes all sinks, returning the first error encountered.
func (l *Logger) Close() error {
	var first error
	for _, sink := range l.sinks {
		if err := sink.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
