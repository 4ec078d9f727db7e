package core

// Sink receives completed log lines and writes them to a destination.
// Lines are handed off as immutable strings without a trailing newline;
// the sink decides framing.
type Sink interface {
	// Emit writes one completed line.
	Emit(line string)

	// Close releases any resources held by the sink.
	Close() error
}
