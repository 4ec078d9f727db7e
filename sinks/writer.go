package sinks

import (
	"io"
	"sync"

	"github.com/willibrandon/linelog/selflog"
)

// WriterSink writes completed lines to an io.Writer, one per line. Writes
// are serialized with a mutex so the sink can wrap unsynchronized writers
// such as os.Stdout.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink creates a sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Emit writes one line, newline-terminated.
func (ws *WriterSink) Emit(line string) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if _, err := io.WriteString(ws.w, line+"\n"); err != nil {
		if selflog.IsEnabled() {
			selflog.Printf("[writer] write failed: %v", err)
		}
	}
}

// Close closes the underlying writer if it implements io.Closer.
func (ws *WriterSink) Close() error {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if closer, ok := ws.w.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
