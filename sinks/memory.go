package sinks

import "sync"

// MemorySink retains emitted lines in memory. Intended for tests.
type MemorySink struct {
	mu    sync.Mutex
	lines []string
}

// NewMemorySink creates an empty memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Emit stores the line.
func (ms *MemorySink) Emit(line string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.lines = append(ms.lines, line)
}

// Lines returns a copy of the emitted lines in order.
func (ms *MemorySink) Lines() []string {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return append([]string{}, ms.lines...)
}

// Clear discards all retained lines.
func (ms *MemorySink) Clear() {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.lines = nil
}

// Close is a no-op.
func (ms *MemorySink) Close() error {
	return nil
}
