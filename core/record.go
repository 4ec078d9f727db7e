package core

import (
	"errors"
	"time"
)

// ErrMessageNotText is returned when a record's message is not a string.
// This is the only hard failure formatting surfaces to the caller; it
// signals a programming error, not a runtime condition.
var ErrMessageNotText = errors.New("linelog: message is not text")

// Tag is a single key/value annotation rendered as bracketed metadata on a
// log line. Names must match [A-Za-z0-9_-]+ and values must be scalar or
// nil; tags failing either check are silently dropped at render time.
type Tag struct {
	Name  string
	Value any
}

// Record is one log event's structured fields prior to formatting.
// Records are constructed per log call and discarded after formatting.
type Record struct {
	// Timestamp is when the event occurred. Rendered in UTC regardless of
	// the location it carries.
	Timestamp time.Time

	// Channel is the logger name appearing in the [channel:severity] segment.
	Channel string

	// Level is the severity of the event.
	Level Level

	// Message is the human-readable message. It must be a string; any other
	// type is rejected with ErrMessageNotText before formatting begins.
	Message any

	// Context is an optional structured payload serialized as JSON at the
	// end of the line. HasContext distinguishes an explicit nil context
	// from no context at all.
	Context any

	// HasContext reports whether Context was supplied by the caller.
	HasContext bool

	// Tags is the tag set applicable at format time, ambient tags merged
	// with call-site tags.
	Tags []Tag
}
