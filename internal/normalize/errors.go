package normalize

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// stackTracer is implemented by errors created with github.com/pkg/errors.
type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// causer is the pre-Unwrap cause convention from github.com/pkg/errors.
type causer interface {
	Cause() error
}

// walkError renders an error as the fixed-shape mapping
// {message, code, cause, trace, class}, following the cause chain with the
// same cycle guarding applied to any other composite.
func (n *normalizer) walkError(err error, depth int) any {
	if depth <= 0 {
		return objectMarker
	}

	rv := reflect.ValueOf(err)
	if rv.Kind() == reflect.Ptr && !rv.IsNil() {
		key := visitKey{ptr: rv.Pointer(), typ: rv.Type()}
		if _, seen := n.visiting[key]; seen {
			return objectSelfRef
		}
		n.visiting[key] = struct{}{}
		defer delete(n.visiting, key)
	}

	shape := map[string]any{
		"message": CoerceUTF8(err.Error()),
		"class":   errorClass(err),
		"code":    errorCode(err),
		"cause":   nil,
		"trace":   nil,
	}
	if frames := stackFrames(err); frames != nil {
		shape["trace"] = frames
	}
	if cause := errorCause(err); cause != nil {
		shape["cause"] = n.walkError(cause, depth-1)
	}
	return shape
}

// errorClass returns the error's concrete type name without the pointer
// prefix.
func errorClass(err error) string {
	return strings.TrimPrefix(reflect.TypeOf(err).String(), "*")
}

// errorCode extracts a machine-readable code when the error exposes one.
func errorCode(err error) any {
	switch coded := err.(type) {
	case interface{ Code() string }:
		return CoerceUTF8(coded.Code())
	case interface{ Code() int }:
		return coded.Code()
	}
	return nil
}

// errorCause returns the next error in the chain, honoring both the
// pkg/errors Cause convention and the standard Unwrap one.
func errorCause(err error) error {
	if c, ok := err.(causer); ok {
		if cause := c.Cause(); cause != err {
			return cause
		}
		return nil
	}
	return stderrors.Unwrap(err)
}

// stackFrames renders a pkg/errors stack trace as "func (file:line)"
// strings, or nil when the error carries no trace.
func stackFrames(err error) []any {
	st, ok := err.(stackTracer)
	if !ok {
		return nil
	}
	trace := st.StackTrace()
	frames := make([]any, 0, len(trace))
	for _, frame := range trace {
		// "%+v" renders "function\n\tfile:line"; fold it onto one line.
		text := fmt.Sprintf("%+v", frame)
		if fn, loc, ok := strings.Cut(text, "\n\t"); ok {
			text = fn + " (" + loc + ")"
		}
		frames = append(frames, CoerceUTF8(text))
	}
	return frames
}
