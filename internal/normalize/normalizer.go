// Package normalize converts arbitrary, possibly cyclic Go values into
// JSON-safe trees bounded by a maximum nesting depth.
package normalize

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/willibrandon/linelog/core"
	"github.com/willibrandon/linelog/selflog"
)

// Sentinel markers emitted in place of values that cannot or must not be
// rendered in full.
const (
	arrayMarker   = "(array ...)"
	arraySelfRef  = "(array self-reference)"
	objectMarker  = "(object ...)"
	objectSelfRef = "(object self-reference)"
	closureMarker = "(closure)"
	pointerMarker = "(pointer)"
)

// Type markers used to summarize scalars once the depth budget is spent.
const (
	stringMarker = "(string)"
	intMarker    = "(int)"
	floatMarker  = "(float)"
	boolMarker   = "(bool)"
)

// Normalize converts value into a JSON-representable tree: nil, bool,
// number, valid UTF-8 string, []any, or map[string]any. It never fails;
// values it cannot render in full degrade to sentinel markers. Composites
// beyond maxDepth collapse to placeholders, and identities revisited while
// still being walked collapse to self-reference markers.
func Normalize(value any, maxDepth int) any {
	n := &normalizer{visiting: make(map[visitKey]struct{})}
	return n.walk(value, maxDepth)
}

// visitKey identifies a composite value for cycle detection without
// mutating the value being serialized.
type visitKey struct {
	ptr uintptr
	typ reflect.Type
}

// normalizer holds the per-invocation visited set. It lives for a single
// Normalize call and is never shared.
type normalizer struct {
	visiting map[visitKey]struct{}
}

// walk normalizes value, resolving custom-serialization hooks first.
func (n *normalizer) walk(value any, depth int) (result any) {
	defer func() {
		if r := recover(); r != nil {
			if selflog.IsEnabled() {
				selflog.Printf("[normalize] panic during normalization: %v (type=%T, depth=%d)", r, value, depth)
			}
			result = CoerceUTF8(fmt.Sprintf("%T(%v)", value, value))
		}
	}()

	if value == nil {
		return nil
	}

	if lv, ok := value.(core.LogValue); ok {
		resolved := resolveHook(lv, value)
		// The hook's result replaces the original value in-place, at the
		// same depth. A struct result is reduced to a plain field mapping so
		// a hook returning its receiver cannot loop.
		if rv := reflect.ValueOf(resolved); rv.IsValid() && rv.Kind() == reflect.Struct {
			fields := fieldMap(rv)
			return n.walkRaw(reflect.ValueOf(fields), fields, depth)
		}
		if resolved == nil {
			return nil
		}
		return n.walkRaw(reflect.ValueOf(resolved), resolved, depth)
	}

	if err, ok := value.(error); ok {
		return n.walkError(err, depth)
	}

	return n.walkRaw(reflect.ValueOf(value), value, depth)
}

// resolveHook invokes a LogValue hook, falling back to the original value
// if the hook panics.
func resolveHook(lv core.LogValue, original any) (resolved any) {
	defer func() {
		if r := recover(); r != nil {
			if selflog.IsEnabled() {
				selflog.Printf("[normalize] LogValue hook panicked: %v (type=%T)", r, original)
			}
			resolved = fmt.Sprintf("%T", original)
		}
	}()
	return lv.LogValue()
}

// walkRaw normalizes a value that has already been through hook resolution.
func (n *normalizer) walkRaw(rv reflect.Value, value any, depth int) any {
	if !rv.IsValid() {
		return nil
	}

	switch rv.Kind() {
	case reflect.Bool:
		return summarize(rv.Bool(), boolMarker, depth)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return summarize(rv.Int(), intMarker, depth)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return summarize(rv.Uint(), intMarker, depth)

	case reflect.Float32, reflect.Float64:
		return summarize(normalizeFloat(rv.Float()), floatMarker, depth)

	case reflect.Complex64, reflect.Complex128:
		return summarize(strconv.FormatComplex(rv.Complex(), 'g', -1, 128), stringMarker, depth)

	case reflect.String:
		return summarize(CoerceUTF8(rv.String()), stringMarker, depth)

	case reflect.Func, reflect.Chan:
		return closureMarker

	case reflect.UnsafePointer:
		return pointerMarker

	case reflect.Ptr:
		return n.walkPointer(rv, depth)

	case reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return n.walk(rv.Elem().Interface(), depth)

	case reflect.Slice:
		return n.walkSlice(rv, depth)

	case reflect.Array:
		return n.walkSequence(rv, depth)

	case reflect.Map:
		return n.walkMap(rv, depth)

	case reflect.Struct:
		if t, ok := value.(time.Time); ok {
			return summarize(t.Format(time.RFC3339), stringMarker, depth)
		}
		return n.walkStruct(rv, depth)

	default:
		return CoerceUTF8(fmt.Sprintf("%v", value))
	}
}

func (n *normalizer) walkPointer(rv reflect.Value, depth int) any {
	if rv.IsNil() {
		return nil
	}
	key := visitKey{ptr: rv.Pointer(), typ: rv.Type()}
	if _, seen := n.visiting[key]; seen {
		if rv.Type().Elem().Kind() == reflect.Struct {
			return objectSelfRef
		}
		return arraySelfRef
	}
	n.visiting[key] = struct{}{}
	defer delete(n.visiting, key)

	return n.walk(rv.Elem().Interface(), depth)
}

func (n *normalizer) walkSlice(rv reflect.Value, depth int) any {
	if rv.IsNil() {
		return nil
	}
	// Byte slices are text; coercion to valid UTF-8 never fails.
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return summarize(CoerceUTF8(string(rv.Bytes())), stringMarker, depth)
	}
	if depth <= 0 {
		return arrayMarker
	}
	if rv.Len() > 0 {
		key := visitKey{ptr: rv.Pointer(), typ: rv.Type()}
		if _, seen := n.visiting[key]; seen {
			return arraySelfRef
		}
		n.visiting[key] = struct{}{}
		defer delete(n.visiting, key)
	}
	return n.walkElements(rv, depth)
}

func (n *normalizer) walkSequence(rv reflect.Value, depth int) any {
	if depth <= 0 {
		return arrayMarker
	}
	return n.walkElements(rv, depth)
}

func (n *normalizer) walkElements(rv reflect.Value, depth int) []any {
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = n.walk(rv.Index(i).Interface(), depth-1)
	}
	return out
}

func (n *normalizer) walkMap(rv reflect.Value, depth int) any {
	if rv.IsNil() {
		return nil
	}
	if depth <= 0 {
		return arrayMarker
	}
	key := visitKey{ptr: rv.Pointer(), typ: rv.Type()}
	if _, seen := n.visiting[key]; seen {
		return arraySelfRef
	}
	n.visiting[key] = struct{}{}
	defer delete(n.visiting, key)

	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[mapKeyString(iter.Key())] = n.walk(iter.Value().Interface(), depth-1)
	}
	return out
}

// mapKeyString renders a map key as a valid UTF-8 string.
func mapKeyString(key reflect.Value) string {
	if key.Kind() == reflect.String {
		return CoerceUTF8(key.String())
	}
	return CoerceUTF8(fmt.Sprintf("%v", key.Interface()))
}

func (n *normalizer) walkStruct(rv reflect.Value, depth int) any {
	if depth <= 0 {
		return objectMarker
	}
	t := rv.Type()
	out := make(map[string]any, t.NumField()+1)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue
		}
		tag := field.Tag.Get("log")
		if tag == "-" {
			continue
		}
		name := field.Name
		if tag != "" {
			name = tag
		}
		out[CoerceUTF8(name)] = n.walk(rv.Field(i).Interface(), depth-1)
	}
	out["class"] = t.String()
	return out
}

// fieldMap reduces a struct to its public fields without recursion,
// honoring log tags the same way walkStruct does.
func fieldMap(rv reflect.Value) map[string]any {
	t := rv.Type()
	out := make(map[string]any, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue
		}
		tag := field.Tag.Get("log")
		if tag == "-" {
			continue
		}
		name := field.Name
		if tag != "" {
			name = tag
		}
		out[name] = rv.Field(i).Interface()
	}
	return out
}

// normalizeFloat maps non-finite floating point values to their sentinel
// string representations.
func normalizeFloat(f float64) any {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return f
}

// summarize collapses a scalar to its type marker once the depth budget is
// spent, but only when the marker's serialized form is strictly shorter
// than the scalar's own.
func summarize(value any, marker string, depth int) any {
	if depth > 0 {
		return value
	}
	encoded, err := Encode(value)
	if err != nil {
		return value
	}
	markerEncoded, err := Encode(marker)
	if err != nil {
		return value
	}
	if len(markerEncoded) < len(encoded) {
		return marker
	}
	return value
}
