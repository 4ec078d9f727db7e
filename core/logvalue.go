package core

// LogValue is an optional interface that types can implement to provide
// custom log representations. When a type implements this interface, the
// normalizer uses the returned value in place of the original, at the same
// nesting depth. If the returned value is itself a struct, it is reduced to
// its public fields first so a hook returning its receiver cannot recurse
// forever.
type LogValue interface {
	// LogValue returns the value to be logged. This can be a simple type
	// (string, number, bool) or a complex type (struct, map, slice).
	LogValue() any
}
