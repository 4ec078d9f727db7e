package normalize

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Encode renders a normalized tree as single-line JSON. HTML escaping is
// disabled; control characters and line breaks are escaped by the encoder,
// so the result never contains a literal newline. Trees produced by
// Normalize always encode successfully; an error here indicates an
// invariant violation in the caller's input.
func Encode(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
