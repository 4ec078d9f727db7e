// Package line assembles log records into single bounded-length,
// newline-free lines suitable for line-oriented collectors.
package line

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/willibrandon/linelog/core"
	"github.com/willibrandon/linelog/internal/fit"
	"github.com/willibrandon/linelog/internal/normalize"
	"github.com/willibrandon/linelog/selflog"
)

// DefaultLimit is the default per-line byte budget, chosen to stay under
// common syslog-relay byte limits with safety margin.
const DefaultLimit = 7900

const timestampLayout = "2006-01-02 15:04:05"

var tagNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// escaper keeps the line parseable: brackets delimit fields and must be
// escaped inside them, and the line must stay newline-free.
var escaper = strings.NewReplacer(
	"[", `\[`,
	"]", `\]`,
	"\n", `\n`,
	"\r", `\r`,
)

// Formatter renders records into the wire format
//
//	[YYYY-MM-DD HH:MM:SS] [channel:severity] [client <addr>] [tag value] ...: message [contextJSON]
//
// guaranteeing every line fits the configured byte budget.
type Formatter struct {
	// Limit is the per-line byte budget. DefaultLimit when zero.
	Limit int

	// Addr optionally supplies the client address pseudo-tag.
	Addr core.AddrSource
}

// Format renders one record as a single line without a trailing newline.
// The only possible error is core.ErrMessageNotText; every other
// irregularity degrades to shorter or summarized output.
func (f *Formatter) Format(rec *core.Record) (string, error) {
	message, ok := rec.Message.(string)
	if !ok {
		return "", core.ErrMessageNotText
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	body := f.prefix(rec) + ": " + escaper.Replace(strings.Trim(normalize.CoerceUTF8(message), `"`))

	if !rec.HasContext {
		if len(body) <= limit {
			return body, nil
		}
		return fit.Truncate(body, limit), nil
	}

	return fit.Fit(func(depth int) string {
		return body + " [" + renderContext(rec.Context, depth) + "]"
	}, limit), nil
}

// prefix assembles everything before the message: timestamp, channel and
// severity, the best-effort client address, and the validated tags.
func (f *Formatter) prefix(rec *core.Record) string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(rec.Timestamp.UTC().Format(timestampLayout))
	b.WriteString("] [")
	b.WriteString(rec.Channel)
	b.WriteString(":")
	b.WriteString(rec.Level.String())
	b.WriteString("]")

	if addr, ok := f.clientAddr(); ok {
		b.WriteString(" [client ")
		b.WriteString(addr)
		b.WriteString("]")
	}

	for _, tag := range rec.Tags {
		value, ok := tagValue(tag.Value)
		if !ok || !tagNamePattern.MatchString(tag.Name) {
			continue
		}
		b.WriteString(" [")
		b.WriteString(tag.Name)
		b.WriteString(" ")
		b.WriteString(escaper.Replace(value))
		b.WriteString("]")
	}
	return b.String()
}

// clientAddr queries the address source, swallowing panics: the address is
// best-effort and must never fail formatting.
func (f *Formatter) clientAddr() (addr string, ok bool) {
	if f.Addr == nil {
		return "", false
	}
	defer func() {
		if r := recover(); r != nil {
			if selflog.IsEnabled() {
				selflog.Printf("[line] address source panicked: %v", r)
			}
			addr, ok = "", false
		}
	}()
	return f.Addr.ClientAddr()
}

// tagValue renders a scalar-or-nil tag value unquoted. Non-scalar values
// are reported as invalid so the tag is dropped.
func tagValue(v any) (string, bool) {
	switch value := v.(type) {
	case nil:
		return "null", true
	case string:
		return normalize.CoerceUTF8(value), true
	case bool:
		return strconv.FormatBool(value), true
	case int:
		return strconv.FormatInt(int64(value), 10), true
	case int8:
		return strconv.FormatInt(int64(value), 10), true
	case int16:
		return strconv.FormatInt(int64(value), 10), true
	case int32:
		return strconv.FormatInt(int64(value), 10), true
	case int64:
		return strconv.FormatInt(value, 10), true
	case uint:
		return strconv.FormatUint(uint64(value), 10), true
	case uint8:
		return strconv.FormatUint(uint64(value), 10), true
	case uint16:
		return strconv.FormatUint(uint64(value), 10), true
	case uint32:
		return strconv.FormatUint(uint64(value), 10), true
	case uint64:
		return strconv.FormatUint(value, 10), true
	case float32:
		return strconv.FormatFloat(float64(value), 'g', -1, 32), true
	case float64:
		return strconv.FormatFloat(value, 'g', -1, 64), true
	}
	return "", false
}

// renderContext normalizes and JSON-encodes the context value at the given
// depth. Encode failures on a normalized tree should be unreachable; if one
// occurs, a diagnostic segment carrying the encoder error is emitted in its
// place, since formatting must not fail inside a logging call.
func renderContext(context any, depth int) string {
	encoded, err := normalize.Encode(normalize.Normalize(context, depth))
	if err != nil {
		if selflog.IsEnabled() {
			selflog.Printf("[line] context encode failed: %v", err)
		}
		return strconv.Quote("(json encode error: " + escaper.Replace(err.Error()) + ")")
	}
	return encoded
}
