// Package fit searches for the deepest rendering of a log line that still
// fits a byte budget.
package fit

import (
	"strings"
	"unicode/utf8"
)

// MaxDepth is the deepest nesting the fitter will ask for. The fast-path
// rendering uses it directly; the search probes [0, MaxDepth-1].
const MaxDepth = 32

// TruncationSuffix marks a line that had to be hard-truncated because even
// its depth-0 rendering overflowed the budget.
const TruncationSuffix = " (...)"

// Fit returns the deepest rendering that fits within budget bytes. The
// render callback must produce the complete line for a given maximum
// serialization depth, and deeper renderings must never be shorter than
// shallower ones.
//
// The common case returns the MaxDepth rendering immediately. Otherwise the
// integer depth range is binary-searched for the largest fitting depth. If
// even depth 0 overflows — the message or tags alone are too large — the
// depth-0 rendering is hard-truncated. That is the only case where the
// result may misrepresent the input, and it signals caller misuse, such as
// logging a large blob as a message rather than as context.
func Fit(render func(depth int) string, budget int) string {
	line := render(MaxDepth)
	if len(line) <= budget {
		return line
	}

	best := ""
	found := false
	lo, hi := 0, MaxDepth-1
	for lo <= hi {
		mid := (lo + hi) / 2
		probe := render(mid)
		if len(probe) <= budget {
			best = probe
			found = true
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	if found {
		return best
	}
	return Truncate(render(0), budget)
}

// Truncate hard-cuts line to fit budget bytes, trimming trailing whitespace
// and appending the truncation suffix. The cut never splits a UTF-8 rune.
func Truncate(line string, budget int) string {
	cut := budget - len(TruncationSuffix)
	if cut < 0 {
		cut = 0
	}
	if cut > len(line) {
		cut = len(line)
	}
	for cut > 0 && cut < len(line) && !utf8.RuneStart(line[cut]) {
		cut--
	}
	return strings.TrimRight(line[:cut], " \t") + TruncationSuffix
}
