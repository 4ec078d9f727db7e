// Package linelog formats arbitrary, possibly cyclic, possibly
// deeply-nested values into single bounded-length, UTF-8, newline-free log
// lines suitable for line-oriented collectors with hard per-line byte
// limits.
//
// Each line carries a UTC timestamp, a channel:severity tag, optional
// bracketed metadata tags, the message, and an optional JSON context value:
//
//	[2026-08-29 12:00:00] [app:info] [CampaignId Banana]: Some text [{"hello":"hi"}]
//
// Context values are normalized into JSON-safe trees — cycles become
// self-reference markers, non-finite floats become sentinel strings, text is
// coerced to valid UTF-8 — and serialized at the deepest nesting depth that
// keeps the whole line inside the configured byte budget.
//
//	logger := linelog.New(
//		linelog.WithChannel("app"),
//		linelog.WithSink(sink),
//	)
//	logger.Tags().Add("CampaignId", "Banana")
//	logger.InfoWith("order placed", order)
package linelog
