package line

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/willibrandon/linelog/core"
)

var testTime = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

func record(message string) *core.Record {
	return &core.Record{
		Timestamp: testTime,
		Channel:   "app",
		Level:     core.InfoLevel,
		Message:   message,
	}
}

func TestFormatBasicLine(t *testing.T) {
	f := &Formatter{}
	rec := record("Some text")
	rec.Tags = []core.Tag{{Name: "CampaignId", Value: "Banana"}}

	got, err := f.Format(rec)
	if err != nil {
		t.Fatal(err)
	}
	want := "[2026-08-29 12:00:00] [app:info] [CampaignId Banana]: Some text"
	if got != want {
		t.Errorf("\n got: %q\nwant: %q", got, want)
	}
}

func TestFormatContextSegment(t *testing.T) {
	f := &Formatter{}
	rec := record("Some text")
	rec.Context = map[string]string{"hello": "hi"}
	rec.HasContext = true

	got, err := f.Format(rec)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(got, `: Some text [{"hello":"hi"}]`) {
		t.Errorf("expected trailing JSON context segment, got %q", got)
	}
}

func TestFormatExplicitNilContext(t *testing.T) {
	f := &Formatter{}
	rec := record("msg")
	rec.HasContext = true

	got, err := f.Format(rec)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(got, ": msg [null]") {
		t.Errorf("expected explicit null context, got %q", got)
	}
}

func TestFormatTagValidation(t *testing.T) {
	f := &Formatter{}
	rec := record("msg")
	rec.Tags = []core.Tag{
		{Name: "bad name", Value: "dropped"},
		{Name: "foo", Value: 3.14},
		{Name: "nonscalar", Value: []int{1}},
		{Name: "null-ok", Value: nil},
	}

	got, err := f.Format(rec)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "dropped") || strings.Contains(got, "bad name") {
		t.Errorf("expected invalid tag name to be dropped, got %q", got)
	}
	if strings.Contains(got, "nonscalar") {
		t.Errorf("expected non-scalar tag to be dropped, got %q", got)
	}
	if !strings.Contains(got, "[foo 3.14]") {
		t.Errorf("expected [foo 3.14], got %q", got)
	}
	if !strings.Contains(got, "[null-ok null]") {
		t.Errorf("expected null tag rendered, got %q", got)
	}
}

func TestFormatEscapesBrackets(t *testing.T) {
	f := &Formatter{}
	rec := record("Some message with [brackets]")
	rec.Tags = []core.Tag{{Name: "k", Value: "va[l]ue"}}

	got, err := f.Format(rec)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(got, `: Some message with \[brackets\]`) {
		t.Errorf("expected escaped message without quotes, got %q", got)
	}
	if !strings.Contains(got, `[k va\[l\]ue]`) {
		t.Errorf("expected escaped tag value, got %q", got)
	}
}

func TestFormatStripsMessageQuotes(t *testing.T) {
	f := &Formatter{}
	got, err := f.Format(record(`"quoted message"`))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(got, ": quoted message") {
		t.Errorf("expected quotes stripped, got %q", got)
	}
}

func TestFormatTimestampIsUTC(t *testing.T) {
	f := &Formatter{}
	zone := time.FixedZone("CEST", 2*3600)
	rec := record("msg")
	rec.Timestamp = time.Date(2026, 8, 29, 14, 0, 0, 0, zone)

	got, err := f.Format(rec)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "[2026-08-29 12:00:00]") {
		t.Errorf("expected UTC timestamp, got %q", got)
	}
}

func TestFormatNonTextMessage(t *testing.T) {
	f := &Formatter{}
	rec := record("")
	rec.Message = 12345

	if _, err := f.Format(rec); err != core.ErrMessageNotText {
		t.Errorf("expected ErrMessageNotText, got %v", err)
	}
}

func TestFormatClientAddr(t *testing.T) {
	f := &Formatter{Addr: core.AddrFunc(func() (string, bool) { return "10.0.0.1:443", true })}
	got, err := f.Format(record("msg"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "[app:info] [client 10.0.0.1:443]") {
		t.Errorf("expected client segment after severity, got %q", got)
	}
}

func TestFormatClientAddrAbsent(t *testing.T) {
	f := &Formatter{Addr: core.AddrFunc(func() (string, bool) { return "", false })}
	got, err := f.Format(record("msg"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "client") {
		t.Errorf("expected no client segment, got %q", got)
	}
}

func TestFormatClientAddrPanicIsSwallowed(t *testing.T) {
	f := &Formatter{Addr: core.AddrFunc(func() (string, bool) { panic("no request") })}
	got, err := f.Format(record("msg"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "client") {
		t.Errorf("expected no client segment after panic, got %q", got)
	}
}

func TestFormatOverflowingMessageIsTruncated(t *testing.T) {
	f := &Formatter{Limit: 80}
	got, err := f.Format(record(strings.Repeat("m", 500)))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) > 80 {
		t.Errorf("expected at most 80 bytes, got %d", len(got))
	}
	if !strings.HasSuffix(got, " (...)") {
		t.Errorf("expected truncation suffix, got %q", got)
	}
}

func TestFormatDeepContextFitsBudget(t *testing.T) {
	nested := any("leaf")
	for i := 0; i < 40; i++ {
		nested = map[string]any{"child": nested, "padding": strings.Repeat("p", 30)}
	}

	f := &Formatter{Limit: 500}
	rec := record("msg")
	rec.Context = nested
	rec.HasContext = true

	got, err := f.Format(rec)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) > 500 {
		t.Errorf("expected at most 500 bytes, got %d", len(got))
	}
	if !strings.Contains(got, "child") {
		t.Errorf("expected a partially rendered context, got %q", got)
	}
}

// randomValue builds an arbitrary nested structure for the budget property.
func randomValue(rng *rand.Rand, depth int) any {
	if depth <= 0 {
		switch rng.Intn(4) {
		case 0:
			return rng.Int63()
		case 1:
			return strings.Repeat("s", rng.Intn(50))
		case 2:
			return rng.Float64()
		default:
			return rng.Intn(2) == 0
		}
	}
	switch rng.Intn(3) {
	case 0:
		n := rng.Intn(5)
		out := make([]any, n)
		for i := range out {
			out[i] = randomValue(rng, depth-1)
		}
		return out
	case 1:
		n := rng.Intn(5)
		out := make(map[string]any, n)
		for i := 0; i < n; i++ {
			out[strings.Repeat("k", i+1)] = randomValue(rng, depth-1)
		}
		return out
	default:
		return randomValue(rng, 0)
	}
}

func TestFormatBudgetProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	limits := []int{64, 128, 256, 1024}

	for i := 0; i < 200; i++ {
		limit := limits[i%len(limits)]
		f := &Formatter{Limit: limit}
		rec := record("property probe")
		rec.Context = randomValue(rng, rng.Intn(8))
		rec.HasContext = true

		got, err := f.Format(rec)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) > limit {
			t.Fatalf("iteration %d: line of %d bytes exceeds limit %d: %q", i, len(got), limit, got)
		}
		if strings.ContainsAny(got, "\n\r") {
			t.Fatalf("iteration %d: line contains a line break: %q", i, got)
		}
	}
}
