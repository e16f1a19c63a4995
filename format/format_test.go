package format

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/jackstouffer/gofound/alloc"
)

func render(t *testing.T, f string, args ...any) string {
	t.Helper()
	var buf []byte
	s := &collectorSink{buf: &buf}
	if _, err := Fprintf(s, f, args...); err != nil {
		t.Fatalf("Fprintf(%q): %v", f, err)
	}
	return string(buf)
}

// Concrete scenario: -0.0 via %f renders "-0.000000".
func TestNegativeZeroFloat(t *testing.T) {
	if got := render(t, "%f", math.Copysign(0, -1)); got != "-0.000000" {
		t.Fatalf("%%f of -0.0 = %q, want %q", got, "-0.000000")
	}
}

// Concrete scenario: %a round-trips a value to "0x1.fedcbap+98".
func TestHexFloatRoundTrip(t *testing.T) {
	const want = "0x1.fedcbap+98"
	v, err := strconv.ParseFloat(want, 64)
	if err != nil {
		t.Fatalf("parse %q: %v", want, err)
	}
	if got := render(t, "%a", v); got != want {
		t.Fatalf("%%a = %q, want %q", got, want)
	}
}

// Concrete scenario: "% .3g" of 3.704 renders " 3.7".
func TestSpaceFlagGeneralFloat(t *testing.T) {
	if got := render(t, "% .3g", 3.704); got != " 3.7" {
		t.Fatalf("%% .3g of 3.704 = %q, want %q", got, " 3.7")
	}
}

func TestIntegerVerbs(t *testing.T) {
	cases := []struct {
		format string
		arg    any
		want   string
	}{
		{"%d", -42, "-42"},
		{"%u", uint(42), "42"},
		{"%o", 8, "10"},
		{"%x", 255, "ff"},
		{"%X", 255, "FF"},
		{"%b", 5, "101"},
		{"%05d", 42, "00042"},
		{"%-5d|", 42, "42   |"},
		{"%+d", 42, "+42"},
	}
	for _, c := range cases {
		if got := render(t, c.format, c.arg); got != c.want {
			t.Errorf("%s of %v = %q, want %q", c.format, c.arg, got, c.want)
		}
	}
}

func TestThousandsGrouping(t *testing.T) {
	if got := render(t, "%'d", 1234567); got != "1,234,567" {
		t.Fatalf("%%'d = %q, want %q", got, "1,234,567")
	}
}

func TestStarWidthAndPrecision(t *testing.T) {
	if got := render(t, "%*d", 6, 42); got != "    42" {
		t.Fatalf("%%*d = %q", got)
	}
	if got := render(t, "%.*f", 2, 3.14159); got != "3.14" {
		t.Fatalf("%%.*f = %q", got)
	}
}

// %n captures the cumulative byte count written so far.
func TestNVerbCapturesCumulativeCount(t *testing.T) {
	var n int
	got := render(t, "abc%ndef", &n)
	if n != 3 {
		t.Fatalf("n = %d, want 3", n)
	}
	if got != "abcdef" {
		t.Fatalf("output = %q", got)
	}
}

// %y over a view must equal %.*s over the same bytes.
func TestYVerbMatchesPrecisionString(t *testing.T) {
	data := []byte("hello world")
	a := render(t, "%y", data)
	b := render(t, "%.*s", len(data), string(data))
	if a != b {
		t.Fatalf("%%y = %q, %%.*s = %q, want equal", a, b)
	}
}

func TestPercentLiteralEscape(t *testing.T) {
	if got := render(t, "100%%"); got != "100%" {
		t.Fatalf("escaped percent = %q", got)
	}
}

func TestInvalidVerbRendersError(t *testing.T) {
	if got := render(t, "%z"); got != "(ERROR)" {
		t.Fatalf("invalid verb = %q, want (ERROR)", got)
	}
}

func TestStringPrecisionTruncates(t *testing.T) {
	if got := render(t, "%.3s", "abcdef"); got != "abc" {
		t.Fatalf("%%.3s = %q", got)
	}
}

func TestCustomSeparators(t *testing.T) {
	p := New(WithThousandsSep(' '), WithDecimalSep(','))
	var buf []byte
	s := &collectorSink{buf: &buf}
	if _, err := p.Fprintf(s, "%'.2f", 1234567.891); err != nil {
		t.Fatalf("Fprintf: %v", err)
	}
	got := string(buf)
	if !strings.Contains(got, " ") || !strings.Contains(got, ",89") {
		t.Fatalf("custom separators not applied: %q", got)
	}
}

func TestCharVerb(t *testing.T) {
	if got := render(t, "%c", 'A'); got != "A" {
		t.Fatalf("%%c = %q", got)
	}
}

func TestSprintfAllocatesView(t *testing.T) {
	a := alloc.NewArena(make([]byte, 4096))
	v, err := Sprintf(a, "%s has %d items", "cart", 3)
	if err != nil {
		t.Fatalf("Sprintf: %v", err)
	}
	if v.String() != "cart has 3 items" {
		t.Fatalf("Sprintf = %q", v.String())
	}
}
