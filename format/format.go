// Package format implements a printf-superset format engine that writes
// into any sink.Sink: integer, floating-point, string, character,
// pointer, length-capture, and byte-view verbs, with width/precision via
// '*', thousands grouping, and SI/IEC unit-suffix flags.
//
// Invalid verbs or arguments render as the literal text "(ERROR)" rather
// than panicking, matching the error-handling policy the rest of this
// module follows: formatting never partially corrupts output, it either
// succeeds or emits a visible marker for the offending verb and keeps
// going.
package format

import (
	"errors"
	"strconv"
	"unicode/utf8"
	"unsafe"

	"github.com/jackstouffer/gofound/alloc"
	"github.com/jackstouffer/gofound/sink"
	"github.com/jackstouffer/gofound/view"
)

// Printer carries the per-instance configuration the format engine needs:
// the thousands-grouping and decimal separators. These are deliberately
// instance-local rather than process-global or goroutine-local statics —
// see DESIGN.md for why that resolves the spec's call to avoid a
// process-wide mutable configuration.
type Printer struct {
	thousandsSep byte
	decimalSep   byte
}

// Option configures a Printer.
type Option func(*Printer)

// WithThousandsSep sets the byte inserted between groups of three digits
// when the `'` flag is used.
func WithThousandsSep(b byte) Option {
	return func(p *Printer) { p.thousandsSep = b }
}

// WithDecimalSep sets the byte used in place of '.' before the fractional
// part of a floating-point conversion.
func WithDecimalSep(b byte) Option {
	return func(p *Printer) { p.decimalSep = b }
}

// New creates a Printer with the default separators (',' and '.').
func New(opts ...Option) *Printer {
	p := &Printer{thousandsSep: ',', decimalSep: '.'}
	for _, o := range opts {
		o(p)
	}
	return p
}

// defaultPrinter backs the package-level Fprintf/Sprintf convenience
// functions.
var defaultPrinter = New()

// Fprintf formats using the default Printer and writes to s.
func Fprintf(s sink.Sink, format string, args ...any) (int, error) {
	return defaultPrinter.Fprintf(s, format, args...)
}

// Sprintf formats using the default Printer and returns the result as a
// newly allocated view from a.
func Sprintf(a alloc.Allocator, format string, args ...any) (view.View, error) {
	return defaultPrinter.Sprintf(a, format, args...)
}

// Sprintf formats into a fresh view.View, backed by a scratch
// builder-style accumulation and then copied once into a single
// allocation from a — the "allocate a result view" convenience the spec
// documents as optional on top of the core sink-oriented engine.
func (p *Printer) Sprintf(a alloc.Allocator, format string, args ...any) (view.View, error) {
	var buf []byte
	collector := collectorSink{buf: &buf}
	if _, err := p.Fprintf(&collector, format, args...); err != nil {
		return nil, err
	}
	if len(buf) == 0 {
		return nil, nil
	}
	ptr := a.Allocate(int64(len(buf)), 8, false)
	if ptr == nil {
		return nil, errExhausted
	}
	out := unsafe.Slice((*byte)(ptr), len(buf))
	copy(out, buf)
	return view.New(out), nil
}

// Fprintf formats according to format, consuming args left to right, and
// writes the result to s. It returns the total number of bytes written
// (as accepted by s) and the first error s.Write returns, if any.
func (p *Printer) Fprintf(s sink.Sink, format string, args ...any) (int, error) {
	st := &state{p: p, s: s, args: args}
	i := 0
	for i < len(format) {
		c := format[i]
		if c != '%' {
			j := i + 1
			for j < len(format) && format[j] != '%' {
				j++
			}
			if err := st.emit(view.FromString(format[i:j])); err != nil {
				return st.total, err
			}
			i = j
			continue
		}
		// c == '%'
		if i+1 < len(format) && format[i+1] == '%' {
			if err := st.emit(view.View{'%'}); err != nil {
				return st.total, err
			}
			i += 2
			continue
		}
		spec, next, ok := parseSpec(format, i, st)
		if !ok {
			if err := st.emit(view.FromString("(ERROR)")); err != nil {
				return st.total, err
			}
			i = next
			continue
		}
		if err := st.render(spec); err != nil {
			return st.total, err
		}
		i = next
	}
	return st.total, nil
}

// errExhausted is returned by Sprintf when the supplied allocator cannot
// satisfy the single allocation needed to materialize the result.
var errExhausted = errors.New("format: allocator exhausted")

// collectorSink is a Sink that appends every write into a growable slice,
// used internally by Sprintf before the single final allocator copy.
type collectorSink struct {
	buf *[]byte
}

func (c *collectorSink) Write(v view.View) (int, error) {
	*c.buf = append(*c.buf, v...)
	return len(v), nil
}

// state tracks cumulative output for %n and threads the sink/printer
// through verb rendering.
type state struct {
	p     *Printer
	s     sink.Sink
	args  []any
	argAt int
	total int
}

func (st *state) emit(v view.View) error {
	if len(v) == 0 {
		return nil
	}
	n, err := st.s.Write(v)
	st.total += n
	if err != nil {
		return err
	}
	return nil
}

func (st *state) nextArg() (any, bool) {
	if st.argAt >= len(st.args) {
		return nil, false
	}
	a := st.args[st.argAt]
	st.argAt++
	return a, true
}

// verbSpec is the parsed form of one %-conversion.
type verbSpec struct {
	minus, zero, plus, space, thousands bool
	siLevel                             int // 0 none, 1 '$', 2 '$$', 3 '$$$'
	width                               int
	hasWidth                            bool
	precision                           int
	hasPrecision                        bool
	verb                                byte
}

// parseSpec parses the conversion starting at format[start] == '%'. It
// returns the parsed spec, the index just past the conversion, and
// whether parsing succeeded (a malformed conversion renders as
// "(ERROR)" and consumes through the offending byte).
func parseSpec(format string, start int, st *state) (verbSpec, int, bool) {
	i := start + 1
	var sp verbSpec

	for i < len(format) {
		switch format[i] {
		case '-':
			sp.minus = true
		case '0':
			sp.zero = true
		case '+':
			sp.plus = true
		case ' ':
			sp.space = true
		case '\'':
			sp.thousands = true
		case '$':
			sp.siLevel++
		default:
			goto doneFlags
		}
		i++
	}
doneFlags:

	if i < len(format) && format[i] == '*' {
		if a, ok := st.nextArg(); ok {
			if w, ok := toInt64(a); ok {
				sp.hasWidth = true
				sp.width = int(w)
				if sp.width < 0 {
					sp.minus = true
					sp.width = -sp.width
				}
			}
		}
		i++
	} else {
		digitsStart := i
		for i < len(format) && format[i] >= '0' && format[i] <= '9' {
			i++
		}
		if i > digitsStart {
			sp.hasWidth = true
			sp.width, _ = strconv.Atoi(format[digitsStart:i])
		}
	}

	if i < len(format) && format[i] == '.' {
		i++
		if i < len(format) && format[i] == '*' {
			if a, ok := st.nextArg(); ok {
				if pr, ok := toInt64(a); ok {
					sp.hasPrecision = true
					sp.precision = int(pr)
				}
			}
			i++
		} else {
			digitsStart := i
			for i < len(format) && format[i] >= '0' && format[i] <= '9' {
				i++
			}
			sp.hasPrecision = true
			if i > digitsStart {
				sp.precision, _ = strconv.Atoi(format[digitsStart:i])
			}
		}
	}

	// Length modifiers: accepted for grammar compatibility, no behavior
	// change (Go arguments are already concretely typed).
	for i < len(format) {
		switch {
		case hasPrefixAt(format, i, "hh"), hasPrefixAt(format, i, "ll"), hasPrefixAt(format, i, "I32"), hasPrefixAt(format, i, "I64"):
			i += lenOfModAt(format, i)
		case format[i] == 'h' || format[i] == 'l' || format[i] == 'j' || format[i] == 'z':
			i++
		default:
			goto doneMods
		}
	}
doneMods:

	if i >= len(format) {
		return sp, i, false
	}
	switch format[i] {
	case 'd', 'i', 'u', 'o', 'x', 'X', 'b', 'f', 'e', 'g', 'a', 's', 'c', 'p', 'n', 'y':
		sp.verb = format[i]
		return sp, i + 1, true
	default:
		return sp, i + 1, false
	}
}

func hasPrefixAt(s string, i int, prefix string) bool {
	return i+len(prefix) <= len(s) && s[i:i+len(prefix)] == prefix
}

func lenOfModAt(s string, i int) int {
	for _, p := range []string{"hh", "ll", "I32", "I64"} {
		if hasPrefixAt(s, i, p) {
			return len(p)
		}
	}
	return 1
}

// render dispatches a parsed verb, consuming arguments as needed, and
// writes the formatted text to st.s.
func (st *state) render(sp verbSpec) error {
	switch sp.verb {
	case 'n':
		a, ok := st.nextArg()
		if !ok {
			return st.emit(view.FromString("(ERROR)"))
		}
		if p, ok := a.(*int); ok {
			*p = st.total
			return nil
		}
		if p, ok := a.(*int64); ok {
			*p = int64(st.total)
			return nil
		}
		return st.emit(view.FromString("(ERROR)"))
	case 'd', 'i', 'u', 'o', 'x', 'X', 'b':
		return st.renderInteger(sp)
	case 'f', 'e', 'g', 'a':
		return st.renderFloat(sp)
	case 's':
		return st.renderString(sp)
	case 'c':
		return st.renderChar(sp)
	case 'p':
		return st.renderPointer(sp)
	case 'y':
		return st.renderView(sp)
	default:
		return st.emit(view.FromString("(ERROR)"))
	}
}

func (st *state) renderChar(sp verbSpec) error {
	a, ok := st.nextArg()
	if !ok {
		return st.emit(view.FromString("(ERROR)"))
	}
	var r rune
	switch v := a.(type) {
	case rune:
		r = v
	case byte:
		r = rune(v)
	case int:
		r = rune(v)
	default:
		return st.emit(view.FromString("(ERROR)"))
	}
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	return st.emitPadded(sp, string(buf[:n]))
}

func (st *state) renderView(sp verbSpec) error {
	a, ok := st.nextArg()
	if !ok {
		return st.emit(view.FromString("(ERROR)"))
	}
	var v view.View
	switch t := a.(type) {
	case view.View:
		v = t
	case []byte:
		v = view.View(t)
	case string:
		v = view.FromString(t)
	default:
		return st.emit(view.FromString("(ERROR)"))
	}
	if sp.hasPrecision && sp.precision < len(v) {
		v = v[:sp.precision]
	}
	return st.emitPadded(sp, v.String())
}

func (st *state) renderString(sp verbSpec) error {
	a, ok := st.nextArg()
	if !ok {
		return st.emit(view.FromString("(ERROR)"))
	}
	var s string
	switch t := a.(type) {
	case string:
		s = t
	case view.View:
		s = t.String()
	case []byte:
		s = string(t)
	case fmtStringer:
		s = t.String()
	default:
		return st.emit(view.FromString("(ERROR)"))
	}
	if sp.hasPrecision && sp.precision < len(s) {
		s = s[:sp.precision]
	}
	return st.emitPadded(sp, s)
}

type fmtStringer interface {
	String() string
}

// emitPadded applies width/left-right justification and writes s.
func (st *state) emitPadded(sp verbSpec, s string) error {
	pad := sp.width - len(s)
	if pad <= 0 {
		return st.emit(view.FromString(s))
	}
	fill := byte(' ')
	if sp.zero && !sp.minus {
		fill = '0'
	}
	padding := make([]byte, pad)
	for i := range padding {
		padding[i] = fill
	}
	if sp.minus {
		if err := st.emit(view.FromString(s)); err != nil {
			return err
		}
		return st.emit(view.View(padding))
	}
	if err := st.emit(view.View(padding)); err != nil {
		return err
	}
	return st.emit(view.FromString(s))
}
