package format

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/jackstouffer/gofound/view"
)

// toInt64 coerces a concretely-typed numeric argument to int64.
func toInt64(a any) (int64, bool) {
	switch v := a.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	case uintptr:
		return int64(v), true
	default:
		return 0, false
	}
}

// toUint64 coerces a concretely-typed numeric argument to uint64,
// preserving the bit pattern of signed negative values the way the
// u/o/x/X/b verbs expect.
func toUint64(a any) (uint64, bool) {
	switch v := a.(type) {
	case int:
		return uint64(int64(v)), true
	case int8:
		return uint64(int64(v)), true
	case int16:
		return uint64(int64(v)), true
	case int32:
		return uint64(int64(v)), true
	case int64:
		return uint64(v), true
	case uint:
		return uint64(v), true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint64:
		return v, true
	case uintptr:
		return uint64(v), true
	default:
		return 0, false
	}
}

func toFloat64(a any) (float64, bool) {
	switch v := a.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

// renderInteger handles d, i, u, o, x, X, b.
func (st *state) renderInteger(sp verbSpec) error {
	a, ok := st.nextArg()
	if !ok {
		return st.emit(view.FromString("(ERROR)"))
	}

	var digits string
	negative := false

	switch sp.verb {
	case 'd', 'i':
		n, ok := toInt64(a)
		if !ok {
			return st.emit(view.FromString("(ERROR)"))
		}
		if n < 0 {
			negative = true
			digits = strconv.FormatUint(uint64(-n), 10)
		} else {
			digits = strconv.FormatUint(uint64(n), 10)
		}
	case 'u':
		n, ok := toUint64(a)
		if !ok {
			return st.emit(view.FromString("(ERROR)"))
		}
		digits = strconv.FormatUint(n, 10)
	case 'o':
		n, ok := toUint64(a)
		if !ok {
			return st.emit(view.FromString("(ERROR)"))
		}
		digits = strconv.FormatUint(n, 8)
	case 'x':
		n, ok := toUint64(a)
		if !ok {
			return st.emit(view.FromString("(ERROR)"))
		}
		digits = strconv.FormatUint(n, 16)
	case 'X':
		n, ok := toUint64(a)
		if !ok {
			return st.emit(view.FromString("(ERROR)"))
		}
		digits = strings.ToUpper(strconv.FormatUint(n, 16))
	case 'b':
		n, ok := toUint64(a)
		if !ok {
			return st.emit(view.FromString("(ERROR)"))
		}
		digits = strconv.FormatUint(n, 2)
	}

	if sp.hasPrecision {
		for len(digits) < sp.precision {
			digits = "0" + digits
		}
		if sp.precision == 0 && digits == "0" {
			digits = ""
		}
	}

	if sp.thousands {
		digits = groupThousands(digits, st.p.thousandsSep)
	}

	var sign string
	if negative {
		sign = "-"
	} else if sp.plus {
		sign = "+"
	} else if sp.space {
		sign = " "
	}

	body := sign + digits
	if sp.siLevel > 0 {
		if n, ok := toInt64(a); ok {
			body = sign + applySISuffix(float64(absInt64(n)), sp.siLevel, st.p.decimalSep)
		}
	}

	return st.emitPaddedNumeric(sp, sign, body[len(sign):])
}

func absInt64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// emitPaddedNumeric pads a numeric rendering, using zero-fill between the
// sign and the digits when the '0' flag is set (matching printf, which
// zero-pads after the sign rather than before it).
func (st *state) emitPaddedNumeric(sp verbSpec, sign, digits string) error {
	total := len(sign) + len(digits)
	pad := sp.width - total
	if pad <= 0 {
		return st.emit(view.FromString(sign + digits))
	}
	if sp.minus {
		padding := spaces(pad)
		return st.emit(view.FromString(sign + digits + padding))
	}
	if sp.zero {
		padding := zeros(pad)
		return st.emit(view.FromString(sign + padding + digits))
	}
	padding := spaces(pad)
	return st.emit(view.FromString(padding + sign + digits))
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

func zeros(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '0'
	}
	return string(b)
}

// groupThousands inserts sep every three digits from the right of an
// all-digit string (no sign, no decimal point).
func groupThousands(digits string, sep byte) string {
	if len(digits) <= 3 {
		return digits
	}
	n := len(digits)
	lead := n % 3
	if lead == 0 {
		lead = 3
	}
	out := make([]byte, 0, n+n/3)
	out = append(out, digits[:lead]...)
	for i := lead; i < n; i += 3 {
		out = append(out, sep)
		out = append(out, digits[i:i+3]...)
	}
	return string(out)
}

// renderFloat handles f, e, g, a.
func (st *state) renderFloat(sp verbSpec) error {
	a, ok := st.nextArg()
	if !ok {
		return st.emit(view.FromString("(ERROR)"))
	}
	v, ok := toFloat64(a)
	if !ok {
		return st.emit(view.FromString("(ERROR)"))
	}

	prec := 6
	if sp.hasPrecision {
		prec = sp.precision
	}

	var body string
	switch sp.verb {
	case 'f':
		body = strconv.FormatFloat(v, 'f', prec, 64)
	case 'e':
		body = strconv.FormatFloat(v, 'e', prec, 64)
	case 'a':
		if sp.hasPrecision {
			body = strconv.FormatFloat(v, 'x', prec, 64)
		} else {
			body = strconv.FormatFloat(v, 'x', -1, 64)
		}
	case 'g':
		p := prec
		if p == 0 {
			p = 1
		}
		body = strconv.FormatFloat(v, 'g', p, 64)
	}

	sign := ""
	if len(body) > 0 && body[0] == '-' {
		sign = "-"
		body = body[1:]
	} else if sp.plus {
		sign = "+"
	} else if sp.space {
		sign = " "
	}

	if sp.thousands && (sp.verb == 'f' || sp.verb == 'g') {
		body = groupFloatThousands(body, st.p.thousandsSep)
	}
	if st.p.decimalSep != '.' {
		body = replaceByte(body, '.', st.p.decimalSep)
	}

	return st.emitPaddedNumeric(sp, sign, body)
}

func replaceByte(s string, from, to byte) string {
	b := []byte(s)
	for i := range b {
		if b[i] == from {
			b[i] = to
		}
	}
	return string(b)
}

// groupFloatThousands applies thousands grouping to the integer part of a
// decimal float rendering, leaving the fractional part untouched.
func groupFloatThousands(s string, sep byte) string {
	dot := -1
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			dot = i
			break
		}
	}
	if dot < 0 {
		return groupThousands(s, sep)
	}
	return groupThousands(s[:dot], sep) + s[dot:]
}

// renderPointer handles %p.
func (st *state) renderPointer(sp verbSpec) error {
	a, ok := st.nextArg()
	if !ok {
		return st.emit(view.FromString("(ERROR)"))
	}
	rv := reflect.ValueOf(a)
	switch rv.Kind() {
	case reflect.Ptr, reflect.UnsafePointer, reflect.Chan, reflect.Map, reflect.Slice, reflect.Func:
		if rv.IsNil() {
			return st.emitPadded(sp, "0x0")
		}
		return st.emitPadded(sp, "0x"+strconv.FormatUint(uint64(rv.Pointer()), 16))
	default:
		return st.emit(view.FromString("(ERROR)"))
	}
}

// siSuffixesSI are the decimal (1000-based) unit prefixes used by the
// single-'$' flag.
var siSuffixesSI = []string{"", "k", "M", "G", "T", "P", "E"}

// siSuffixesIEC are the binary (1024-based) unit prefixes used by the
// double-'$$' flag.
var siSuffixesIEC = []string{"", "Ki", "Mi", "Gi", "Ti", "Pi", "Ei"}

// applySISuffix renders v with a scaled unit suffix. level 1 uses SI
// (1000-based, e.g. "1.2k"); level 2 uses IEC (1024-based, e.g.
// "1.2Ki"); level 3 uses SI scaling with a trailing byte-count "B"
// (e.g. "1.2kB"), the humanized-byte-count convention.
func applySISuffix(v float64, level int, decimalSep byte) string {
	base := 1000.0
	table := siSuffixesSI
	suffixTail := ""
	switch level {
	case 2:
		base = 1024.0
		table = siSuffixesIEC
	case 3:
		base = 1000.0
		table = siSuffixesSI
		suffixTail = "B"
	}

	idx := 0
	for v >= base && idx < len(table)-1 {
		v /= base
		idx++
	}
	out := strconv.FormatFloat(v, 'f', 1, 64)
	if decimalSep != '.' {
		out = replaceByte(out, '.', decimalSep)
	}
	return out + table[idx] + suffixTail
}

