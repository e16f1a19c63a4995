// Package view provides a bounds-checked byte range primitive used
// throughout the rest of this module as the common currency for "some
// bytes, owned by someone else."
//
// A View carries no lifetime of its own: ownership of the underlying bytes
// belongs to whoever handed the View out. Comparisons in this package are
// not constant-time and must not be used for cryptographic equality.
package view

import (
	"bytes"
	"unsafe"
)

// View is a byte range. A nil View denotes "absent", matching the zeroed
// view convention from the spec this package implements.
type View []byte

// New wraps a raw byte slice as a View without copying.
func New(b []byte) View {
	return View(b)
}

// FromString wraps a string's bytes as a View without copying. The
// returned View must not be mutated, since Go strings are immutable and
// this aliases the string's backing array.
func FromString(s string) View {
	return View(unsafeStringToBytes(s))
}

// String returns a copy of the view's bytes as a string.
func (v View) String() string {
	return string(v)
}

// Len returns the number of bytes in the view.
func (v View) Len() int {
	return len(v)
}

// Slice returns the sub-range [start, end) of v. It panics if the range is
// out of bounds, matching the bounds-assertion contract of the original.
func (v View) Slice(start, end int) View {
	return v[start:end]
}

// Advance returns v with the first n bytes removed. It panics if n is out
// of range.
func (v View) Advance(n int) View {
	return v[n:]
}

// Index returns the index of the first occurrence of needle in v, or -1.
func (v View) Index(needle View) int {
	return bytes.Index(v, needle)
}

// LastIndex returns the index of the last occurrence of needle in v, or -1.
func (v View) LastIndex(needle View) int {
	return bytes.LastIndex(v, needle)
}

// IndexByte returns the index of the first occurrence of b in v, or -1.
func (v View) IndexByte(b byte) int {
	return bytes.IndexByte(v, b)
}

// LastIndexByte returns the index of the last occurrence of b in v, or -1.
func (v View) LastIndexByte(b byte) int {
	return bytes.LastIndexByte(v, b)
}

// Count returns the number of non-overlapping occurrences of b in v.
func (v View) Count(b byte) int {
	n := 0
	for _, c := range v {
		if c == b {
			n++
		}
	}
	return n
}

// HasPrefix reports whether v begins with prefix.
func (v View) HasPrefix(prefix View) bool {
	return bytes.HasPrefix(v, prefix)
}

// HasSuffix reports whether v ends with suffix.
func (v View) HasSuffix(suffix View) bool {
	return bytes.HasSuffix(v, suffix)
}

// EqualFold reports whether v and other are equal under ASCII case folding.
// This is strictly byte-oriented; it does not perform Unicode case folding.
func (v View) EqualFold(other View) bool {
	if len(v) != len(other) {
		return false
	}
	for i := range v {
		if asciiLower(v[i]) != asciiLower(other[i]) {
			return false
		}
	}
	return true
}

// ToLowerASCII lowercases v in place, leaving non-ASCII bytes untouched.
func (v View) ToLowerASCII() {
	for i, c := range v {
		v[i] = asciiLower(c)
	}
}

func asciiLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// ParseInt32 parses a leading, optionally-signed decimal integer from v and
// returns the value along with the number of bytes consumed. consumed is 0
// if v does not begin with a valid integer.
func (v View) ParseInt32() (value int32, consumed int) {
	i := 0
	neg := false
	if i < len(v) && (v[i] == '+' || v[i] == '-') {
		neg = v[i] == '-'
		i++
	}
	start := i
	var n int64
	for i < len(v) && v[i] >= '0' && v[i] <= '9' {
		n = n*10 + int64(v[i]-'0')
		if n > 1<<32 {
			n = 1 << 32
		}
		i++
	}
	if i == start {
		return 0, 0
	}
	if neg {
		n = -n
	}
	if n > int64(^uint32(0)>>1) {
		n = int64(^uint32(0) >> 1)
	}
	if n < -int64(^uint32(0)>>1)-1 {
		n = -int64(^uint32(0)>>1) - 1
	}
	return int32(n), i
}

// TrimLeft strips leading ASCII whitespace from v.
func (v View) TrimLeft() View {
	i := 0
	for i < len(v) && isASCIISpace(v[i]) {
		i++
	}
	return v[i:]
}

// TrimRight strips trailing ASCII whitespace from v.
func (v View) TrimRight() View {
	j := len(v)
	for j > 0 && isASCIISpace(v[j-1]) {
		j--
	}
	return v[:j]
}

// Trim strips leading and trailing ASCII whitespace from v.
func (v View) Trim() View {
	return v.TrimLeft().TrimRight()
}

func isASCIISpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

// Base returns the final path component of v, scanning for the last '/'.
func (v View) Base() View {
	if i := v.LastIndexByte('/'); i >= 0 {
		return v[i+1:]
	}
	return v
}

// Ext returns the extension of v (including the leading '.'), scanning for
// the last '.' after the last '/'. It returns nil if there is no extension.
func (v View) Ext() View {
	base := v.Base()
	if i := base.LastIndexByte('.'); i > 0 {
		return base[i:]
	}
	return nil
}

// unsafeStringToBytes aliases a string's backing array without copying.
// The caller of FromString must not mutate the returned View, since Go
// strings are immutable by language contract.
func unsafeStringToBytes(s string) []byte {
	if s == "" {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
