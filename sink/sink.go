// Package sink defines the universal output-sink contract shared by the
// format engine, the string builder, and any byte-producing code in this
// module that needs to write to an unknown consumer.
package sink

import (
	"bufio"
	"errors"
	"io"

	"github.com/jackstouffer/gofound/view"
)

// ErrUnusable is returned by Write when the remainder of the logical
// output this sink represents can no longer accept bytes (for example, a
// fixed-size view sink that has completely filled).
var ErrUnusable = errors.New("sink: remainder of output is unusable")

// Sink is a write function bound to an opaque target. Implementations
// must treat an empty write as a no-op returning (0, nil), must accept
// arbitrarily large writes by chunking internally as needed, and must
// return either the number of bytes accepted or an error meaning the
// remainder of the output is unusable. Retries, backpressure, and the
// lifetime of the underlying resource are the implementer's concern; a
// Sink is only valid for as long as its target remains valid.
type Sink interface {
	Write(v view.View) (int, error)
}

// ViewSink writes into a fixed-capacity byte view, advancing its internal
// cursor and returning a short write once the view fills rather than an
// error — only a write issued when the view is already completely full
// returns ErrUnusable.
type ViewSink struct {
	buf []byte
	pos int
}

// NewViewSink wraps buf as a Sink. Writes land directly in buf starting
// at offset 0.
func NewViewSink(buf []byte) *ViewSink {
	return &ViewSink{buf: buf}
}

// Write implements Sink.
func (s *ViewSink) Write(v view.View) (int, error) {
	if len(v) == 0 {
		return 0, nil
	}
	remaining := len(s.buf) - s.pos
	if remaining <= 0 {
		return 0, ErrUnusable
	}
	n := len(v)
	if n > remaining {
		n = remaining
	}
	copy(s.buf[s.pos:s.pos+n], v[:n])
	s.pos += n
	return n, nil
}

// Written returns the view of everything written so far.
func (s *ViewSink) Written() view.View {
	return view.New(s.buf[:s.pos])
}

// FileSink writes through a buffered wrapper around an io.Writer, the
// idiomatic Go analogue of "buffered writes via the host C library".
type FileSink struct {
	w *bufio.Writer
}

// NewFileSink wraps w in a buffered writer. The caller remains
// responsible for the lifetime of w and for calling Flush when done.
func NewFileSink(w io.Writer) *FileSink {
	return &FileSink{w: bufio.NewWriter(w)}
}

// Write implements Sink.
func (f *FileSink) Write(v view.View) (int, error) {
	if len(v) == 0 {
		return 0, nil
	}
	n, err := f.w.Write(v)
	if err != nil {
		return n, err
	}
	return n, nil
}

// Flush pushes any buffered bytes to the underlying writer.
func (f *FileSink) Flush() error {
	return f.w.Flush()
}
