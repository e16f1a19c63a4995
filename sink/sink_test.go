package sink

import (
	"bytes"
	"testing"

	"github.com/jackstouffer/gofound/view"
)

func TestViewSinkShortWriteOnFill(t *testing.T) {
	s := NewViewSink(make([]byte, 4))
	n, err := s.Write(view.FromString("hello"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 4 {
		t.Fatalf("n = %d, want 4", n)
	}
	if s.Written().String() != "hell" {
		t.Fatalf("written = %q", s.Written().String())
	}
}

func TestViewSinkUnusableOnceFull(t *testing.T) {
	s := NewViewSink(make([]byte, 2))
	s.Write(view.FromString("ab"))
	n, err := s.Write(view.FromString("c"))
	if n != 0 || err != ErrUnusable {
		t.Fatalf("Write on full sink = (%d, %v), want (0, ErrUnusable)", n, err)
	}
}

func TestViewSinkEmptyWriteIsNoop(t *testing.T) {
	s := NewViewSink(make([]byte, 4))
	n, err := s.Write(nil)
	if n != 0 || err != nil {
		t.Fatalf("empty write = (%d, %v), want (0, nil)", n, err)
	}
}

func TestFileSinkWritesThroughBuffer(t *testing.T) {
	var buf bytes.Buffer
	f := NewFileSink(&buf)
	n, err := f.Write(view.FromString("payload"))
	if err != nil || n != len("payload") {
		t.Fatalf("Write = (%d, %v)", n, err)
	}
	if err := f.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if buf.String() != "payload" {
		t.Fatalf("buf = %q", buf.String())
	}
}
