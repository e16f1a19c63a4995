package cache

import "testing"

func TestPutGetRoundTrip(t *testing.T) {
	c := New()
	if err := c.Put("a", []byte("1")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	v, err := c.Get("a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(v) != "1" {
		t.Fatalf("Get(a) = %q, want %q", v, "1")
	}
}

func TestGetMissingKeyReturnsErrNotFound(t *testing.T) {
	c := New()
	if _, err := c.Get("missing"); err != ErrNotFound {
		t.Fatalf("Get(missing) err = %v, want ErrNotFound", err)
	}
}

func TestPutCopiesCallerBuffer(t *testing.T) {
	c := New()
	buf := []byte("original")
	c.Put("k", buf)
	buf[0] = 'X'
	v, _ := c.Get("k")
	if string(v) != "original" {
		t.Fatalf("Get(k) = %q, want %q (Put must copy, not alias)", v, "original")
	}
}
