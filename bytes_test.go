package vellum

import (
	"io"
	"testing"
)

func TestBytesSharing(t *testing.T) {
	data := []byte("shared buffer")
	a := NewBytes(data)
	b := a // O(1) copy

	if !a.Equal(b) {
		t.Errorf("copies compare unequal")
	}
	if &a.Bytes()[0] != &b.Bytes()[0] {
		t.Errorf("copy does not share the backing array")
	}
}

func TestBytesAccessors(t *testing.T) {
	b := NewBytes([]byte("abc"))
	if b.Len() != 3 {
		t.Errorf("Len = %d", b.Len())
	}
	if b.String() != "abc" {
		t.Errorf("String = %q", b.String())
	}
	read, err := io.ReadAll(b.Reader())
	if err != nil {
		t.Fatalf("Reader: %v", err)
	}
	if string(read) != "abc" {
		t.Errorf("Reader yielded %q", read)
	}
}

func TestBytesZeroValue(t *testing.T) {
	var b Bytes
	if b.Len() != 0 {
		t.Errorf("zero value Len = %d", b.Len())
	}
	if !b.Equal(NewBytes(nil)) {
		t.Errorf("zero value differs from empty buffer")
	}
}
