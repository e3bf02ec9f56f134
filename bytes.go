// Immutable shared byte buffers.
//
// Bytes is the raw-content counterpart to Source: a cheaply copyable
// handle over one backing array. Copying a Bytes is O(1) and shares the
// array, which is what lets cache cells hand the same loaded content to
// every caller in an epoch without reallocating.
package vellum

import "bytes"

// Bytes is an immutable view over a byte buffer. The zero value is an
// empty buffer.
type Bytes struct {
	data []byte
}

// NewBytes wraps data without copying. The caller hands over ownership
// and must not mutate data afterwards.
func NewBytes(data []byte) Bytes {
	return Bytes{data: data}
}

// Len returns the buffer length.
func (b Bytes) Len() int {
	return len(b.data)
}

// Bytes returns the underlying buffer. Callers must treat it as
// read-only; it is shared by every copy of this value.
func (b Bytes) Bytes() []byte {
	return b.data
}

// String returns the buffer decoded as a string.
func (b Bytes) String() string {
	return string(b.data)
}

// Reader returns a fresh reader over the buffer.
func (b Bytes) Reader() *bytes.Reader {
	return bytes.NewReader(b.data)
}

// Equal reports whether two buffers hold identical content.
func (b Bytes) Equal(other Bytes) bool {
	return bytes.Equal(b.data, other.data)
}
