// Decoded source text with identity-preserving updates.
//
// A Source is a versioned, owned text buffer tied to one FileID. When a
// file's content changes between compilations, the existing Source is
// updated in place rather than replaced: the compiler's incremental
// caches key on the buffer's identity, so "same logical source, new
// generation" invalidates far less than a fresh allocation would. A line
// start index is maintained alongside the text for the diagnostics layer
// above.
package vellum

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Source is a versioned text buffer for one file identity. Always
// handled by pointer; the pointer identity is the contract.
type Source struct {
	id      FileID
	text    string
	version int
	lines   []int // byte offset of each line start
}

// NewSource creates a source at version 1.
func NewSource(id FileID, text string) *Source {
	return &Source{
		id:      id,
		text:    text,
		version: 1,
		lines:   lineStarts(text),
	}
}

// ID returns the source's file identity.
func (s *Source) ID() FileID {
	return s.id
}

// Text returns the full text.
func (s *Source) Text() string {
	return s.text
}

// Version returns the generation counter, bumped on every Replace.
func (s *Source) Version() int {
	return s.version
}

// Len returns the text length in bytes.
func (s *Source) Len() int {
	return len(s.text)
}

// Replace swaps the full text in place, preserving the buffer's
// identity and bumping its version.
func (s *Source) Replace(text string) {
	s.text = text
	s.version++
	s.lines = lineStarts(text)
}

// LineCount returns the number of lines. An empty text has one line.
func (s *Source) LineCount() int {
	return len(s.lines)
}

// Line returns the text of the 1-based line n, without its terminator.
// Out-of-range lines yield the empty string.
func (s *Source) Line(n int) string {
	if n < 1 || n > len(s.lines) {
		return ""
	}
	start := s.lines[n-1]
	end := len(s.text)
	if n < len(s.lines) {
		end = s.lines[n] - 1
	}
	return strings.TrimSuffix(s.text[start:end], "\r")
}

// LineCol converts a byte offset into 1-based line and column numbers.
// Offsets past the end clamp to the last position.
func (s *Source) LineCol(offset int) (line, col int) {
	if offset > len(s.text) {
		offset = len(s.text)
	}
	if offset < 0 {
		offset = 0
	}
	// First line start greater than offset, then step back.
	n := sort.Search(len(s.lines), func(i int) bool { return s.lines[i] > offset })
	line = n // 1-based index of the containing line
	col = utf8.RuneCountInString(s.text[s.lines[n-1]:offset]) + 1
	return line, col
}

func lineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// utf8BOM is stripped before decoding; everything after it must be valid
// UTF-8.
var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// decodeUTF8 decodes raw file bytes into text, tolerating a leading BOM.
func decodeUTF8(buf []byte) (string, error) {
	buf = bytes.TrimPrefix(buf, utf8BOM)
	if !utf8.Valid(buf) {
		return "", fmt.Errorf("%w", ErrInvalidUTF8)
	}
	return string(buf), nil
}
