// Font table: lazily loaded handles behind the world's Font query.
//
// Font discovery and parsing live outside this layer; a provider hands
// the world a FontBook plus one slot per font. Slots load on first
// access and memoize the result themselves, so the world's Font query is
// a plain pass-through.
package vellum

import (
	"os"
	"sync"
)

// Font is an opaque handle to a loaded font: its raw data and the index
// within its collection file. Shaping happens above this layer.
type Font struct {
	Data  Bytes
	Index uint32
}

// FontInfo describes one font in the book.
type FontInfo struct {
	Family  string
	Variant string
}

// FontBook holds family and variant metadata for every discovered font,
// in slot order.
type FontBook struct {
	infos []FontInfo
}

// Push appends a font's metadata to the book.
func (b *FontBook) Push(info FontInfo) {
	b.infos = append(b.infos, info)
}

// Len returns the number of fonts in the book.
func (b *FontBook) Len() int {
	return len(b.infos)
}

// Info returns the metadata for the font at index.
func (b *FontBook) Info(index int) (FontInfo, bool) {
	if index < 0 || index >= len(b.infos) {
		return FontInfo{}, false
	}
	return b.infos[index], true
}

// FontSlot lazily loads one font and memoizes the outcome, success or
// not.
type FontSlot struct {
	load func() (Font, bool)
	once sync.Once
	font Font
	ok   bool
}

// NewFontSlot wraps a load function. It is called at most once.
func NewFontSlot(load func() (Font, bool)) *FontSlot {
	return &FontSlot{load: load}
}

// FileFontSlot lazily reads the font at path with the given collection
// index.
func FileFontSlot(path string, index uint32) *FontSlot {
	return NewFontSlot(func() (Font, bool) {
		data, err := os.ReadFile(path)
		if err != nil {
			return Font{}, false
		}
		return Font{Data: NewBytes(data), Index: index}, true
	})
}

// Get returns the slot's font, loading it on first access.
func (s *FontSlot) Get() (Font, bool) {
	s.once.Do(func() {
		s.font, s.ok = s.load()
	})
	return s.font, s.ok
}

// Fonts is the provider capability consumed by the world: a book plus
// the slots backing it.
type Fonts struct {
	Book  *FontBook
	Slots []*FontSlot
}

// NewFonts creates an empty font set.
func NewFonts() *Fonts {
	return &Fonts{Book: &FontBook{}}
}

// Font returns the font at index, if the index is in range and the slot
// loads successfully.
func (f *Fonts) Font(index int) (Font, bool) {
	if index < 0 || index >= len(f.Slots) {
		return Font{}, false
	}
	return f.Slots[index].Get()
}
