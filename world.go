// The world facade: everything the compiler asks the system for.
//
// A World owns the slot table, the project root, the main file identity,
// the library configuration, the font table, the package storage, and a
// once-per-compilation timestamp. Compiler worker threads query it
// concurrently; the slot table's mutex is held only long enough to find
// or create a slot, so requests for different files never serialize on
// each other.
package vellum

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Input is the main document fed to the world: either a path inside the
// project root or an in-memory byte buffer.
type Input struct {
	path  string
	data  []byte
	bytes bool
}

// PathInput names an on-disk main file.
func PathInput(path string) Input {
	return Input{path: path}
}

// BytesInput supplies the main file directly from memory.
func BytesInput(data []byte) Input {
	return Input{data: data, bytes: true}
}

// World provides the compiler's view of the system.
type World struct {
	workdir   string
	root      string
	main      FileID
	bytesMain FileID // reusable id for in-memory inputs; zero if unused
	library   *Library
	fonts     *Fonts
	packages  *PackageStorage
	alg       int

	mu    sync.Mutex
	slots map[FileID]*FileSlot

	// The sampled wall clock, if requested. Held here so every Today
	// call within one compilation sees the same instant.
	clock func() time.Time
	nowMu sync.Mutex
	now   *time.Time
}

// Library returns the active standard-library configuration.
func (w *World) Library() *Library {
	return w.library
}

// Book returns the font metadata book.
func (w *World) Book() *FontBook {
	return w.fonts.Book
}

// Main returns the identity of the main file.
func (w *World) Main() FileID {
	return w.main
}

// Root returns the directory absolute paths resolve against.
func (w *World) Root() string {
	return w.root
}

// Workdir returns the process working directory at build time.
func (w *World) Workdir() string {
	if w.workdir == "" {
		return "."
	}
	return w.workdir
}

// Source returns the decoded text for id.
func (w *World) Source(id FileID) (*Source, error) {
	return w.slot(id).Source(w.root, w.packages, w.alg)
}

// File returns the raw bytes for id.
func (w *World) File(id FileID) (Bytes, error) {
	return w.slot(id).File(w.root, w.packages, w.alg)
}

// Font returns the font at index, loading it lazily.
func (w *World) Font(index int) (Font, bool) {
	return w.fonts.Font(index)
}

// Date is a calendar date produced by Today.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Today returns the current date. The wall clock is sampled at most once
// per compilation; every call between two Resets derives from that one
// instant. Without an offset the date is local; with an offset it is UTC
// shifted by that many hours.
func (w *World) Today(offset ...int) Date {
	now := w.sampleNow()
	if len(offset) > 0 {
		now = now.UTC().Add(time.Duration(offset[0]) * time.Hour)
	}
	year, month, day := now.Date()
	return Date{Year: year, Month: int(month), Day: day}
}

func (w *World) sampleNow() time.Time {
	w.nowMu.Lock()
	defer w.nowMu.Unlock()
	if w.now == nil {
		t := w.clock()
		w.now = &t
	}
	return *w.now
}

// Reset prepares the world for the next compilation: every slot's cells
// are marked unaccessed (their content caches survive for the
// fingerprint fast path) and the sampled clock is cleared. Callers must
// invoke this once per compile.
func (w *World) Reset() {
	w.mu.Lock()
	for _, slot := range w.slots {
		slot.reset()
	}
	w.mu.Unlock()

	w.nowMu.Lock()
	w.now = nil
	w.nowMu.Unlock()
}

// SetInput swaps the main document between compilations, retaining the
// font table, package storage, and unrelated file caches. It implies a
// Reset.
func (w *World) SetInput(input Input) error {
	w.Reset()
	if input.bytes {
		return w.configureBytesInput(input.data)
	}
	return w.configurePathInput(input.path)
}

// SetInputs replaces the system input dictionary, rebuilding the library
// configuration.
func (w *World) SetInputs(inputs Dict) {
	w.library = NewLibrary(inputs)
}

// Lookup returns a line-indexed view of an already-loaded file, for the
// diagnostics layer above. The file must have been queried during the
// current or a previous compilation.
func (w *World) Lookup(id FileID) (*Source, error) {
	s := w.slot(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.source.loaded && s.source.err == nil {
		return s.source.value, nil
	}
	if s.file.loaded && s.file.err == nil {
		text, err := decodeUTF8(s.file.value.Bytes())
		if err != nil {
			return nil, err
		}
		return NewSource(id, text), nil
	}
	return nil, fmt.Errorf("%w: %s has not been loaded", ErrNotFound, id)
}

// slot finds or creates the canonical slot for id. The table lock is
// released before the caller touches the slot, so distinct ids proceed
// independently.
func (w *World) slot(id FileID) *FileSlot {
	w.mu.Lock()
	defer w.mu.Unlock()
	s, ok := w.slots[id]
	if !ok {
		s = newFileSlot(id)
		w.slots[id] = s
	}
	return s
}

func (w *World) configurePathInput(path string) error {
	abs, err := canonicalize(path)
	if err != nil {
		return fmt.Errorf("failed to canonicalize path: %w", err)
	}
	vpath, err := WithinRoot(abs, w.root)
	if err != nil {
		return err
	}
	w.main = NewFileID(nil, vpath)
	return nil
}

func (w *World) configureBytesInput(data []byte) error {
	id := w.bytesMain
	if id == 0 {
		id = FakeFileID(NewVirtualPath("<bytes>"))
		w.bytesMain = id
	}
	slot, err := newFileSlotFromBytes(id, data, w.alg)
	if err != nil {
		return err
	}
	w.main = id
	w.mu.Lock()
	w.slots[id] = slot
	w.mu.Unlock()
	return nil
}

// canonicalize makes path absolute and resolves symlinks, matching how
// the root itself is resolved.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

// Builder assembles a World. Construction-only concerns live here:
// resolving the root, wiring the main input, and assembling fonts,
// inputs, and package storage.
type Builder struct {
	root        string
	input       Input
	fonts       *Fonts
	inputs      Dict
	packagePath string
	userAgent   string
	alg         int
	clock       func() time.Time
}

// NewBuilder starts a builder for a world rooted at root with the given
// main input.
func NewBuilder(root string, input Input) *Builder {
	return &Builder{root: root, input: input, alg: AlgXXHash3}
}

// Fonts supplies the externally discovered font set.
func (b *Builder) Fonts(fonts *Fonts) *Builder {
	b.fonts = fonts
	return b
}

// Inputs supplies the system input dictionary.
func (b *Builder) Inputs(inputs Dict) *Builder {
	b.inputs = inputs
	return b
}

// PackagePath overrides the package cache directory.
func (b *Builder) PackagePath(path string) *Builder {
	b.packagePath = path
	return b
}

// UserAgent overrides the downloader's user agent.
func (b *Builder) UserAgent(agent string) *Builder {
	b.userAgent = agent
	return b
}

// Algorithm selects the fingerprint algorithm (AlgXXHash3 by default).
func (b *Builder) Algorithm(alg int) *Builder {
	b.alg = alg
	return b
}

// Clock injects the wall-clock source used by Today. Defaults to
// time.Now.
func (b *Builder) Clock(clock func() time.Time) *Builder {
	b.clock = clock
	return b
}

// Build resolves the root and main input and assembles the world.
func (b *Builder) Build() (*World, error) {
	root, err := canonicalize(b.root)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize root: %w", err)
	}

	fonts := b.fonts
	if fonts == nil {
		fonts = NewFonts()
	}
	clock := b.clock
	if clock == nil {
		clock = time.Now
	}

	workdir, _ := os.Getwd()
	w := &World{
		workdir:  workdir,
		root:     root,
		library:  NewLibrary(b.inputs),
		fonts:    fonts,
		packages: NewPackageStorage("", b.packagePath, NewDownloader(b.userAgent)),
		alg:      b.alg,
		slots:    make(map[FileID]*FileSlot),
		clock:    clock,
	}

	if b.input.bytes {
		if err := w.configureBytesInput(b.input.data); err != nil {
			return nil, err
		}
	} else {
		if err := w.configurePathInput(b.input.path); err != nil {
			return nil, err
		}
	}
	return w, nil
}
