// Per-file cache slots and path resolution.
//
// A FileSlot holds canonical data for all queries naming the same file:
// one cell for the decoded Source, one for the raw Bytes. Both can be
// populated if the file is both imported and read as data. Slots are
// created lazily on first lookup and live for the world's lifetime; only
// their cells are reset between compilations.
//
// Each slot carries its own mutex: concurrent queries for the same id
// serialize on the slot while different ids proceed independently.
package vellum

import (
	"fmt"
	"os"
	"sync"
)

// FileSlot caches the two representations of one file identity.
type FileSlot struct {
	id     FileID
	mu     sync.Mutex
	source slotCell[*Source]
	file   slotCell[Bytes]
}

func newFileSlot(id FileID) *FileSlot {
	return &FileSlot{id: id}
}

// newFileSlotFromBytes builds a slot backed by explicitly provided bytes
// rather than the disk. Both cells start accessed and fingerprinted.
func newFileSlotFromBytes(id FileID, data []byte, alg int) (*FileSlot, error) {
	text, err := decodeUTF8(data)
	if err != nil {
		return nil, err
	}
	slot := newFileSlot(id)
	fp := fingerprintResult(alg, data, nil)
	slot.source.init(NewSource(id, text), fp)
	slot.file.init(NewBytes(data), fp)
	return slot, nil
}

// reset marks the slot as not yet accessed in preparation of the next
// compilation.
func (s *FileSlot) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source.reset()
	s.file.reset()
}

// Source returns the decoded text for this slot, reading the backing
// store at most once per epoch. On changed content the previous Source
// is updated in place so its identity survives.
func (s *FileSlot) Source(root string, packages *PackageStorage, alg int) (*Source, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.id.Fake() {
		return fromCell(&s.source, s.id)
	}
	return s.source.getOrInit(alg,
		func() ([]byte, error) { return readFile(s.id, root, packages) },
		func(data []byte, prev **Source) (*Source, error) {
			text, err := decodeUTF8(data)
			if err != nil {
				return nil, err
			}
			if prev != nil {
				(*prev).Replace(text)
				return *prev, nil
			}
			return NewSource(s.id, text), nil
		})
}

// File returns the slot's raw bytes.
func (s *FileSlot) File(root string, packages *PackageStorage, alg int) (Bytes, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.id.Fake() {
		return fromCell(&s.file, s.id)
	}
	return s.file.getOrInit(alg,
		func() ([]byte, error) { return readFile(s.id, root, packages) },
		func(data []byte, _ *Bytes) (Bytes, error) {
			return NewBytes(data), nil
		})
}

// fromCell serves a synthetic slot from its pre-populated cell. A
// synthetic id never resolves to a real path, so reload attempts after a
// reset must not touch the backing store.
func fromCell[T any](c *slotCell[T], id FileID) (T, error) {
	c.accessed = true
	if c.loaded {
		return c.value, c.err
	}
	var zero T
	return zero, fmt.Errorf("%w: %s is not backed by a path", ErrNotFound, id)
}

// systemPath resolves a file id to a concrete path. A package id swaps
// the project root for the package's prepared directory first.
func systemPath(id FileID, root string, packages *PackageStorage) (string, error) {
	if spec := id.Package(); spec != nil {
		dir, err := packages.Prepare(spec)
		if err != nil {
			return "", err
		}
		root = dir
	}
	return id.Path().Resolve(root)
}

func readFile(id FileID, root string, packages *PackageStorage) ([]byte, error) {
	path, err := systemPath(id, root, packages)
	if err != nil {
		return nil, err
	}
	return readFromDisk(path)
}

func readFromDisk(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fromOSError(err, path)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fromOSError(err, path)
	}
	return data, nil
}

// fromOSError maps filesystem errors onto the package taxonomy.
func fromOSError(err error, path string) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	case os.IsPermission(err):
		return fmt.Errorf("%w: %s", ErrAccessDenied, path)
	default:
		return fmt.Errorf("reading %s: %w", path, err)
	}
}
