// File identities and virtual paths.
//
// A FileID is a small interned handle for (optional package spec,
// root-relative virtual path). Two lookups of the same package+path pair
// yield the same id, so the id itself is the key of the world's slot
// table and cheap to compare and copy. Synthetic ids (in-memory main
// input) intern under a per-id uniqueness token and never resolve to a
// real path.
//
// VirtualPath resolution against a concrete root is purely lexical: a
// path whose cleaned form still climbs above the root is denied before
// any syscall happens. Symlinks inside the root can still point outside
// it; that gap is deliberate and documented.
package vellum

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// FileID identifies a virtual file, optionally scoped to a package. The
// zero value is invalid and never returned by the constructors.
type FileID uint32

// fileEntry is the interned payload behind a FileID.
type fileEntry struct {
	pkg   *PackageSpec
	vpath VirtualPath
	fake  bool
}

// interner maps package+path pairs to stable FileIDs. Process-global,
// like the ids themselves: a FileID is meaningful across worlds.
var interner = struct {
	mu  sync.Mutex
	ids map[string]FileID
	rev []fileEntry
}{ids: make(map[string]FileID)}

// NewFileID interns the id for the given package and virtual path.
// A nil spec names an ordinary project file.
func NewFileID(pkg *PackageSpec, vpath VirtualPath) FileID {
	key := "|" + string(vpath)
	if pkg != nil {
		key = pkg.String() + key
	}
	return intern(key, fileEntry{pkg: pkg, vpath: vpath})
}

// FakeFileID creates a fresh synthetic id that is not backed by any real
// path. Every call returns a distinct id, even for the same display path.
func FakeFileID(vpath VirtualPath) FileID {
	key := "fake|" + uuid.NewString()
	return intern(key, fileEntry{vpath: vpath, fake: true})
}

func intern(key string, entry fileEntry) FileID {
	interner.mu.Lock()
	defer interner.mu.Unlock()
	if id, ok := interner.ids[key]; ok {
		return id
	}
	interner.rev = append(interner.rev, entry)
	id := FileID(len(interner.rev)) // ids are 1-based; zero stays invalid
	interner.ids[key] = id
	return id
}

func (id FileID) entry() fileEntry {
	interner.mu.Lock()
	defer interner.mu.Unlock()
	return interner.rev[id-1]
}

// Package returns the package the file belongs to, or nil for a project
// file.
func (id FileID) Package() *PackageSpec {
	return id.entry().pkg
}

// Path returns the file's virtual path.
func (id FileID) Path() VirtualPath {
	return id.entry().vpath
}

// Fake reports whether the id is synthetic and never resolves to a real
// path.
func (id FileID) Fake() bool {
	return id.entry().fake
}

func (id FileID) String() string {
	e := id.entry()
	if e.pkg != nil {
		return e.pkg.String() + string(e.vpath)
	}
	return string(e.vpath)
}

// VirtualPath is a rooted, slash-separated path inside a project or
// package, e.g. "/chapters/intro.typ".
type VirtualPath string

// NewVirtualPath roots and cleans a path. Parent components that climb
// above the root are kept in the cleaned form (e.g. "/../x") so that
// Resolve can deny them later; they are not silently dropped.
func NewVirtualPath(p string) VirtualPath {
	p = strings.ReplaceAll(p, "\\", "/")
	cleaned := path.Join("/", ".", p)
	// path.Join strips "..", so climb-outs must be re-derived from the
	// raw input to stay detectable.
	if escapesLexically(p) {
		cleaned = "/.." + cleaned
	}
	return VirtualPath(cleaned)
}

// escapesLexically walks the slash components of p and reports whether
// they ever pop above the root.
func escapesLexically(p string) bool {
	depth := 0
	for _, part := range strings.Split(p, "/") {
		switch part {
		case "", ".":
		case "..":
			depth--
			if depth < 0 {
				return true
			}
		default:
			depth++
		}
	}
	return false
}

// Resolve joins the virtual path onto root. If the path tries to escape
// the root it returns ErrAccessDenied without touching the filesystem.
// Note: escape via symlinks inside the root remains possible.
func (v VirtualPath) Resolve(root string) (string, error) {
	if v == "/.." || strings.HasPrefix(string(v), "/../") {
		return "", fmt.Errorf("%w: %s escapes the project root", ErrAccessDenied, v)
	}
	rel := strings.TrimPrefix(string(v), "/")
	return filepath.Join(root, filepath.FromSlash(rel)), nil
}

// WithinRoot rebases an absolute path onto root, returning its virtual
// path. It fails if abs does not lie inside root.
func WithinRoot(abs, root string) (VirtualPath, error) {
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("input file must be contained in project root")
	}
	return NewVirtualPath(filepath.ToSlash(rel)), nil
}
