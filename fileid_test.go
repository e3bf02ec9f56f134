package vellum

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestFileIDInterning(t *testing.T) {
	a := NewFileID(nil, NewVirtualPath("main.typ"))
	b := NewFileID(nil, NewVirtualPath("/main.typ"))
	if a != b {
		t.Errorf("same path interned to different ids: %d vs %d", a, b)
	}
	c := NewFileID(nil, NewVirtualPath("other.typ"))
	if a == c {
		t.Errorf("distinct paths interned to the same id")
	}
}

func TestFileIDPackageScoping(t *testing.T) {
	spec := &PackageSpec{Namespace: "preview", Name: "example", Version: "0.1.0"}
	plain := NewFileID(nil, NewVirtualPath("lib.typ"))
	scoped := NewFileID(spec, NewVirtualPath("lib.typ"))
	if plain == scoped {
		t.Errorf("package-scoped id collided with project id")
	}
	if scoped.Package() == nil || scoped.Package().Name != "example" {
		t.Errorf("Package() = %v, want example", scoped.Package())
	}
	if plain.Package() != nil {
		t.Errorf("project file reports a package: %v", plain.Package())
	}
}

func TestFakeFileIDAlwaysFresh(t *testing.T) {
	a := FakeFileID(NewVirtualPath("<bytes>"))
	b := FakeFileID(NewVirtualPath("<bytes>"))
	if a == b {
		t.Errorf("two fake ids with the same display path collided")
	}
	if !a.Fake() {
		t.Errorf("fake id does not report Fake()")
	}
}

func TestNewVirtualPathCleans(t *testing.T) {
	cases := map[string]VirtualPath{
		"main.typ":        "/main.typ",
		"/main.typ":       "/main.typ",
		"./a/./b.typ":     "/a/b.typ",
		"a/../b.typ":      "/b.typ",
		"a\\b.typ":        "/a/b.typ",
		"../escape.typ":   "/../escape.typ",
		"a/../../up.typ":  "/../up.typ",
	}
	for in, want := range cases {
		if got := NewVirtualPath(in); got != want {
			t.Errorf("NewVirtualPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestVirtualPathResolve(t *testing.T) {
	root := t.TempDir()
	got, err := NewVirtualPath("sub/file.typ").Resolve(root)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := filepath.Join(root, "sub", "file.typ")
	if got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}
}

func TestVirtualPathResolveDeniesEscape(t *testing.T) {
	root := t.TempDir()
	for _, p := range []string{"../secret.txt", "a/../../secret.txt", ".."} {
		_, err := NewVirtualPath(p).Resolve(root)
		if !errors.Is(err, ErrAccessDenied) {
			t.Errorf("Resolve(%q): got %v, want ErrAccessDenied", p, err)
		}
	}
}

func TestWithinRoot(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "proj")
	vpath, err := WithinRoot(filepath.Join(root, "ch", "a.typ"), root)
	if err != nil {
		t.Fatalf("WithinRoot: %v", err)
	}
	if vpath != "/ch/a.typ" {
		t.Errorf("WithinRoot = %q, want /ch/a.typ", vpath)
	}

	if _, err := WithinRoot(filepath.Join(string(filepath.Separator), "elsewhere", "a.typ"), root); err == nil {
		t.Errorf("WithinRoot accepted a path outside the root")
	}
}
