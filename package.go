// Remote package resolution and on-disk storage.
//
// A package spec names (namespace, name, version). Resolution walks the
// per-user data directory, then the per-user cache directory, and only
// for the "preview" namespace falls through to a network fetch that
// unpacks a gzipped tarball into the cache path. Any other namespace
// without a local copy fails without touching the network. A failed
// unpack removes the half-written target directory so the next attempt
// starts clean.
package vellum

import (
	"archive/tar"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/sync/singleflight"
)

// The exact URL format is part of the external contract; preview
// packages only resolve if it is reproduced bit for bit.
const defaultRegistry = "https://packages.typst.org"

// previewNamespace is the only namespace that supports on-demand
// fetching.
const previewNamespace = "preview"

// PackageSpec identifies a remote package: namespace, name, version.
type PackageSpec struct {
	Namespace string
	Name      string
	Version   string
}

// ParsePackageSpec parses the "@namespace/name:version" form.
func ParsePackageSpec(s string) (PackageSpec, error) {
	rest, ok := strings.CutPrefix(s, "@")
	if !ok {
		return PackageSpec{}, fmt.Errorf("package spec %q must start with @", s)
	}
	ns, rest, ok := strings.Cut(rest, "/")
	if !ok || ns == "" {
		return PackageSpec{}, fmt.Errorf("package spec %q is missing a namespace", s)
	}
	name, version, ok := strings.Cut(rest, ":")
	if !ok || name == "" || version == "" {
		return PackageSpec{}, fmt.Errorf("package spec %q must be @namespace/name:version", s)
	}
	return PackageSpec{Namespace: ns, Name: name, Version: version}, nil
}

func (s PackageSpec) String() string {
	return "@" + s.Namespace + "/" + s.Name + ":" + s.Version
}

// subdir is the package's path below a storage root.
func (s PackageSpec) subdir() string {
	return filepath.Join("typst", "packages", s.Namespace, s.Name, s.Version)
}

// PackageStorage knows where packages live on disk and how to fetch the
// ones that don't yet.
type PackageStorage struct {
	dataDir    string
	cacheDir   string
	registry   string
	downloader *Downloader
	flight     singleflight.Group
}

// NewPackageStorage creates a storage rooted at the given directories.
// Empty arguments fall back to the platform's per-user data and cache
// directories; the downloader falls back to a default one.
func NewPackageStorage(dataDir, cacheDir string, downloader *Downloader) *PackageStorage {
	if dataDir == "" {
		dataDir, _ = userDataDir()
	}
	if cacheDir == "" {
		if dir, err := os.UserCacheDir(); err == nil {
			cacheDir = dir
		}
	}
	if downloader == nil {
		downloader = NewDownloader("")
	}
	return &PackageStorage{
		dataDir:    dataDir,
		cacheDir:   cacheDir,
		registry:   defaultRegistry,
		downloader: downloader,
	}
}

// userDataDir resolves the per-user data directory (XDG_DATA_HOME or
// ~/.local/share).
func userDataDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share"), nil
}

// Prepare makes the package available on disk and returns its
// directory. One failed attempt is final for this call; callers may call
// again to retry. Concurrent calls for the same spec share one download.
func (ps *PackageStorage) Prepare(spec *PackageSpec) (string, error) {
	if ps.dataDir != "" {
		dir := filepath.Join(ps.dataDir, spec.subdir())
		if dirExists(dir) {
			return dir, nil
		}
	}

	if ps.cacheDir != "" {
		dir := filepath.Join(ps.cacheDir, spec.subdir())

		// Download from the network if it doesn't exist yet.
		if spec.Namespace == previewNamespace && !dirExists(dir) {
			_, err, _ := ps.flight.Do(spec.String(), func() (any, error) {
				if dirExists(dir) {
					return nil, nil
				}
				return nil, ps.downloadPackage(spec, dir)
			})
			if err != nil {
				return "", err
			}
		}

		if dirExists(dir) {
			return dir, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrPackageNotFound, spec)
}

// downloadPackage fetches and unpacks one preview package into dir.
func (ps *PackageStorage) downloadPackage(spec *PackageSpec, dir string) error {
	url := fmt.Sprintf("%s/%s/%s-%s.tar.gz", ps.registry, previewNamespace, spec.Name, spec.Version)

	data, err := ps.downloader.Get(url)
	if err != nil {
		var status statusError
		if errors.As(err, &status) && int(status) == 404 {
			return fmt.Errorf("%w: %s", ErrPackageNotFound, spec)
		}
		return fmt.Errorf("%w: %v", ErrNetworkFailed, err)
	}

	if err := extractTarGz(data, dir); err != nil {
		os.RemoveAll(dir)
		return fmt.Errorf("%w: %v", ErrMalformedArchive, err)
	}
	if err := validateManifest(dir, spec); err != nil {
		os.RemoveAll(dir)
		return err
	}
	return nil
}

// extractTarGz unpacks a gzip-compressed tarball into dir. Entry names
// that climb out of dir are rejected.
func extractTarGz(data []byte, dir string) error {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		name := filepath.FromSlash(hdr.Name)
		if !filepath.IsLocal(name) {
			return fmt.Errorf("archive entry %q escapes the package directory", hdr.Name)
		}
		target := filepath.Join(dir, name)

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			if err := writeEntry(target, tr, hdr.FileInfo().Mode().Perm()); err != nil {
				return err
			}
		default:
			// Links and specials are skipped; package archives hold
			// plain files and directories.
		}
	}
}

func writeEntry(target string, r io.Reader, perm os.FileMode) error {
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func dirExists(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}
