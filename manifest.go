// Package manifest validation.
//
// Every unpacked package must carry a typst.toml whose name and version
// match the requested spec. A registry or proxy serving the wrong
// archive would otherwise poison the cache under the right directory
// name.
package vellum

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type manifest struct {
	Package manifestPackage `toml:"package"`
}

type manifestPackage struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// validateManifest checks the unpacked package in dir against spec.
// A missing, unreadable, or mismatching manifest counts as a malformed
// archive.
func validateManifest(dir string, spec *PackageSpec) error {
	var m manifest
	if _, err := toml.DecodeFile(filepath.Join(dir, "typst.toml"), &m); err != nil {
		return fmt.Errorf("%w: manifest: %v", ErrMalformedArchive, err)
	}
	if m.Package.Name != spec.Name || m.Package.Version != spec.Version {
		return fmt.Errorf("%w: manifest names %s:%s, expected %s:%s",
			ErrMalformedArchive, m.Package.Name, m.Package.Version, spec.Name, spec.Version)
	}
	return nil
}
