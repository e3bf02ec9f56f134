// Package vellum supplies a document compiler with a stable, cacheable
// view of the world: project files, remote packages, fonts, and the
// current date, behind a small query surface (Source, File, Font, Today).
//
// The backing store is a live filesystem and network, but the compiler
// above expects pure, referentially stable results for unchanged inputs.
// Each file identity owns a pair of fingerprinted cache cells: within one
// compilation a file is read at most once, and across compilations a file
// whose content is unchanged skips reprocessing entirely, preserving the
// identity of the decoded source buffer. Reset marks the boundary between
// compilations.
package vellum

import "errors"

// Sentinel errors for programmatic handling. Callers use errors.Is to
// distinguish file access failures from package resolution failures.
// Every fallible operation returns these wrapped with context; nothing
// in this layer retries, logs, or panics — errors are data, stored and
// fingerprinted in the cache cells like any other result.
var (
	ErrNotFound         = errors.New("file not found")
	ErrAccessDenied     = errors.New("access denied")
	ErrIsDirectory      = errors.New("is a directory")
	ErrInvalidUTF8      = errors.New("file is not valid utf-8")
	ErrPackageNotFound  = errors.New("package not found")
	ErrNetworkFailed    = errors.New("network failed")
	ErrMalformedArchive = errors.New("malformed archive")
)
