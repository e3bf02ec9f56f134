// Fingerprint algorithms for content change detection.
//
// Every raw load result — the file's bytes on success, or the error it
// produced — is condensed to a 128-bit fingerprint. A cell whose fresh
// fingerprint matches the stored one skips reprocessing entirely, so a
// stable error (missing file queried twice across compilations) is just
// as cacheable as stable content. Three algorithms are supported,
// selectable via Builder.Algorithm. The fingerprint is a change detector,
// not an integrity check; it must not be used to verify untrusted
// package content.
package vellum

import (
	"hash/fnv"

	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
)

// Fingerprint algorithm constants.
const (
	AlgXXHash3 = 1 // Default, fastest
	AlgFNV1a   = 2 // No external dependencies
	AlgBlake2b = 3 // Best distribution
)

// fingerprint is a 128-bit content hash. The zero value means "never
// loaded" and is never produced by hashing.
type fingerprint [16]byte

// Result tags keep a success whose bytes happen to equal an error's
// message from colliding.
const (
	tagOK  = 0
	tagErr = 1
)

// fingerprintResult hashes a raw load result: the data on success, the
// error message on failure. Both outcomes fingerprint deterministically
// so that unchanged failures also take the fast path.
func fingerprintResult(alg int, data []byte, err error) fingerprint {
	tag := []byte{tagOK}
	payload := data
	if err != nil {
		tag[0] = tagErr
		payload = []byte(err.Error())
	}

	var fp fingerprint
	switch alg {
	case AlgFNV1a:
		h := fnv.New128a()
		h.Write(tag)
		h.Write(payload)
		copy(fp[:], h.Sum(nil))
	case AlgBlake2b:
		h, _ := blake2b.New(16, nil) // 16 bytes = 128 bits
		h.Write(tag)
		h.Write(payload)
		copy(fp[:], h.Sum(nil))
	default:
		h := xxh3.New()
		h.Write(tag)
		h.Write(payload)
		fp = h.Sum128().Bytes()
	}
	return fp
}
