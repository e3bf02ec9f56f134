// Fingerprinted cache cell: the memoization primitive under every file.
//
// A cell caches one "load raw bytes, transform to T" pipeline at two
// granularities. Within a compilation epoch the accessed flag
// short-circuits everything: at most one backing-store read per cell per
// epoch, however often the compiler asks. Across epochs the fingerprint
// of the raw load result short-circuits reprocessing: unchanged content
// (or an unchanged error) yields the previously transformed value
// untouched. When content did change, the previous value is handed to
// the transform as a hint so text buffers can be updated in place.
package vellum

// slotCell lazily loads and processes data for one representation of a
// file. Errors are stored and returned like values; a failed load is not
// retried within an epoch, and a stable failure fingerprints as
// unchanged across epochs. Not safe for concurrent use; the owning
// FileSlot serializes access.
type slotCell[T any] struct {
	value       T
	err         error
	loaded      bool // a result (value or error) is present
	fingerprint fingerprint
	accessed    bool // touched in the current epoch
}

// reset marks the cell as not yet accessed in preparation of the next
// epoch. The cached result and fingerprint survive.
func (c *slotCell[T]) reset() {
	c.accessed = false
}

// init pre-populates the cell with an already-processed value, as if it
// had been loaded this epoch from raw content with the given
// fingerprint. Used for in-memory inputs that bypass the disk.
func (c *slotCell[T]) init(value T, fp fingerprint) {
	c.value = value
	c.err = nil
	c.loaded = true
	c.fingerprint = fp
	c.accessed = true
}

// getOrInit returns the cell's contents, loading and transforming only
// as far as the epoch and fingerprint checks require.
func (c *slotCell[T]) getOrInit(
	alg int,
	load func() ([]byte, error),
	transform func(data []byte, prev *T) (T, error),
) (T, error) {
	// Already accessed in this epoch: no I/O at all.
	if c.accessed && c.loaded {
		return c.value, c.err
	}
	c.accessed = true

	data, err := load()
	fp := fingerprintResult(alg, data, err)

	// Same raw result as last epoch: skip reprocessing, keep identity.
	if fp == c.fingerprint && c.loaded {
		return c.value, c.err
	}
	c.fingerprint = fp

	var prev *T
	if c.loaded && c.err == nil {
		v := c.value
		prev = &v
	}

	c.loaded = true
	if err != nil {
		var zero T
		c.value, c.err = zero, err
	} else {
		c.value, c.err = transform(data, prev)
	}
	return c.value, c.err
}
