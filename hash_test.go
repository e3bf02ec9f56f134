package vellum

import (
	"errors"
	"testing"
)

func TestFingerprintDistinctContent(t *testing.T) {
	a := fingerprintResult(AlgXXHash3, []byte("hello"), nil)
	b := fingerprintResult(AlgXXHash3, []byte("world"), nil)
	if a == b {
		t.Errorf("distinct content produced identical fingerprints")
	}
}

func TestFingerprintStable(t *testing.T) {
	a := fingerprintResult(AlgXXHash3, []byte("hello"), nil)
	b := fingerprintResult(AlgXXHash3, []byte("hello"), nil)
	if a != b {
		t.Errorf("identical content produced different fingerprints")
	}
}

func TestFingerprintErrorVsSuccess(t *testing.T) {
	msg := "file not found: /x"
	success := fingerprintResult(AlgXXHash3, []byte(msg), nil)
	failure := fingerprintResult(AlgXXHash3, nil, errors.New(msg))
	if success == failure {
		t.Errorf("success and error with equal payloads collided")
	}
}

func TestFingerprintErrorStable(t *testing.T) {
	a := fingerprintResult(AlgXXHash3, nil, errors.New("boom"))
	b := fingerprintResult(AlgXXHash3, nil, errors.New("boom"))
	if a != b {
		t.Errorf("identical errors produced different fingerprints")
	}
}

func TestFingerprintNeverZero(t *testing.T) {
	var zero fingerprint
	for _, alg := range []int{AlgXXHash3, AlgFNV1a, AlgBlake2b} {
		if fingerprintResult(alg, nil, nil) == zero {
			t.Errorf("alg %d fingerprinted empty content as the zero value", alg)
		}
	}
}

func TestFingerprintAlgorithmsDiffer(t *testing.T) {
	data := []byte("content")
	xx := fingerprintResult(AlgXXHash3, data, nil)
	fn := fingerprintResult(AlgFNV1a, data, nil)
	bl := fingerprintResult(AlgBlake2b, data, nil)
	if xx == fn || xx == bl || fn == bl {
		t.Errorf("algorithms unexpectedly agree: %x %x %x", xx, fn, bl)
	}
}

func BenchmarkFingerprint(b *testing.B) {
	data := make([]byte, 64*1024)
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		fingerprintResult(AlgXXHash3, data, nil)
	}
}
