package vellum

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseDict(t *testing.T) {
	dict, err := ParseDict([]byte(`{"theme": "dark", "draft": "true"}`))
	if err != nil {
		t.Fatalf("ParseDict: %v", err)
	}
	want := Dict{"theme": "dark", "draft": "true"}
	if diff := cmp.Diff(want, dict); diff != "" {
		t.Errorf("ParseDict mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDictEmpty(t *testing.T) {
	dict, err := ParseDict([]byte(`{}`))
	if err != nil {
		t.Fatalf("ParseDict: %v", err)
	}
	if dict == nil || len(dict) != 0 {
		t.Errorf("ParseDict(empty) = %v, want empty non-nil dict", dict)
	}
}

func TestParseDictNull(t *testing.T) {
	dict, err := ParseDict([]byte(`null`))
	if err != nil {
		t.Fatalf("ParseDict: %v", err)
	}
	if dict == nil {
		t.Errorf("ParseDict(null) returned a nil dict")
	}
}

func TestParseDictRejectsMalformed(t *testing.T) {
	if _, err := ParseDict([]byte(`{"unterminated`)); err == nil {
		t.Errorf("ParseDict accepted malformed JSON")
	}
}

func TestNewLibraryDefaults(t *testing.T) {
	lib := NewLibrary(nil)
	if lib.Inputs == nil {
		t.Errorf("NewLibrary(nil) left Inputs nil")
	}
	if !lib.Features[FeatureHTML] {
		t.Errorf("default feature set is missing FeatureHTML")
	}
}
