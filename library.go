// Standard-library configuration injected into the compiler.
//
// The library bundles the key/value inputs supplied by the system with
// the feature set the compiler should enable. It is rebuilt wholesale by
// SetInputs; file caches are unaffected.
package vellum

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Dict is the system input map exposed to documents.
type Dict map[string]string

// ParseDict decodes a JSON object of string values into a Dict.
func ParseDict(data []byte) (Dict, error) {
	var d Dict
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing inputs: %w", err)
	}
	if d == nil {
		d = Dict{}
	}
	return d, nil
}

// Feature toggles optional compiler behavior.
type Feature int

// FeatureHTML enables the HTML export surface in the compiler above.
const FeatureHTML Feature = iota

// Library is the standard-library configuration handed to the compiler.
type Library struct {
	Inputs   Dict
	Features map[Feature]bool
}

// NewLibrary builds a library around the given inputs with the default
// feature set.
func NewLibrary(inputs Dict) *Library {
	if inputs == nil {
		inputs = Dict{}
	}
	return &Library{
		Inputs:   inputs,
		Features: map[Feature]bool{FeatureHTML: true},
	}
}
