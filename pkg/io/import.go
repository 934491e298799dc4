package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/weslpkg/pkg/bundle"
)

// ReadJSON decodes a JSON array of bundle descriptors from r.
//
// The input is what [WriteJSON] produces:
//
//	[
//	  {
//	    "name": "random_wgsl",
//	    "edition": "unstable_2025_1",
//	    "modules": {"lib.wgsl": "fn pcg_2u_3f(...) ..."},
//	    "dependencies": []
//	  }
//	]
//
// Module order is preserved. Each descriptor must have a name and an edition;
// ReadJSON returns an error naming the first one that does not.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]*bundle.Descriptor, error) {
	var data []*bundle.Descriptor
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	for i, d := range data {
		if d == nil {
			return nil, fmt.Errorf("bundle %d: null", i)
		}
		if d.Name == "" || d.Edition == "" {
			return nil, fmt.Errorf("bundle %d (%q): name and edition are required", i, d.Name)
		}
		if d.Modules == nil {
			d.Modules = bundle.Modules{}
		}
		if d.Dependencies == nil {
			d.Dependencies = []*bundle.Descriptor{}
		}
	}
	return data, nil
}

// ImportJSON reads a JSON file at path and returns the decoded descriptors.
//
// ImportJSON returns the same validation errors as [ReadJSON], wrapped with
// the file path when the file cannot be opened.
func ImportJSON(path string) ([]*bundle.Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
