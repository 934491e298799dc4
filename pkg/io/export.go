package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/weslpkg/pkg/bundle"
	"github.com/matzehuels/weslpkg/pkg/deps"
)

// WriteJSON encodes bundle descriptors as an indented JSON array and writes
// it to w. A nil slice is written as [].
// This format can be re-imported with [ReadJSON].
func WriteJSON(bundles []*bundle.Descriptor, w io.Writer) error {
	if bundles == nil {
		bundles = []*bundle.Descriptor{}
	}
	return encode(w, bundles)
}

// WriteResolutionsJSON encodes module path resolutions as an indented JSON
// array of {"module_path", "package"} objects.
func WriteResolutionsJSON(res []deps.Resolution, w io.Writer) error {
	if res == nil {
		res = []deps.Resolution{}
	}
	return encode(w, res)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes bundle descriptors to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(bundles []*bundle.Descriptor, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(bundles, f)
}
