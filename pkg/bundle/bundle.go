package bundle

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// BundleName is the top-level binding that holds the bundle descriptor.
const BundleName = "weslBundle"

// Descriptor describes one package's shader content.
type Descriptor struct {
	Name    string  `json:"name"`    // Sanitized package name, e.g. "random_wgsl"
	Edition string  `json:"edition"` // WESL edition, e.g. "unstable_2025_1"
	Modules Modules `json:"modules"` // Module sources in declaration order

	// Dependencies is reserved for bundles this one references. It is always
	// empty until transitive extraction exists.
	Dependencies []*Descriptor `json:"dependencies"`
}

// Module is one shader source file inside a bundle.
type Module struct {
	Path   string `json:"path"`   // Path relative to the package root, e.g. "lib.wgsl"
	Source string `json:"source"` // Full WGSL/WESL source text
}

// Modules keeps module sources in the order the bundle lists them.
// Keys may repeat; [Modules.Lookup] and JSON encoding use the first one.
type Modules []Module

// Lookup returns the source of the first module with the given path.
func (m Modules) Lookup(path string) (string, bool) {
	for _, mod := range m {
		if mod.Path == path {
			return mod.Source, true
		}
	}
	return "", false
}

// Paths returns the module paths in order.
func (m Modules) Paths() []string {
	paths := make([]string, len(m))
	for i, mod := range m {
		paths[i] = mod.Path
	}
	return paths
}

// MarshalJSON encodes modules as a JSON object keyed by path, in order.
func (m Modules) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	seen := make(map[string]bool, len(m))
	for _, mod := range m {
		if seen[mod.Path] {
			continue
		}
		if len(seen) > 0 {
			buf.WriteByte(',')
		}
		seen[mod.Path] = true

		key, err := json.Marshal(mod.Path)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(mod.Source)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of path to source, keeping key order.
func (m *Modules) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*m = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("modules: want object, got %v", tok)
	}

	mods := Modules{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		var src string
		if err := dec.Decode(&src); err != nil {
			return fmt.Errorf("modules[%v]: %w", tok, err)
		}
		mods = append(mods, Module{Path: tok.(string), Source: src})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = mods
	return nil
}
