package noderesolve

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// packageFile holds the package.json fields that take part in resolution.
type packageFile struct {
	Name    string          `json:"name"`
	Version string          `json:"version"`
	Main    string          `json:"main"`
	Module  string          `json:"module"`
	Exports json.RawMessage `json:"exports"`

	// exports is Exports decoded with object key order preserved.
	exports any
}

// hasExports reports whether the package declares an "exports" field.
// An explicit null counts as absent, as it does for Node.
func (p *packageFile) hasExports() bool {
	return p.exports != nil
}

// readPackageJSON loads dir/package.json. A missing file returns (nil, nil).
func readPackageJSON(dir string) (*packageFile, error) {
	path := filepath.Join(dir, "package.json")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var pkg packageFile
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(pkg.Exports) > 0 {
		exports, err := decodeOrdered(pkg.Exports)
		if err != nil {
			return nil, fmt.Errorf("parse %s exports: %w", path, err)
		}
		pkg.exports = exports
	}
	return &pkg, nil
}
