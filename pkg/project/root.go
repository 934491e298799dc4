package project

import (
	"os"
	"path/filepath"

	"github.com/matzehuels/weslpkg/pkg/errors"
)

// markers identify a project directory.
var markers = []string{"package.json", ConfigFile}

// FindRoot returns the nearest ancestor of start (inclusive) that contains
// package.json or wesl.toml. If start is a file its directory is used. When no
// ancestor qualifies, the starting directory is returned.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", start)
	}
	if isFile(dir) {
		dir = filepath.Dir(dir)
	}

	for current := dir; ; {
		for _, m := range markers {
			if isFile(filepath.Join(current, m)) {
				return current, nil
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			return dir, nil
		}
		current = parent
	}
}

// Canonical returns the absolute, symlink-free form of dir.
func Canonical(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", dir)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", dir)
	}
	return resolved, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
