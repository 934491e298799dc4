// Package modpath handles WESL module paths such as "random_wgsl::lib::pcg_2u_3f".
//
// A module path names a shader module by its package, an optional export
// subpath, the module inside the bundle, and finally an element. Shader
// packages are published to npm, so package names are sanitized into WGSL
// identifiers before they appear in a module path:
//
//	@     ==>  (removed)
//	/     ==>  __  (double underscore)
//	-     ==>  _   (single underscore)
//
// This package provides both directions of that mapping. [SanitizePackageName]
// goes from npm to WESL; [NameVariations] produces the npm spellings worth
// probing for a sanitized identifier, and [ExportSubpaths] produces the export
// subpaths worth probing for a module path, longest first.
package modpath

import (
	"strings"

	"github.com/matzehuels/weslpkg/pkg/errors"
)

// Separator splits module path segments.
const Separator = "::"

// ConstantsNamespace is the compiler-provided virtual namespace. Paths under it
// never name a package.
const ConstantsNamespace = "constants"

// Path is a parsed module path. It always has at least one segment and no
// segment is empty.
type Path []string

// Parse splits s on "::" into a Path.
func Parse(s string) (Path, error) {
	if err := errors.ValidateModulePath(s); err != nil {
		return nil, err
	}
	return Path(strings.Split(s, Separator)), nil
}

// String joins the segments back with "::".
func (p Path) String() string {
	return strings.Join(p, Separator)
}

// IsPackageRef reports whether p can refer to an external package.
//
// Single-segment paths are language built-ins (vec3f, textureSample, ...) and
// paths rooted at "constants" or at one of the extra virtual namespaces are
// supplied by the linker, so none of them are worth resolving.
func (p Path) IsPackageRef(virtual ...string) bool {
	if len(p) < 2 {
		return false
	}
	if p[0] == ConstantsNamespace {
		return false
	}
	for _, v := range virtual {
		if p[0] == v {
			return false
		}
	}
	return true
}

// ExportSubpaths returns the slash-joined prefixes of segments, longest first.
//
//	["foo", "bar", "baz"] -> ["foo/bar/baz", "foo/bar", "foo"]
//
// A package may map an export such as "./*" onto several segments, so the most
// specific candidate has to be probed before the package root.
func ExportSubpaths(segments []string) []string {
	subpaths := make([]string, 0, len(segments))
	for i := len(segments); i > 0; i-- {
		subpaths = append(subpaths, strings.Join(segments[:i], "/"))
	}
	return subpaths
}
