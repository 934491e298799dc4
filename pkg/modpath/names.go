package modpath

import "strings"

// scopeDelimiter encodes the "/" of a scoped npm name inside a WGSL identifier.
const scopeDelimiter = "__"

// NameVariations returns the npm specifiers that a sanitized subpath may stand for.
//
// The text before the first "/" is the package part. If it contains "__", the
// text before the first "__" is taken as an npm scope. The underscore spelling
// is returned first and the hyphen spelling second; any rest after the package
// part is kept unchanged.
//
//	"random_wgsl"            -> ["random_wgsl", "random-wgsl"]
//	"lygia__shader_utils"    -> ["@lygia/shader_utils", "@lygia/shader-utils"]
//	"foo_bar/gpu_utils"      -> ["foo_bar/gpu_utils", "foo-bar/gpu_utils"]
func NameVariations(subpath string) []string {
	pkg, rest := breakAt(subpath, "/")

	name, scopePrefix := pkg, ""
	if scope, tail, ok := strings.Cut(pkg, scopeDelimiter); ok {
		// Only the first "__" delimits the scope; later ones belong to the name.
		name = tail
		scopePrefix = "@" + scope + "/"
	}

	return []string{
		scopePrefix + name + rest,
		scopePrefix + strings.ReplaceAll(name, "_", "-") + rest,
	}
}

// SanitizePackageName converts an npm package name into a WGSL-safe identifier.
//
//	"random-wgsl"         -> "random_wgsl"
//	"@scope/my-pkg"       -> "scope__my_pkg"
func SanitizePackageName(npmName string) string {
	name := strings.TrimPrefix(npmName, "@")
	name = strings.ReplaceAll(name, "/", scopeDelimiter)
	return strings.ReplaceAll(name, "-", "_")
}

// breakAt splits s at the first delim. The second value keeps the delimiter,
// or is empty when delim does not occur.
func breakAt(s, delim string) (string, string) {
	i := strings.Index(s, delim)
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}
