package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxModulePathLength bounds module paths accepted from the command line.
const maxModulePathLength = 512

// ValidateModulePath validates a "::"-separated module path such as
// "random_wgsl::lib::pcg_2u_3f".
//
// The validation rules are intentionally conservative:
//   - No empty paths or empty segments ("foo::::bar", "::foo")
//   - No control characters or whitespace
//   - No path separators inside segments ("/", "\")
//   - Maximum length of 512 characters
//
// Paths that pass validation may still be language built-ins; that decision
// belongs to the caller.
func ValidateModulePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidModulePath, "module path cannot be empty")
	}

	if len(path) > maxModulePathLength {
		return New(ErrCodeInvalidModulePath, "module path too long (max %d characters)", maxModulePathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidModulePath, "module path contains invalid characters: %q", path)
		}
	}

	if strings.ContainsAny(path, "/\\") {
		return New(ErrCodeInvalidModulePath, "module path cannot contain path separators: %q", path)
	}

	for _, seg := range strings.Split(path, "::") {
		if seg == "" {
			return New(ErrCodeInvalidModulePath, "module path has an empty segment: %q", path)
		}
	}

	return nil
}

// ValidatePackageName validates a package name for safety and correctness.
// It rejects names that could be used for path traversal or injection attacks.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 256 characters
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidPackage, "package name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "package name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidPackage, "package name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// npmPackageNameRegex matches valid npm package names.
var npmPackageNameRegex = regexp.MustCompile(`^(@[a-z0-9-~][a-z0-9-._~]*/)?[a-z0-9-~][a-z0-9-._~]*$`)

// ValidateNpmPackageName validates an npm package name.
func ValidateNpmPackageName(name string) error {
	if err := ValidatePackageName(name); err != nil {
		return err
	}

	// npm names must be lowercase
	if strings.ToLower(name) != name {
		return New(ErrCodeInvalidPackage, "npm package names must be lowercase: %q", name)
	}

	if !npmPackageNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPackage, "invalid npm package name: %q", name)
	}

	return nil
}
