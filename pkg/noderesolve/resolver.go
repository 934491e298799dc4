// Package noderesolve finds files the way Node.js resolves bare import specifiers.
//
// # Overview
//
// Given a base directory and a specifier such as "random_wgsl" or
// "@lygia/shader-utils/color", the resolver walks up from the base directory
// looking for node_modules/<package>, then maps the remaining subpath through
// the package's package.json:
//
//  1. "exports": strings, fallback arrays, condition objects (matched in key
//     order against [Options.Conditions] plus "default") and "*" subpath
//     patterns.
//  2. Without "exports": "module"/"main" for the package root, then file and
//     directory probing with [Options.Extensions] and index files.
//
// A package that declares "exports" but does not export the subpath stops the
// search; Node does not fall through to an outer node_modules in that case.
//
// Relative ("./x") and absolute specifiers are resolved against the base
// directory with the same file and directory probing.
//
// Every call reads the file system afresh. Nothing is cached between calls.
package noderesolve

import (
	"os"
	"path/filepath"
	"strings"
)

// Resolver finds the file a specifier refers to, as seen from baseDir.
// A miss is reported with false, never with an error.
type Resolver interface {
	Resolve(baseDir, specifier string) (string, bool)
}

// DefaultConditions are the export conditions an ES module import matches.
var DefaultConditions = []string{"import", "module", "node"}

// DefaultExtensions are tried, in order, when a path has no matching file.
var DefaultExtensions = []string{".js", ".mjs", ".cjs", ".json"}

// Options configures a NodeResolver.
type Options struct {
	Conditions []string // Export conditions in addition to "default" (default: DefaultConditions)
	Extensions []string // Extensions probed for extensionless paths (default: DefaultExtensions)
	MainFields []string // package.json fields for the package root (default: module, main)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Conditions == nil {
		opts.Conditions = DefaultConditions
	}
	if opts.Extensions == nil {
		opts.Extensions = DefaultExtensions
	}
	if opts.MainFields == nil {
		opts.MainFields = []string{"module", "main"}
	}
	return opts
}

// NodeResolver implements Resolver against the local file system.
type NodeResolver struct {
	opts       Options
	conditions map[string]bool
}

// New creates a NodeResolver.
func New(opts Options) *NodeResolver {
	opts = opts.WithDefaults()
	conds := make(map[string]bool, len(opts.Conditions))
	for _, c := range opts.Conditions {
		conds[c] = true
	}
	return &NodeResolver{opts: opts, conditions: conds}
}

// Resolve returns the absolute path of the file specifier refers to.
func (r *NodeResolver) Resolve(baseDir, specifier string) (string, bool) {
	if specifier == "" {
		return "", false
	}
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return "", false
	}

	if isRelative(specifier) || filepath.IsAbs(specifier) {
		target := specifier
		if !filepath.IsAbs(target) {
			target = filepath.Join(base, filepath.FromSlash(specifier))
		}
		if p, ok := r.loadAsFile(target); ok {
			return p, true
		}
		return r.loadAsDirectory(target)
	}

	name, subpath, ok := splitSpecifier(specifier)
	if !ok {
		return "", false
	}
	return r.loadNodeModules(base, name, subpath)
}

// loadNodeModules walks up from dir looking for node_modules/name.
func (r *NodeResolver) loadNodeModules(dir, name, subpath string) (string, bool) {
	for {
		if filepath.Base(dir) != "node_modules" {
			pkgDir := filepath.Join(dir, "node_modules", filepath.FromSlash(name))
			if isDir(pkgDir) {
				if p, found, final := r.loadPackage(pkgDir, subpath); found || final {
					return p, found
				}
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// loadPackage resolves subpath inside pkgDir. final is true when the package
// declares "exports", in which case the outer node_modules are not searched.
func (r *NodeResolver) loadPackage(pkgDir, subpath string) (path string, found, final bool) {
	pkg, err := readPackageJSON(pkgDir)
	if err != nil {
		return "", false, false
	}

	if pkg != nil && pkg.hasExports() {
		target, ok := resolveExports(pkg.exports, subpath, r.conditions)
		if !ok {
			return "", false, true
		}
		p := filepath.Join(pkgDir, filepath.FromSlash(target))
		if !isFile(p) {
			return "", false, true
		}
		return p, true, true
	}

	if subpath == "." {
		p, ok := r.loadAsDirectory(pkgDir)
		return p, ok, false
	}
	target := filepath.Join(pkgDir, filepath.FromSlash(strings.TrimPrefix(subpath, "./")))
	if p, ok := r.loadAsFile(target); ok {
		return p, true, false
	}
	p, ok := r.loadAsDirectory(target)
	return p, ok, false
}

// loadAsFile tries path itself, then path with each extension.
func (r *NodeResolver) loadAsFile(path string) (string, bool) {
	if isFile(path) {
		return path, true
	}
	for _, ext := range r.opts.Extensions {
		if p := path + ext; isFile(p) {
			return p, true
		}
	}
	return "", false
}

// loadAsDirectory tries the main fields of dir/package.json, then dir/index.*.
func (r *NodeResolver) loadAsDirectory(dir string) (string, bool) {
	if !isDir(dir) {
		return "", false
	}
	if pkg, err := readPackageJSON(dir); err == nil && pkg != nil {
		for _, field := range r.opts.MainFields {
			main := pkg.mainField(field)
			if main == "" {
				continue
			}
			target := filepath.Join(dir, filepath.FromSlash(main))
			if p, ok := r.loadAsFile(target); ok {
				return p, true
			}
			if p, ok := r.loadIndex(target); ok {
				return p, true
			}
		}
	}
	return r.loadIndex(dir)
}

func (r *NodeResolver) loadIndex(dir string) (string, bool) {
	for _, ext := range r.opts.Extensions {
		if p := filepath.Join(dir, "index"+ext); isFile(p) {
			return p, true
		}
	}
	return "", false
}

// mainField returns the named entry-point field of the package.
func (p *packageFile) mainField(field string) string {
	switch field {
	case "main":
		return p.Main
	case "module":
		return p.Module
	default:
		return ""
	}
}

// splitSpecifier splits a bare specifier into package name and "./"-style subpath.
//
//	"foo"              -> "foo", "."
//	"foo/bar/baz"      -> "foo", "./bar/baz"
//	"@scope/pkg/color" -> "@scope/pkg", "./color"
func splitSpecifier(spec string) (name, subpath string, ok bool) {
	parts := strings.Split(spec, "/")
	n := 1
	if strings.HasPrefix(spec, "@") {
		n = 2
	}
	if len(parts) < n {
		return "", "", false
	}
	for _, p := range parts[:n] {
		if p == "" || p == "." || p == ".." || p == "@" {
			return "", "", false
		}
	}
	name = strings.Join(parts[:n], "/")
	if len(parts) == n {
		return name, ".", true
	}
	return name, "./" + strings.Join(parts[n:], "/"), true
}

func isRelative(spec string) bool {
	return spec == "." || spec == ".." || strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../")
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Ensure NodeResolver implements Resolver.
var _ Resolver = (*NodeResolver)(nil)
