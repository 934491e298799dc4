package deps

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/weslpkg/pkg/modpath"
	"github.com/matzehuels/weslpkg/pkg/noderesolve"
)

// Options configures dependency set building.
type Options struct {
	Resolver    noderesolve.Resolver // Module resolution (default: noderesolve.New with default options)
	VirtualLibs []string             // Namespaces supplied by the linker, skipped like "constants"
	Logger      *log.Logger          // Debug output for skipped paths and probes (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Resolver == nil {
		opts.Resolver = noderesolve.New(noderesolve.Options{})
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return opts
}

// Resolution records which package a module path resolved to.
type Resolution struct {
	ModulePath string `json:"module_path"`
	Package    string `json:"package"`
}

// ResolvePath probes for the package behind segments, as seen from baseDir.
//
// Export subpaths are tried longest first and, for each, the underscore and
// then the hyphen spelling of the package name. The first hit wins. A miss is
// not an error: the path may name a built-in supplied elsewhere.
func ResolvePath(r noderesolve.Resolver, segments []string, baseDir string) (string, bool) {
	for _, subpath := range modpath.ExportSubpaths(segments) {
		for _, variant := range modpath.NameVariations(subpath) {
			if p, ok := r.Resolve(baseDir, variant); ok {
				return p, true
			}
		}
	}
	return "", false
}

// Resolve resolves each module path that can refer to a package and returns
// the hits in input order. Misses, built-ins and malformed paths are skipped.
func Resolve(paths []string, baseDir string, opts Options) []Resolution {
	if len(paths) == 0 {
		return nil
	}
	opts = opts.WithDefaults()

	var out []Resolution
	for _, s := range paths {
		p, err := modpath.Parse(s)
		if err != nil {
			opts.Logger.Debug("skipping module path", "path", s, "err", err)
			continue
		}
		if !p.IsPackageRef(opts.VirtualLibs...) {
			opts.Logger.Debug("skipping built-in", "path", s)
			continue
		}
		pkg, ok := ResolvePath(opts.Resolver, p, baseDir)
		if !ok {
			opts.Logger.Debug("unresolved", "path", s)
			continue
		}
		opts.Logger.Debug("resolved", "path", s, "package", pkg)
		out = append(out, Resolution{ModulePath: s, Package: pkg})
	}
	return out
}

// Packages returns the unique package files referenced by paths, sorted.
// It never fails; paths that do not resolve are simply absent.
func Packages(paths []string, baseDir string, opts Options) []string {
	return Unique(Resolve(paths, baseDir, opts))
}

// Unique collapses resolutions that share a package and sorts the result.
func Unique(res []Resolution) []string {
	seen := make(map[string]bool, len(res))
	var pkgs []string
	for _, r := range res {
		if seen[r.Package] {
			continue
		}
		seen[r.Package] = true
		pkgs = append(pkgs, r.Package)
	}
	slices.Sort(pkgs)
	return pkgs
}

// ResolvePackages resolves npm package names directly, without name
// variations or subpath probing. Used for dependencies listed in wesl.toml.
func ResolvePackages(names []string, baseDir string, opts Options) []Resolution {
	opts = opts.WithDefaults()
	var out []Resolution
	for _, name := range names {
		pkg, ok := opts.Resolver.Resolve(baseDir, name)
		if !ok {
			opts.Logger.Debug("unresolved dependency", "package", name)
			continue
		}
		out = append(out, Resolution{ModulePath: modpath.SanitizePackageName(name), Package: pkg})
	}
	return out
}
