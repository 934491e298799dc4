package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/weslpkg/pkg/bundle"
	"github.com/matzehuels/weslpkg/pkg/cache"
	"github.com/matzehuels/weslpkg/pkg/deps"
	"github.com/matzehuels/weslpkg/pkg/modpath"
	"github.com/matzehuels/weslpkg/pkg/noderesolve"
	"github.com/matzehuels/weslpkg/pkg/observability"
)

// Runner resolves module paths and extracts bundles.
//
// package.json files are read afresh on every call. Extracted descriptors go
// through Cache, keyed by package path and file contents. Multiple goroutines
// can safely share a Runner when its Cache is safe for concurrent use.
type Runner struct {
	Cache       cache.Cache
	CacheTTL    time.Duration
	Resolver    noderesolve.Resolver
	Extractor   *bundle.Extractor
	VirtualLibs []string // Extra namespaces treated like "constants"
	Logger      *log.Logger
}

// NewRunner creates a runner with the given cache, resolver, parser and
// logger. A nil cache stores nothing, a nil resolver uses Node-style
// resolution, a nil parser uses tree-sitter, and a nil logger uses
// log.Default().
func NewRunner(c cache.Cache, resolver noderesolve.Resolver, parser bundle.Parser, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if resolver == nil {
		resolver = noderesolve.New(noderesolve.Options{})
	}
	if parser == nil {
		parser = bundle.TreeSitterParser{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:     c,
		CacheTTL:  cache.DefaultTTL,
		Resolver:  resolver,
		Extractor: &bundle.Extractor{Parser: parser, Logger: logger},
		Logger:    logger,
	}
}

func (r *Runner) depsOptions() deps.Options {
	return deps.Options{
		Resolver:    r.Resolver,
		VirtualLibs: r.VirtualLibs,
		Logger:      r.Logger,
	}
}

// Resolve returns the package each module path resolved to, in input order.
func (r *Runner) Resolve(paths []string, projectDir string) []deps.Resolution {
	return deps.Resolve(paths, projectDir, r.depsOptions())
}

// ResolveModulePaths returns the unique package files that paths refer to,
// sorted. It never fails.
func (r *Runner) ResolveModulePaths(paths []string, projectDir string) []string {
	return deps.Unique(r.Resolve(paths, projectDir))
}

// ExtractBundle reads the weslBundle descriptor from one package file,
// consulting the cache first. Cache failures are logged and never fail the
// extraction.
func (r *Runner) ExtractBundle(ctx context.Context, packagePath string) (d *bundle.Descriptor, err error) {
	hooks := observability.Pipeline()
	hooks.OnExtractStart(ctx, packagePath)
	start := time.Now()
	defer func() {
		modules := 0
		if d != nil {
			modules = len(d.Modules)
		}
		hooks.OnExtractComplete(ctx, packagePath, modules, time.Since(start), err)
	}()

	src, err := os.ReadFile(packagePath)
	if err != nil {
		return nil, &bundle.ReadError{Path: packagePath, Err: err}
	}

	key := cache.BundleKey(packagePath, src)
	if cached, ok := r.cached(ctx, key); ok {
		observability.Cache().OnCacheHit(ctx, packagePath)
		r.Logger.Debug("bundle cache hit", "package", packagePath)
		return cached, nil
	}
	observability.Cache().OnCacheMiss(ctx, packagePath)

	d, err = r.Extractor.ExtractSource(ctx, packagePath, src, bundle.SourceKindFromPath(packagePath))
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, packagePath, d)
	return d, nil
}

func (r *Runner) cached(ctx context.Context, key string) (*bundle.Descriptor, bool) {
	if r.Cache == nil {
		return nil, false
	}
	data, ok, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("bundle cache read failed", "err", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var d bundle.Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, false
	}
	if d.Modules == nil {
		d.Modules = bundle.Modules{}
	}
	if d.Dependencies == nil {
		d.Dependencies = []*bundle.Descriptor{}
	}
	return &d, true
}

func (r *Runner) store(ctx context.Context, key, packagePath string, d *bundle.Descriptor) {
	if r.Cache == nil {
		return
	}
	data, err := json.Marshal(d)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.CacheTTL); err != nil {
		r.Logger.Warn("bundle cache write failed", "package", packagePath, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, packagePath, len(data))
}

// ExtractBundles extracts every package in order. The first failure aborts
// the batch and no descriptors are returned.
func (r *Runner) ExtractBundles(ctx context.Context, packagePaths []string) ([]*bundle.Descriptor, error) {
	out := make([]*bundle.Descriptor, 0, len(packagePaths))
	for _, p := range packagePaths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		d, err := r.ExtractBundle(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", p, err)
		}
		out = append(out, d)
	}
	return out, nil
}

// ResolveAndExtract resolves module paths and extracts the bundle of every
// package found.
func (r *Runner) ResolveAndExtract(ctx context.Context, modulePaths []string, projectDir string) ([]*bundle.Descriptor, error) {
	return r.ExtractBundles(ctx, r.ResolveModulePaths(modulePaths, projectDir))
}

// Run executes resolve then extract and reports what was found along the way.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	result := &Result{}

	// Stage 1: Resolve
	start := time.Now()
	fromPaths := r.Resolve(opts.ModulePaths, opts.ProjectDir)
	result.Resolutions = append(fromPaths, deps.ResolvePackages(opts.Packages, opts.ProjectDir, r.depsOptions())...)
	result.Packages = deps.Unique(result.Resolutions)
	result.Stats.ResolveTime = time.Since(start)
	result.Stats.Unresolved = r.countPackageRefs(opts.ModulePaths) - len(fromPaths)
	observability.Pipeline().OnResolveComplete(ctx, len(opts.ModulePaths)+len(opts.Packages), len(result.Packages), result.Stats.ResolveTime)

	r.Logger.Debug("resolved packages",
		"packages", len(result.Packages),
		"unresolved", result.Stats.Unresolved,
		"duration", result.Stats.ResolveTime)

	// Stage 2: Extract
	start = time.Now()
	bundles, err := r.ExtractBundles(ctx, result.Packages)
	if err != nil {
		return nil, err
	}
	result.Bundles = bundles
	result.Stats.ExtractTime = time.Since(start)

	r.Logger.Debug("extracted bundles",
		"bundles", len(bundles),
		"duration", result.Stats.ExtractTime)

	return result, nil
}

func (r *Runner) countPackageRefs(paths []string) int {
	n := 0
	for _, s := range paths {
		if p, err := modpath.Parse(s); err == nil && p.IsPackageRef(r.VirtualLibs...) {
			n++
		}
	}
	return n
}

var defaultRunner = NewRunner(nil, nil, nil, nil)

// ResolveModulePaths resolves module paths with the default runner.
func ResolveModulePaths(paths []string, projectDir string) []string {
	return defaultRunner.ResolveModulePaths(paths, projectDir)
}

// ExtractBundle extracts one bundle with the default runner.
func ExtractBundle(ctx context.Context, packagePath string) (*bundle.Descriptor, error) {
	return defaultRunner.ExtractBundle(ctx, packagePath)
}

// ExtractBundles extracts bundles with the default runner.
func ExtractBundles(ctx context.Context, packagePaths []string) ([]*bundle.Descriptor, error) {
	return defaultRunner.ExtractBundles(ctx, packagePaths)
}

// ResolveAndExtract resolves and extracts with the default runner.
func ResolveAndExtract(ctx context.Context, modulePaths []string, projectDir string) ([]*bundle.Descriptor, error) {
	return defaultRunner.ResolveAndExtract(ctx, modulePaths, projectDir)
}
