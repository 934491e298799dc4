// Package pipeline ties dependency resolution and bundle extraction together.
//
// Given the module paths a shader imports, the pipeline finds the npm packages
// that provide them and reads each package's weslBundle descriptor:
//
//  1. Resolve: module paths to unique package files ([deps.Packages])
//  2. Extract: package files to descriptors ([bundle.Extractor])
//
// # Usage
//
// The package-level functions use a default [Runner]:
//
//	bundles, err := pipeline.ResolveAndExtract(ctx, []string{
//	    "random_wgsl::lib::pcg_2u_3f",
//	    "lygia__shader_utils::color::rgb2hsv",
//	}, projectDir)
//
// Create a Runner to cache descriptors, swap the resolver or parser, add
// virtual libraries, or log progress:
//
//	fc, _ := cache.NewFileCache(dir)
//	runner := pipeline.NewRunner(fc, nil, nil, logger)
//	runner.VirtualLibs = []string{"env"}
//	result, err := runner.Run(ctx, pipeline.Options{
//	    ModulePaths: paths,
//	    ProjectDir:  projectDir,
//	})
//
// Resolution never fails: a module path without a package is left out.
// Extraction fails on the first bad bundle and returns no partial results.
//
// [deps.Packages]: github.com/matzehuels/weslpkg/pkg/deps.Packages
// [bundle.Extractor]: github.com/matzehuels/weslpkg/pkg/bundle.Extractor
package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/weslpkg/pkg/bundle"
	"github.com/matzehuels/weslpkg/pkg/deps"
	"github.com/matzehuels/weslpkg/pkg/errors"
)

// Format constants for output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// GraphFormats is the subset of formats that render the resolution graph.
var GraphFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
}

// ValidateFormat checks if a format string is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be text, json, dot, or svg)", format)
	}
	return nil
}

// ValidateGraphFormat checks if a format can render the resolution graph.
func ValidateGraphFormat(format string) error {
	if !GraphFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid graph format: %s (must be dot or svg)", format)
	}
	return nil
}

// Options configures one pipeline run.
type Options struct {
	ModulePaths []string // Module paths referenced by the shader sources
	ProjectDir  string   // Directory resolution starts from
	Packages    []string // npm package names to resolve directly (from wesl.toml)
}

// Validate checks the options for a run.
func (o Options) Validate() error {
	if o.ProjectDir == "" {
		return errors.New(errors.ErrCodeInvalidInput, "project directory is required")
	}
	if len(o.ModulePaths) == 0 && len(o.Packages) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "at least one module path or package is required")
	}
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Resolutions []deps.Resolution    // Every module path (or package) that resolved
	Packages    []string             // Unique package files, sorted
	Bundles     []*bundle.Descriptor // One descriptor per package, same order as Packages
	Stats       Stats
}

// Stats contains timing and count information.
type Stats struct {
	ResolveTime time.Duration
	ExtractTime time.Duration
	Unresolved  int // Package-referencing module paths with no package
}

// String returns a short summary such as "2 packages, 5 modules".
func (r *Result) String() string {
	modules := 0
	for _, b := range r.Bundles {
		modules += len(b.Modules)
	}
	return fmt.Sprintf("%d %s, %d %s", len(r.Bundles), plural(len(r.Bundles), "package"), modules, plural(modules, "module"))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
