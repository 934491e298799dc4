// Package deps finds the npm packages that WESL module paths refer to.
//
// # Overview
//
// A shader that says
//
//	import lygia__shader_utils::color::rgb2hsv;
//
// depends on the npm package "@lygia/shader-utils" (or "@lygia/shader_utils"),
// possibly through an export subpath such as "./color". The module path alone
// does not say which segments belong to the package and which to the modules
// inside its bundle, nor how the package name was spelled before sanitization.
// This package answers both by probing a [noderesolve.Resolver].
//
// # Resolving
//
// [ResolvePath] probes one module path:
//
//  1. Export subpaths, longest first ("lygia__shader_utils/color", then
//     "lygia__shader_utils"), see [modpath.ExportSubpaths].
//  2. For each subpath, the underscore then hyphen spelling, see
//     [modpath.NameVariations].
//  3. The first specifier the resolver finds wins.
//
// [Packages] applies this to a list of module paths and returns the unique
// resolved files:
//
//	pkgs := deps.Packages([]string{
//	    "random_wgsl::lib::pcg_2u_3f",
//	    "random_wgsl::lib::mixing",   // same package, reported once
//	    "constants::num_lights",      // linker-provided, skipped
//	    "vec3f",                      // built-in, skipped
//	}, projectDir, deps.Options{})
//
// Nothing here returns an error. A module path that does not resolve is an
// expected outcome (it may be a built-in supplied elsewhere) and is left out.
//
// # Options
//
// [Options] controls resolution behavior:
//
//   - Resolver: module resolution (default: Node-style node_modules lookup)
//   - VirtualLibs: extra namespaces supplied at link time, skipped like "constants"
//   - Logger: debug output for skipped and resolved paths
//
// [noderesolve.Resolver]: github.com/matzehuels/weslpkg/pkg/noderesolve.Resolver
// [modpath.ExportSubpaths]: github.com/matzehuels/weslpkg/pkg/modpath.ExportSubpaths
// [modpath.NameVariations]: github.com/matzehuels/weslpkg/pkg/modpath.NameVariations
package deps
