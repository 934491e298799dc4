// Package io provides JSON import and export for bundle descriptors.
//
// # Overview
//
// Extracted descriptors are written as an indented JSON array so other tools
// (bundlers, linkers, editors) can consume them without parsing JavaScript.
// The same file can be read back with [ReadJSON], for example to browse a
// previous run without touching node_modules.
//
// # JSON Format
//
//	[
//	  {
//	    "name": "random_wgsl",
//	    "edition": "unstable_2025_1",
//	    "modules": {
//	      "lib.wgsl": "fn pcg_2u_3f(pos: vec2u) -> vec3f { ... }"
//	    },
//	    "dependencies": []
//	  }
//	]
//
// "modules" is an object keyed by module path in bundle order. When a bundle
// lists a path twice, only the first entry is written.
//
// Resolutions ([WriteResolutionsJSON]) use a flat array:
//
//	[
//	  {"module_path": "random_wgsl::lib::pcg_2u_3f", "package": "/app/node_modules/random_wgsl/dist/weslBundle.js"}
//	]
//
// # Usage
//
// Export to a file:
//
//	err := io.ExportJSON(bundles, "bundles.json")
//
// Write to any [io.Writer]:
//
//	err := io.WriteJSON(bundles, os.Stdout)
//
// Import:
//
//	bundles, err := io.ImportJSON("bundles.json")
package io
