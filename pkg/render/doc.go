// Package render draws the module path to package resolution as a graph.
//
// # Overview
//
// Each module path that resolved becomes a node pointing at the package file
// it resolved to. Several module paths usually share a package, so the graph
// shows at a glance which imports pull in which bundle.
//
// # Usage
//
// Convert resolutions to DOT format, then render to SVG:
//
//	dot := render.ToDOT(resolutions, render.Options{ProjectDir: dir})
//	svg, err := render.RenderSVG(ctx, dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: package labels include bundle name, edition and module count
//   - Bundles: descriptors keyed by package path, used when Detailed is set
//   - ProjectDir: package paths are shown relative to this directory
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. No external Graphviz installation is needed.
package render
