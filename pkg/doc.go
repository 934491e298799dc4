// Package pkg provides the core libraries for weslpkg.
//
// # Overview
//
// WESL shaders import code from npm packages with module paths such as
// random_wgsl::lib::pcg_2u_3f. Each such package ships a JavaScript or
// TypeScript file that declares a weslBundle object literal holding the
// package's shader sources. weslpkg finds the packages a set of module paths
// refer to and reads their bundles without executing any JavaScript.
//
// # Architecture
//
// The typical data flow:
//
//	module paths ("foo__bar::color::rgb")
//	         ↓
//	    [modpath] (split, builtin check, subpaths, npm name variations)
//	         ↓
//	    [deps] + [noderesolve] (probe node_modules, unique package files)
//	         ↓
//	    [bundle] (tree-sitter parse, weslBundle descriptor)
//	         ↓
//	    [io] JSON, CLI table, or [render] DOT/SVG
//
// [pipeline] ties the stages together behind a Runner, caching descriptors
// through [cache] and reporting to [observability] hooks. [project] reads
// wesl.toml and locates the project root.
//
// # Quick Start
//
//	import "github.com/matzehuels/weslpkg/pkg/pipeline"
//
//	bundles, err := pipeline.ResolveAndExtract(ctx, []string{
//	    "random_wgsl::lib::pcg_2u_3f",
//	    "lygia__shader_utils::color::rgb2hsv",
//	}, projectDir)
//	for _, b := range bundles {
//	    fmt.Println(b.Name, b.Edition, b.Modules.Paths())
//	}
//
// # Testing
//
//	go test ./pkg/...
//
// [modpath]: https://pkg.go.dev/github.com/matzehuels/weslpkg/pkg/modpath
// [deps]: https://pkg.go.dev/github.com/matzehuels/weslpkg/pkg/deps
// [noderesolve]: https://pkg.go.dev/github.com/matzehuels/weslpkg/pkg/noderesolve
// [bundle]: https://pkg.go.dev/github.com/matzehuels/weslpkg/pkg/bundle
// [io]: https://pkg.go.dev/github.com/matzehuels/weslpkg/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/weslpkg/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/weslpkg/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/weslpkg/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/weslpkg/pkg/observability
// [project]: https://pkg.go.dev/github.com/matzehuels/weslpkg/pkg/project
package pkg
