// Package bundle extracts WESL bundle descriptors from published packages.
//
// # Overview
//
// A WESL package ships its shaders inside a generated JavaScript (or
// TypeScript) module that declares a top-level object literal:
//
//	export const weslBundle = {
//	  name: "random_wgsl",
//	  edition: "unstable_2025_1",
//	  modules: {
//	    "lib.wgsl": "fn pcg_2u_3f(pos: vec2u) -> vec3f { ... }",
//	  },
//	};
//
// The file is never executed. [Extractor] parses it with tree-sitter and reads
// the literal values, producing a [Descriptor].
//
// # What is recognized
//
//   - const, let and var declarations, exported or not, at the top level
//   - the first declarator named weslBundle; later ones are ignored
//   - parentheses and TypeScript "as"/"satisfies" around the object
//   - identifier and string-literal keys; string-literal values with
//     JavaScript escapes decoded
//
// Module entries with non-literal values (template strings, imports,
// expressions) are skipped. Nothing is evaluated.
//
// # Errors
//
// Extraction fails with one of four error types, each carrying an
// [errors.Code] via its Code method:
//
//   - [ReadError]: the file could not be read
//   - [SyntaxError]: the parser reported errors
//   - [NotFoundError]: no top-level weslBundle declaration
//   - [MissingFieldError]: name or edition is absent or not a string literal
//
// [errors.Code]: github.com/matzehuels/weslpkg/pkg/errors.Code
package bundle
