// Package project locates a WESL project and loads its wesl.toml.
//
// A project directory is the nearest ancestor containing package.json or
// wesl.toml ([FindRoot]). Its configuration comes from wesl.toml when present
// and from [DefaultConfig] otherwise ([FindConfig]).
//
// Two keys matter for dependency resolution: "dependencies", which lists npm
// packages to resolve directly instead of relying on import discovery, and
// "virtual-libs", which names extra namespaces the linker supplies.
package project
