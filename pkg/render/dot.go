package render

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/weslpkg/pkg/bundle"
	"github.com/matzehuels/weslpkg/pkg/deps"
)

// Options configures resolution graph rendering.
type Options struct {
	// Detailed adds bundle name, edition and module count to package labels.
	Detailed bool
	// Bundles maps package paths to their descriptors for detailed labels.
	Bundles map[string]*bundle.Descriptor
	// ProjectDir shortens package labels to paths relative to it.
	ProjectDir string
}

// ToDOT converts resolutions to Graphviz DOT format, with one edge from each
// module path to its package. Packages are drawn as filled boxes, module paths
// as rounded boxes, in first-seen order.
func ToDOT(res []deps.Resolution, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"monospace\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=1.0;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	pkgs := make(map[string]bool)
	for _, r := range res {
		if !pkgs[r.Package] {
			pkgs[r.Package] = true
			label := packageLabel(r.Package, opts)
			fmt.Fprintf(&buf, "  %q [label=%q, shape=box, style=filled, fillcolor=\"#dbe9f6\"];\n", r.Package, label)
		}
	}

	buf.WriteString("\n")
	mods := make(map[string]bool)
	for _, r := range res {
		if mods[r.ModulePath] {
			continue
		}
		mods[r.ModulePath] = true
		id := "mod:" + r.ModulePath
		fmt.Fprintf(&buf, "  %q [label=%q];\n", id, r.ModulePath)
		fmt.Fprintf(&buf, "  %q -> %q;\n", id, r.Package)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func packageLabel(pkg string, opts Options) string {
	label := pkg
	if opts.ProjectDir != "" {
		if rel, err := filepath.Rel(opts.ProjectDir, pkg); err == nil && !strings.HasPrefix(rel, "..") {
			label = filepath.ToSlash(rel)
		}
	}
	if !opts.Detailed {
		return label
	}
	b, ok := opts.Bundles[pkg]
	if !ok {
		return label
	}
	return fmt.Sprintf("%s\n%s (%s)\n%d modules", label, b.Name, b.Edition, len(b.Modules))
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales from its
// viewBox instead of Graphviz's point-based width and height.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(root))
}
