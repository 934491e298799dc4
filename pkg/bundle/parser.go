package bundle

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// SourceKind selects the grammar used to parse a bundle file.
type SourceKind int

const (
	JavaScript SourceKind = iota
	TypeScript
	TSX
)

func (k SourceKind) String() string {
	switch k {
	case TypeScript:
		return "typescript"
	case TSX:
		return "tsx"
	default:
		return "javascript"
	}
}

// SourceKindFromPath picks a grammar from the file extension.
// Anything that is not TypeScript is parsed as JavaScript.
func SourceKindFromPath(path string) SourceKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".mts", ".cts":
		return TypeScript
	case ".tsx":
		return TSX
	default:
		return JavaScript
	}
}

func (k SourceKind) language() *sitter.Language {
	switch k {
	case TypeScript:
		return typescript.GetLanguage()
	case TSX:
		return tsx.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// Parser turns bundle source into a syntax tree.
//
// Implementations return a *SyntaxError (with an empty Path) when the source
// does not parse cleanly. The caller owns the returned tree and must Close it.
type Parser interface {
	Parse(ctx context.Context, src []byte, kind SourceKind) (*sitter.Tree, error)
}

// TreeSitterParser parses bundles with tree-sitter grammars.
type TreeSitterParser struct {
	// MaxDiagnostics caps how many problems a SyntaxError lists (default: 10).
	MaxDiagnostics int
}

// Parse implements Parser.
func (p TreeSitterParser) Parse(ctx context.Context, src []byte, kind SourceKind) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(kind.language())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, err
	}
	root := tree.RootNode()
	if !root.HasError() {
		return tree, nil
	}

	limit := p.MaxDiagnostics
	if limit <= 0 {
		limit = 10
	}
	diags := collectDiagnostics(root, src, limit)
	tree.Close()
	return nil, &SyntaxError{Diagnostics: diags}
}

func collectDiagnostics(root *sitter.Node, src []byte, limit int) []Diagnostic {
	var diags []Diagnostic
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if len(diags) >= limit {
			return
		}
		switch {
		case n.IsMissing():
			diags = append(diags, diagnosticAt(n, fmt.Sprintf("missing %q", n.Type())))
			return
		case n.Type() == "ERROR":
			diags = append(diags, diagnosticAt(n, "unexpected "+snippet(n.Content(src))))
			return
		}
		if !n.HasError() {
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	if len(diags) == 0 {
		diags = append(diags, diagnosticAt(root, "invalid syntax"))
	}
	return diags
}

func diagnosticAt(n *sitter.Node, msg string) Diagnostic {
	pt := n.StartPoint()
	return Diagnostic{Line: int(pt.Row) + 1, Column: int(pt.Column) + 1, Message: msg}
}

func snippet(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "input"
	}
	if len(s) > 24 {
		s = s[:24] + "..."
	}
	return fmt.Sprintf("%q", s)
}

// Ensure TreeSitterParser implements Parser.
var _ Parser = TreeSitterParser{}
