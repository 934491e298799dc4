package bundle

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	sitter "github.com/smacker/go-tree-sitter"
)

// Extractor reads weslBundle descriptors out of bundle files.
type Extractor struct {
	Parser Parser      // Syntax parser (default: TreeSitterParser)
	Logger *log.Logger // Debug output (optional)
}

// NewExtractor returns an Extractor with default settings.
func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) parser() Parser {
	if e.Parser == nil {
		return TreeSitterParser{}
	}
	return e.Parser
}

func (e *Extractor) logger() *log.Logger {
	if e.Logger == nil {
		return log.New(io.Discard)
	}
	return e.Logger
}

// Extract reads path and returns its weslBundle descriptor.
//
// The file is parsed as JavaScript unless its extension says TypeScript.
// Errors are *ReadError, *SyntaxError, *NotFoundError or *MissingFieldError.
func (e *Extractor) Extract(ctx context.Context, path string) (*Descriptor, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	return e.ExtractSource(ctx, path, src, SourceKindFromPath(path))
}

// ExtractSource is Extract for source already in memory. path is only used
// in error messages.
func (e *Extractor) ExtractSource(ctx context.Context, path string, src []byte, kind SourceKind) (*Descriptor, error) {
	tree, err := e.parser().Parse(ctx, src, kind)
	if err != nil {
		if se, ok := err.(*SyntaxError); ok && se.Path == "" {
			se.Path = path
		}
		return nil, err
	}
	defer tree.Close()

	decl := findBundle(tree.RootNode(), src)
	if decl == nil {
		return nil, &NotFoundError{Path: path}
	}

	d := &Descriptor{Modules: Modules{}, Dependencies: []*Descriptor{}}
	var hasName, hasEdition bool
	if obj := unwrapExpression(decl.ChildByFieldName("value")); obj != nil && obj.Type() == "object" {
		hasName, hasEdition = readBundleObject(obj, src, d)
	}

	var missing []string
	if !hasName {
		missing = append(missing, "name")
	}
	if !hasEdition {
		missing = append(missing, "edition")
	}
	if len(missing) > 0 {
		return nil, &MissingFieldError{Path: path, Fields: missing}
	}

	e.logger().Debug("extracted bundle", "path", path, "name", d.Name, "edition", d.Edition, "modules", len(d.Modules))
	return d, nil
}

// findBundle returns the first top-level declarator binding weslBundle.
// Exported and plain const, let and var declarations are considered.
func findBundle(root *sitter.Node, src []byte) *sitter.Node {
	for i := 0; i < int(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(i)
		if stmt.Type() == "export_statement" {
			stmt = stmt.ChildByFieldName("declaration")
			if stmt == nil {
				continue
			}
		}
		if stmt.Type() != "lexical_declaration" && stmt.Type() != "variable_declaration" {
			continue
		}
		for j := 0; j < int(stmt.NamedChildCount()); j++ {
			decl := stmt.NamedChild(j)
			if decl.Type() != "variable_declarator" {
				continue
			}
			name := decl.ChildByFieldName("name")
			if name != nil && name.Type() == "identifier" && name.Content(src) == BundleName {
				return decl
			}
		}
	}
	return nil
}

// unwrapExpression strips parentheses and TypeScript type assertions.
func unwrapExpression(n *sitter.Node) *sitter.Node {
	for n != nil {
		switch n.Type() {
		case "parenthesized_expression", "as_expression", "satisfies_expression", "non_null_expression":
			n = n.NamedChild(0)
		default:
			return n
		}
	}
	return nil
}

// readBundleObject fills d from the properties of the weslBundle object.
// For name, edition and modules the first well-formed property wins.
func readBundleObject(obj *sitter.Node, src []byte, d *Descriptor) (hasName, hasEdition bool) {
	hasModules := false
	for i := 0; i < int(obj.NamedChildCount()); i++ {
		key, value, ok := property(obj.NamedChild(i), src)
		if !ok {
			continue
		}
		switch key {
		case "name":
			if s, ok := stringValue(value, src); ok && !hasName {
				d.Name, hasName = s, true
			}
		case "edition":
			if s, ok := stringValue(value, src); ok && !hasEdition {
				d.Edition, hasEdition = s, true
			}
		case "modules":
			if value.Type() == "object" && !hasModules {
				d.Modules, hasModules = readModules(value, src), true
			}
		}
	}
	return hasName, hasEdition
}

// readModules collects path/source pairs. Entries whose value is not a string
// literal are skipped, and a repeated path keeps its first source.
func readModules(obj *sitter.Node, src []byte) Modules {
	mods := Modules{}
	seen := make(map[string]bool)
	for i := 0; i < int(obj.NamedChildCount()); i++ {
		key, value, ok := property(obj.NamedChild(i), src)
		if !ok || seen[key] {
			continue
		}
		if s, ok := stringValue(value, src); ok {
			seen[key] = true
			mods = append(mods, Module{Path: key, Source: s})
		}
	}
	return mods
}

// property returns the static key and unwrapped value of an object pair.
// Computed keys, spreads, methods and shorthand properties are not pairs.
func property(n *sitter.Node, src []byte) (string, *sitter.Node, bool) {
	if n.Type() != "pair" {
		return "", nil, false
	}
	keyNode := n.ChildByFieldName("key")
	value := unwrapExpression(n.ChildByFieldName("value"))
	if keyNode == nil || value == nil {
		return "", nil, false
	}
	switch keyNode.Type() {
	case "property_identifier":
		return keyNode.Content(src), value, true
	case "string":
		return unquote(keyNode.Content(src)), value, true
	}
	return "", nil, false
}

func stringValue(n *sitter.Node, src []byte) (string, bool) {
	if n.Type() != "string" {
		return "", false
	}
	return unquote(n.Content(src)), true
}

var defaultExtractor = NewExtractor()

// Extract reads a descriptor with the default extractor.
func Extract(ctx context.Context, path string) (*Descriptor, error) {
	return defaultExtractor.Extract(ctx, path)
}
