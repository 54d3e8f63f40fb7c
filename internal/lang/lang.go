// Package lang provides a language registry mapping file extensions to
// tree-sitter languages and the rules for naming their definitions.
package lang

import (
	"regexp"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/mangolang/mango-ir/internal/model"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Definition describes a symbol introduced by a syntax node.
type Definition struct {
	// Segments are appended to the enclosing scope, outermost first.
	// A Go method yields its receiver type and its own name.
	Segments  []string
	Kind      model.SymbolKind
	Signature string
}

// Language holds tree-sitter configuration for a supported language.
type Language struct {
	Name       string
	Extensions []string
	lang       *sitter.Language

	// Module returns the dotted module scope of a file, or "" if the file
	// contributes no scope of its own.
	Module func(root *sitter.Node, source []byte, path string) string

	// Define reports the definition introduced by node, if any. enclosing is
	// the kind of the innermost definition around node ("" at top level).
	Define func(node *sitter.Node, source []byte, enclosing model.SymbolKind) (Definition, bool)

	// References returns the name-like texts referenced directly by node,
	// e.g. the target of a call or an imported module. The texts may carry
	// trailing syntax; callers recognize the FQN-shaped prefix.
	References func(node *sitter.Node, source []byte) []string
}

// NewParser creates a fresh tree-sitter parser for this language.
// Each goroutine must use its own parser (not thread-safe).
func (l *Language) NewParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(l.lang)
	return p
}

// Languages maps language names to their configuration.
// Populated by init() functions in per-language files.
var Languages = map[string]*Language{}

var extensionMap = sync.OnceValue(func() map[string]string {
	m := make(map[string]string)
	for _, l := range Languages {
		for _, ext := range l.Extensions {
			m[ext] = l.Name
		}
	}
	return m
})

// ForExtension returns the language name for a file extension, or "" if unsupported.
func ForExtension(ext string) string {
	return extensionMap()[ext]
}

// NodeText returns the source text of a tree-sitter node.
func NodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

// FieldText returns the text of node's child under field, or "".
func FieldText(node *sitter.Node, field string, source []byte) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return NodeText(child, source)
}

// CollapseWhitespace replaces runs of whitespace with a single space and trims.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
