package lang

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/ruby"

	"github.com/mangolang/mango-ir/internal/model"
)

func init() {
	Languages["ruby"] = &Language{
		Name:       "ruby",
		Extensions: []string{".rb"},
		lang:       ruby.GetLanguage(),
		Module:     func(*sitter.Node, []byte, string) string { return "" },
		Define:     rubyDefine,
		References: rubyReferences,
	}
}

// rubyDefine names classes, modules and methods. Namespaces come from
// nesting; a class written as A::B contributes nothing, since "::" is not a
// dotted path.
func rubyDefine(node *sitter.Node, source []byte, enclosing model.SymbolKind) (Definition, bool) {
	switch node.Type() {
	case "class", "module":
		nameNode := node.ChildByFieldName("name")
		if nameNode == nil || nameNode.Type() != "constant" {
			return Definition{}, false
		}
		name := NodeText(nameNode, source)
		kind := model.Class
		if node.Type() == "module" {
			kind = model.Module
		}
		sig := name
		if super := node.ChildByFieldName("superclass"); super != nil {
			sig += " " + CollapseWhitespace(NodeText(super, source))
		}
		return Definition{Segments: []string{name}, Kind: kind, Signature: sig}, true

	case "method":
		name := FieldText(node, "name", source)
		if name == "" {
			return Definition{}, false
		}
		kind := model.Function
		if enclosing == model.Class || enclosing == model.Module {
			kind = model.Method
		}
		sig := name
		if params := node.ChildByFieldName("parameters"); params != nil {
			sig += CollapseWhitespace(NodeText(params, source))
		}
		return Definition{Segments: []string{name}, Kind: kind, Signature: sig}, true
	}
	return Definition{}, false
}

func rubyReferences(node *sitter.Node, source []byte) []string {
	if node.Type() != "call" {
		return nil
	}
	method := FieldText(node, "method", source)
	if method == "" {
		return nil
	}
	if recv := node.ChildByFieldName("receiver"); recv != nil {
		return []string{NodeText(recv, source) + "." + method}
	}
	return []string{method}
}
