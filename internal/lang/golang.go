package lang

import (
	"path"
	"strconv"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/mangolang/mango-ir/internal/model"
)

func init() {
	Languages["go"] = &Language{
		Name:       "go",
		Extensions: []string{".go"},
		lang:       golang.GetLanguage(),
		Module:     goModule,
		Define:     goDefine,
		References: goReferences,
	}
}

// goModule returns the name from the package clause.
func goModule(root *sitter.Node, source []byte, _ string) string {
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child.Type() != "package_clause" {
			continue
		}
		for j := 0; j < int(child.NamedChildCount()); j++ {
			if id := child.NamedChild(j); id.Type() == "package_identifier" {
				return NodeText(id, source)
			}
		}
	}
	return ""
}

func goDefine(node *sitter.Node, source []byte, _ model.SymbolKind) (Definition, bool) {
	switch node.Type() {
	case "type_spec":
		name := FieldText(node, "name", source)
		if name == "" {
			return Definition{}, false
		}
		return Definition{Segments: []string{name}, Kind: model.Type, Signature: name}, true

	case "function_declaration":
		name := FieldText(node, "name", source)
		if name == "" {
			return Definition{}, false
		}
		return Definition{Segments: []string{name}, Kind: model.Function, Signature: goSignature(node, name, source)}, true

	case "method_declaration":
		name := FieldText(node, "name", source)
		recv := goReceiverType(node, source)
		if name == "" || recv == "" {
			return Definition{}, false
		}
		return Definition{Segments: []string{recv, name}, Kind: model.Method, Signature: goSignature(node, name, source)}, true
	}
	return Definition{}, false
}

// goReceiverType extracts the receiver type name from a method_declaration,
// unwrapping pointer and generic receivers: (s *Set[T]) yields "Set".
func goReceiverType(node *sitter.Node, source []byte) string {
	recv := node.ChildByFieldName("receiver")
	if recv == nil {
		return ""
	}
	for i := 0; i < int(recv.NamedChildCount()); i++ {
		param := recv.NamedChild(i)
		if param.Type() != "parameter_declaration" {
			continue
		}
		if typ := param.ChildByFieldName("type"); typ != nil {
			return goTypeIdentifier(typ, source)
		}
	}
	return ""
}

func goTypeIdentifier(node *sitter.Node, source []byte) string {
	if node.Type() == "type_identifier" {
		return NodeText(node, source)
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if name := goTypeIdentifier(node.NamedChild(i), source); name != "" {
			return name
		}
	}
	return ""
}

func goSignature(node *sitter.Node, name string, source []byte) string {
	sig := name + CollapseWhitespace(FieldText(node, "parameters", source))
	if result := FieldText(node, "result", source); result != "" {
		sig += " " + CollapseWhitespace(result)
	}
	return sig
}

func goReferences(node *sitter.Node, source []byte) []string {
	switch node.Type() {
	case "call_expression":
		if fn := FieldText(node, "function", source); fn != "" {
			return []string{fn}
		}

	case "qualified_type":
		return []string{NodeText(node, source)}

	case "import_spec":
		// The package name is the last element of the import path unless
		// the import is renamed.
		if alias := FieldText(node, "name", source); alias != "" && alias != "_" && alias != "." {
			return []string{alias}
		}
		p, err := strconv.Unquote(FieldText(node, "path", source))
		if err != nil || p == "" {
			return nil
		}
		return []string{path.Base(p)}
	}
	return nil
}
