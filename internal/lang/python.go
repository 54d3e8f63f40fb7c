package lang

import (
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/mangolang/mango-ir/internal/model"
)

func init() {
	Languages["python"] = &Language{
		Name:       "python",
		Extensions: []string{".py"},
		lang:       python.GetLanguage(),
		Module:     pythonModule,
		Define:     pythonDefine,
		References: pythonReferences,
	}
}

// pythonModule derives the import path of a file from its repo-relative
// path: "pkg/sub/mod.py" is pkg.sub.mod and "pkg/__init__.py" is pkg.
func pythonModule(_ *sitter.Node, _ []byte, path string) string {
	path = strings.TrimSuffix(filepath.ToSlash(path), ".py")
	parts := strings.Split(path, "/")
	if parts[len(parts)-1] == "__init__" {
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, ".")
}

func pythonDefine(node *sitter.Node, source []byte, enclosing model.SymbolKind) (Definition, bool) {
	switch node.Type() {
	case "class_definition":
		name := FieldText(node, "name", source)
		if name == "" {
			return Definition{}, false
		}
		sig := name
		if args := node.ChildByFieldName("superclasses"); args != nil {
			sig += NodeText(args, source)
		}
		return Definition{Segments: []string{name}, Kind: model.Class, Signature: sig}, true

	case "function_definition":
		name := FieldText(node, "name", source)
		if name == "" {
			return Definition{}, false
		}
		kind := model.Function
		if enclosing == model.Class {
			kind = model.Method
		}
		sig := name + CollapseWhitespace(FieldText(node, "parameters", source))
		if ret := FieldText(node, "return_type", source); ret != "" {
			sig += " -> " + ret
		}
		return Definition{Segments: []string{name}, Kind: kind, Signature: sig}, true
	}
	return Definition{}, false
}

func pythonReferences(node *sitter.Node, source []byte) []string {
	switch node.Type() {
	case "call":
		if fn := FieldText(node, "function", source); fn != "" {
			return []string{fn}
		}

	case "import_statement":
		var refs []string
		for i := 0; i < int(node.NamedChildCount()); i++ {
			if ref := pythonImportedName(node.NamedChild(i), source); ref != "" {
				refs = append(refs, ref)
			}
		}
		return refs

	case "import_from_statement":
		module := node.ChildByFieldName("module_name")
		if module == nil || module.Type() != "dotted_name" {
			// Relative imports have no absolute name to record.
			return nil
		}
		prefix := NodeText(module, source)
		var refs []string
		for i := 0; i < int(node.NamedChildCount()); i++ {
			child := node.NamedChild(i)
			if child == module {
				continue
			}
			if ref := pythonImportedName(child, source); ref != "" {
				refs = append(refs, prefix+"."+ref)
			}
		}
		if len(refs) == 0 {
			refs = append(refs, prefix)
		}
		return refs
	}
	return nil
}

func pythonImportedName(node *sitter.Node, source []byte) string {
	switch node.Type() {
	case "dotted_name":
		return NodeText(node, source)
	case "aliased_import":
		return FieldText(node, "name", source)
	}
	return ""
}
