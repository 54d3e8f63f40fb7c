package lang

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/mangolang/mango-ir/internal/model"
)

func TestForExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ext  string
		want string
	}{
		{".py", "python"},
		{".go", "go"},
		{".rb", "ruby"},
		{".js", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			t.Parallel()
			got := ForExtension(tt.ext)
			if got != tt.want {
				t.Errorf("ForExtension(%q) = %q, want %q", tt.ext, got, tt.want)
			}
		})
	}
}

func TestLanguagesRegistered(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"python", "go", "ruby"} {
		l, ok := Languages[name]
		if !ok {
			t.Fatalf("%s language not registered", name)
		}
		if l.lang == nil || l.NewParser() == nil {
			t.Errorf("%s language is nil", name)
		}
		if l.Module == nil || l.Define == nil || l.References == nil {
			t.Errorf("%s language has missing hooks", name)
		}
		if l.NewParser() == nil {
			t.Errorf("%s NewParser returned nil", name)
		}
	}
}

func TestPythonModule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"main.py", "main"},
		{"pkg/sub/mod.py", "pkg.sub.mod"},
		{"pkg/__init__.py", "pkg"},
		{"__init__.py", ""},
	}
	for _, tt := range tests {
		if got := pythonModule(nil, nil, tt.path); got != tt.want {
			t.Errorf("pythonModule(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

// collect parses source and returns every definition and reference found by
// visiting all nodes, with the enclosing kind tracked like the extractor does.
func collect(t *testing.T, langName, source string) ([]Definition, []string, string) {
	t.Helper()
	l := Languages[langName]
	tree, err := l.NewParser().ParseCtx(context.Background(), nil, []byte(source))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	t.Cleanup(tree.Close)

	var defs []Definition
	var refs []string
	var visit func(n *sitter.Node, enclosing model.SymbolKind)
	visit = func(n *sitter.Node, enclosing model.SymbolKind) {
		if d, ok := l.Define(n, []byte(source), enclosing); ok {
			defs = append(defs, d)
			enclosing = d.Kind
		}
		refs = append(refs, l.References(n, []byte(source))...)
		for i := 0; i < int(n.NamedChildCount()); i++ {
			visit(n.NamedChild(i), enclosing)
		}
	}
	root := tree.RootNode()
	visit(root, "")
	return defs, refs, l.Module(root, []byte(source), "test")
}

func TestGoDefinitions(t *testing.T) {
	t.Parallel()

	src := `package shapes

import (
	"fmt"
	str "strings"
)

type Set[T comparable] struct{}

func (s *Set[T]) Add(v T) bool { return true }

func New() *Set[int] {
	fmt.Println(str.ToUpper("x"))
	return nil
}
`
	defs, refs, module := collect(t, "go", src)
	if module != "shapes" {
		t.Errorf("module = %q, want shapes", module)
	}
	if len(defs) != 3 {
		t.Fatalf("expected 3 defs, got %+v", defs)
	}
	if defs[0].Kind != model.Type || defs[0].Segments[0] != "Set" {
		t.Errorf("def 0 = %+v", defs[0])
	}
	if defs[1].Kind != model.Method || len(defs[1].Segments) != 2 ||
		defs[1].Segments[0] != "Set" || defs[1].Segments[1] != "Add" {
		t.Errorf("def 1 = %+v", defs[1])
	}
	if defs[1].Signature != "Add(v T) bool" {
		t.Errorf("method sig = %q", defs[1].Signature)
	}
	if defs[2].Kind != model.Function || defs[2].Signature != "New() *Set[int]" {
		t.Errorf("def 2 = %+v", defs[2])
	}

	want := map[string]bool{"fmt": false, "str": false, "fmt.Println": false, "str.ToUpper": false}
	for _, r := range refs {
		if _, ok := want[r]; ok {
			want[r] = true
		}
	}
	for r, seen := range want {
		if !seen {
			t.Errorf("missing reference %q in %v", r, refs)
		}
	}
}

func TestPythonDefinitions(t *testing.T) {
	t.Parallel()

	src := `import os.path
from pkg.models import User as U

class Greeter(Base):
    @staticmethod
    def greet(name: str) -> str:
        return os.path.join(name)

def main():
    Greeter.greet("x")
`
	defs, refs, _ := collect(t, "python", src)
	if len(defs) != 3 {
		t.Fatalf("expected 3 defs, got %+v", defs)
	}
	if defs[0].Kind != model.Class || defs[0].Signature != "Greeter(Base)" {
		t.Errorf("class = %+v", defs[0])
	}
	if defs[1].Kind != model.Method || defs[1].Signature != "greet(name: str) -> str" {
		t.Errorf("method = %+v", defs[1])
	}
	if defs[2].Kind != model.Function || defs[2].Segments[0] != "main" {
		t.Errorf("function = %+v", defs[2])
	}

	want := map[string]bool{"os.path": false, "pkg.models.User": false, "os.path.join": false, "Greeter.greet": false}
	for _, r := range refs {
		if _, ok := want[r]; ok {
			want[r] = true
		}
	}
	for r, seen := range want {
		if !seen {
			t.Errorf("missing reference %q in %v", r, refs)
		}
	}
}

func TestRubyDefinitions(t *testing.T) {
	t.Parallel()

	src := `module Shop
  class Cart < Base
    def add(item)
      Logger.info(item)
    end
  end
end
`
	defs, refs, module := collect(t, "ruby", src)
	if module != "" {
		t.Errorf("module = %q, want empty", module)
	}
	if len(defs) != 3 {
		t.Fatalf("expected 3 defs, got %+v", defs)
	}
	if defs[0].Kind != model.Module || defs[1].Kind != model.Class || defs[2].Kind != model.Method {
		t.Errorf("kinds = %s %s %s", defs[0].Kind, defs[1].Kind, defs[2].Kind)
	}
	if defs[2].Signature != "add(item)" {
		t.Errorf("method sig = %q", defs[2].Signature)
	}
	found := false
	for _, r := range refs {
		if r == "Logger.info" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing Logger.info in %v", refs)
	}
}

func TestCollapseWhitespace(t *testing.T) {
	t.Parallel()

	if got := CollapseWhitespace("  (a,\n\t b)  "); got != "(a, b)" {
		t.Errorf("CollapseWhitespace = %q", got)
	}
}
