// Package parse extracts fully-qualified symbols and references from source
// files using tree-sitter.
package parse

import (
	"context"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/mangolang/mango-ir/internal/ctxlog"
	"github.com/mangolang/mango-ir/internal/fqn"
	"github.com/mangolang/mango-ir/internal/lang"
	"github.com/mangolang/mango-ir/internal/model"
	"github.com/mangolang/mango-ir/internal/name"
)

// Extract parses a source file and names every definition by its scope
// chain. The parser must be created for l. path is the repo-relative path
// and is used for module naming and as Symbol.File.
//
// Definitions whose names are not valid identifiers (for example Python's
// __init__) are skipped together with everything nested inside them.
func Extract(ctx context.Context, l *lang.Language, parser *sitter.Parser, source []byte, path string) (model.FileInfo, error) {
	fi := model.FileInfo{Path: path, Language: l.Name}
	if len(source) == 0 {
		return fi, nil
	}

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return fi, errors.Wrapf(err, "parsing %s", path)
	}
	defer tree.Close()

	root := tree.RootNode()
	fi.Module = moduleScope(ctx, l.Module(root, source, path), path)

	w := &walker{ctx: ctx, lang: l, source: source, info: &fi}
	w.walk(root, fi.Module, "")
	return fi, nil
}

func moduleScope(ctx context.Context, dotted, path string) fqn.Fqn {
	if dotted == "" {
		return fqn.Fqn{}
	}
	scope, err := fqn.New(dotted)
	if err != nil {
		ctxlog.FromContext(ctx).Debug("file has no nameable module scope", "file", path, "module", dotted, "error", err)
		return fqn.Fqn{}
	}
	return scope
}

type walker struct {
	ctx    context.Context
	lang   *lang.Language
	source []byte
	info   *model.FileInfo
}

func (w *walker) walk(node *sitter.Node, scope fqn.Fqn, enclosing model.SymbolKind) {
	if def, ok := w.lang.Define(node, w.source, enclosing); ok {
		inner, ok := w.define(node, scope, def)
		if !ok {
			return
		}
		scope, enclosing = inner, def.Kind
	}

	for _, text := range w.lang.References(node, w.source) {
		w.reference(node, scope, text)
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		w.walk(node.NamedChild(i), scope, enclosing)
	}
}

func (w *walker) define(node *sitter.Node, scope fqn.Fqn, def lang.Definition) (fqn.Fqn, bool) {
	for _, seg := range def.Segments {
		n, err := name.New(seg)
		if err != nil {
			ctxlog.FromContext(w.ctx).Debug("skipping definition",
				"file", w.info.Path, "line", line(node), "error", err)
			return fqn.Fqn{}, false
		}
		scope = extend(scope, n)
	}
	w.info.Symbols = append(w.info.Symbols, model.Symbol{
		Name:      scope,
		Kind:      def.Kind,
		File:      w.info.Path,
		Line:      line(node),
		Signature: def.Signature,
	})
	return scope, true
}

func (w *walker) reference(node *sitter.Node, scope fqn.Fqn, text string) {
	tok, ok := fqn.Recognize(text)
	if !ok {
		return
	}
	if rest := text[len(tok):]; rest != "" {
		// "héllo" must not become a reference to "h".
		if r, _ := utf8.DecodeRuneInString(rest); r >= utf8.RuneSelf || unicode.IsLetter(r) {
			ctxlog.FromContext(w.ctx).Debug("dropping reference", "file", w.info.Path, "text", text)
			return
		}
	}
	ref, err := fqn.New(tok)
	if err != nil {
		ctxlog.FromContext(w.ctx).Debug("dropping reference", "file", w.info.Path, "text", tok, "error", err)
		return
	}
	w.info.References = append(w.info.References, model.Reference{
		Name:  ref,
		Scope: scope,
		File:  w.info.Path,
		Line:  line(node),
	})
}

// extend appends n to scope, promoting n when there is no scope yet.
func extend(scope fqn.Fqn, n name.Name) fqn.Fqn {
	if scope.IsZero() {
		return fqn.FromName(n)
	}
	return scope.Child(n)
}

func line(node *sitter.Node) int {
	return int(node.StartPoint().Row) + 1
}
