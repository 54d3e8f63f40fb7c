// Package ranking narrows a name map to the symbols worth showing.
package ranking

import (
	"slices"
	"strings"

	"github.com/mangolang/mango-ir/internal/fqn"
	"github.com/mangolang/mango-ir/internal/model"
)

// SelectSymbols returns a new NameMap with only the first maxSymbols symbols,
// which are expected to be ranked already. If maxSymbols is <= 0 or covers
// every symbol, nm is returned unchanged.
func SelectSymbols(nm *model.NameMap, maxSymbols int) *model.NameMap {
	if maxSymbols <= 0 || maxSymbols >= len(nm.Symbols) {
		return nm
	}
	return restrict(nm, nm.Symbols[:maxSymbols])
}

// FilterRoots keeps symbols whose name starts with one of roots.
// An empty roots list keeps everything.
func FilterRoots(nm *model.NameMap, roots []fqn.Fqn) *model.NameMap {
	if len(roots) == 0 {
		return nm
	}
	var kept []model.Symbol
	for _, sym := range nm.Symbols {
		if slices.ContainsFunc(roots, func(root fqn.Fqn) bool { return sym.Name.HasPrefix(root) }) {
			kept = append(kept, sym)
		}
	}
	return restrict(nm, kept)
}

// FilterByName keeps symbols whose dotted name contains substr
// (case-insensitive).
func FilterByName(nm *model.NameMap, substr string) *model.NameMap {
	lower := strings.ToLower(substr)
	var kept []model.Symbol
	for _, sym := range nm.Symbols {
		if strings.Contains(strings.ToLower(sym.Name.String()), lower) {
			kept = append(kept, sym)
		}
	}
	return restrict(nm, kept)
}

// restrict builds a NameMap holding syms, with every dependency trimmed to
// the symbols that survived. Dependencies left without symbols are dropped.
func restrict(nm *model.NameMap, syms []model.Symbol) *model.NameMap {
	selected := make(map[string]struct{}, len(syms))
	for _, sym := range syms {
		selected[sym.Name.Key()] = struct{}{}
	}

	var deps []model.Dependency
	for _, d := range nm.Dependencies {
		var names []fqn.Fqn
		for _, n := range d.Symbols {
			if _, ok := selected[n.Key()]; ok {
				names = append(names, n)
			}
		}
		if len(names) > 0 {
			deps = append(deps, model.Dependency{Source: d.Source, Target: d.Target, Symbols: names})
		}
	}

	return &model.NameMap{
		Repo:         nm.Repo,
		Symbols:      syms,
		Dependencies: deps,
		Unresolved:   nm.Unresolved,
	}
}
