// Package graph links references to the definitions they name and ranks
// symbols by how often they are referenced.
package graph

import (
	"slices"
	"sort"

	"github.com/mangolang/mango-ir/internal/fqn"
	"github.com/mangolang/mango-ir/internal/model"
)

// Index locates definitions by full name and by leaf.
type Index struct {
	byKey  map[string][]*model.Symbol
	byLeaf map[string][]*model.Symbol
}

// NewIndex indexes every symbol of fileInfos. The index points into
// fileInfos, so Refs counts written through it land in the caller's data.
func NewIndex(fileInfos []model.FileInfo) *Index {
	idx := &Index{
		byKey:  make(map[string][]*model.Symbol),
		byLeaf: make(map[string][]*model.Symbol),
	}
	for i := range fileInfos {
		for j := range fileInfos[i].Symbols {
			sym := &fileInfos[i].Symbols[j]
			idx.byKey[sym.Name.Key()] = append(idx.byKey[sym.Name.Key()], sym)
			leaf := sym.Name.Leaf().String()
			idx.byLeaf[leaf] = append(idx.byLeaf[leaf], sym)
		}
	}
	return idx
}

// Resolve returns the definitions ref most plausibly names, trying in turn:
// the exact name, the name qualified by each enclosing scope of the
// reference (innermost first), definitions ending in ref (b.c matches
// a.b.c), and finally, for receiver.member references whose receiver is not
// itself a known definition, definitions with the same leaf (so self.save
// finds Class.save).
func (idx *Index) Resolve(ref model.Reference) []*model.Symbol {
	if syms := idx.byKey[ref.Name.Key()]; len(syms) > 0 {
		return syms
	}

	for scope, ok := ref.Scope, !ref.Scope.IsZero(); ok; scope, ok = scope.Parent() {
		q := scope
		for _, n := range ref.Name.Parts() {
			q.Push(n)
		}
		if syms := idx.byKey[q.Key()]; len(syms) > 0 {
			return syms
		}
	}

	candidates := idx.byLeaf[ref.Name.Leaf().String()]
	var suffix []*model.Symbol
	for _, sym := range candidates {
		if sym.Name.HasSuffix(ref.Name) {
			suffix = append(suffix, sym)
		}
	}
	if len(suffix) > 0 || ref.Name.Len() != 2 {
		return suffix
	}

	receiver, _ := ref.Name.Parent()
	if idx.known(receiver) {
		return nil
	}
	return candidates
}

func (idx *Index) known(f fqn.Fqn) bool {
	if len(idx.byKey[f.Key()]) > 0 {
		return true
	}
	for _, sym := range idx.byLeaf[f.Leaf().String()] {
		if sym.Name.HasSuffix(f) {
			return true
		}
	}
	return false
}

// Link resolves every reference, increments Symbol.Refs for each resolved
// definition outside the referencing file, and returns the file-level
// dependencies together with the references that matched nothing.
func Link(fileInfos []model.FileInfo) ([]model.Dependency, []model.Reference) {
	idx := NewIndex(fileInfos)

	type edgeKey struct{ src, tgt string }
	edgeSymbols := make(map[edgeKey][]fqn.Fqn)
	var unresolved []model.Reference

	for i := range fileInfos {
		fi := &fileInfos[i]
		for _, ref := range fi.References {
			syms := idx.Resolve(ref)
			if len(syms) == 0 {
				unresolved = append(unresolved, ref)
				continue
			}
			for _, sym := range syms {
				if sym.File == fi.Path {
					continue // no self-edges
				}
				sym.Refs++
				key := edgeKey{fi.Path, sym.File}
				if !slices.ContainsFunc(edgeSymbols[key], sym.Name.Equal) {
					edgeSymbols[key] = append(edgeSymbols[key], sym.Name)
				}
			}
		}
	}

	deps := make([]model.Dependency, 0, len(edgeSymbols))
	for key, syms := range edgeSymbols {
		slices.SortFunc(syms, fqn.Compare)
		deps = append(deps, model.Dependency{Source: key.src, Target: key.tgt, Symbols: syms})
	}
	sort.Slice(deps, func(i, j int) bool {
		if deps[i].Source != deps[j].Source {
			return deps[i].Source < deps[j].Source
		}
		return deps[i].Target < deps[j].Target
	})

	return deps, unresolved
}

// Rank returns every symbol ordered by descending reference count, then by
// name, then by file.
func Rank(fileInfos []model.FileInfo) []model.Symbol {
	var syms []model.Symbol
	for i := range fileInfos {
		syms = append(syms, fileInfos[i].Symbols...)
	}
	sort.SliceStable(syms, func(i, j int) bool {
		if syms[i].Refs != syms[j].Refs {
			return syms[i].Refs > syms[j].Refs
		}
		if c := fqn.Compare(syms[i].Name, syms[j].Name); c != 0 {
			return c < 0
		}
		return syms[i].File < syms[j].File
	})
	return syms
}
