// Package model defines core data structures for fqnmap.
package model

import "github.com/mangolang/mango-ir/internal/fqn"

// SymbolKind indicates the syntactic kind of a symbol.
type SymbolKind string

const (
	Class    SymbolKind = "class"
	Function SymbolKind = "function"
	Method   SymbolKind = "method"
	Type     SymbolKind = "type"
	Module   SymbolKind = "module"
)

// Symbol is a definition together with its fully-qualified name.
type Symbol struct {
	Name      fqn.Fqn    `yaml:"name"`
	Kind      SymbolKind `yaml:"kind"`
	File      string     `yaml:"file"`
	Line      int        `yaml:"line"`
	Signature string     `yaml:"signature,omitempty"`
	Refs      int        `yaml:"refs"`
}

// Reference is a name used in source, e.g. a call target or an import.
// Scope is the innermost enclosing definition or module; it is zero when the
// file has no nameable module scope.
type Reference struct {
	Name  fqn.Fqn `yaml:"name"`
	Scope fqn.Fqn `yaml:"scope,omitempty"`
	File  string  `yaml:"file"`
	Line  int     `yaml:"line"`
}

// FileInfo holds the symbols and references extracted from one source file.
type FileInfo struct {
	Path       string
	Language   string
	Module     fqn.Fqn
	Symbols    []Symbol
	References []Reference
}

// Dependency represents an edge in the dependency graph:
// Source references symbols defined in Target.
type Dependency struct {
	Source  string    `yaml:"source"`
	Target  string    `yaml:"target"`
	Symbols []fqn.Fqn `yaml:"symbols"`
}

// NameMap is the analyzed repository, ready for serialization.
type NameMap struct {
	Repo         string       `yaml:"repo"`
	Symbols      []Symbol     `yaml:"symbols"`
	Dependencies []Dependency `yaml:"dependencies"`
	Unresolved   []Reference  `yaml:"unresolved,omitempty"`
}
