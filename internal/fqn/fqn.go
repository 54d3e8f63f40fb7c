// Package fqn implements fully-qualified names: dotted paths of identifiers
// such as package.module1.module2.Type.
//
// A Fqn is never empty. It is built from a dotted string with New, or from a
// single identifier with FromName, and grows with Push as scopes are entered.
// The package also exposes a recognizer (Pattern, Recognize, Scan) that finds
// FQN-shaped tokens inside arbitrary text.
package fqn

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mangolang/mango-ir/internal/name"
)

// Separator joins the segments of a Fqn.
const Separator = "."

// ParseError is returned by New when one dot-separated piece of the input is
// not a valid identifier. It unwraps to the *name.ValidationError.
type ParseError struct {
	Input string
	Index int // zero-based index of the failing piece
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("fqn %q: segment %d: %v", e.Input, e.Index, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Fqn is an ordered, non-empty sequence of identifiers, outermost scope first.
//
// The zero Fqn is not a valid name; accessors other than IsZero and String
// must not be called on it. Copies of a Fqn never observe each other's Push.
type Fqn struct {
	names []name.Name
}

// New splits text on "." and validates every piece. Empty pieces (from a
// leading, trailing or doubled dot, or from empty text) fail validation.
func New(text string) (Fqn, error) {
	pieces := strings.Split(text, Separator)
	names := make([]name.Name, 0, len(pieces))
	for i, piece := range pieces {
		n, err := name.New(piece)
		if err != nil {
			return Fqn{}, &ParseError{Input: text, Index: i, Err: err}
		}
		names = append(names, n)
	}
	if len(names) == 0 {
		panic(fmt.Sprintf("fqn: %q produced no segments", text))
	}
	return Fqn{names: names}, nil
}

// MustNew is like New but panics on invalid input. Intended for literals.
func MustNew(text string) Fqn {
	f, err := New(text)
	if err != nil {
		panic(err)
	}
	return f
}

// FromName promotes a single identifier to a one-segment Fqn.
func FromName(n name.Name) Fqn {
	return Fqn{names: []name.Name{n}}
}

// Push appends n as a new innermost segment.
func (f *Fqn) Push(n name.Name) {
	// cap == len keeps every later append on a fresh array, so value copies
	// taken before this call are unaffected.
	f.names = slices.Clip(append(f.names, n))
}

// Child returns a new Fqn with n appended, leaving f unchanged.
func (f Fqn) Child(n name.Name) Fqn {
	names := make([]name.Name, len(f.names)+1)
	copy(names, f.names)
	names[len(f.names)] = n
	return Fqn{names: names}
}

// Parent returns f without its leaf. It reports false for simple names.
func (f Fqn) Parent() (Fqn, bool) {
	if len(f.names) <= 1 {
		return Fqn{}, false
	}
	return Fqn{names: slices.Clip(f.names[:len(f.names)-1])}, true
}

// Len returns the number of segments.
func (f Fqn) Len() int {
	return len(f.names)
}

// Parts returns the segments in order. The slice is a copy.
func (f Fqn) Parts() []name.Name {
	return slices.Clone(f.names)
}

// IsZero reports whether f is the zero Fqn.
func (f Fqn) IsZero() bool {
	return len(f.names) == 0
}

// IsSimple reports whether f has exactly one segment.
func (f Fqn) IsSimple() bool {
	return len(f.names) == 1
}

// AsSimpleName returns the only segment of a simple name.
func (f Fqn) AsSimpleName() (name.Name, bool) {
	if len(f.names) == 1 {
		return f.names[0], true
	}
	return name.Name{}, false
}

// Leaf returns the innermost segment.
func (f Fqn) Leaf() name.Name {
	return f.names[len(f.names)-1]
}

// HasPrefix reports whether the leading segments of f equal those of prefix.
func (f Fqn) HasPrefix(prefix Fqn) bool {
	return len(prefix.names) <= len(f.names) && slices.Equal(f.names[:len(prefix.names)], prefix.names)
}

// HasSuffix reports whether the trailing segments of f equal those of suffix.
func (f Fqn) HasSuffix(suffix Fqn) bool {
	off := len(f.names) - len(suffix.names)
	return off >= 0 && slices.Equal(f.names[off:], suffix.names)
}

// String returns the dotted form. It is the inverse of New.
func (f Fqn) String() string {
	var sb strings.Builder
	for i, n := range f.names {
		if i > 0 {
			sb.WriteString(Separator)
		}
		sb.WriteString(n.String())
	}
	return sb.String()
}

// Key returns a string usable as a map key; equal names have equal keys.
func (f Fqn) Key() string {
	return f.String()
}

// GoString returns the debug form FQN 'a.b'.
func (f Fqn) GoString() string {
	return fmt.Sprintf("FQN '%s'", f.String())
}
