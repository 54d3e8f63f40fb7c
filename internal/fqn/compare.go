package fqn

import (
	"cmp"
	"encoding/binary"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/mangolang/mango-ir/internal/name"
)

// Path is anything that denotes a sequence of identifiers. Both Fqn and a
// single identifier viewed as NamePath implement it, so names and FQNs can
// be compared in either direction with the same result.
type Path interface {
	Parts() []name.Name
}

// NamePath views a single identifier as a one-segment Path.
type NamePath name.Name

// Parts returns the identifier as the only segment.
func (p NamePath) Parts() []name.Name {
	return []name.Name{name.Name(p)}
}

// Equal reports whether other denotes exactly this one identifier.
func (p NamePath) Equal(other Path) bool {
	return Same(p, other)
}

// Same reports whether a and b have equal segments in the same order.
func Same(a, b Path) bool {
	return slices.Equal(a.Parts(), b.Parts())
}

// Equal reports whether f and other have the same segments in the same order.
func (f Fqn) Equal(other Fqn) bool {
	return slices.Equal(f.names, other.names)
}

// EqualName reports whether f is simple and its only segment is n.
// It agrees with NamePath(n).Equal(f).
func (f Fqn) EqualName(n name.Name) bool {
	return Same(f, NamePath(n))
}

// Hash returns a hash consistent with Equal. Segment order matters.
func (f Fqn) Hash() uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, n := range f.names {
		binary.LittleEndian.PutUint64(buf[:], n.Hash())
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// Compare orders names segment by segment, comparing segment text; a name
// sorts before any longer name it is a prefix of.
func Compare(a, b Fqn) int {
	for i := 0; i < len(a.names) && i < len(b.names); i++ {
		if c := strings.Compare(a.names[i].String(), b.names[i].String()); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a.names), len(b.names))
}
