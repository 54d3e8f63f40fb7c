// Package name defines the single-segment identifier used as the building
// block of fully-qualified names.
package name

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/cespare/xxhash/v2"
)

// Discard is the bare underscore identifier.
const Discard = "_"

// ErrInvalid is wrapped by every ValidationError.
var ErrInvalid = errors.New("invalid identifier")

var identRe = regexp.MustCompile(`^[a-zA-Z][_a-zA-Z0-9]*$`)

// ValidationError reports text that is not a valid identifier.
type ValidationError struct {
	Text   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid identifier %q: %s", e.Text, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

// Name is a validated, dot-free identifier. The zero value is not valid;
// obtain Names through New or FromValid.
type Name struct {
	text string
}

// New validates text and returns it as a Name.
func New(text string) (Name, error) {
	if reason := check(text); reason != "" {
		return Name{}, &ValidationError{Text: text, Reason: reason}
	}
	return Name{text: text}, nil
}

// FromValid wraps text that is known to be valid, e.g. a literal.
// It panics if text is not a valid identifier.
func FromValid(text string) Name {
	n, err := New(text)
	if err != nil {
		panic(err)
	}
	return n
}

// Valid reports whether text would be accepted by New.
func Valid(text string) bool {
	return check(text) == ""
}

func check(text string) string {
	switch {
	case text == "":
		return "empty"
	case text == Discard:
		return ""
	case !identRe.MatchString(text):
		return "must start with a letter followed by letters, digits or underscores"
	}
	return ""
}

// String returns the identifier text.
func (n Name) String() string {
	return n.text
}

// IsZero reports whether n is the zero Name.
func (n Name) IsZero() bool {
	return n.text == ""
}

// Hash returns a stable 64-bit hash of the identifier.
func (n Name) Hash() uint64 {
	return xxhash.Sum64String(n.text)
}

// GoString returns the debug form Name 'x'.
func (n Name) GoString() string {
	return fmt.Sprintf("Name '%s'", n.text)
}
