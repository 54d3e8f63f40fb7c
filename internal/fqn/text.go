package fqn

import "errors"

var errZero = errors.New("fqn: cannot marshal empty name")

// MarshalText encodes f in its dotted form.
func (f Fqn) MarshalText() ([]byte, error) {
	if f.IsZero() {
		return nil, errZero
	}
	return []byte(f.String()), nil
}

// UnmarshalText parses a dotted name, as New does.
func (f *Fqn) UnmarshalText(text []byte) error {
	parsed, err := New(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
