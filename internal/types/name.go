package types

import "strings"

// Name is a case-preserving identifier with case-insensitive equality.
// Salesforce identifiers compare without regard to case, so Name keeps the
// spelling from disk for display while all comparisons and map keys go
// through the folded form.
type Name struct {
	value string
}

// NewName wraps a raw identifier string.
func NewName(value string) Name {
	return Name{value: value}
}

// String returns the identifier as originally spelled.
func (n Name) String() string {
	return n.value
}

// Key returns the canonical lower-cased form used for map keys.
func (n Name) Key() string {
	return strings.ToLower(n.value)
}

// Equals reports case-insensitive equality with another Name.
func (n Name) Equals(other Name) bool {
	return strings.EqualFold(n.value, other.value)
}

// EqualsString reports case-insensitive equality with a raw string.
func (n Name) EqualsString(s string) bool {
	return strings.EqualFold(n.value, s)
}

// IsEmpty reports whether the identifier has no characters.
func (n Name) IsEmpty() bool {
	return n.value == ""
}
