package types

import "strings"

// TypeName is a possibly nested, possibly namespaced identifier chain such
// as Namespace.Outer.Inner. The outermost scope is reached by following
// Outer links. Two TypeNames are equal iff every component matches
// case-insensitively and the nesting chain has the same shape.
//
// Only the parts of the full type grammar that indexing needs live here:
// the name chain. Generic type arguments belong to the resolver and are not
// modelled.
type TypeName struct {
	Name  Name
	Outer *TypeName
}

// NewTypeName creates an unnested TypeName.
func NewTypeName(name string) TypeName {
	return TypeName{Name: NewName(name)}
}

// NestedTypeName creates a TypeName scoped inside outer.
func NestedTypeName(name string, outer TypeName) TypeName {
	o := outer
	return TypeName{Name: NewName(name), Outer: &o}
}

// WithOuter returns a copy of tn scoped inside outer.
func (tn TypeName) WithOuter(outer TypeName) TypeName {
	o := outer
	tn.Outer = &o
	return tn
}

// String renders the dotted, case-preserving display form.
func (tn TypeName) String() string {
	if tn.Outer == nil {
		return tn.Name.String()
	}
	return tn.Outer.String() + "." + tn.Name.String()
}

// Key renders the canonical lower-cased dotted form used for map keys.
func (tn TypeName) Key() string {
	if tn.Outer == nil {
		return tn.Name.Key()
	}
	return tn.Outer.Key() + "." + tn.Name.Key()
}

// Equals reports structural, case-insensitive equality.
func (tn TypeName) Equals(other TypeName) bool {
	if !tn.Name.Equals(other.Name) {
		return false
	}
	if tn.Outer == nil || other.Outer == nil {
		return tn.Outer == nil && other.Outer == nil
	}
	return tn.Outer.Equals(*other.Outer)
}

// ParseTypeName splits a dotted display string into a TypeName chain.
// Used by callers that address the index by string, e.g. the CLI.
func ParseTypeName(s string) TypeName {
	parts := strings.Split(s, ".")
	tn := NewTypeName(parts[0])
	for _, part := range parts[1:] {
		tn = NestedTypeName(part, tn)
	}
	return tn
}
