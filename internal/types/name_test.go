package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName_CaseInsensitiveEquality(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected bool
	}{
		{name: "Identical", a: "Account", b: "Account", expected: true},
		{name: "Different case", a: "Account", b: "ACCOUNT", expected: true},
		{name: "Mixed case", a: "myField__c", b: "MyField__C", expected: true},
		{name: "Different names", a: "Account", b: "Contact", expected: false},
		{name: "Empty vs nonempty", a: "", b: "Account", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewName(tt.a).Equals(NewName(tt.b)))
			assert.Equal(t, tt.expected, NewName(tt.a).EqualsString(tt.b))
			if tt.expected {
				assert.Equal(t, NewName(tt.a).Key(), NewName(tt.b).Key())
			}
		})
	}
}

func TestName_PreservesDisplayCase(t *testing.T) {
	n := NewName("MyClass")
	assert.Equal(t, "MyClass", n.String())
	assert.Equal(t, "myclass", n.Key())
	assert.False(t, n.IsEmpty())
	assert.True(t, NewName("").IsEmpty())
}

func TestTypeName_Equality(t *testing.T) {
	ns := NewTypeName("Acme")

	a := NestedTypeName("Inner", NestedTypeName("Outer", ns))
	b := NestedTypeName("inner", NestedTypeName("OUTER", NewTypeName("acme")))
	assert.True(t, a.Equals(b))

	// Same components, different nesting shape.
	flat := NewTypeName("Acme.Outer.Inner")
	assert.False(t, a.Equals(flat))

	// Nested vs unnested.
	assert.False(t, NewTypeName("Outer").Equals(NestedTypeName("Outer", ns)))
}

func TestTypeName_Display(t *testing.T) {
	tn := NestedTypeName("Inner", NestedTypeName("Outer", NewTypeName("Acme")))
	assert.Equal(t, "Acme.Outer.Inner", tn.String())
	assert.Equal(t, "acme.outer.inner", tn.Key())
}

func TestParseTypeName(t *testing.T) {
	tn := ParseTypeName("Acme.Outer.Inner")
	assert.Equal(t, "Acme.Outer.Inner", tn.String())
	assert.True(t, tn.Equals(NestedTypeName("Inner", NestedTypeName("Outer", NewTypeName("Acme")))))

	single := ParseTypeName("Foo")
	assert.Nil(t, single.Outer)
	assert.Equal(t, "Foo", single.String())
}
