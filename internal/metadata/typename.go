package metadata

import (
	"path/filepath"
	"strings"

	"github.com/forcelint/forcelint/internal/types"
)

// Well-known scopes the naming rules hang generated types off.
var (
	// SchemaRoot scopes every SObject-like type.
	SchemaRoot = types.NewTypeName("Schema")
	// PageRoot scopes Visualforce page types.
	PageRoot = types.NewTypeName("Page")
	// LabelsSentinel is the single shared TypeName all label files resolve
	// to. It is not derived from any file name.
	LabelsSentinel = types.NestedTypeName("Label", types.NewTypeName("System"))
	// FieldsScope and FieldSetsScope name the generated collection types
	// that field and field-set entries nest under, inside their owning
	// object's TypeName.
	fieldsScope    = "Fields"
	fieldSetsScope = "FieldSets"
)

// TriggerPrefix is the synthetic scope for trigger type names. Triggers do
// not share the class namespace, so their names are flattened under a
// marker no source identifier can collide with.
const TriggerPrefix = "__sfdc_trigger"

// TypeName computes the canonical qualified name this document claims in
// the index, given the workspace namespace. Namespace is nil when the
// package is unmanaged.
func (d *Document) TypeName(namespace *types.Name) types.TypeName {
	switch d.Type {
	case ApexClass, Component, Flow:
		tn := types.TypeName{Name: d.Name}
		if namespace != nil {
			return tn.WithOuter(types.TypeName{Name: *namespace})
		}
		return tn
	case ApexTrigger:
		return triggerTypeName(namespace, d.Name)
	case SObject:
		return sobjectTypeName(namespace, d.Name)
	case CustomMetadata:
		return flatPrefixed(namespace, d.Name)
	case PlatformEvent:
		return flatPrefixed(namespace, d.Name)
	case SObjectField:
		return decomposedTypeName(namespace, d.Path, d.Name, fieldsScope)
	case SObjectFieldSet:
		return decomposedTypeName(namespace, d.Path, d.Name, fieldSetsScope)
	case Page:
		name := d.Name.String()
		if namespace != nil {
			name = namespace.String() + "__" + name
		}
		return types.NestedTypeName(name, PageRoot)
	case Labels:
		return LabelsSentinel
	default:
		return types.TypeName{Name: d.Name}
	}
}

// triggerTypeName builds the flat synthetic name
// __sfdc_trigger/{namespace/}{name}.
func triggerTypeName(namespace *types.Name, name types.Name) types.TypeName {
	var sb strings.Builder
	sb.WriteString(TriggerPrefix)
	sb.WriteByte('/')
	if namespace != nil {
		sb.WriteString(namespace.String())
		sb.WriteByte('/')
	}
	sb.WriteString(name.String())
	return types.NewTypeName(sb.String())
}

// sobjectTypeName scopes an object name under Schema, applying the
// namespace prefix only to custom objects.
func sobjectTypeName(namespace *types.Name, name types.Name) types.TypeName {
	display := name.String()
	if namespace != nil && strings.HasSuffix(strings.ToLower(display), "__c") {
		display = namespace.String() + "__" + display
	}
	return types.NestedTypeName(display, SchemaRoot)
}

// flatPrefixed prepends the namespace to custom metadata and platform event
// names. The suffix (__mdt, __e) is already part of the declared name.
func flatPrefixed(namespace *types.Name, name types.Name) types.TypeName {
	display := name.String()
	if namespace != nil {
		display = namespace.String() + "__" + display
	}
	return types.NewTypeName(display)
}

// decomposedTypeName derives the owning object from the file's grandparent
// directory and nests the entry under that object's generated collection
// scope, e.g. Schema.Foo__c.Fields.Bar.
func decomposedTypeName(namespace *types.Name, path string, name types.Name, scope string) types.TypeName {
	objectName := types.NewName(filepath.Base(OwningObjectDir(path)))
	owner := sobjectTypeName(namespace, objectName)
	collection := types.NestedTypeName(scope, owner)
	return types.NestedTypeName(name.String(), collection)
}

// OwningObjectTypeName returns the TypeName of the object a decomposed
// field or field-set file belongs to. Ghost synthesis uses it to check
// whether the implied object is already claimed.
func (d *Document) OwningObjectTypeName(namespace *types.Name) types.TypeName {
	objectName := types.NewName(filepath.Base(OwningObjectDir(d.Path)))
	return sobjectTypeName(namespace, objectName)
}
