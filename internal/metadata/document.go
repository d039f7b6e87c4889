// Package metadata models the on-disk artifacts of a Salesforce-style
// metadata package: classes, triggers, objects, fields, labels and friends.
// Classification works purely on file names and paths; artifact contents are
// never opened here.
package metadata

import (
	"os"

	"github.com/forcelint/forcelint/internal/types"
)

// DocType tags a document variant. The set is closed: every recognizable
// artifact kind has exactly one tag, and dispatch happens by switching on it.
type DocType int

const (
	ApexClass DocType = iota
	ApexTrigger
	Component
	SObject
	SObjectField
	SObjectFieldSet
	CustomMetadata
	PlatformEvent
	Page
	Flow
	Labels
)

// String returns the variant name for logs and diagnostics.
func (t DocType) String() string {
	switch t {
	case ApexClass:
		return "ApexClass"
	case ApexTrigger:
		return "ApexTrigger"
	case Component:
		return "Component"
	case SObject:
		return "SObject"
	case SObjectField:
		return "SObjectField"
	case SObjectFieldSet:
		return "SObjectFieldSet"
	case CustomMetadata:
		return "CustomMetadata"
	case PlatformEvent:
		return "PlatformEvent"
	case Page:
		return "Page"
	case Flow:
		return "Flow"
	case Labels:
		return "Labels"
	default:
		return "Unknown"
	}
}

// Document is one metadata artifact: a variant tag, the file it came from
// and the declared base name parsed out of the file name. Two documents are
// equal iff variant, path and name all match.
type Document struct {
	Type DocType
	Path string
	Name types.Name
}

// Equals reports value equality: same variant, path and name.
func (d *Document) Equals(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.Type == other.Type && d.Path == other.Path && d.Name.Equals(other.Name)
}

// Extension returns the declared-extension tag the index files this
// document under. This is the logical extension, not the literal suffix:
// both Foo.object and Foo.object-meta.xml declare "object".
func (d *Document) Extension() types.Name {
	switch d.Type {
	case ApexClass:
		return types.NewName("cls")
	case ApexTrigger:
		return types.NewName("trigger")
	case Component:
		return types.NewName("component")
	case SObject, CustomMetadata, PlatformEvent:
		return types.NewName("object")
	case SObjectField:
		return types.NewName("field")
	case SObjectFieldSet:
		return types.NewName("fieldSet")
	case Page:
		return types.NewName("page")
	case Flow:
		return types.NewName("flow")
	case Labels:
		return types.NewName("labels")
	default:
		return types.NewName("")
	}
}

// DuplicatesAllowed reports whether multiple files may legitimately share
// this document's TypeName. Only label files merge into one logical set.
func (d *Document) DuplicatesAllowed() bool {
	return d.Type == Labels
}

// Ignorable reports whether the file is a zero-byte placeholder that should
// stay out of the index entirely. Missing files (ghost documents) are not
// ignorable.
func (d *Document) Ignorable() bool {
	info, err := os.Stat(d.Path)
	if err != nil {
		return false
	}
	return info.Size() == 0
}
