package metadata

import (
	"path/filepath"
	"strings"

	"github.com/forcelint/forcelint/internal/types"
)

// ClassifyPath matches a file path against the artifact naming rules and
// returns the document it denotes, or nil when the path is not a
// recognizable artifact. Unrecognized paths are not an error, they are
// simply invisible to the index.
//
// The base name is split on '.' into at most three parts. Artifact names may
// themselves contain dots, so extra leading segments collapse into the first
// part and only the final one or two segments act as the extension. Extension
// matching is case-insensitive; the name keeps its spelling.
func ClassifyPath(path string) *Document {
	name, exts := splitExtensions(filepath.Base(path))
	if name == "" {
		return nil
	}

	switch len(exts) {
	case 1:
		switch exts[0] {
		case "cls":
			return &Document{Type: ApexClass, Path: path, Name: types.NewName(name)}
		case "trigger":
			return &Document{Type: ApexTrigger, Path: path, Name: types.NewName(name)}
		case "component":
			return &Document{Type: Component, Path: path, Name: types.NewName(name)}
		case "object":
			return objectDocument(path, name)
		case "flow":
			return &Document{Type: Flow, Path: path, Name: types.NewName(name)}
		case "labels":
			return &Document{Type: Labels, Path: path, Name: types.NewName(name)}
		case "page":
			return &Document{Type: Page, Path: path, Name: types.NewName(name)}
		}
	case 2:
		if exts[1] != "xml" {
			return nil
		}
		switch exts[0] {
		case "object-meta":
			return objectDocument(path, name)
		case "field-meta":
			if inDecomposedDir(path, "fields") {
				return &Document{Type: SObjectField, Path: path, Name: types.NewName(name)}
			}
		case "fieldset-meta":
			if inDecomposedDir(path, "fieldSets") {
				return &Document{Type: SObjectFieldSet, Path: path, Name: types.NewName(name)}
			}
		case "flow-meta":
			return &Document{Type: Flow, Path: path, Name: types.NewName(name)}
		case "labels-meta":
			return &Document{Type: Labels, Path: path, Name: types.NewName(name)}
		}
	}
	return nil
}

// objectDocument picks the object-like variant from the name suffix.
// Custom metadata and platform events share the object file convention.
func objectDocument(path, name string) *Document {
	switch {
	case strings.HasSuffix(strings.ToLower(name), "__mdt"):
		return &Document{Type: CustomMetadata, Path: path, Name: types.NewName(name)}
	case strings.HasSuffix(strings.ToLower(name), "__e"):
		return &Document{Type: PlatformEvent, Path: path, Name: types.NewName(name)}
	default:
		return &Document{Type: SObject, Path: path, Name: types.NewName(name)}
	}
}

// splitExtensions splits a base file name into (name, extensions). At most
// the last two dot-separated segments are treated as extensions; anything
// before them belongs to the name. Extensions are lower-cased for matching.
func splitExtensions(base string) (string, []string) {
	parts := strings.Split(base, ".")
	if len(parts) < 2 {
		return "", nil
	}
	if len(parts) > 3 {
		parts = []string{
			strings.Join(parts[:len(parts)-2], "."),
			parts[len(parts)-2],
			parts[len(parts)-1],
		}
	}
	exts := make([]string, 0, 2)
	for _, ext := range parts[1:] {
		exts = append(exts, strings.ToLower(ext))
	}
	return parts[0], exts
}

// inDecomposedDir checks the decomposed-layout shape for field and field-set
// files: the immediate parent directory carries the expected name and there
// is still an owning object directory above it.
func inDecomposedDir(path, dirName string) bool {
	parent := filepath.Dir(path)
	if !types.NewName(filepath.Base(parent)).EqualsString(dirName) {
		return false
	}
	grandparent := filepath.Dir(parent)
	return filepath.Dir(grandparent) != grandparent
}

// OwningObjectDir returns the object directory implied by a decomposed field
// or field-set file path, e.g. pkg/Foo for pkg/Foo/fields/Bar.field-meta.xml.
func OwningObjectDir(path string) string {
	return filepath.Dir(filepath.Dir(path))
}

// ImpliedObjectPath returns the object-meta file the decomposed layout
// implies for a field or field-set file, whether or not it exists on disk.
func ImpliedObjectPath(path string) string {
	dir := OwningObjectDir(path)
	return filepath.Join(dir, filepath.Base(dir)+".object-meta.xml")
}
