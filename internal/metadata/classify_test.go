package metadata

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forcelint/forcelint/internal/types"
)

func nameOf(s string) types.Name { return types.NewName(s) }

func TestClassifyPath_RuleTable(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		docType  DocType
		docName  string
		expected bool
	}{
		{name: "Apex class", path: "pkg/classes/Foo.cls", docType: ApexClass, docName: "Foo", expected: true},
		{name: "Apex class uppercase ext", path: "pkg/classes/Foo.CLS", docType: ApexClass, docName: "Foo", expected: true},
		{name: "Trigger", path: "pkg/triggers/AccountTrigger.trigger", docType: ApexTrigger, docName: "AccountTrigger", expected: true},
		{name: "Component", path: "pkg/components/Header.component", docType: Component, docName: "Header", expected: true},
		{name: "Monolithic object", path: "pkg/objects/Account.object", docType: SObject, docName: "Account", expected: true},
		{name: "Decomposed object", path: "pkg/objects/Foo__c/Foo__c.object-meta.xml", docType: SObject, docName: "Foo__c", expected: true},
		{name: "Custom metadata", path: "pkg/objects/Setting__mdt.object", docType: CustomMetadata, docName: "Setting__mdt", expected: true},
		{name: "Custom metadata decomposed", path: "pkg/objects/Setting__mdt/Setting__mdt.object-meta.xml", docType: CustomMetadata, docName: "Setting__mdt", expected: true},
		{name: "Platform event", path: "pkg/objects/Ping__e.object", docType: PlatformEvent, docName: "Ping__e", expected: true},
		{name: "Field in fields dir", path: "pkg/objects/Foo__c/fields/Bar__c.field-meta.xml", docType: SObjectField, docName: "Bar__c", expected: true},
		{name: "Field dir case-insensitive", path: "pkg/objects/Foo__c/FIELDS/Bar__c.field-meta.xml", docType: SObjectField, docName: "Bar__c", expected: true},
		{name: "Field set", path: "pkg/objects/Foo__c/fieldSets/Primary.fieldset-meta.xml", docType: SObjectFieldSet, docName: "Primary", expected: true},
		{name: "Flow", path: "pkg/flows/Onboard.flow", docType: Flow, docName: "Onboard", expected: true},
		{name: "Flow meta", path: "pkg/flows/Onboard.flow-meta.xml", docType: Flow, docName: "Onboard", expected: true},
		{name: "Labels", path: "pkg/labels/CustomLabels.labels", docType: Labels, docName: "CustomLabels", expected: true},
		{name: "Labels meta", path: "pkg/labels/CustomLabels.labels-meta.xml", docType: Labels, docName: "CustomLabels", expected: true},
		{name: "Page", path: "pkg/pages/Home.page", docType: Page, docName: "Home", expected: true},
		{name: "Dotted meta name", path: "pkg/flows/My.Old.Flow.flow-meta.xml", docType: Flow, docName: "My.Old.Flow", expected: true},

		// Exactly three segments with a plain extension parse as an unknown
		// two-extension shape, so the file stays out of the index.
		{name: "Dotted name with plain extension", path: "pkg/classes/Foo.Bar.cls", expected: false},

		{name: "Unknown extension", path: "pkg/readme.md", expected: false},
		{name: "No extension", path: "pkg/Makefile", expected: false},
		{name: "Meta without xml", path: "pkg/objects/Foo/Foo.object-meta.txt", expected: false},
		{name: "Field outside fields dir", path: "pkg/objects/Bar__c.field-meta.xml", expected: false},
		{name: "Field set outside fieldSets dir", path: "pkg/objects/Primary.fieldset-meta.xml", expected: false},
		{name: "Field with rootless parent", path: "fields/Bar__c.field-meta.xml", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := ClassifyPath(filepath.FromSlash(tt.path))
			if !tt.expected {
				assert.Nil(t, doc)
				return
			}
			require.NotNil(t, doc)
			assert.Equal(t, tt.docType, doc.Type)
			assert.Equal(t, tt.docName, doc.Name.String())
			assert.Equal(t, filepath.FromSlash(tt.path), doc.Path)
		})
	}
}

func TestDocument_Equals(t *testing.T) {
	a := &Document{Type: ApexClass, Path: "x/Foo.cls", Name: nameOf("Foo")}
	b := &Document{Type: ApexClass, Path: "x/Foo.cls", Name: nameOf("FOO")}
	c := &Document{Type: ApexTrigger, Path: "x/Foo.cls", Name: nameOf("Foo")}
	d := &Document{Type: ApexClass, Path: "y/Foo.cls", Name: nameOf("Foo")}

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.False(t, a.Equals(d))
}

func TestDocument_DuplicatesAllowed(t *testing.T) {
	labels := ClassifyPath("pkg/CustomLabels.labels")
	require.NotNil(t, labels)
	assert.True(t, labels.DuplicatesAllowed())

	cls := ClassifyPath("pkg/Foo.cls")
	require.NotNil(t, cls)
	assert.False(t, cls.DuplicatesAllowed())
}

func TestImpliedObjectPath(t *testing.T) {
	path := filepath.FromSlash("pkg/objects/Foo__c/fields/Bar__c.field-meta.xml")
	assert.Equal(t, filepath.FromSlash("pkg/objects/Foo__c/Foo__c.object-meta.xml"), ImpliedObjectPath(path))
	assert.Equal(t, filepath.FromSlash("pkg/objects/Foo__c"), OwningObjectDir(path))
}
