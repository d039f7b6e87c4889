package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forcelint/forcelint/internal/metadata"
	"github.com/forcelint/forcelint/internal/types"
)

func classDoc(root, rel string) *metadata.Document {
	path := filepath.Join(root, filepath.FromSlash(rel))
	base := filepath.Base(path)
	name := base[:len(base)-len(".cls")]
	return &metadata.Document{Type: metadata.ApexClass, Path: path, Name: types.NewName(name)}
}

func TestUpsert_NewType(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"pkg/Foo.cls": "public class Foo {}"})
	ws := newTestWorkspace(t, root, "", "pkg")
	require.Equal(t, 1, ws.TypeCount())

	writeFiles(t, root, map[string]string{"pkg/Bar.cls": "public class Bar {}"})
	assert.True(t, ws.Upsert(classDoc(root, "pkg/Bar.cls")))
	assert.Equal(t, 2, ws.TypeCount())
	assert.NotNil(t, ws.GetByType(types.NewTypeName("Bar")))
}

func TestUpsert_SameDocumentIsIdempotent(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"pkg/Foo.cls": "public class Foo {}"})
	ws := newTestWorkspace(t, root, "", "pkg")

	assert.True(t, ws.Upsert(classDoc(root, "pkg/Foo.cls")))
	assert.True(t, ws.Upsert(classDoc(root, "pkg/Foo.cls")))
	assert.Equal(t, 1, ws.TypeCount())
	assert.Empty(t, ws.Issues())
}

func TestUpsert_CollisionFailsAndDiagnoses(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"pkg/Foo.cls": "public class Foo {}"})
	ws := newTestWorkspace(t, root, "", "pkg")

	writeFiles(t, root, map[string]string{"other/Foo.cls": "public class Foo {}"})
	incoming := classDoc(root, "other/Foo.cls")
	assert.False(t, ws.Upsert(incoming))

	issues := ws.Issues()
	require.Len(t, issues, 1)
	assert.Equal(t, filepath.Join(root, "pkg", "Foo.cls"), issues[0].Path)
	assert.Contains(t, issues[0].Message, "duplicate type 'Foo'")
	assert.Contains(t, issues[0].Message, incoming.Path)

	// The losing document is not indexed.
	winner := ws.GetByType(types.NewTypeName("Foo"))
	require.NotNil(t, winner)
	assert.Equal(t, filepath.Join(root, "pkg", "Foo.cls"), winner.Path)
}

func TestUpsert_HealsStaleOwner(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"pkg/Foo.cls": "public class Foo {}"})
	ws := newTestWorkspace(t, root, "", "pkg")

	// Delete the indexed file from disk without telling the workspace, as
	// happens when a rename's remove event is still in flight.
	require.NoError(t, os.Remove(filepath.Join(root, "pkg", "Foo.cls")))

	writeFiles(t, root, map[string]string{"pkg/sub/Foo.cls": "public class Foo {}"})
	assert.True(t, ws.Upsert(classDoc(root, "pkg/sub/Foo.cls")))
	assert.Empty(t, ws.Issues())
}

func TestUpsert_LabelsAlwaysSucceed(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"pkg/CustomLabels.labels": "<CustomLabels/>"})
	ws := newTestWorkspace(t, root, "", "pkg")

	extra := &metadata.Document{
		Type: metadata.Labels,
		Path: filepath.Join(root, "pkg", "More.labels"),
		Name: types.NewName("More"),
	}
	assert.True(t, ws.Upsert(extra))
	assert.Len(t, ws.GetByExtension(types.NewName("labels")), 2)
	assert.Empty(t, ws.Issues())
}

func TestRemove_FreesTypeName(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"pkg/Foo.cls": "public class Foo {}"})
	ws := newTestWorkspace(t, root, "", "pkg")

	ws.Remove(classDoc(root, "pkg/Foo.cls"))
	assert.Equal(t, 0, ws.TypeCount())
	assert.Nil(t, ws.GetByType(types.NewTypeName("Foo")))

	writeFiles(t, root, map[string]string{"pkg/sub/Foo.cls": "public class Foo {}"})
	assert.True(t, ws.Upsert(classDoc(root, "pkg/sub/Foo.cls")))

	doc := ws.GetByType(types.NewTypeName("Foo"))
	require.NotNil(t, doc)
	assert.Equal(t, filepath.Join(root, "pkg", "sub", "Foo.cls"), doc.Path)
}

func TestRemove_LabelsDropOnlyMatchingPath(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"pkg/First.labels":  "<CustomLabels/>",
		"pkg/Second.labels": "<CustomLabels/>",
	})
	ws := newTestWorkspace(t, root, "", "pkg")
	require.Len(t, ws.GetByExtension(types.NewName("labels")), 2)

	ws.Remove(&metadata.Document{
		Type: metadata.Labels,
		Path: filepath.Join(root, "pkg", "First.labels"),
		Name: types.NewName("First"),
	})

	remaining := ws.GetByExtension(types.NewName("labels"))
	require.Len(t, remaining, 1)
	assert.Equal(t, "Second", remaining[0].Name.String())
}

func TestRemove_UnknownDocumentIsNoOp(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"pkg/Foo.cls": "public class Foo {}"})
	ws := newTestWorkspace(t, root, "", "pkg")

	ws.Remove(classDoc(root, "pkg/Never.cls"))
	assert.Equal(t, 1, ws.TypeCount())
}
