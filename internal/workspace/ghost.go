package workspace

import (
	"os"
	"path/filepath"

	"github.com/forcelint/forcelint/internal/debug"
	"github.com/forcelint/forcelint/internal/metadata"
	"github.com/forcelint/forcelint/internal/types"
)

const (
	extFieldKey    = "field"
	extFieldSetKey = "fieldset"
)

// synthesizeGhosts inserts virtual SObject documents for objects implied by
// decomposed field or field-set files that lack an object-meta file of
// their own. The ghost points at the path the object file would occupy, so
// removal and future upserts treat it like any other document.
func (ws *Workspace) synthesizeGhosts(extKey string) {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	byType, ok := ws.documents[extKey]
	if !ok {
		return
	}

	// Snapshot: inserting ghosts mutates the object extension map, not this
	// one, but collecting first keeps the loop simple.
	var members []*metadata.Document
	for _, e := range byType {
		members = append(members, e.docs...)
	}

	for _, doc := range members {
		objPath := metadata.ImpliedObjectPath(doc.Path)
		if _, err := os.Stat(objPath); err == nil {
			continue
		}
		objDir := metadata.OwningObjectDir(doc.Path)
		if ws.ignore != nil && !ws.ignore.IncludeDirectory(objDir) {
			continue
		}

		owner := doc.OwningObjectTypeName(ws.namespace)
		if _, claimed := ws.typeNames[owner.Key()]; claimed {
			continue
		}

		ghost := &metadata.Document{
			Type: metadata.SObject,
			Path: objPath,
			Name: types.NewName(filepath.Base(objDir)),
		}
		debug.LogIndexing("synthesizing object %s for %s", owner, doc.Path)
		ws.typeNames[owner.Key()] = owner
		ws.storeLocked(ghost, owner)
	}
}
