package workspace

import (
	"github.com/forcelint/forcelint/internal/diag"
	"github.com/forcelint/forcelint/internal/metadata"
	"github.com/forcelint/forcelint/internal/types"
)

// GetByExtension returns a snapshot of every document filed under a
// declared extension. The slice is a copy; callers may keep it across
// later mutations, subject to the lazy staleness property: entries are only
// validated against the filesystem when a colliding upsert touches them.
func (ws *Workspace) GetByExtension(ext types.Name) []*metadata.Document {
	ws.mu.RLock()
	defer ws.mu.RUnlock()

	byType, ok := ws.documents[ext.Key()]
	if !ok {
		return nil
	}
	var out []*metadata.Document
	for _, e := range byType {
		out = append(out, e.docs...)
	}
	return out
}

// GetByExtensionIterable streams documents under a declared extension to fn
// while holding the read lock. Return false from fn to stop early.
func (ws *Workspace) GetByExtensionIterable(ext types.Name, fn func(*metadata.Document) bool) {
	ws.mu.RLock()
	defer ws.mu.RUnlock()

	byType, ok := ws.documents[ext.Key()]
	if !ok {
		return
	}
	for _, e := range byType {
		for _, doc := range e.docs {
			if !fn(doc) {
				return
			}
		}
	}
}

// GetByType resolves a TypeName to its owning document. Only class and
// trigger names are resolvable by type; other artifact kinds are addressed
// through their extension.
func (ws *Workspace) GetByType(tn types.TypeName) *metadata.Document {
	ws.mu.RLock()
	defer ws.mu.RUnlock()

	key := tn.Key()
	for _, extKey := range []string{"cls", "trigger"} {
		if byType, ok := ws.documents[extKey]; ok {
			if e, ok := byType[key]; ok && len(e.docs) > 0 {
				return e.docs[0]
			}
		}
	}
	return nil
}

// TypeCount returns the number of indexed documents, synthesized ghosts
// included.
func (ws *Workspace) TypeCount() int {
	ws.mu.RLock()
	defer ws.mu.RUnlock()

	count := 0
	for _, byType := range ws.documents {
		for _, e := range byType {
			count += len(e.docs)
		}
	}
	return count
}

// Issues returns the ordered diagnostic log accumulated so far.
func (ws *Workspace) Issues() []diag.Issue {
	ws.mu.RLock()
	defer ws.mu.RUnlock()

	out := make([]diag.Issue, len(ws.issues))
	copy(out, ws.issues)
	return out
}
