package workspace

import (
	"fmt"
	"os"

	"github.com/forcelint/forcelint/internal/debug"
	"github.com/forcelint/forcelint/internal/diag"
	"github.com/forcelint/forcelint/internal/metadata"
)

// Upsert applies a live file creation or edit to the index. It returns
// false only on a genuine collision with different surviving files; every
// benign outcome (re-application of a known document, a slot whose owners
// have all vanished from disk) returns true. A failed upsert leaves the
// index untouched.
func (ws *Workspace) Upsert(doc *metadata.Document) bool {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if doc.DuplicatesAllowed() {
		ws.storeLocked(doc, doc.TypeName(ws.namespace))
		return true
	}

	tn := doc.TypeName(ws.namespace)
	if tn.Equals(metadata.LabelsSentinel) {
		// Labels reconcile through their own duplicates-allowed path; a
		// non-Labels document computing the sentinel would be a naming-rule
		// accident, not a claim.
		return true
	}

	key := tn.Key()
	if _, claimed := ws.typeNames[key]; !claimed {
		ws.typeNames[key] = tn
		ws.storeLocked(doc, tn)
		return true
	}

	extKey := doc.Extension().Key()
	e := ws.entryLocked(extKey, key)
	if e == nil {
		return true
	}

	// Heal stale references: drop owners whose backing file is gone. The
	// caller may not have reported the deletion yet.
	live := e.docs[:0]
	for _, existing := range e.docs {
		if _, err := os.Stat(existing.Path); err == nil {
			live = append(live, existing)
		} else {
			debug.LogIndexing("dropping stale %s for %s", existing.Path, tn)
		}
	}
	e.docs = live

	if len(e.docs) == 0 {
		return true
	}
	for _, existing := range e.docs {
		if existing.Equals(doc) {
			return true
		}
	}

	for _, existing := range e.docs {
		ws.issues = append(ws.issues, diag.NewError(existing.Path,
			fmt.Sprintf("duplicate type '%s' found in '%s', ignoring this file", tn, doc.Path)))
	}
	return false
}

// Remove deletes a document from the index. For single-owner variants the
// whole TypeName entry is released so a later file may claim the name; for
// duplicates-allowed variants only the matching path is dropped and
// siblings stay indexed.
func (ws *Workspace) Remove(doc *metadata.Document) {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	tn := doc.TypeName(ws.namespace)
	key := tn.Key()
	extKey := doc.Extension().Key()

	if !doc.DuplicatesAllowed() {
		if byType, ok := ws.documents[extKey]; ok {
			delete(byType, key)
		}
		delete(ws.typeNames, key)
		return
	}

	if e := ws.entryLocked(extKey, key); e != nil {
		kept := e.docs[:0]
		for _, existing := range e.docs {
			if existing.Path != doc.Path {
				kept = append(kept, existing)
			}
		}
		e.docs = kept
		if len(e.docs) == 0 {
			delete(ws.documents[extKey], key)
		}
	}
	// Duplicates-allowed types never enter typeNames; this discard is a
	// safeguard, not a load-bearing step.
	delete(ws.typeNames, key)
}

func (ws *Workspace) entryLocked(extKey, typeKey string) *entry {
	byType, ok := ws.documents[extKey]
	if !ok {
		return nil
	}
	return byType[typeKey]
}
