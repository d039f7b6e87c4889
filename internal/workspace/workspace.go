// Package workspace owns the metadata symbol table: the mapping from
// canonical type name to artifact that the parse and resolve stages consume.
// A Workspace is built once per analysis session by scanning the configured
// package roots, then kept current through Upsert and Remove calls from the
// file-watch layer.
//
// All mutation funnels through one mutex; the structure has a single owner
// and no global state.
package workspace

import (
	"fmt"
	"sync"

	"github.com/forcelint/forcelint/internal/config"
	"github.com/forcelint/forcelint/internal/diag"
	"github.com/forcelint/forcelint/internal/metadata"
	"github.com/forcelint/forcelint/internal/types"
)

// IgnoreRules is the per-path verdict surface of the ignore evaluator.
// The workspace only ever asks yes/no questions; pattern semantics live in
// the config package.
type IgnoreRules interface {
	IncludeDirectory(path string) bool
	IncludeFile(path string) bool
}

// entry is one TypeName slot in the index: the display name plus the
// documents claiming it, most recently added first. Non-duplicate-allowed
// slots hold exactly one document.
type entry struct {
	typeName types.TypeName
	docs     []*metadata.Document
}

// Workspace indexes every metadata artifact under the configured roots,
// keyed by declared extension and canonical TypeName.
type Workspace struct {
	mu sync.RWMutex

	namespace *types.Name
	roots     []string
	ignore    IgnoreRules

	// documents: declared-extension key -> TypeName key -> entry
	documents map[string]map[string]*entry
	// typeNames: TypeName keys claimed by a non-duplicate-allowed document
	typeNames map[string]types.TypeName

	issues []diag.Issue
}

// New builds a workspace from configuration and indexes it synchronously.
// Construction never fails on bad files: problems surface in Issues.
func New(cfg *config.Config, ignore IgnoreRules) *Workspace {
	ws := &Workspace{
		roots:     cfg.RootPaths(),
		ignore:    ignore,
		documents: make(map[string]map[string]*entry),
		typeNames: make(map[string]types.TypeName),
	}
	if ns := types.NewName(cfg.Namespace); !ns.IsEmpty() {
		ws.namespace = &ns
	}
	ws.index(cfg.Performance.MaxGoroutines)
	return ws
}

// Namespace returns the workspace namespace, or nil when unmanaged.
func (ws *Workspace) Namespace() *types.Name {
	return ws.namespace
}

// index performs the full scan. Roots are processed in reverse
// configuration order so that the last-listed root claims contested type
// names first. The ghost pass runs after every root has been walked.
func (ws *Workspace) index(workers int) {
	for i := len(ws.roots) - 1; i >= 0; i-- {
		ws.scanRoot(ws.roots[i], workers)
	}
	ws.synthesizeGhosts(extFieldKey)
	ws.synthesizeGhosts(extFieldSetKey)
}

// add inserts a freshly scanned document, detecting duplicates. The losing
// file is discarded and reported; the established owner is retained.
func (ws *Workspace) add(doc *metadata.Document) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.addLocked(doc)
}

func (ws *Workspace) addLocked(doc *metadata.Document) {
	tn := doc.TypeName(ws.namespace)

	if doc.DuplicatesAllowed() {
		ws.storeLocked(doc, tn)
		return
	}

	key := tn.Key()
	if _, claimed := ws.typeNames[key]; claimed {
		ws.issues = append(ws.issues, diag.NewError(doc.Path, duplicateMessage(tn, ws.ownerPathLocked(tn))))
		return
	}

	ws.typeNames[key] = tn
	ws.storeLocked(doc, tn)
}

// storeLocked prepends the document to its TypeName slot.
func (ws *Workspace) storeLocked(doc *metadata.Document, tn types.TypeName) {
	extKey := doc.Extension().Key()
	byType, ok := ws.documents[extKey]
	if !ok {
		byType = make(map[string]*entry)
		ws.documents[extKey] = byType
	}

	key := tn.Key()
	e, ok := byType[key]
	if !ok {
		e = &entry{typeName: tn}
		byType[key] = e
	}
	e.docs = append([]*metadata.Document{doc}, e.docs...)
}

// ownerPathLocked finds the path of the document currently holding a
// TypeName, looking across extensions since object-like variants share one.
func (ws *Workspace) ownerPathLocked(tn types.TypeName) string {
	key := tn.Key()
	for _, byType := range ws.documents {
		if e, ok := byType[key]; ok && len(e.docs) > 0 {
			return e.docs[0].Path
		}
	}
	return ""
}

func duplicateMessage(tn types.TypeName, ownerPath string) string {
	if ownerPath == "" {
		return fmt.Sprintf("duplicate type '%s', ignoring this file", tn)
	}
	return fmt.Sprintf("duplicate type '%s' found in '%s', ignoring this file", tn, ownerPath)
}

func (ws *Workspace) includeDirectory(path string) bool {
	return ws.ignore == nil || ws.ignore.IncludeDirectory(path)
}

func (ws *Workspace) includeFile(path string) bool {
	return ws.ignore == nil || ws.ignore.IncludeFile(path)
}
