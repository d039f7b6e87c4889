package workspace

import (
	"log"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/forcelint/forcelint/internal/debug"
	forceerr "github.com/forcelint/forcelint/internal/errors"
	"github.com/forcelint/forcelint/internal/metadata"
)

// scanTask is one file emitted by the walker, tagged with its position in
// traversal order.
type scanTask struct {
	seq  int
	path string
}

// scanResult carries a classified document back to the aggregator. skip is
// set for unclassifiable and ignorable files.
type scanResult struct {
	seq  int
	doc  *metadata.Document
	skip bool
}

// scanRoot walks one root depth-first and indexes every classifiable file.
//
// Classification (including the stat for zero-byte placeholders) runs on a
// bounded worker pool; results are re-sequenced so that inserts happen in
// exact traversal order through this single aggregating goroutine. The
// final index is therefore identical to a sequential walk, collision
// tie-breaks included.
func (ws *Workspace) scanRoot(root string, workers int) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		// Nonexistent roots yield an empty contribution, not an error.
		debug.LogIndexing("skipping root %s: not a directory", root)
		return
	}
	if workers < 1 {
		workers = 1
	}

	tasks := make(chan scanTask, 64)
	results := make(chan scanResult, 64)

	go func() {
		seq := 0
		ws.walkDir(root, tasks, &seq)
		close(tasks)
	}()

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for task := range tasks {
				doc := metadata.ClassifyPath(task.path)
				skip := doc == nil || doc.Ignorable()
				results <- scanResult{seq: task.seq, doc: doc, skip: skip}
			}
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(results)
	}()

	// Re-sequence and insert. pending buffers results that arrive ahead of
	// their turn.
	pending := make(map[int]scanResult)
	next := 0
	for r := range results {
		pending[r.seq] = r
		for {
			ready, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			if !ready.skip {
				ws.add(ready.doc)
			}
		}
	}
}

// walkDir recurses depth-first, pruning hidden and dependency-cache
// directories outright and consulting the ignore evaluator for the rest.
// Directory read failures abandon the subtree and the scan continues.
func (ws *Workspace) walkDir(dir string, tasks chan<- scanTask, seq *int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("Warning: %v", forceerr.NewFileError("list", dir, err))
		return
	}

	for _, e := range entries {
		name := e.Name()
		if name[0] == '.' || name == "node_modules" {
			continue
		}
		path := filepath.Join(dir, name)
		if e.IsDir() {
			if ws.includeDirectory(path) {
				ws.walkDir(path, tasks, seq)
			}
			continue
		}
		// Odd directory entries (sockets, broken symlinks) are not filtered
		// here; unreadable files surface as read errors downstream.
		if ws.includeFile(path) {
			tasks <- scanTask{seq: *seq, path: path}
			*seq++
		}
	}
}
