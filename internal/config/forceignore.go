package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"
)

// ForceIgnore evaluates .forceignore rules. The file uses gitignore-style
// lines: blank lines and #-comments are skipped, a leading ! negates, a
// trailing / restricts the pattern to directories, and later rules override
// earlier ones.
//
// Verdicts are cached per normalized path because the traversal and the
// ghost-synthesis pass ask about the same directories repeatedly.
type ForceIgnore struct {
	root     string
	patterns []ignorePattern

	// verdict cache keyed by hash of kind-prefixed relative path
	cache sync.Map
}

type ignorePattern struct {
	pattern  string
	negate   bool
	dirOnly  bool
	anchored bool
}

// NewForceIgnore creates an evaluator rooted at root with no patterns.
// Every path is included until patterns are added.
func NewForceIgnore(root string) *ForceIgnore {
	return &ForceIgnore{root: root}
}

// LoadForceIgnore reads <root>/.forceignore if it exists and returns an
// evaluator for it. A missing file yields an evaluator that includes
// everything.
func LoadForceIgnore(root string) (*ForceIgnore, error) {
	fi := NewForceIgnore(root)

	file, err := os.Open(filepath.Join(root, ".forceignore"))
	if err != nil {
		if os.IsNotExist(err) {
			return fi, nil
		}
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fi.AddPattern(line)
	}
	return fi, scanner.Err()
}

// AddPattern appends a single gitignore-style rule. Config-level exclude
// patterns are funneled through here as well.
func (fi *ForceIgnore) AddPattern(line string) {
	p := ignorePattern{}
	if strings.HasPrefix(line, "!") {
		p.negate = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		p.dirOnly = true
		line = strings.TrimSuffix(line, "/")
	}
	if strings.HasPrefix(line, "/") {
		p.anchored = true
		line = line[1:]
	} else if strings.Contains(line, "/") {
		// A slash anywhere anchors the pattern to the root, per gitignore.
		p.anchored = true
	}
	p.pattern = line
	fi.patterns = append(fi.patterns, p)
}

// IncludeFile reports whether a file path may be indexed.
func (fi *ForceIgnore) IncludeFile(path string) bool {
	return fi.include(path, false)
}

// IncludeDirectory reports whether a directory subtree may be indexed.
func (fi *ForceIgnore) IncludeDirectory(path string) bool {
	return fi.include(path, true)
}

func (fi *ForceIgnore) include(path string, isDir bool) bool {
	if len(fi.patterns) == 0 {
		return true
	}

	rel := fi.relative(path)
	key := cacheKey(rel, isDir)
	if v, ok := fi.cache.Load(key); ok {
		return v.(bool)
	}

	included := !fi.ignored(rel, isDir)
	fi.cache.Store(key, included)
	return included
}

// ignored applies the rules in order; the last matching rule wins.
func (fi *ForceIgnore) ignored(rel string, isDir bool) bool {
	ignored := false
	for _, p := range fi.patterns {
		if fi.matches(p, rel, isDir) {
			ignored = !p.negate
		}
	}
	return ignored
}

func (fi *ForceIgnore) matches(p ignorePattern, rel string, isDir bool) bool {
	if p.dirOnly && !isDir {
		return fi.matchesParentDir(p, rel)
	}

	if p.anchored {
		if ok, _ := doublestar.Match(p.pattern, rel); ok {
			return true
		}
		// A directory pattern also covers everything beneath it.
		if ok, _ := doublestar.Match(p.pattern+"/**", rel); ok {
			return true
		}
		return false
	}

	// Unanchored patterns match any single path component.
	for _, part := range strings.Split(rel, "/") {
		if ok, _ := doublestar.Match(p.pattern, part); ok {
			return true
		}
	}
	return false
}

// matchesParentDir reports whether a directory-only pattern matches any
// ancestor directory of a file path.
func (fi *ForceIgnore) matchesParentDir(p ignorePattern, rel string) bool {
	dir := filepath.ToSlash(filepath.Dir(rel))
	for dir != "." && dir != "/" {
		if fi.matches(p, dir, true) {
			return true
		}
		dir = filepath.ToSlash(filepath.Dir(dir))
	}
	return false
}

// relative normalizes a path to slash-separated form relative to the root,
// the shape every pattern is written against.
func (fi *ForceIgnore) relative(path string) string {
	rel, err := filepath.Rel(fi.root, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

func cacheKey(rel string, isDir bool) uint64 {
	h := xxhash.New()
	if isDir {
		_, _ = h.WriteString("d\x00")
	} else {
		_, _ = h.WriteString("f\x00")
	}
	_, _ = h.WriteString(rel)
	return h.Sum64()
}
