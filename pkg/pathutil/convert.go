// Package pathutil converts between the absolute paths the index uses
// internally and the relative paths shown to users. The workspace stores
// absolute paths to avoid ambiguity; CLI output and diagnostics print
// root-relative paths for readability.
package pathutil

import (
	"path/filepath"
	"strings"
)

// ToRelative converts an absolute path to relative based on a root
// directory. Falls back to the original path if conversion fails, the path
// is already relative, or the path lies outside the root.
func ToRelative(absPath, rootDir string) string {
	if absPath == "" || rootDir == "" {
		return absPath
	}
	if !filepath.IsAbs(absPath) {
		return absPath
	}

	absPath = filepath.Clean(absPath)
	rootDir = filepath.Clean(rootDir)

	relPath, err := filepath.Rel(rootDir, absPath)
	if err != nil {
		return absPath
	}
	if strings.HasPrefix(relPath, "..") {
		// Outside the root; the absolute path is clearer.
		return absPath
	}
	return relPath
}

// IsHidden reports whether the path's base name starts with a dot.
// Hidden entries never enter the index.
func IsHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}
