// Package diag holds the diagnostic values the workspace accumulates while
// indexing. Issues are plain values, not errors: indexing never aborts on
// them, callers read the ordered log after the fact.
package diag

import "fmt"

// Category classifies an issue's severity.
type Category string

const (
	CategoryError   Category = "error"
	CategoryWarning Category = "warning"
)

// Issue is a single diagnostic against a source path. Line is zero when no
// specific position applies, which is always the case for filename-level
// diagnostics.
type Issue struct {
	Path     string
	Category Category
	Line     int
	Message  string
}

// NewError creates an error-category issue with no line position.
func NewError(path, message string) Issue {
	return Issue{Path: path, Category: CategoryError, Message: message}
}

// String renders the issue in path:line: category: message form.
func (i Issue) String() string {
	return fmt.Sprintf("%s:%d: %s: %s", i.Path, i.Line, i.Category, i.Message)
}
