// Package debug provides opt-in diagnostic logging for the indexer. Output
// is off unless enabled at build time or through FORCELINT_DEBUG, so the
// hot scan path pays only a flag check.
package debug

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// EnableDebug can be overridden at build time:
// go build -ldflags "-X github.com/forcelint/forcelint/internal/debug.EnableDebug=true"
var EnableDebug = "false"

var (
	outputMu sync.Mutex
	output   io.Writer = os.Stderr
)

// SetOutput redirects debug output. Pass nil to discard it.
func SetOutput(w io.Writer) {
	outputMu.Lock()
	defer outputMu.Unlock()
	output = w
}

// Enabled reports whether debug logging is active.
func Enabled() bool {
	if EnableDebug == "true" {
		return true
	}
	switch os.Getenv("FORCELINT_DEBUG") {
	case "1", "true":
		return true
	}
	return false
}

// Log writes a component-tagged debug line.
func Log(component, format string, args ...interface{}) {
	if !Enabled() {
		return
	}
	outputMu.Lock()
	w := output
	outputMu.Unlock()
	if w == nil {
		return
	}
	fmt.Fprintf(w, "[DEBUG:%s] "+format+"\n", append([]interface{}{component}, args...)...)
}

// LogIndexing logs scan and index operations.
func LogIndexing(format string, args ...interface{}) {
	Log("INDEX", format, args...)
}

// LogWatch logs file-watch operations.
func LogWatch(format string, args ...interface{}) {
	Log("WATCH", format, args...)
}
