// Package hooks converts a legacy expression-based hook descriptor into the
// Claude Code settings.json hook format and merges the result into an
// existing settings document without duplicating entries.
package hooks

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrMalformedDescriptor wraps JSON parse failures for the hooks descriptor
// or the destination settings document.
var ErrMalformedDescriptor = errors.New("malformed hooks document")

// Command is one executable hook, shared by the legacy and converted shapes.
type Command struct {
	Type    string `json:"type"`
	Command string `json:"command"`
	Async   bool   `json:"async,omitempty"`
	Timeout int    `json:"timeout,omitempty"`
}

// LegacyEntry is one matcher group in the legacy descriptor. Its matcher may
// be an expression (`tool == "Bash" && tool_input.file_path matches "..."`).
type LegacyEntry struct {
	Matcher string    `json:"matcher"`
	Hooks   []Command `json:"hooks"`
}

// LegacyDocument is the legacy hooks descriptor file.
type LegacyDocument struct {
	Hooks map[string][]LegacyEntry `json:"hooks"`
}

// Entry is one converted matcher group: the matcher is a plain string
// (tool name, `Name1|Name2` union, or `*`) and any payload condition has
// been moved into a generated filter script.
type Entry struct {
	Matcher string    `json:"matcher"`
	Hooks   []Command `json:"hooks"`
}

// FilterScript is a generated standalone script gating a wrapped hook on a
// payload condition. RelPath is relative to the destination config
// directory.
type FilterScript struct {
	RelPath string
	Content []byte
}

// LoadLegacy reads and parses a legacy hooks descriptor.
func LoadLegacy(path string) (*LegacyDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc LegacyDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse %q: %v", ErrMalformedDescriptor, path, err)
	}
	return &doc, nil
}
