// Package mcp merges MCP server descriptor entries into a project's
// .mcp.json, skipping servers the project already defines and stripping
// human-oriented description fields from everything it writes.
package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrMalformedDescriptor wraps JSON parse failures for either descriptor.
var ErrMalformedDescriptor = errors.New("malformed mcp descriptor")

// descriptionField is removed from every server entry before it is written;
// it only serves the asset repository's docs.
const descriptionField = "description"

// MergeResult reports the outcome of one descriptor merge. Document is the
// full serialized destination, ready for a single write.
type MergeResult struct {
	Added    int
	Skipped  int
	Document []byte
}

// Merge folds the source descriptor's servers into the destination
// descriptor (nil or empty means the destination does not exist yet).
// Server names already present at the destination are never modified; new
// entries are inserted as shallow copies with the description field
// removed. Non-mcpServers top-level keys of the destination are preserved.
func Merge(existing, source []byte) (MergeResult, error) {
	var res MergeResult

	var src struct {
		Servers map[string]map[string]any `json:"mcpServers"`
	}
	if err := json.Unmarshal(source, &src); err != nil {
		return res, fmt.Errorf("%w: parse source: %v", ErrMalformedDescriptor, err)
	}

	doc := map[string]any{}
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &doc); err != nil {
			return res, fmt.Errorf("%w: parse destination: %v", ErrMalformedDescriptor, err)
		}
	}

	servers := map[string]any{}
	if raw, ok := doc["mcpServers"]; ok && raw != nil {
		m, ok := raw.(map[string]any)
		if !ok {
			return res, fmt.Errorf("%w: destination mcpServers key is not an object", ErrMalformedDescriptor)
		}
		servers = m
	}

	names := make([]string, 0, len(src.Servers))
	for name := range src.Servers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, exists := servers[name]; exists {
			res.Skipped++
			continue
		}
		entry := make(map[string]any, len(src.Servers[name]))
		for k, v := range src.Servers[name] {
			if k == descriptionField {
				continue
			}
			entry[k] = v
		}
		servers[name] = entry
		res.Added++
	}

	doc["mcpServers"] = servers

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return res, fmt.Errorf("marshal destination descriptor: %w", err)
	}
	res.Document = append(data, '\n')
	return res, nil
}
