package hooks

import (
	"encoding/json"
	"fmt"
	"sort"
)

// keyPrefixLen bounds the command prefix used in the dedup key. Hook
// commands routinely share a short interpreter prefix (`bash -c ...`), so
// the prefix has to be long enough to tell them apart.
const keyPrefixLen = 80

// MergeResult reports the outcome of merging converted entries into a
// settings document. Document is the full serialized result, ready for a
// single atomic write.
type MergeResult struct {
	Added    int
	Skipped  int
	Document []byte
}

// MergeSettings deep-merges converted hook entries into an existing
// settings document (nil or empty means no document yet). Entries are
// deduplicated per event by (matcher, command-prefix) key; all non-hooks
// top-level fields of the existing document are preserved untouched. The
// merge is entirely in-memory: nothing is written until the caller persists
// the returned document.
func MergeSettings(existing []byte, converted map[string][]Entry) (MergeResult, error) {
	var res MergeResult

	doc := map[string]any{}
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &doc); err != nil {
			return res, fmt.Errorf("%w: parse settings: %v", ErrMalformedDescriptor, err)
		}
	}

	hooksMap := map[string]any{}
	if raw, ok := doc["hooks"]; ok && raw != nil {
		m, ok := raw.(map[string]any)
		if !ok {
			return res, fmt.Errorf("%w: settings hooks key is not an object", ErrMalformedDescriptor)
		}
		hooksMap = m
	}

	events := make([]string, 0, len(converted))
	for event := range converted {
		events = append(events, event)
	}
	sort.Strings(events)

	for _, event := range events {
		entries, _ := hooksMap[event].([]any)

		// Existing keys first, then fold incoming entries through the
		// decision: present means skip, absent means append.
		seen := make(map[string]bool, len(entries))
		for _, raw := range entries {
			if key, ok := entryKeyFromAny(raw); ok {
				seen[key] = true
			}
		}

		for _, entry := range converted[event] {
			key := entryKey(entry.Matcher, firstCommand(entry))
			if seen[key] {
				res.Skipped++
				continue
			}
			asAny, err := entryToAny(entry)
			if err != nil {
				return res, err
			}
			entries = append(entries, asAny)
			seen[key] = true
			res.Added++
		}

		hooksMap[event] = entries
	}

	doc["hooks"] = hooksMap

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return res, fmt.Errorf("marshal settings: %w", err)
	}
	res.Document = append(data, '\n')
	return res, nil
}

// entryKey derives the dedup key for a hook entry.
func entryKey(matcher, command string) string {
	if len(command) > keyPrefixLen {
		command = command[:keyPrefixLen]
	}
	return matcher + "::" + command
}

func firstCommand(e Entry) string {
	if len(e.Hooks) == 0 {
		return ""
	}
	return e.Hooks[0].Command
}

// entryKeyFromAny derives the dedup key from an entry in its decoded JSON
// form. Entries that do not look like hook groups are ignored rather than
// rejected so a hand-edited settings file cannot break the merge.
func entryKeyFromAny(raw any) (string, bool) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return "", false
	}
	matcher, _ := obj["matcher"].(string)

	var command string
	if hooks, ok := obj["hooks"].([]any); ok && len(hooks) > 0 {
		if first, ok := hooks[0].(map[string]any); ok {
			command, _ = first["command"].(string)
		}
	}
	return entryKey(matcher, command), true
}

func entryToAny(e Entry) (any, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal hook entry: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode hook entry: %w", err)
	}
	return out, nil
}
