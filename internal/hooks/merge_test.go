package hooks

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func sampleConverted() map[string][]Entry {
	return map[string][]Entry{
		"PreToolUse": {{
			Matcher: "Bash",
			Hooks:   []Command{{Type: "command", Command: "echo pre"}},
		}},
	}
}

func TestMergeSettings(t *testing.T) {
	t.Run("merge_into_empty_document", func(t *testing.T) {
		res, err := MergeSettings(nil, sampleConverted())
		if err != nil {
			t.Fatalf("MergeSettings error: %v", err)
		}
		if res.Added != 1 || res.Skipped != 0 {
			t.Errorf("added = %d, skipped = %d", res.Added, res.Skipped)
		}

		var doc map[string]any
		if err := json.Unmarshal(res.Document, &doc); err != nil {
			t.Fatalf("result not valid JSON: %v", err)
		}
		hooks := doc["hooks"].(map[string]any)
		if entries := hooks["PreToolUse"].([]any); len(entries) != 1 {
			t.Errorf("entries = %v", entries)
		}
	})

	t.Run("duplicate_key_skipped", func(t *testing.T) {
		first, err := MergeSettings(nil, sampleConverted())
		if err != nil {
			t.Fatalf("first merge error: %v", err)
		}

		second, err := MergeSettings(first.Document, sampleConverted())
		if err != nil {
			t.Fatalf("second merge error: %v", err)
		}
		if second.Added != 0 || second.Skipped != 1 {
			t.Errorf("added = %d, skipped = %d, want dedup", second.Added, second.Skipped)
		}

		var doc map[string]any
		_ = json.Unmarshal(second.Document, &doc)
		entries := doc["hooks"].(map[string]any)["PreToolUse"].([]any)
		if len(entries) != 1 {
			t.Errorf("entries = %d, want exactly one after double merge", len(entries))
		}
	})

	t.Run("idempotent_document_bytes", func(t *testing.T) {
		first, err := MergeSettings(nil, sampleConverted())
		if err != nil {
			t.Fatalf("first merge error: %v", err)
		}
		second, err := MergeSettings(first.Document, sampleConverted())
		if err != nil {
			t.Fatalf("second merge error: %v", err)
		}
		if !bytes.Equal(first.Document, second.Document) {
			t.Errorf("document changed on re-merge:\n%s\nvs\n%s", first.Document, second.Document)
		}
	})

	t.Run("same_matcher_different_command_both_kept", func(t *testing.T) {
		converted := map[string][]Entry{
			"PreToolUse": {
				{Matcher: "Bash", Hooks: []Command{{Type: "command", Command: "echo one"}}},
				{Matcher: "Bash", Hooks: []Command{{Type: "command", Command: "echo two"}}},
			},
		}
		res, err := MergeSettings(nil, converted)
		if err != nil {
			t.Fatalf("MergeSettings error: %v", err)
		}
		if res.Added != 2 {
			t.Errorf("added = %d, want 2 (distinct command prefixes)", res.Added)
		}
	})

	t.Run("non_hooks_fields_preserved", func(t *testing.T) {
		existing := []byte(`{"env":{"FOO":"bar"},"permissions":{"allow":["Task:*"]}}`)

		res, err := MergeSettings(existing, sampleConverted())
		if err != nil {
			t.Fatalf("MergeSettings error: %v", err)
		}

		var doc map[string]any
		_ = json.Unmarshal(res.Document, &doc)
		env, ok := doc["env"].(map[string]any)
		if !ok || env["FOO"] != "bar" {
			t.Errorf("env not preserved: %v", doc["env"])
		}
		if _, ok := doc["permissions"]; !ok {
			t.Error("permissions key dropped")
		}
	})

	t.Run("malformed_destination_is_fatal", func(t *testing.T) {
		_, err := MergeSettings([]byte(`{not json`), sampleConverted())
		if !errors.Is(err, ErrMalformedDescriptor) {
			t.Errorf("err = %v, want ErrMalformedDescriptor", err)
		}
	})

	t.Run("document_ends_with_newline", func(t *testing.T) {
		res, err := MergeSettings(nil, sampleConverted())
		if err != nil {
			t.Fatalf("MergeSettings error: %v", err)
		}
		if !strings.HasSuffix(string(res.Document), "}\n") {
			t.Errorf("document missing trailing newline")
		}
	})
}

func TestEntryKey(t *testing.T) {
	long := strings.Repeat("x", 200)
	key := entryKey("Bash", long)
	if len(key) != len("Bash::")+keyPrefixLen {
		t.Errorf("key length = %d, want bounded prefix", len(key))
	}
}
