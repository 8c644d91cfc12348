package hooks

import (
	"strings"
	"testing"
)

func TestRewriteCommand(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`${CLAUDE_PLUGIN_ROOT}/scripts/check.sh`, `"$CLAUDE_PROJECT_DIR"/.claude/scripts/check.sh`},
		{`$CLAUDE_PLUGIN_ROOT/scripts/check.sh`, `"$CLAUDE_PROJECT_DIR"/.claude/scripts/check.sh`},
		{`echo done`, `echo done`},
	}
	for _, tt := range tests {
		if got := RewriteCommand(tt.in); got != tt.want {
			t.Errorf("RewriteCommand(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConvert(t *testing.T) {
	t.Run("plain_matcher_no_scripts", func(t *testing.T) {
		doc := &LegacyDocument{Hooks: map[string][]LegacyEntry{
			"PreToolUse": {{
				Matcher: `tool == "Bash"`,
				Hooks:   []Command{{Type: "command", Command: "echo hi"}},
			}},
		}}

		converted, scripts, next := Convert(doc, 1)

		if len(scripts) != 0 {
			t.Errorf("scripts = %d, want none", len(scripts))
		}
		if next != 1 {
			t.Errorf("next index = %d, want 1 (untouched)", next)
		}
		entries := converted["PreToolUse"]
		if len(entries) != 1 || entries[0].Matcher != "Bash" {
			t.Fatalf("entries = %+v", entries)
		}
		if entries[0].Hooks[0].Command != "echo hi" {
			t.Errorf("command = %q", entries[0].Hooks[0].Command)
		}
	})

	t.Run("condition_generates_filter_script", func(t *testing.T) {
		doc := &LegacyDocument{Hooks: map[string][]LegacyEntry{
			"PostToolUse": {{
				Matcher: `tool == "Edit" && tool_input.file_path matches "\.ts$"`,
				Hooks:   []Command{{Type: "command", Command: "npx tsc --noEmit"}},
			}},
		}}

		converted, scripts, next := Convert(doc, 1)

		if len(scripts) != 1 {
			t.Fatalf("scripts = %d, want 1", len(scripts))
		}
		if next != 2 {
			t.Errorf("next index = %d, want 2", next)
		}
		if scripts[0].RelPath != "hooks/filters/filter-1.sh" {
			t.Errorf("script path = %q", scripts[0].RelPath)
		}

		script := string(scripts[0].Content)
		for _, want := range []string{
			"#!/bin/bash",
			`jq -r '.tool_input.file_path // empty'`,
			`grep -Eq -- '\.ts$'`,
			"npx tsc --noEmit",
			`printf '%s' "$payload"`,
		} {
			if !strings.Contains(script, want) {
				t.Errorf("script missing %q:\n%s", want, script)
			}
		}

		entry := converted["PostToolUse"][0]
		if entry.Matcher != "Edit" {
			t.Errorf("matcher = %q, want condition moved out of matcher", entry.Matcher)
		}
		if entry.Hooks[0].Command != `"$CLAUDE_PROJECT_DIR"/.claude/hooks/filters/filter-1.sh` {
			t.Errorf("command = %q, want filter invocation", entry.Hooks[0].Command)
		}
	})

	t.Run("inline_shell_snippet_is_inlined", func(t *testing.T) {
		doc := &LegacyDocument{Hooks: map[string][]LegacyEntry{
			"PostToolUse": {{
				Matcher: `tool == "Write" && tool_input.file_path matches "\.go$"`,
				Hooks:   []Command{{Type: "command", Command: `bash -c 'gofmt -l .'`}},
			}},
		}}

		_, scripts, _ := Convert(doc, 1)

		script := string(scripts[0].Content)
		if !strings.Contains(script, "    gofmt -l .\n") {
			t.Errorf("snippet not inlined:\n%s", script)
		}
		if strings.Contains(script, "bash -c") {
			t.Errorf("inline snippet still wrapped in bash -c:\n%s", script)
		}
	})

	t.Run("stdin_consumers_not_wrapped", func(t *testing.T) {
		doc := &LegacyDocument{Hooks: map[string][]LegacyEntry{
			"PreToolUse": {{
				Matcher: `tool == "Bash" && tool_input.command matches "rm "`,
				Hooks:   []Command{{Type: "command", Command: `jq -r .tool_input.command | audit-log`}},
			}},
		}}

		converted, scripts, _ := Convert(doc, 1)

		if len(scripts) != 0 {
			t.Errorf("scripts = %d, want none for stdin-consuming command", len(scripts))
		}
		if got := converted["PreToolUse"][0].Hooks[0].Command; !strings.HasPrefix(got, "jq") {
			t.Errorf("command = %q, want original preserved", got)
		}
	})

	t.Run("counter_threads_across_events", func(t *testing.T) {
		doc := &LegacyDocument{Hooks: map[string][]LegacyEntry{
			"PostToolUse": {{
				Matcher: `tool == "Edit" && tool_input.file_path matches "\.py$"`,
				Hooks:   []Command{{Type: "command", Command: "ruff check"}},
			}},
			"PreToolUse": {{
				Matcher: `tool == "Bash" && tool_input.command matches "^git push"`,
				Hooks:   []Command{{Type: "command", Command: "confirm-push"}},
			}},
		}}

		_, scripts, next := Convert(doc, 5)

		if len(scripts) != 2 || next != 7 {
			t.Fatalf("scripts = %d, next = %d, want 2 and 7", len(scripts), next)
		}
		// Events are processed in sorted order: PostToolUse before PreToolUse.
		if scripts[0].RelPath != "hooks/filters/filter-5.sh" || scripts[1].RelPath != "hooks/filters/filter-6.sh" {
			t.Errorf("script paths = %q, %q", scripts[0].RelPath, scripts[1].RelPath)
		}
	})

	t.Run("async_and_timeout_carried_over", func(t *testing.T) {
		doc := &LegacyDocument{Hooks: map[string][]LegacyEntry{
			"Stop": {{
				Matcher: "*",
				Hooks:   []Command{{Type: "command", Command: "cleanup", Async: true, Timeout: 30}},
			}},
		}}

		converted, _, _ := Convert(doc, 1)

		hook := converted["Stop"][0].Hooks[0]
		if !hook.Async || hook.Timeout != 30 {
			t.Errorf("hook = %+v, want async and timeout preserved", hook)
		}
	})
}
