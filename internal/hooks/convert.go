package hooks

import (
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/yuezheng2006/everything-claude-code/internal/defs"
)

// installedRoot is where rewritten hook commands resolve: the asset
// repository's plugin-root placeholder points at its own checkout, installed
// hooks point at the project config directory.
const installedRoot = `"$CLAUDE_PROJECT_DIR"/.claude`

var rePluginRoot = regexp.MustCompile(`\$\{?CLAUDE_PLUGIN_ROOT\}?`)

// RewriteCommand replaces the plugin-root placeholder with the installed
// location's variable form. The replacement is literal: the target contains
// a dollar sign that must not be treated as a group reference.
func RewriteCommand(cmd string) string {
	return rePluginRoot.ReplaceAllLiteralString(cmd, installedRoot)
}

// stdin markers: a command that already consumes the event payload from
// standard input must not be wrapped, or the wrapper would steal its input.
var stdinMarkers = []string{"jq", "stdin", "$(cat)", "/dev/stdin"}

func consumesStdin(cmd string) bool {
	for _, marker := range stdinMarkers {
		if strings.Contains(cmd, marker) {
			return true
		}
	}
	return false
}

// reInlineShell recognizes the one command shape whose logic is inlined into
// the generated filter script: a bare `bash -c '<snippet>'` (or sh) with a
// single-quoted snippet and nothing after it. Anything else is re-invoked as
// a subprocess, the conservative default.
var reInlineShell = regexp.MustCompile(`^(?:bash|sh)\s+-c\s+'([^']*)'$`)

// Convert transforms a legacy descriptor into settings-format hook entries
// plus the filter scripts needed for payload conditions. The script counter
// starts at startIndex and the next unused index is returned, so conversion
// is a pure function of (document, starting index).
func Convert(doc *LegacyDocument, startIndex int) (map[string][]Entry, []FilterScript, int) {
	converted := make(map[string][]Entry, len(doc.Hooks))
	var scripts []FilterScript
	index := startIndex

	// Events are processed in sorted order so script numbering, and with it
	// the emitted command strings, is stable across runs.
	events := make([]string, 0, len(doc.Hooks))
	for event := range doc.Hooks {
		events = append(events, event)
	}
	sort.Strings(events)

	for _, event := range events {
		for _, legacy := range doc.Hooks[event] {
			matcher := ParseMatcher(legacy.Matcher)

			entry := Entry{Matcher: matcher.String()}
			for _, hook := range legacy.Hooks {
				cmd := hook
				cmd.Command = RewriteCommand(hook.Command)

				if matcher.HasCondition() && !consumesStdin(cmd.Command) {
					script := buildFilterScript(matcher, cmd.Command)
					name := fmt.Sprintf("filter-%d.sh", index)
					index++
					scripts = append(scripts, FilterScript{
						RelPath: path.Join(defs.FilterScriptDir, name),
						Content: script,
					})
					cmd.Command = fmt.Sprintf("%s/%s/%s", installedRoot, defs.FilterScriptDir, name)
				}

				entry.Hooks = append(entry.Hooks, cmd)
			}

			converted[event] = append(converted[event], entry)
		}
	}

	return converted, scripts, index
}

// buildFilterScript generates a standalone script that reads the JSON event
// payload from stdin, tests the condition field against the pattern, runs
// the wrapped logic only on a match, and always re-emits the payload so
// downstream consumers still see it.
func buildFilterScript(m Matcher, command string) []byte {
	body := command
	if sub := reInlineShell.FindStringSubmatch(command); sub != nil {
		body = sub[1]
	}

	var sb strings.Builder
	sb.WriteString("#!/bin/bash\n")
	sb.WriteString("# Generated hook filter: gates the wrapped command on an event payload condition.\n")
	sb.WriteString("payload=$(cat)\n")
	sb.WriteString("if command -v jq >/dev/null 2>&1; then\n")
	fmt.Fprintf(&sb, "  value=$(printf '%%s' \"$payload\" | jq -r '.tool_input.%s // empty')\n", m.Field)
	fmt.Fprintf(&sb, "  if printf '%%s' \"$value\" | grep -Eq -- %s; then\n", shellQuote(m.Pattern))
	fmt.Fprintf(&sb, "    %s\n", body)
	sb.WriteString("  fi\n")
	sb.WriteString("fi\n")
	sb.WriteString("printf '%s' \"$payload\"\n")
	return []byte(sb.String())
}

// shellQuote single-quotes s for safe embedding in the generated script.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
