package hooks

import (
	"regexp"
	"strings"
)

// Matcher is the parsed form of a legacy matcher expression. Tools holds the
// extracted tool names (empty means match-all); Field/Pattern carry a
// payload condition when the expression had a recognized
// `tool_input.<field> matches "<pattern>"` clause.
type Matcher struct {
	Tools   []string
	Field   string
	Pattern string
}

// HasCondition reports whether the matcher carries a payload condition that
// must be evaluated against the event payload at hook runtime.
func (m Matcher) HasCondition() bool {
	return m.Field != ""
}

// String renders the converted matcher: tool names joined with `|`, or `*`
// for match-all.
func (m Matcher) String() string {
	if len(m.Tools) == 0 {
		return "*"
	}
	return strings.Join(m.Tools, "|")
}

// The legacy grammar is intentionally a tiny fixed pattern language, so it
// is handled with explicit extractors rather than a general parser. Checked
// in precedence order: OR-of-names union, then tool + field condition, then
// bare tool-name fallback.
var (
	reBareName  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	reToolEq    = regexp.MustCompile(`tool\s*==\s*"([A-Za-z_][A-Za-z0-9_]*)"`)
	reFieldCond = regexp.MustCompile(`tool_input\.([A-Za-z_][A-Za-z0-9_]*)\s+matches\s+"((?:[^"\\]|\\.)*)"`)
)

// ParseMatcher converts a legacy matcher expression. It never fails:
// unsupported clauses degrade to best-effort tool-name extraction, and an
// expression yielding nothing usable becomes match-all.
func ParseMatcher(expr string) Matcher {
	expr = strings.TrimSpace(expr)

	if expr == "" || expr == "*" {
		return Matcher{}
	}
	if reBareName.MatchString(expr) {
		// Plain tool name passthrough.
		return Matcher{Tools: []string{expr}}
	}

	var m Matcher
	for _, sub := range reToolEq.FindAllStringSubmatch(expr, -1) {
		m.Tools = append(m.Tools, sub[1])
	}

	if strings.Contains(expr, "tool_input") {
		if sub := reFieldCond.FindStringSubmatch(expr); sub != nil {
			m.Field = sub[1]
			m.Pattern = sub[2]
		}
		// A tool_input reference without a recognized field+pattern pair
		// falls back to exposing just the extracted tool names.
	}

	return m
}
