package hooks

import "testing"

func TestParseMatcher(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		want    string
		field   string
		pattern string
	}{
		{name: "empty_is_match_all", expr: "", want: "*"},
		{name: "star_is_match_all", expr: "*", want: "*"},
		{name: "bare_tool_name_passthrough", expr: "Bash", want: "Bash"},
		{name: "single_equality", expr: `tool == "Bash"`, want: "Bash"},
		{name: "two_name_union", expr: `tool == "Edit" || tool == "Write"`, want: "Edit|Write"},
		{
			name:    "tool_with_field_condition",
			expr:    `tool == "Edit" && tool_input.file_path matches "\.ts$"`,
			want:    "Edit",
			field:   "file_path",
			pattern: `\.ts$`,
		},
		{
			name: "unrecognized_tool_input_degrades_to_tool_name",
			expr: `tool == "Write" && tool_input.file_path.size > 100`,
			want: "Write",
		},
		{
			name: "unsupported_clause_best_effort_extraction",
			expr: `tool == "Bash" && session.id == "x"`,
			want: "Bash",
		},
		{name: "nothing_usable_is_match_all", expr: `session.id == "x"`, want: "*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ParseMatcher(tt.expr)
			if got := m.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if m.Field != tt.field {
				t.Errorf("Field = %q, want %q", m.Field, tt.field)
			}
			if m.Pattern != tt.pattern {
				t.Errorf("Pattern = %q, want %q", m.Pattern, tt.pattern)
			}
			if m.HasCondition() != (tt.field != "") {
				t.Errorf("HasCondition() = %v", m.HasCondition())
			}
		})
	}
}
