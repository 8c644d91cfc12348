package assets

import (
	"os"
	"path/filepath"
	"testing"
)

func setupSourceTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{
		"agents",
		"rules/python",
		filepath.Join("zh-CN", "agents"),
	} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatalf("MkdirAll error: %v", err)
		}
	}
	return root
}

func TestResolverResolve(t *testing.T) {
	root := setupSourceTree(t)
	r := NewResolver(root)

	t.Run("no_locale_returns_original", func(t *testing.T) {
		got := r.Resolve(CategoryAgents, "")
		want := filepath.Join(root, "agents")
		if got != want {
			t.Errorf("Resolve = %q, want %q", got, want)
		}
	})

	t.Run("locale_shadow_preferred", func(t *testing.T) {
		got := r.Resolve(CategoryAgents, "zh-CN")
		want := filepath.Join(root, "zh-CN", "agents")
		if got != want {
			t.Errorf("Resolve = %q, want shadow %q", got, want)
		}
	})

	t.Run("missing_shadow_falls_back", func(t *testing.T) {
		got := r.Resolve(CategoryCommands, "zh-CN")
		want := filepath.Join(root, "commands")
		if got != want {
			t.Errorf("Resolve = %q, want fallback %q", got, want)
		}
	})
}

func TestResolverHasShadow(t *testing.T) {
	r := NewResolver(setupSourceTree(t))

	if !r.HasShadow(CategoryAgents, "zh-CN") {
		t.Error("expected shadow for agents/zh-CN")
	}
	if r.HasShadow(CategoryAgents, "ja") {
		t.Error("unexpected shadow for agents/ja")
	}
	if r.HasShadow(CategoryAgents, "") {
		t.Error("empty locale must never report a shadow")
	}
}

func TestResolverLanguageRulesDir(t *testing.T) {
	root := setupSourceTree(t)
	r := NewResolver(root)

	got := r.LanguageRulesDir("python")
	want := filepath.Join(root, "rules", "python")
	if got != want {
		t.Errorf("LanguageRulesDir = %q, want %q", got, want)
	}
}
