package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/yuezheng2006/everything-claude-code/internal/defs"
)

func TestLoad(t *testing.T) {
	t.Run("missing_file_yields_zero_defaults", func(t *testing.T) {
		d := Load(t.TempDir())
		if !reflect.DeepEqual(d, Defaults{}) {
			t.Errorf("Load() = %+v, want zero value", d)
		}
	})

	t.Run("valid_file", func(t *testing.T) {
		dir := t.TempDir()
		content := "components:\n  - agents\n  - hooks\nlanguages:\n  - go\nlocale: zh-CN\nexclude:\n  - \"*.bak\"\nsource: /opt/assets\n"
		if err := os.WriteFile(filepath.Join(dir, defs.InstallConfigYAML), []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile error: %v", err)
		}

		d := Load(dir)
		want := Defaults{
			Components: []string{"agents", "hooks"},
			Languages:  []string{"go"},
			Locale:     "zh-CN",
			Exclude:    []string{"*.bak"},
			Source:     "/opt/assets",
		}
		if !reflect.DeepEqual(d, want) {
			t.Errorf("Load() = %+v, want %+v", d, want)
		}
	})

	t.Run("malformed_file_yields_zero_defaults", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, defs.InstallConfigYAML), []byte("locale: [unclosed"), 0o644); err != nil {
			t.Fatalf("WriteFile error: %v", err)
		}

		d := Load(dir)
		if !reflect.DeepEqual(d, Defaults{}) {
			t.Errorf("Load() = %+v, want zero value", d)
		}
	})
}

func TestSaveLoadRoundtrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", ".claude")
	in := Defaults{
		Components: []string{"rules"},
		Languages:  []string{"python", "rust"},
		Locale:     "ja",
	}

	if err := Save(dir, in); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	out := Load(dir)
	if !reflect.DeepEqual(in, out) {
		t.Errorf("roundtrip mismatch: %+v vs %+v", in, out)
	}
}
