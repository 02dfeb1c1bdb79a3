package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPreferencesFallbacks(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		content  *string
		expected string
	}{
		{"missing file", nil, ThemeLight},
		{"malformed json", ptr("{theme: dark"), ThemeLight},
		{"unknown theme", ptr(`{"theme":"solarized"}`), ThemeLight},
		{"dark", ptr(`{"theme":"dark"}`), ThemeDark},
		{"extra keys ignored", ptr(`{"theme":"dark","window":"max"}`), ThemeDark},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "settings", string(rune('a'+i))+".json")
			if tt.content != nil {
				if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
					t.Fatalf("mkdir: %v", err)
				}
				if err := os.WriteFile(path, []byte(*tt.content), 0o644); err != nil {
					t.Fatalf("write: %v", err)
				}
			}
			if got := LoadPreferences(path).Theme; got != tt.expected {
				t.Errorf("Expected theme %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestPreferencesSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")

	prefs := DefaultPreferences().ToggleTheme()
	if prefs.Theme != ThemeDark {
		t.Fatalf("Expected toggle to dark, got %s", prefs.Theme)
	}
	if err := prefs.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if got := LoadPreferences(path).Theme; got != ThemeDark {
		t.Errorf("Expected persisted dark theme, got %s", got)
	}
	if prefs.ToggleTheme().Theme != ThemeLight {
		t.Error("Expected toggle back to light")
	}
}

func ptr(s string) *string { return &s }
