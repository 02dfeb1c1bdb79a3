package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Theme names understood by the UI.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Preferences is the small JSON blob the UI persists between runs.
type Preferences struct {
	Theme string `json:"theme"`
}

// DefaultPreferences returns the fallback used whenever the file is unusable.
func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeLight}
}

// LoadPreferences reads path. A missing or malformed file, or an unknown theme,
// silently yields the defaults.
func LoadPreferences(path string) Preferences {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultPreferences()
	}
	var prefs Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return DefaultPreferences()
	}
	if prefs.Theme != ThemeLight && prefs.Theme != ThemeDark {
		prefs.Theme = ThemeLight
	}
	return prefs
}

// Save writes the preferences, creating the parent directory.
func (p Preferences) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return os.Rename(tmp, path)
}

// ToggleTheme returns the opposite theme.
func (p Preferences) ToggleTheme() Preferences {
	if p.Theme == ThemeDark {
		return Preferences{Theme: ThemeLight}
	}
	return Preferences{Theme: ThemeDark}
}
