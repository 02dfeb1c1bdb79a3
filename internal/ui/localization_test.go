package ui

import "testing"

func TestLocalizationFallback(t *testing.T) {
	l := NewLocalization()
	l.SetLanguage("ru")
	if l.GetCurrentLanguage() != "ru" {
		t.Fatalf("language = %q, expected ru", l.GetCurrentLanguage())
	}
	if got := l.GetText(KeyDownload); got != "Скачать" {
		t.Errorf("ru download = %q", got)
	}
	if got := l.GetText(KeyCreditsText); got != creditsTextEN {
		t.Error("missing ru text should fall back to English")
	}
	if got := l.GetText("no_such_key"); got != "no_such_key" {
		t.Errorf("unknown key = %q", got)
	}

	l.SetLanguage("xx")
	if l.GetCurrentLanguage() != "ru" {
		t.Error("unknown language should be ignored")
	}
}

func TestSystemLanguage(t *testing.T) {
	tests := []struct {
		lcAll    string
		lang     string
		expected string
	}{
		{"", "pt_BR.UTF-8", "pt"},
		{"ru_RU.UTF-8", "en_US.UTF-8", "ru"},
		{"C", "", "en"},
		{"", "", "en"},
	}
	for _, test := range tests {
		t.Setenv("LC_ALL", test.lcAll)
		t.Setenv("LC_MESSAGES", "")
		t.Setenv("LANG", test.lang)
		if got := systemLanguage(); got != test.expected {
			t.Errorf("systemLanguage(LC_ALL=%q, LANG=%q) = %q, expected %q", test.lcAll, test.lang, got, test.expected)
		}
	}
}

func TestEveryLanguageHasCoreKeys(t *testing.T) {
	l := NewLocalization()
	for code := range l.GetAvailableLanguages() {
		texts, ok := l.texts[code]
		if !ok {
			t.Errorf("language %s has no texts", code)
			continue
		}
		for _, key := range []string{KeyDownload, KeyClear, KeyInstallFFmpeg, KeyBusy, KeyFFmpegAvailable} {
			if texts[key] == "" {
				t.Errorf("language %s missing %s", code, key)
			}
		}
	}
}
