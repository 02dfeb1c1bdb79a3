package model

import "testing"

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"video", FormatVideo, false},
		{"MP4", FormatVideo, false},
		{"audio", FormatAudio, false},
		{" mp3 ", FormatAudio, false},
		{"flac", "", true},
		{"", "", true},
	}

	for _, test := range tests {
		got, err := ParseFormat(test.input)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", test.input, err, test.wantErr)
			continue
		}
		if got != test.expected {
			t.Errorf("ParseFormat(%q) = %q, expected %q", test.input, got, test.expected)
		}
	}
}

func TestParseQuality(t *testing.T) {
	tests := []struct {
		input    string
		expected Quality
		wantErr  bool
	}{
		{"4k", Quality4K, false},
		{"1080P", Quality1080p, false},
		{"360p", Quality360p, false},
		{"", "", false},
		{"8K", "", true},
	}

	for _, test := range tests {
		got, err := ParseQuality(test.input)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseQuality(%q) error = %v, wantErr %v", test.input, err, test.wantErr)
			continue
		}
		if got != test.expected {
			t.Errorf("ParseQuality(%q) = %q, expected %q", test.input, got, test.expected)
		}
	}
}

func TestQualityHeight(t *testing.T) {
	expected := []int{2160, 1440, 1080, 720, 480, 360}
	for i, q := range Qualities() {
		h, ok := q.Height()
		if !ok {
			t.Fatalf("Height(%s) reported unknown quality", q)
		}
		if h != expected[i] {
			t.Errorf("Height(%s) = %d, expected %d", q, h, expected[i])
		}
	}

	if _, ok := Quality("720i").Height(); ok {
		t.Error("Expected unknown quality to report false")
	}
}

func TestEffectiveQuality(t *testing.T) {
	if got := (DownloadRequest{}).EffectiveQuality(); got != DefaultQuality {
		t.Errorf("Expected default quality %s, got %s", DefaultQuality, got)
	}
	if got := (DownloadRequest{Quality: Quality480p}).EffectiveQuality(); got != Quality480p {
		t.Errorf("Expected 480p, got %s", got)
	}
}
