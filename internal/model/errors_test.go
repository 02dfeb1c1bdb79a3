package model

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorWrapping(t *testing.T) {
	base := errors.New("connection reset by peer")
	err := fmt.Errorf("run: %w", NewError(KindNetwork, "download", "", base))

	if !errors.Is(err, base) {
		t.Fatal("Expected wrapped error to contain base error")
	}
	if !errors.Is(err, &Error{Kind: KindNetwork}) {
		t.Fatal("Expected kind to match through the chain")
	}
	if errors.Is(err, &Error{Kind: KindConversion}) {
		t.Fatal("Expected different kind not to match")
	}
	if KindOf(err) != KindNetwork {
		t.Errorf("KindOf() = %s, expected network", KindOf(err))
	}
	if KindOf(base) != 0 {
		t.Errorf("KindOf(plain) = %s, expected zero", KindOf(base))
	}
}

func TestCause(t *testing.T) {
	inner := errors.New("HTTP Error 403: Forbidden")
	err := fmt.Errorf("outer: %w", fmt.Errorf("middle: %w", inner))

	if got := Cause(err); got != "HTTP Error 403: Forbidden" {
		t.Errorf("Cause() = %q", got)
	}
	if Cause(nil) != "" {
		t.Error("Cause(nil) should be empty")
	}
}

func TestDisplayMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{"nil", nil, ""},
		{"validation", NewError(KindValidation, "validate", "Invalid video URL", nil), "Invalid video URL"},
		{"environment", NewError(KindEnvironmentMissing, "probe", "", nil), "install FFmpeg"},
		{"network", NewError(KindNetwork, "download", "", errors.New("timed out")), "Download failed: timed out"},
		{"extraction", NewError(KindExtraction, "metadata", "", errors.New("Video unavailable")), "Download failed: Video unavailable"},
		{"conversion with cause", NewError(KindConversion, "transcode", "", errors.New("bad codec")), "Audio conversion failed: bad codec"},
		{"conversion detail only", NewError(KindConversion, "locate", "Could not find downloaded audio file", nil), "Could not find downloaded audio file"},
		{"plain", errors.New("boom"), "Error: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DisplayMessage(tt.err)
			if tt.contains == "" {
				if got != "" {
					t.Errorf("Expected empty message, got %q", got)
				}
				return
			}
			if !strings.Contains(got, tt.contains) {
				t.Errorf("DisplayMessage() = %q, expected to contain %q", got, tt.contains)
			}
		})
	}
}

func TestFailedResult(t *testing.T) {
	res := Failed(NewError(KindValidation, "validate", "Please enter a video URL", nil))
	if res.Success {
		t.Fatal("Expected failed result")
	}
	if res.Message != "Please enter a video URL" {
		t.Errorf("Unexpected message %q", res.Message)
	}
	if KindOf(res.Err) != KindValidation {
		t.Errorf("Expected validation kind, got %s", KindOf(res.Err))
	}
}
