package model

import (
	"fmt"
	"strings"
)

// Format selects the output container family.
type Format string

const (
	FormatVideo Format = "video"
	FormatAudio Format = "audio"
)

// ParseFormat accepts the canonical names plus the container aliases shown in the UI.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "video", "mp4":
		return FormatVideo, nil
	case "audio", "mp3":
		return FormatAudio, nil
	default:
		return "", fmt.Errorf("unknown format %q", s)
	}
}

// Quality is the requested video resolution ceiling.
type Quality string

const (
	Quality4K    Quality = "4K"
	Quality1440p Quality = "1440p"
	Quality1080p Quality = "1080p"
	Quality720p  Quality = "720p"
	Quality480p  Quality = "480p"
	Quality360p  Quality = "360p"

	DefaultQuality = Quality1080p
)

var qualityHeights = map[Quality]int{
	Quality4K:    2160,
	Quality1440p: 1440,
	Quality1080p: 1080,
	Quality720p:  720,
	Quality480p:  480,
	Quality360p:  360,
}

// Qualities returns the selectable qualities from highest to lowest.
func Qualities() []Quality {
	return []Quality{Quality4K, Quality1440p, Quality1080p, Quality720p, Quality480p, Quality360p}
}

// Height returns the pixel height ceiling for q, or false when q is unknown.
func (q Quality) Height() (int, bool) {
	h, ok := qualityHeights[q]
	return h, ok
}

// ParseQuality accepts the display names case-insensitively ("4k", "1080P").
func ParseQuality(s string) (Quality, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, q := range Qualities() {
		if strings.EqualFold(s, string(q)) {
			return q, nil
		}
	}
	return "", fmt.Errorf("unknown quality %q", s)
}

// DownloadRequest is built from UI or CLI state once per operation and is not
// mutated afterwards.
type DownloadRequest struct {
	ID        string
	URL       string
	OutputDir string
	Format    Format
	Quality   Quality // empty for audio
}

// EffectiveQuality resolves the quality used for video selection.
func (r DownloadRequest) EffectiveQuality() Quality {
	if _, ok := r.Quality.Height(); ok {
		return r.Quality
	}
	return DefaultQuality
}

// DownloadResult is produced exactly once per request.
type DownloadResult struct {
	Success    bool
	Message    string
	Title      string
	OutputPath string
	Err        error
}

// Succeeded builds a successful result.
func Succeeded(title, outputPath, message string) DownloadResult {
	return DownloadResult{Success: true, Title: title, OutputPath: outputPath, Message: message}
}

// Failed builds a failed result whose message is derived from err.
func Failed(err error) DownloadResult {
	return DownloadResult{Success: false, Err: err, Message: DisplayMessage(err)}
}
