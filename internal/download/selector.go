package download

import (
	"fmt"
	"strings"

	"github.com/ytget/tube/internal/model"
)

// AudioFormatSelector prefers containers the converter handles fastest.
const AudioFormatSelector = "bestaudio[ext=m4a]/bestaudio[ext=webm]/bestaudio[ext=ogg]/bestaudio"

// fpsCapMinHeight is the lowest height ceiling that also gets a frame rate cap.
const fpsCapMinHeight = 720

// maxFPS is the frame rate ceiling applied at and above fpsCapMinHeight.
const maxFPS = 60

// FormatSelector returns the yt-dlp format expression for format and quality.
// Video alternatives are tried in order: capped video with mp3 audio, capped
// video with any audio, a pre-merged stream under the height ceiling, then
// anything.
func FormatSelector(format model.Format, quality model.Quality) string {
	if format == model.FormatAudio {
		return AudioFormatSelector
	}

	if _, ok := quality.Height(); !ok {
		quality = model.DefaultQuality
	}
	height, _ := quality.Height()

	constraint := fmt.Sprintf("[height<=%d]", height)
	if height >= fpsCapMinHeight {
		constraint += fmt.Sprintf("[fps<=%d]", maxFPS)
	}

	alternatives := []string{
		"bestvideo" + constraint + "+bestaudio[acodec=mp3]",
		"bestvideo" + constraint + "+bestaudio",
		fmt.Sprintf("best[height<=%d]", height),
		"best",
	}
	return strings.Join(alternatives, "/")
}
