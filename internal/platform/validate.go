package platform

import (
	"regexp"
	"strings"
)

// videoURLPattern recognizes canonical watch, embed, short and playlist URLs,
// with or without scheme and "www.". Only the prefix is anchored. ID characters
// are Unicode letters, digits, underscore and hyphen.
var videoURLPattern = regexp.MustCompile(
	`^(https?://)?(www\.)?(youtube\.com/(watch\?v=|embed/|v/)|youtu\.be/|youtube\.com/playlist\?list=)[\p{L}\p{N}_-]+`,
)

// IllegalTitleChars are removed from titles before they become path components.
const IllegalTitleChars = `<>:"/\|?*`

// DefaultTitle is used when the extractor reports no title.
const DefaultTitle = "video"

// IsValidVideoURL reports whether raw has one of the canonical video/playlist shapes.
func IsValidVideoURL(raw string) bool {
	return videoURLPattern.MatchString(raw)
}

// IsPlaylistURL reports whether raw points at a playlist rather than a single video.
func IsPlaylistURL(raw string) bool {
	return IsValidVideoURL(raw) && strings.Contains(raw, PlaylistParam)
}

// SanitizeTitle drops exactly the characters in IllegalTitleChars.
func SanitizeTitle(title string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(IllegalTitleChars, r) {
			return -1
		}
		return r
	}, title)
}

// EscapeOutputTemplate makes s safe to embed literally in a yt-dlp output template.
func EscapeOutputTemplate(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}
