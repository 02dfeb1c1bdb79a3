package platform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ytget/ytdlp/v2"

	"github.com/ytget/tube/internal/model"
)

// Timeout constants
const (
	DefaultInspectTimeout = 60 * time.Second
)

// URL parameters and separators
const (
	PlaylistParam  = "list="
	ParamSeparator = "&"
)

// Default values
const (
	DefaultPlaylistName = "Unknown Playlist"
	PlaylistSuffix      = " Playlist"
	MinPrefixLength     = 10
)

// YouTubeVideoURLTemplate builds a watch URL from a video ID.
const YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"

// PlaylistItem is the subset of library playlist data the inspector needs.
type PlaylistItem struct {
	VideoID string
	Title   string
}

// PlaylistLister fetches every item of a playlist by ID.
type PlaylistLister interface {
	ListPlaylist(ctx context.Context, playlistID string) ([]PlaylistItem, error)
}

type ytdlpLister struct{}

func (ytdlpLister) ListPlaylist(ctx context.Context, playlistID string) ([]PlaylistItem, error) {
	items, err := ytdlp.New().GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, err
	}
	out := make([]PlaylistItem, 0, len(items))
	for _, it := range items {
		out = append(out, PlaylistItem{VideoID: it.VideoID, Title: it.Title})
	}
	return out, nil
}

// PlaylistInspector lists the entries of a playlist URL without downloading.
type PlaylistInspector struct {
	timeout time.Duration
	lister  PlaylistLister
}

// NewPlaylistInspector creates an inspector backed by the ytdlp library.
func NewPlaylistInspector() *PlaylistInspector {
	return &PlaylistInspector{
		timeout: DefaultInspectTimeout,
		lister:  ytdlpLister{},
	}
}

// SetTimeout sets the timeout for inspection
func (p *PlaylistInspector) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// Inspect resolves the playlist behind url.
func (p *PlaylistInspector) Inspect(ctx context.Context, url string) (*model.Playlist, error) {
	if !IsPlaylistURL(url) {
		return nil, fmt.Errorf("invalid playlist URL: %s", url)
	}

	playlistID := ExtractPlaylistID(url)
	if playlistID == "" {
		return nil, fmt.Errorf("could not extract playlist ID from URL: %s", url)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	items, err := p.lister.ListPlaylist(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	entries := make([]*model.PlaylistEntry, 0, len(items))
	for _, it := range items {
		if it.VideoID == "" {
			continue
		}
		entries = append(entries, &model.PlaylistEntry{
			ID:    it.VideoID,
			Title: it.Title,
			URL:   fmt.Sprintf(YouTubeVideoURLTemplate, it.VideoID),
		})
	}

	return &model.Playlist{
		ID:      playlistID,
		Title:   playlistTitle(entries),
		URL:     url,
		Entries: entries,
	}, nil
}

// ExtractPlaylistID returns the value of the list= query parameter.
func ExtractPlaylistID(url string) string {
	_, after, found := strings.Cut(url, PlaylistParam)
	if !found {
		return ""
	}
	id, _, _ := strings.Cut(after, ParamSeparator)
	return id
}

// playlistTitle derives a display title from the common prefix of the first
// two entries, falling back to the first entry's title.
func playlistTitle(entries []*model.PlaylistEntry) string {
	if len(entries) == 0 {
		return DefaultPlaylistName
	}
	if len(entries) > 1 {
		prefix := commonPrefix(entries[0].Title, entries[1].Title)
		if len(prefix) > MinPrefixLength {
			return strings.TrimSpace(prefix) + PlaylistSuffix
		}
	}
	return entries[0].Title + PlaylistSuffix
}

func commonPrefix(s1, s2 string) string {
	n := min(len(s1), len(s2))
	for i := 0; i < n; i++ {
		if s1[i] != s2[i] {
			return s1[:i]
		}
	}
	return s1[:n]
}
