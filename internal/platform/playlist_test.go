package platform

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeLister struct {
	items []PlaylistItem
	err   error
	gotID string
}

func (f *fakeLister) ListPlaylist(ctx context.Context, playlistID string) ([]PlaylistItem, error) {
	f.gotID = playlistID
	return f.items, f.err
}

func TestNewPlaylistInspector(t *testing.T) {
	inspector := NewPlaylistInspector()
	if inspector.timeout != DefaultInspectTimeout {
		t.Errorf("expected timeout %v, got %v", DefaultInspectTimeout, inspector.timeout)
	}

	inspector.SetTimeout(5 * time.Second)
	if inspector.timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", inspector.timeout)
	}
}

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{"watch URL", "https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID", "PLAYLIST_ID"},
		{"playlist URL", "https://www.youtube.com/playlist?list=PLAYLIST_ID", "PLAYLIST_ID"},
		{"additional parameters", "https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID&index=1&t=30", "PLAYLIST_ID"},
		{"no list parameter", "https://www.youtube.com/watch?v=VIDEO_ID", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractPlaylistID(tt.url); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestInspect(t *testing.T) {
	lister := &fakeLister{items: []PlaylistItem{
		{VideoID: "a1", Title: "Lecture Series - Part 1"},
		{VideoID: "", Title: "deleted video"},
		{VideoID: "b2", Title: "Lecture Series - Part 2"},
	}}
	inspector := &PlaylistInspector{timeout: time.Second, lister: lister}

	playlist, err := inspector.Inspect(context.Background(), "https://www.youtube.com/playlist?list=PLxyz")
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if lister.gotID != "PLxyz" {
		t.Errorf("expected lister to receive PLxyz, got %q", lister.gotID)
	}
	if playlist.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", playlist.Len())
	}
	if playlist.Entries[1].URL != "https://www.youtube.com/watch?v=b2" {
		t.Errorf("unexpected entry URL %q", playlist.Entries[1].URL)
	}
	if playlist.Title != "Lecture Series - Part Playlist" {
		t.Errorf("unexpected title %q", playlist.Title)
	}
}

func TestInspect_Errors(t *testing.T) {
	inspector := &PlaylistInspector{lister: &fakeLister{err: errors.New("quota exceeded")}}

	if _, err := inspector.Inspect(context.Background(), "https://www.youtube.com/watch?v=abc"); err == nil {
		t.Error("expected error for non-playlist URL")
	}
	if _, err := inspector.Inspect(context.Background(), "https://www.youtube.com/playlist?list=PLxyz"); err == nil {
		t.Error("expected lister error to propagate")
	}
}

func TestPlaylistTitle(t *testing.T) {
	if got := playlistTitle(nil); got != DefaultPlaylistName {
		t.Errorf("expected %q, got %q", DefaultPlaylistName, got)
	}
}
