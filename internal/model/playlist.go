package model

// PlaylistEntry is a single video of a playlist.
type PlaylistEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Playlist is the flat listing returned by the playlist inspector.
type Playlist struct {
	ID      string           `json:"id"`
	Title   string           `json:"title"`
	URL     string           `json:"url"`
	Entries []*PlaylistEntry `json:"entries"`
}

// Len returns the number of entries.
func (p *Playlist) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Entries)
}
