package extractor

import (
	"context"
	"time"
)

// Metadata is the subset of extractor info the orchestrator needs.
type Metadata struct {
	Title string
	// Filename is the extractor's suggested output name, informational only.
	Filename string
}

// Options configures one download invocation.
type Options struct {
	// Format is a yt-dlp format selector expression.
	Format string
	// OutputTemplate is the yt-dlp output template, including directory.
	OutputTemplate string
	// MergeFormat is the container used when separate streams are merged.
	MergeFormat string
	// ConverterDir overrides where the extractor looks for the converter.
	ConverterDir string

	SocketTimeout   time.Duration
	Retries         int
	FragmentRetries int
}

// Progress is a single download progress sample.
type Progress struct {
	DownloadedBytes int64
	TotalBytes      int64
	Percent         float64
	Started         time.Time
	ETA             time.Duration
	Filename        string
}

// BytesPerSecond returns the average transfer rate since Started.
func (p Progress) BytesPerSecond(now time.Time) float64 {
	if p.Started.IsZero() {
		return 0
	}
	elapsed := now.Sub(p.Started).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(p.DownloadedBytes) / elapsed
}

// Extractor resolves and downloads media from a page URL.
type Extractor interface {
	Metadata(ctx context.Context, url string) (*Metadata, error)
	Download(ctx context.Context, url string, opts Options, onProgress func(Progress)) error
}
