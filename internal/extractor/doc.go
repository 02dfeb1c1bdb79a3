// Package extractor wraps the yt-dlp media extractor (via github.com/lrstanley/go-ytdlp)
// behind a small interface used by the download orchestrator. It resolves
// metadata, runs downloads with progress reporting and classifies failures
// into network and extraction errors.
package extractor
