package platform

// Package platform contains OS/platform integration and external tooling glue:
// URL validation, filename sanitizing, filesystem helpers, playlist listing via
// the ytdlp library, and OS open/reveal.
