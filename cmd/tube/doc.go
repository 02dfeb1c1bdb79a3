// Command tube is the headless front end of the downloader. It shares the
// orchestrator, converter prober and installer with the desktop window.
//
//	tube download https://www.youtube.com/watch?v=... --audio
//	tube env
//	tube install-ffmpeg
//	tube playlist https://www.youtube.com/playlist?list=...
package main
