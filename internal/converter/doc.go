package converter

// Package converter owns everything about the external ffmpeg binary: locating
// it on PATH or in the local bundle directory, installing it on demand, and
// invoking it with the fixed argument lists the download pipeline needs.
