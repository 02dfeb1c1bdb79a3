package ui

import "time"

// Window geometry
const (
	WindowWidth  float32 = 800
	WindowHeight float32 = 750
)

// Icons (emojis/symbols)
const (
	IconThemeDark  = "🌙"
	IconThemeLight = "☀"
)

// Format radio options, in display order.
const (
	OptionVideo = "MP4 Video"
	OptionAudio = "MP3 Audio"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	ProgressLabelFormat = "%.0f%%"
	EllipsisSuffix      = "..."
)

// InstallTimeout bounds a converter installation started from the window when
// no configured value is supplied.
const InstallTimeout = 10 * time.Minute
