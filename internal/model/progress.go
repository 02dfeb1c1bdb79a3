package model

import (
	"fmt"
	"time"
)

// Progress is a snapshot of a running request.
type Progress struct {
	Stage           Stage
	Percent         float64 // 0 to 100
	DownloadedBytes int64
	TotalBytes      int64
	BytesPerSecond  float64
	ETA             time.Duration // zero if unknown
	Filename        string
}

// Fraction returns Percent scaled to 0..1 for progress widgets.
func (p Progress) Fraction() float64 {
	switch {
	case p.Percent <= 0:
		return 0
	case p.Percent >= 100:
		return 1
	default:
		return p.Percent / 100
	}
}

// ETAString returns ETA formatted as hh:mm:ss or mm:ss, or "—" if unknown
func (p Progress) ETAString() string {
	secs := int(p.ETA.Seconds())
	if secs <= 0 {
		return "—"
	}

	hours := secs / 3600
	minutes := (secs % 3600) / 60
	seconds := secs % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
