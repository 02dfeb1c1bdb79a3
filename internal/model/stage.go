package model

// Stage is the position of a request in the orchestration state machine.
type Stage string

const (
	StageIdle              Stage = "Idle"
	StageValidatingURL     Stage = "Validating URL"
	StageCheckingConverter Stage = "Checking Converter"
	StageFetchingMetadata  Stage = "Fetching Metadata"
	StageDownloading       Stage = "Downloading"
	StageConverting        Stage = "Converting"
	StageComplete          Stage = "Complete"
)

var stageOrder = map[Stage]int{
	StageIdle:              0,
	StageValidatingURL:     1,
	StageCheckingConverter: 2,
	StageFetchingMetadata:  3,
	StageDownloading:       4,
	StageConverting:        5,
	StageComplete:          6,
}

// String returns the string representation of Stage
func (s Stage) String() string {
	return string(s)
}

// IsActive reports whether a request in this stage is still running.
func (s Stage) IsActive() bool {
	return s != StageIdle && s != StageComplete
}

// IsFinished reports whether the stage is terminal.
func (s Stage) IsFinished() bool {
	return s == StageComplete
}

// CanTransition reports whether next is a legal successor of s. Stages only move
// forward one step at a time, Converting may be skipped, and any active stage may
// jump to Complete on failure. Complete returns to Idle for the next request.
func (s Stage) CanTransition(next Stage) bool {
	from, ok := stageOrder[s]
	if !ok {
		return false
	}
	to, ok := stageOrder[next]
	if !ok {
		return false
	}
	switch {
	case s == StageComplete:
		return next == StageIdle
	case next == StageComplete:
		return s.IsActive()
	case s == StageDownloading && next == StageConverting:
		return true
	default:
		return to == from+1 && next != StageConverting
	}
}
