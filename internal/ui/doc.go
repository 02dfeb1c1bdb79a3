// Package ui contains the Fyne-based desktop window. It collects a download
// request from the form, hands it to the download orchestrator and renders
// stage, progress and completion updates. Worker goroutines never touch
// widgets directly; every update is marshaled with fyne.Do.
package ui
