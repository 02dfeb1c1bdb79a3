package download

import (
	"context"

	"github.com/ytget/tube/internal/model"
)

// Observer receives stage and progress notifications from the worker
// goroutine. Implementations that touch UI state must marshal to the UI thread.
type Observer interface {
	OnStage(stage model.Stage)
	OnProgress(progress model.Progress)
}

// NopObserver ignores all notifications.
type NopObserver struct{}

func (NopObserver) OnStage(model.Stage)       {}
func (NopObserver) OnProgress(model.Progress) {}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	Stage    func(model.Stage)
	Progress func(model.Progress)
}

func (f ObserverFuncs) OnStage(stage model.Stage) {
	if f.Stage != nil {
		f.Stage(stage)
	}
}

func (f ObserverFuncs) OnProgress(progress model.Progress) {
	if f.Progress != nil {
		f.Progress(progress)
	}
}

// ConverterProbe reports where the converter executable lives.
type ConverterProbe interface {
	Probe() bool
	Location() string
	LocalDir() string
}

// Converter runs the post-download converter invocations.
type Converter interface {
	TranscodeAudio(ctx context.Context, binary, inputPath, outputPath string) error
	TranscodeAudioFallback(ctx context.Context, binary, inputPath, outputPath string) error
	ReencodeAudioTrack(ctx context.Context, binary, inputPath, outputPath string) error
}

// Downloader is the orchestrator surface used by the UI shell and the CLI.
type Downloader interface {
	Start(ctx context.Context, req model.DownloadRequest, obs Observer) (<-chan model.DownloadResult, error)
	Run(ctx context.Context, req model.DownloadRequest, obs Observer) (model.DownloadResult, error)
	Busy() bool
}
