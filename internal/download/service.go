package download

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/tube/internal/extractor"
	"github.com/ytget/tube/internal/logging"
	"github.com/ytget/tube/internal/model"
	"github.com/ytget/tube/internal/platform"
)

// ErrBusy is returned when a request is triggered while another is running.
var ErrBusy = errors.New("download in progress")

// Validation messages
const (
	MsgEmptyURL        = "Please enter a video URL"
	MsgInvalidURL      = "Invalid video URL"
	MsgMissingDir      = "Download path does not exist"
	MsgInvalidFormat   = "Unsupported output format"
	MsgAudioNotFound   = "Could not find downloaded audio file"
	fallbackFailedText = "\nAlternative also failed: "
)

// File naming
const (
	AudioSuffix       = "_audio"
	TempSuffix        = "_temp"
	MP3Extension      = ".mp3"
	MP4Extension      = ".mp4"
	MergeOutputFormat = "mp4"
	templateExtension = ".%(ext)s"
)

// AudioExtensions are probed in order after an audio download.
var AudioExtensions = []string{".m4a", ".webm", ".ogg", ".opus", ".mp3"}

// VideoExtensions are probed in order after a video download.
var VideoExtensions = []string{".mp4", ".webm", ".mkv"}

// Settings carries extractor resiliency knobs.
type Settings struct {
	SocketTimeout   time.Duration
	Retries         int
	FragmentRetries int
}

// DefaultSettings matches the values used when no configuration is present.
func DefaultSettings() Settings {
	return Settings{SocketTimeout: 60 * time.Second, Retries: 3, FragmentRetries: 3}
}

// Service orchestrates one download at a time.
type Service struct {
	extractor extractor.Extractor
	prober    ConverterProbe
	converter Converter
	settings  Settings
	logger    *slog.Logger

	busy atomic.Bool
	now  func() time.Time
}

var _ Downloader = (*Service)(nil)

// NewService creates a new download orchestrator
func NewService(ext extractor.Extractor, prober ConverterProbe, conv Converter, settings Settings, logger *slog.Logger) *Service {
	return &Service{
		extractor: ext,
		prober:    prober,
		converter: conv,
		settings:  settings,
		logger:    logging.OrDefault(logger),
		now:       time.Now,
	}
}

// NewRequest builds a request with a fresh correlation ID. Quality is dropped
// for audio.
func NewRequest(url, outputDir string, format model.Format, quality model.Quality) model.DownloadRequest {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	if format == model.FormatAudio {
		quality = ""
	}
	return model.DownloadRequest{
		ID:        id.String(),
		URL:       strings.TrimSpace(url),
		OutputDir: strings.TrimSpace(outputDir),
		Format:    format,
		Quality:   quality,
	}
}

// ValidateRequest performs the synchronous checks shown to the user before a
// request starts.
func ValidateRequest(req model.DownloadRequest) error {
	const op = "validate request"
	switch {
	case strings.TrimSpace(req.URL) == "":
		return model.NewError(model.KindValidation, op, MsgEmptyURL, nil)
	case !platform.IsValidVideoURL(req.URL):
		return model.NewError(model.KindValidation, op, MsgInvalidURL, nil)
	case !platform.DirExists(req.OutputDir):
		return model.NewError(model.KindValidation, op, MsgMissingDir, nil)
	case req.Format != model.FormatVideo && req.Format != model.FormatAudio:
		return model.NewError(model.KindValidation, op, MsgInvalidFormat, nil)
	}
	return nil
}

// Busy reports whether a request is running.
func (s *Service) Busy() bool {
	return s.busy.Load()
}

// Start runs req on a new goroutine. The returned channel yields exactly one
// result. ErrBusy is returned, and nothing started, if a request is running.
func (s *Service) Start(ctx context.Context, req model.DownloadRequest, obs Observer) (<-chan model.DownloadResult, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}

	results := make(chan model.DownloadResult, 1)
	go func() {
		defer close(results)
		result := s.execute(ctx, req, obs)
		s.busy.Store(false)
		results <- result
	}()
	return results, nil
}

// Run executes req on the calling goroutine.
func (s *Service) Run(ctx context.Context, req model.DownloadRequest, obs Observer) (model.DownloadResult, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return model.DownloadResult{}, ErrBusy
	}
	defer s.busy.Store(false)
	return s.execute(ctx, req, obs), nil
}

// execute never panics and always reports StageComplete last.
func (s *Service) execute(ctx context.Context, req model.DownloadRequest, obs Observer) (result model.DownloadResult) {
	if obs == nil {
		obs = NopObserver{}
	}
	logger := s.logger.With("request_id", req.ID, "url", req.URL, "format", string(req.Format))
	started := s.now()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("download panicked", "panic", r)
			result = model.Failed(model.NewError(model.KindExtraction, "download", "", fmt.Errorf("unexpected failure: %v", r)))
		}
		obs.OnStage(model.StageComplete)
		if result.Success {
			logger.Info("download finished", "path", result.OutputPath, "elapsed", s.now().Sub(started))
		} else {
			logger.Warn("download failed", "kind", model.KindOf(result.Err).String(), "error", result.Err)
		}
	}()

	obs.OnStage(model.StageValidatingURL)
	if err := ValidateRequest(req); err != nil {
		return model.Failed(err)
	}

	obs.OnStage(model.StageCheckingConverter)
	if !s.prober.Probe() {
		return model.Failed(model.NewError(model.KindEnvironmentMissing, "check converter", "converter not found", nil))
	}
	binary := s.prober.Location()

	obs.OnStage(model.StageFetchingMetadata)
	meta, err := s.extractor.Metadata(ctx, req.URL)
	if err != nil {
		return model.Failed(asDownloadError("fetch metadata", err))
	}
	title := meta.Title
	if title == "" {
		title = platform.DefaultTitle
	}
	safe := platform.SanitizeTitle(title)
	if strings.TrimSpace(safe) == "" || safe == "." || safe == ".." {
		safe = platform.DefaultTitle
	}
	logger.Debug("metadata resolved", "title", title, "safe_title", safe)

	obs.OnStage(model.StageDownloading)
	opts := s.extractorOptions(req, safe)
	err = s.extractor.Download(ctx, req.URL, opts, func(p extractor.Progress) {
		obs.OnProgress(model.Progress{
			Stage:           model.StageDownloading,
			Percent:         p.Percent,
			DownloadedBytes: p.DownloadedBytes,
			TotalBytes:      p.TotalBytes,
			BytesPerSecond:  p.BytesPerSecond(s.now()),
			ETA:             p.ETA,
			Filename:        p.Filename,
		})
	})
	if err != nil {
		return model.Failed(asDownloadError("download", err))
	}
	obs.OnProgress(model.Progress{Stage: model.StageDownloading, Percent: 100})

	obs.OnStage(model.StageConverting)
	if req.Format == model.FormatAudio {
		return s.convertAudio(ctx, logger, binary, req.OutputDir, title, safe)
	}
	return s.finishVideo(ctx, logger, binary, req.OutputDir, title, safe)
}

func (s *Service) extractorOptions(req model.DownloadRequest, safe string) extractor.Options {
	opts := extractor.Options{
		Format:          FormatSelector(req.Format, req.EffectiveQuality()),
		ConverterDir:    s.prober.LocalDir(),
		SocketTimeout:   s.settings.SocketTimeout,
		Retries:         s.settings.Retries,
		FragmentRetries: s.settings.FragmentRetries,
	}
	base := platform.EscapeOutputTemplate(safe)
	if req.Format == model.FormatAudio {
		opts.OutputTemplate = filepath.Join(req.OutputDir, base+AudioSuffix+templateExtension)
	} else {
		opts.OutputTemplate = filepath.Join(req.OutputDir, base+templateExtension)
		opts.MergeFormat = MergeOutputFormat
	}
	return opts
}

// convertAudio transcodes the downloaded audio to mp3, trying the simplified
// invocation once if the primary one fails.
func (s *Service) convertAudio(ctx context.Context, logger *slog.Logger, binary, dir, title, safe string) model.DownloadResult {
	input, ok := platform.FirstExisting(dir, safe+AudioSuffix, AudioExtensions)
	if !ok {
		return model.Failed(model.NewError(model.KindConversion, "locate audio", MsgAudioNotFound, nil))
	}
	output := filepath.Join(dir, safe+MP3Extension)
	logger = logger.With("path", input)

	primaryErr := s.converter.TranscodeAudio(ctx, binary, input, output)
	if primaryErr != nil {
		logger.Warn("primary audio transcode failed, trying fallback", "error", primaryErr)
		if fallbackErr := s.converter.TranscodeAudioFallback(ctx, binary, input, output); fallbackErr != nil {
			cause := errors.New(errorText(primaryErr) + fallbackFailedText + errorText(fallbackErr))
			return model.Failed(model.NewError(model.KindConversion, "convert audio", "", cause))
		}
	}

	if input != output {
		if err := platform.RemoveIfExists(input); err != nil {
			logger.Warn("remove downloaded audio", "error", err)
		}
	}
	return model.Succeeded(title, output, fmt.Sprintf("Successfully downloaded and converted: %s%s", title, MP3Extension))
}

// finishVideo re-encodes the audio track to AAC. Any failure here keeps the
// downloaded file and still reports success.
func (s *Service) finishVideo(ctx context.Context, logger *slog.Logger, binary, dir, title, safe string) model.DownloadResult {
	message := fmt.Sprintf("Successfully downloaded: %s", title)

	input, ok := platform.FirstExisting(dir, safe, VideoExtensions)
	if !ok {
		logger.Warn("downloaded video not found, skipping audio re-encode", "name", safe)
		return model.Succeeded(title, "", message)
	}

	temp := filepath.Join(dir, safe+TempSuffix+MP4Extension)
	final := filepath.Join(dir, safe+MP4Extension)
	logger = logger.With("path", input)

	if err := s.converter.ReencodeAudioTrack(ctx, binary, input, temp); err != nil {
		logger.Warn("audio re-encode failed, keeping original", "error", err)
		if rmErr := platform.RemoveIfExists(temp); rmErr != nil {
			logger.Warn("remove temp file", "error", rmErr)
		}
		return model.Succeeded(title, input, message)
	}

	if err := os.Rename(temp, final); err != nil {
		logger.Warn("replace video with re-encoded copy", "error", err)
		_ = platform.RemoveIfExists(temp)
		return model.Succeeded(title, input, message)
	}
	if input != final {
		if err := platform.RemoveIfExists(input); err != nil {
			logger.Warn("remove original video", "error", err)
		}
	}
	return model.Succeeded(title, final, message)
}

// asDownloadError keeps classified errors and wraps anything else as an
// extraction failure.
func asDownloadError(op string, err error) error {
	var e *model.Error
	if errors.As(err, &e) {
		return err
	}
	return model.NewError(model.KindExtraction, op, "", err)
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return strings.TrimSpace(err.Error())
}
