package converter

import (
	"context"
	"log/slog"
	"time"

	"github.com/ytget/tube/internal/logging"
)

// FFmpeg constants for the audio transcode
const (
	AudioCodec      = "mp3"
	AudioBitrate    = "192k"
	AudioSampleRate = "44100"
	AudioChannels   = "2"
	AudioFormat     = "mp3"
	TimestampPolicy = "make_zero"
)

// FFmpeg constants for the video audio re-encode
const (
	VideoCopyCodec     = "copy"
	VideoAudioCodec    = "aac"
	VideoAudioBitrate  = "192k"
	VideoAudioSampling = "44100"
)

// Executable and file naming constants
const (
	FFmpegCommand     = "ffmpeg"
	OverwriteFlag     = "-y"
	DefaultRunTimeout = 300 * time.Second
)

// BuildAudioArgs builds the primary audio-only transcode invocation.
func BuildAudioArgs(inputPath, outputPath string) []string {
	return []string{
		"-i", inputPath,
		"-vn",
		"-acodec", AudioCodec,
		"-ab", AudioBitrate,
		"-ar", AudioSampleRate,
		"-ac", AudioChannels,
		"-avoid_negative_ts", TimestampPolicy,
		OverwriteFlag,
		outputPath,
	}
}

// BuildAudioFallbackArgs builds the simplified invocation tried once after the
// primary transcode fails.
func BuildAudioFallbackArgs(inputPath, outputPath string) []string {
	return []string{
		"-i", inputPath,
		"-f", AudioFormat,
		"-ab", AudioBitrate,
		"-ar", AudioSampleRate,
		OverwriteFlag,
		outputPath,
	}
}

// BuildVideoAudioArgs copies the video stream and re-encodes audio to AAC.
func BuildVideoAudioArgs(inputPath, outputPath string) []string {
	return []string{
		"-i", inputPath,
		"-c:v", VideoCopyCodec,
		"-c:a", VideoAudioCodec,
		"-b:a", VideoAudioBitrate,
		"-ar", VideoAudioSampling,
		OverwriteFlag,
		outputPath,
	}
}

// FFmpeg runs converter invocations against a resolved binary.
type FFmpeg struct {
	runner  CommandRunner
	timeout time.Duration
	logger  *slog.Logger
}

// NewFFmpeg creates an invoker. A nil runner uses ExecRunner; a zero timeout
// uses DefaultRunTimeout.
func NewFFmpeg(runner CommandRunner, timeout time.Duration, logger *slog.Logger) *FFmpeg {
	if runner == nil {
		runner = ExecRunner{}
	}
	if timeout <= 0 {
		timeout = DefaultRunTimeout
	}
	return &FFmpeg{runner: runner, timeout: timeout, logger: logging.OrDefault(logger)}
}

// TranscodeAudio runs the primary audio transcode.
func (f *FFmpeg) TranscodeAudio(ctx context.Context, binary, inputPath, outputPath string) error {
	return f.run(ctx, binary, "transcode_audio", BuildAudioArgs(inputPath, outputPath))
}

// TranscodeAudioFallback runs the simplified audio transcode.
func (f *FFmpeg) TranscodeAudioFallback(ctx context.Context, binary, inputPath, outputPath string) error {
	return f.run(ctx, binary, "transcode_audio_fallback", BuildAudioFallbackArgs(inputPath, outputPath))
}

// ReencodeAudioTrack remuxes inputPath into outputPath with an AAC audio track.
func (f *FFmpeg) ReencodeAudioTrack(ctx context.Context, binary, inputPath, outputPath string) error {
	return f.run(ctx, binary, "reencode_audio_track", BuildVideoAudioArgs(inputPath, outputPath))
}

func (f *FFmpeg) run(ctx context.Context, binary, op string, args []string) error {
	if binary == "" {
		binary = FFmpegCommand
	}
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	started := time.Now()
	_, err := f.runner.Run(ctx, binary, args...)
	if err != nil {
		f.logger.Warn("converter invocation failed", "op", op, "binary", binary, "elapsed", time.Since(started), "error", err)
		return err
	}
	f.logger.Debug("converter invocation finished", "op", op, "elapsed", time.Since(started))
	return nil
}
