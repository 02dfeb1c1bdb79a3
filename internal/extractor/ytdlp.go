package extractor

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/tube/internal/logging"
	"github.com/ytget/tube/internal/model"
)

// ProgressInterval is how often yt-dlp progress is sampled.
const ProgressInterval = 500 * time.Millisecond

// networkMarkers are stderr fragments that indicate a transport failure rather
// than an extraction problem.
var networkMarkers = []string{
	"unable to download",
	"timed out",
	"connection reset",
	"connection refused",
	"connection aborted",
	"network is unreachable",
	"name or service not known",
	"temporary failure in name resolution",
	"getaddrinfo failed",
	"nodename nor servname",
	"urlopen error",
	"http error 5",
	"ssl:",
	"remote end closed connection",
}

// YtDlp implements Extractor on the yt-dlp command line tool.
type YtDlp struct {
	logger *slog.Logger

	installMu sync.Mutex
	installed bool
	install   func(ctx context.Context) error
}

// NewYtDlp creates the yt-dlp backed extractor. The yt-dlp binary is resolved
// (and downloaded if needed) before the first call.
func NewYtDlp(logger *slog.Logger) *YtDlp {
	return &YtDlp{
		logger: logging.OrDefault(logger),
		install: func(ctx context.Context) error {
			_, err := ytdlp.Install(ctx, nil)
			return err
		},
	}
}

// Metadata fetches the title and basic info for url without downloading.
func (y *YtDlp) Metadata(ctx context.Context, url string) (*Metadata, error) {
	if err := y.ensureInstalled(ctx); err != nil {
		return nil, err
	}

	res, err := ytdlp.New().
		SkipDownload().
		DumpSingleJSON().
		NoPlaylist().
		NoWarnings().
		Run(ctx, url)
	if err != nil {
		return nil, classify("fetch metadata", res, err)
	}

	infos, err := res.GetExtractedInfo()
	if err != nil {
		return nil, model.NewError(model.KindExtraction, "fetch metadata", "could not parse extractor output", err)
	}
	if len(infos) == 0 {
		return &Metadata{}, nil
	}
	return metadataFrom(infos[0]), nil
}

// Download runs yt-dlp for url with opts, forwarding progress samples.
func (y *YtDlp) Download(ctx context.Context, url string, opts Options, onProgress func(Progress)) error {
	if err := y.ensureInstalled(ctx); err != nil {
		return err
	}

	dl := buildCommand(opts)
	if onProgress != nil {
		dl.ProgressFunc(ProgressInterval, func(update ytdlp.ProgressUpdate) {
			onProgress(progressFrom(update))
		})
	}

	y.logger.Debug("starting extractor", "url", url, "format", opts.Format, "output", opts.OutputTemplate)
	res, err := dl.Run(ctx, url)
	if err != nil {
		return classify("download", res, err)
	}
	return nil
}

func (y *YtDlp) ensureInstalled(ctx context.Context) error {
	y.installMu.Lock()
	defer y.installMu.Unlock()

	if y.installed {
		return nil
	}
	if err := y.install(ctx); err != nil {
		y.logger.Error("yt-dlp unavailable", "error", err)
		return model.NewError(model.KindExtraction, "resolve extractor", "yt-dlp is not available", err)
	}
	y.installed = true
	return nil
}

// buildCommand maps Options onto a yt-dlp invocation.
func buildCommand(opts Options) *ytdlp.Command {
	dl := ytdlp.New().
		Format(opts.Format).
		Output(opts.OutputTemplate).
		NoPlaylist().
		RestrictFilenames().
		SkipUnavailableFragments().
		NoKeepFragments().
		NoCheckCertificates().
		FormatSortForce()

	if opts.MergeFormat != "" {
		dl.MergeOutputFormat(opts.MergeFormat)
	}
	if opts.ConverterDir != "" {
		dl.FFmpegLocation(opts.ConverterDir)
	}
	if opts.SocketTimeout > 0 {
		dl.SocketTimeout(opts.SocketTimeout.Seconds())
	}
	if opts.Retries > 0 {
		dl.Retries(strconv.Itoa(opts.Retries))
	}
	if opts.FragmentRetries > 0 {
		dl.FragmentRetries(strconv.Itoa(opts.FragmentRetries))
	}
	return dl
}

func metadataFrom(info *ytdlp.ExtractedInfo) *Metadata {
	meta := &Metadata{}
	if info.Title != nil {
		meta.Title = *info.Title
	}
	if info.Filename != nil {
		meta.Filename = *info.Filename
	}
	return meta
}

func progressFrom(update ytdlp.ProgressUpdate) Progress {
	p := Progress{
		DownloadedBytes: int64(update.DownloadedBytes),
		TotalBytes:      int64(update.TotalBytes),
		Started:         update.Started,
		ETA:             update.ETA(),
		Filename:        update.Filename,
	}
	if p.TotalBytes > 0 {
		p.Percent = float64(p.DownloadedBytes) / float64(p.TotalBytes) * 100
	}
	return p
}

// classify turns a failed yt-dlp run into a network or extraction *model.Error.
func classify(op string, res *ytdlp.Result, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return model.NewError(model.KindNetwork, op, "", err)
	}

	stderr := ""
	if res != nil {
		stderr = res.Stderr
	}
	cause := errorLine(stderr)
	if cause == "" {
		cause = err.Error()
	}

	kind := model.KindExtraction
	if IsNetworkFailure(cause) || IsNetworkFailure(stderr) {
		kind = model.KindNetwork
	}
	return model.NewError(kind, op, "", errors.New(cause))
}

// IsNetworkFailure reports whether text looks like a transport error.
func IsNetworkFailure(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range networkMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// errorLine returns the last "ERROR:" line of yt-dlp stderr without its prefix,
// or the last non-empty line.
func errorLine(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	last := ""
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if last == "" {
			last = line
		}
		if rest, ok := strings.CutPrefix(line, "ERROR:"); ok {
			return strings.TrimSpace(rest)
		}
	}
	return last
}
