// Package app wires configuration into the prober, installer, extractor and
// download orchestrator shared by the desktop window and the CLI.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ytget/tube/internal/config"
	"github.com/ytget/tube/internal/converter"
	"github.com/ytget/tube/internal/download"
	"github.com/ytget/tube/internal/extractor"
	"github.com/ytget/tube/internal/logging"
	"github.com/ytget/tube/internal/platform"
)

// Components are the long-lived collaborators of one process.
type Components struct {
	Config    *config.Config
	Logger    *slog.Logger
	Prober    *converter.Prober
	Installer *converter.Installer
	Extractor *extractor.YtDlp
	Converter *converter.FFmpeg
	Service   *download.Service
	Playlists *platform.PlaylistInspector

	closer io.Closer
}

// Load reads configuration from configPath (empty for the default location),
// builds the logger and wires every component.
func Load(configPath string, logOutput io.Writer) (*Components, error) {
	cfg, _, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if logOutput == nil {
		logOutput = os.Stderr
	}
	logger, closer, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: logOutput,
		LogDir: cfg.Paths.LogDir,
	})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	c := Wire(cfg, logger)
	c.closer = closer
	return c, nil
}

// Wire builds the components from an already loaded configuration.
func Wire(cfg *config.Config, logger *slog.Logger) *Components {
	logger = logging.OrDefault(logger)

	prober := converter.NewProber(cfg.Paths.ConverterDir, logger.With("component", "prober"))
	installer := converter.NewInstaller(prober, cfg.Installer.WindowsArchiveURL, logger.With("component", "installer"))
	ffmpeg := converter.NewFFmpeg(converter.ExecRunner{}, cfg.ConvertTimeout(), logger.With("component", "converter"))
	ext := extractor.NewYtDlp(logger.With("component", "extractor"))

	settings := download.Settings{
		SocketTimeout:   cfg.SocketTimeout(),
		Retries:         cfg.Network.Retries,
		FragmentRetries: cfg.Network.FragmentRetries,
	}
	service := download.NewService(ext, prober, ffmpeg, settings, logger.With("component", "download"))

	return &Components{
		Config:    cfg,
		Logger:    logger,
		Prober:    prober,
		Installer: installer,
		Extractor: ext,
		Converter: ffmpeg,
		Service:   service,
		Playlists: platform.NewPlaylistInspector(),
	}
}

// Close releases the log file, if any.
func (c *Components) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}
