package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"github.com/ytget/tube/internal/platform"
)

// AppDirName is the per-user directory name under the XDG base directories.
const AppDirName = "tube"

// Paths holds filesystem locations.
type Paths struct {
	DownloadDir     string `toml:"download_dir"`
	ConverterDir    string `toml:"converter_dir"`
	LogDir          string `toml:"log_dir"`
	PreferencesFile string `toml:"preferences_file"`
}

// Network holds extractor resiliency and converter timing knobs.
type Network struct {
	SocketTimeoutSeconds  int `toml:"socket_timeout_seconds"`
	Retries               int `toml:"retries"`
	FragmentRetries       int `toml:"fragment_retries"`
	ConvertTimeoutSeconds int `toml:"convert_timeout_seconds"`
	InstallTimeoutSeconds int `toml:"install_timeout_seconds"`
}

// Installer holds converter acquisition settings.
type Installer struct {
	WindowsArchiveURL string `toml:"windows_archive_url"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the application configuration. All fields have defaults; the file
// is optional.
type Config struct {
	Paths     Paths     `toml:"paths"`
	Network   Network   `toml:"network"`
	Installer Installer `toml:"installer"`
	Logging   Logging   `toml:"logging"`
}

// DefaultPath returns the config file location under XDG_CONFIG_HOME.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppDirName, "config.toml")
}

// Load reads path (or DefaultPath when empty). A missing file yields defaults.
// The returned bool reports whether a file was read.
func Load(path string) (*Config, bool, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}

	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(expanded)
	exists := true
	switch {
	case errors.Is(err, fs.ErrNotExist):
		exists = false
	case err != nil:
		return nil, false, fmt.Errorf("read config %s: %w", expanded, err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, false, fmt.Errorf("parse config %s: %w", expanded, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, exists, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, exists, err
	}
	return &cfg, exists, nil
}

func (c *Config) normalize() error {
	var err error
	if c.Paths.DownloadDir == "" {
		if c.Paths.DownloadDir, err = platform.GetHomeDownloadsDir(); err != nil {
			return err
		}
	}
	if c.Paths.ConverterDir == "" {
		c.Paths.ConverterDir = filepath.Join(xdg.DataHome, AppDirName, "ffmpeg")
	}
	if c.Paths.PreferencesFile == "" {
		c.Paths.PreferencesFile = filepath.Join(xdg.ConfigHome, AppDirName, "settings.json")
	}

	for _, p := range []*string{&c.Paths.DownloadDir, &c.Paths.ConverterDir, &c.Paths.LogDir, &c.Paths.PreferencesFile} {
		if *p == "" {
			continue
		}
		if *p, err = ExpandPath(*p); err != nil {
			return err
		}
	}

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Installer.WindowsArchiveURL = strings.TrimSpace(c.Installer.WindowsArchiveURL)
	if c.Installer.WindowsArchiveURL == "" {
		c.Installer.WindowsArchiveURL = defaultWindowsArchiveURL
	}
	return nil
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	checks := []struct {
		name  string
		value int
	}{
		{"network.socket_timeout_seconds", c.Network.SocketTimeoutSeconds},
		{"network.retries", c.Network.Retries},
		{"network.fragment_retries", c.Network.FragmentRetries},
		{"network.convert_timeout_seconds", c.Network.ConvertTimeoutSeconds},
		{"network.install_timeout_seconds", c.Network.InstallTimeoutSeconds},
	}
	for _, check := range checks {
		if check.value < 0 {
			return fmt.Errorf("%s: must not be negative (got %d)", check.name, check.value)
		}
	}
	// the extractor treats zero as unset and falls back to its own retry count
	if c.Network.Retries == 0 {
		return fmt.Errorf("network.retries: must be at least 1")
	}
	if c.Network.FragmentRetries == 0 {
		return fmt.Errorf("network.fragment_retries: must be at least 1")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

// SocketTimeout returns the extractor socket timeout.
func (c *Config) SocketTimeout() time.Duration {
	return time.Duration(c.Network.SocketTimeoutSeconds) * time.Second
}

// ConvertTimeout returns the per-invocation converter timeout.
func (c *Config) ConvertTimeout() time.Duration {
	return time.Duration(c.Network.ConvertTimeoutSeconds) * time.Second
}

// InstallTimeout returns the overall converter installation timeout.
func (c *Config) InstallTimeout() time.Duration {
	return time.Duration(c.Network.InstallTimeoutSeconds) * time.Second
}

// ExpandPath resolves a leading "~" to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", path, err)
	}
	return filepath.Join(home, path[1:]), nil
}
