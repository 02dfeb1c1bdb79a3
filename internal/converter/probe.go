package converter

import (
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/ytget/tube/internal/logging"
	"github.com/ytget/tube/internal/platform"
)

// Prober locates the converter executable, first on the search path and then
// in the application-local converter directory. A successful lookup is cached
// until Refresh is called or the cached file disappears.
type Prober struct {
	localDir string
	goos     string
	lookPath func(string) (string, error)
	logger   *slog.Logger

	mu      sync.Mutex
	cached  string
	isLocal bool
}

// NewProber returns a Prober that also checks localDir.
func NewProber(localDir string, logger *slog.Logger) *Prober {
	return &Prober{
		localDir: localDir,
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		logger:   logging.OrDefault(logger),
	}
}

// Probe reports whether a converter executable is available.
func (p *Prober) Probe() bool {
	return p.Location() != ""
}

// Location returns the absolute path to the converter, or "" when none is found.
func (p *Prober) Location() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != "" && platform.FileExists(p.cached) {
		return p.cached
	}
	p.cached, p.isLocal = p.resolve()
	return p.cached
}

// LocalDir returns the application-local directory when the converter was
// found there rather than on the search path, otherwise "".
func (p *Prober) LocalDir() string {
	if p.Location() == "" {
		return ""
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.isLocal {
		return ""
	}
	return filepath.Dir(p.cached)
}

// InstallDir is the application-local directory the installer writes into.
func (p *Prober) InstallDir() string {
	return p.localDir
}

// Refresh drops the cached location so the next Probe resolves again.
func (p *Prober) Refresh() {
	p.mu.Lock()
	p.cached, p.isLocal = "", false
	p.mu.Unlock()
}

func (p *Prober) resolve() (string, bool) {
	name := platform.ExecutableNameFor(p.goos, FFmpegCommand)

	if found, err := p.lookPath(name); err == nil && found != "" {
		if abs, err := filepath.Abs(found); err == nil {
			found = abs
		}
		p.logger.Debug("converter found on search path", "path", found)
		return found, false
	}

	if p.localDir != "" {
		local := filepath.Join(p.localDir, name)
		if platform.FileExists(local) {
			if abs, err := filepath.Abs(local); err == nil {
				local = abs
			}
			p.logger.Debug("converter found in local directory", "path", local)
			return local, true
		}
	}

	p.logger.Debug("converter not found", "local_dir", p.localDir)
	return "", false
}
