package converter

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/ytget/tube/internal/logging"
	"github.com/ytget/tube/internal/platform"
)

// Installer file names and timing
const (
	ArchiveFileName   = "ffmpeg.zip"
	LockFileName      = ".install.lock"
	ArchiveBinDir     = "bin"
	lockRetryInterval = 500 * time.Millisecond
	UserAgent         = "tube/1.0"
)

// Package manager commands
const (
	BrewCommand   = "brew"
	AptGetCommand = "apt-get"
	YumCommand    = "yum"
	SudoCommand   = "sudo"
)

// Installer result messages
const (
	MsgInstalled           = "FFmpeg installed successfully"
	MsgInstalledBrew       = "FFmpeg installed successfully via Homebrew"
	MsgInstalledApt        = "FFmpeg installed successfully via apt-get"
	MsgInstalledYum        = "FFmpeg installed successfully via yum"
	MsgInstallFailed       = "FFmpeg installation failed"
	MsgBrewMissing         = "Homebrew not found. Please install Homebrew first."
	MsgManualInstallAdvice = "Could not install FFmpeg automatically. Please install it manually."
)

// InstallResult is the outcome of one installation attempt.
type InstallResult struct {
	Success bool
	Message string
}

func installed(msg string) InstallResult { return InstallResult{Success: true, Message: msg} }

func installFailed(format string, args ...any) InstallResult {
	return InstallResult{Message: fmt.Sprintf(format, args...)}
}

// Installer acquires the converter for the current platform: a release archive
// on Windows, Homebrew on macOS, apt-get or yum elsewhere.
type Installer struct {
	prober     *Prober
	archiveURL string
	client     *http.Client
	runner     CommandRunner
	lookPath   func(string) (string, error)
	goos       string
	logger     *slog.Logger
}

// NewInstaller creates an installer writing into prober's local directory.
func NewInstaller(prober *Prober, archiveURL string, logger *slog.Logger) *Installer {
	return &Installer{
		prober:     prober,
		archiveURL: archiveURL,
		client:     &http.Client{Timeout: 10 * time.Minute},
		runner:     ExecRunner{},
		lookPath:   exec.LookPath,
		goos:       runtime.GOOS,
		logger:     logging.OrDefault(logger),
	}
}

// Install attempts to install the converter. Failures are reported in the
// result, never returned. Concurrent installs across processes are serialized
// with a lock file in the local converter directory.
func (i *Installer) Install(ctx context.Context) InstallResult {
	dir := i.prober.InstallDir()
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		return installFailed("Failed to install FFmpeg: %v", err)
	}

	lock := flock.New(filepath.Join(dir, LockFileName))
	locked, err := lock.TryLockContext(ctx, lockRetryInterval)
	if err != nil || !locked {
		if err == nil {
			err = errors.New("install lock not acquired")
		}
		return installFailed("Failed to install FFmpeg: %v", err)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			i.logger.Warn("release install lock", "error", err)
		}
	}()

	i.logger.Info("installing converter", "goos", i.goos, "dir", dir)

	var result InstallResult
	switch i.goos {
	case platform.OSWindows:
		result = i.installWindows(ctx, dir)
	case platform.OSDarwin:
		result = i.installDarwin(ctx)
	default:
		result = i.installLinux(ctx)
	}

	i.prober.Refresh()
	if result.Success {
		i.logger.Info("converter installed", "message", result.Message, "location", i.prober.Location())
	} else {
		i.logger.Warn("converter install failed", "message", result.Message)
	}
	return result
}

func (i *Installer) installWindows(ctx context.Context, dir string) InstallResult {
	zipPath := filepath.Join(dir, ArchiveFileName)
	if err := i.downloadArchive(ctx, zipPath); err != nil {
		return installFailed("Failed to download FFmpeg: %v", err)
	}
	defer func() { _ = platform.RemoveIfExists(zipPath) }()

	roots, err := extractZip(zipPath, dir)
	if err != nil {
		return installFailed("Failed to extract FFmpeg: %v", err)
	}
	defer func() {
		for _, root := range roots {
			_ = os.RemoveAll(filepath.Join(dir, root))
		}
	}()

	exe := platform.ExecutableNameFor(platform.OSWindows, FFmpegCommand)
	src, ok := findArchivedBinary(dir, roots, exe)
	if !ok {
		return installFailed(MsgInstallFailed)
	}
	if err := moveFile(src, filepath.Join(dir, exe)); err != nil {
		return installFailed("Windows FFmpeg installation failed: %v", err)
	}

	if !platform.FileExists(filepath.Join(dir, exe)) {
		return installFailed(MsgInstallFailed)
	}
	return installed(MsgInstalled)
}

func (i *Installer) installDarwin(ctx context.Context) InstallResult {
	if _, err := i.lookPath(BrewCommand); err != nil {
		return installFailed(MsgBrewMissing)
	}
	if stderr, err := i.runner.Run(ctx, BrewCommand, "install", FFmpegCommand); err != nil {
		return installFailed("Homebrew installation failed: %s", firstNonEmpty(stderr, err.Error()))
	}
	return installed(MsgInstalledBrew)
}

func (i *Installer) installLinux(ctx context.Context) InstallResult {
	if _, err := i.lookPath(AptGetCommand); err == nil {
		if _, err := i.runner.Run(ctx, SudoCommand, AptGetCommand, "update"); err != nil {
			i.logger.Warn("apt-get update failed", "error", err)
			return installFailed(MsgManualInstallAdvice)
		}
		if _, err := i.runner.Run(ctx, SudoCommand, AptGetCommand, "install", "-y", FFmpegCommand); err != nil {
			i.logger.Warn("apt-get install failed", "error", err)
			return installFailed(MsgManualInstallAdvice)
		}
		return installed(MsgInstalledApt)
	}

	if _, err := i.lookPath(YumCommand); err == nil {
		if _, err := i.runner.Run(ctx, SudoCommand, YumCommand, "install", "-y", FFmpegCommand); err != nil {
			i.logger.Warn("yum install failed", "error", err)
			return installFailed(MsgManualInstallAdvice)
		}
		return installed(MsgInstalledYum)
	}

	return installFailed(MsgManualInstallAdvice)
}

func (i *Installer) downloadArchive(ctx context.Context, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.archiveURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := i.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected HTTP status %d", resp.StatusCode)
	}

	tmpPath := destPath + ".download"
	out, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmpPath, err)
	}
	written, copyErr := io.Copy(out, resp.Body)
	closeErr := out.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("save archive: %w", errors.Join(copyErr, closeErr))
	}
	if written == 0 {
		_ = os.Remove(tmpPath)
		return errors.New("downloaded archive is empty")
	}

	i.logger.Debug("converter archive downloaded", "bytes", written, "path", destPath)
	return os.Rename(tmpPath, destPath)
}

// extractZip unpacks zipPath into destDir and returns the top-level names it
// created. Entries that would escape destDir are rejected.
func extractZip(zipPath, destDir string) ([]string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	cleanDest := filepath.Clean(destDir)
	seen := make(map[string]bool)
	var roots []string

	for _, f := range r.File {
		target := filepath.Join(cleanDest, filepath.FromSlash(f.Name))
		if target == cleanDest {
			// "./" names destDir itself
			continue
		}
		if !strings.HasPrefix(target, cleanDest+string(os.PathSeparator)) {
			return roots, fmt.Errorf("illegal path in archive: %s", f.Name)
		}

		rel, err := filepath.Rel(cleanDest, target)
		if err != nil {
			return roots, fmt.Errorf("illegal path in archive: %s", f.Name)
		}
		root := strings.SplitN(filepath.ToSlash(rel), "/", 2)[0]
		if !seen[root] {
			seen[root] = true
			roots = append(roots, root)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, platform.DefaultDirPermissions); err != nil {
				return roots, err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), platform.DefaultDirPermissions); err != nil {
			return roots, err
		}
		if err := extractZipEntry(f, target); err != nil {
			return roots, fmt.Errorf("extract %s: %w", f.Name, err)
		}
	}
	return roots, nil
}

func extractZipEntry(f *zip.File, destPath string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, platform.DefaultExecPermissions)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// findArchivedBinary looks for <root>/bin/<exe> under each extracted root.
func findArchivedBinary(dir string, roots []string, exe string) (string, bool) {
	for _, root := range roots {
		candidate := filepath.Join(dir, root, ArchiveBinDir, exe)
		if platform.FileExists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, platform.DefaultExecPermissions)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
