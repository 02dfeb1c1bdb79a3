package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if !DirExists(testDir) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestGetHomeDownloadsDir(t *testing.T) {
	downloadsDir, err := GetHomeDownloadsDir()
	if err != nil {
		t.Fatalf("Failed to get downloads directory: %v", err)
	}

	if downloadsDir == "" {
		t.Fatal("Downloads directory is empty")
	}
}

func TestFirstExisting(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "clip_audio")

	if _, ok := FirstExisting(dir, "clip_audio", []string{".m4a", ".webm"}); ok {
		t.Fatal("Expected no match in empty directory")
	}

	for _, ext := range []string{".webm", ".opus"} {
		if err := os.WriteFile(base+ext, []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	got, ok := FirstExisting(dir, "clip_audio", []string{".m4a", ".webm", ".ogg", ".opus"})
	if !ok {
		t.Fatal("Expected a match")
	}
	if got != base+".webm" {
		t.Errorf("Expected first match in list order, got %s", got)
	}

	// directories never match
	if err := os.Mkdir(base+".ogg", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	got, _ = FirstExisting(dir, "clip_audio", []string{".ogg", ".opus"})
	if got != base+".opus" {
		t.Errorf("Expected directory to be skipped, got %s", got)
	}
}

func TestFirstExistingStaysInDir(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "Downloads")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(parent, "Downloads.mp4"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	for _, name := range []string{".", ".."} {
		if got, ok := FirstExisting(dir, name, []string{".mp4"}); ok {
			t.Errorf("FirstExisting(%q) matched %s outside the directory", name, got)
		}
	}

	inside := filepath.Join(dir, "..mp4")
	if err := os.WriteFile(inside, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got, ok := FirstExisting(dir, ".", []string{".mp4"}); !ok || got != inside {
		t.Errorf("FirstExisting(\".\") = %q, %v; expected %s", got, ok, inside)
	}
}

func TestExistsHelpers(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if !FileExists(file) || FileExists(dir) {
		t.Error("FileExists mismatch")
	}
	if !DirExists(dir) || DirExists(file) {
		t.Error("DirExists mismatch")
	}
	if DirExists(filepath.Join(dir, "missing")) {
		t.Error("Expected missing dir to be reported absent")
	}
}

func TestRemoveIfExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "gone.tmp")

	if err := RemoveIfExists(file); err != nil {
		t.Fatalf("Expected missing file to be ignored, got %v", err)
	}
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := RemoveIfExists(file); err != nil {
		t.Fatalf("RemoveIfExists() error = %v", err)
	}
	if FileExists(file) {
		t.Error("Expected file to be removed")
	}
}

func TestExecutableNameFor(t *testing.T) {
	if got := ExecutableNameFor(OSWindows, "ffmpeg"); got != "ffmpeg.exe" {
		t.Errorf("Expected ffmpeg.exe, got %s", got)
	}
	if got := ExecutableNameFor(OSLinux, "ffmpeg"); got != "ffmpeg" {
		t.Errorf("Expected ffmpeg, got %s", got)
	}
}

func TestOpenFileInManager_NonExistentFile(t *testing.T) {
	tempDir := t.TempDir()
	nonExistentFile := filepath.Join(tempDir, "nonexistent.txt")

	err := OpenFileInManager(nonExistentFile)
	if err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}

	if !strings.Contains(err.Error(), "file does not exist:") {
		t.Errorf("Error message should contain 'file does not exist:', got: %v", err)
	}
}
