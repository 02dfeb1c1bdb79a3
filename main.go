package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"github.com/ytget/tube/internal/app"
	"github.com/ytget/tube/internal/config"
	"github.com/ytget/tube/internal/platform"
	"github.com/ytget/tube/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.tube"
	AppName = "Tube"
)

func main() {
	configPath := flag.String("config", "", "Configuration file path")
	flag.Parse()

	components, err := app.Load(*configPath, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer components.Close()

	cfg := components.Config
	logger := components.Logger
	logger.Info("starting", "app", AppName, "version", version)

	if err := platform.CreateDirectoryIfNotExists(cfg.Paths.DownloadDir); err != nil {
		logger.Warn("failed to ensure downloads dir", "path", cfg.Paths.DownloadDir, "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	myApp := fyneapp.NewWithID(AppID)
	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))
	myWindow.SetOnClosed(stop)

	ui.NewRootUI(ctx, myApp, myWindow, ui.Options{
		Downloader:      components.Service,
		Installer:       components.Installer,
		Prober:          components.Prober,
		Preferences:     config.LoadPreferences(cfg.Paths.PreferencesFile),
		PreferencesPath: cfg.Paths.PreferencesFile,
		DownloadDir:     cfg.Paths.DownloadDir,
		InstallTimeout:  cfg.InstallTimeout(),
		Logger:          logger.With("component", "ui"),
	})

	go func() {
		<-ctx.Done()
		fyne.Do(myApp.Quit)
	}()

	myWindow.ShowAndRun()
}
