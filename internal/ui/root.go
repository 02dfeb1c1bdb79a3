package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"

	"github.com/ytget/tube/internal/config"
	"github.com/ytget/tube/internal/converter"
	"github.com/ytget/tube/internal/download"
	"github.com/ytget/tube/internal/logging"
	"github.com/ytget/tube/internal/model"
	"github.com/ytget/tube/internal/platform"
)

// ConverterInstaller installs the converter on demand.
type ConverterInstaller interface {
	Install(ctx context.Context) converter.InstallResult
}

// ConverterProber reports converter availability.
type ConverterProber interface {
	Probe() bool
	Refresh()
}

// Options wires the window to its collaborators.
type Options struct {
	Downloader      download.Downloader
	Installer       ConverterInstaller
	Prober          ConverterProber
	Preferences     config.Preferences
	PreferencesPath string
	DownloadDir     string
	InstallTimeout  time.Duration
	Logger          *slog.Logger
}

// RootUI represents the main window
type RootUI struct {
	ctx          context.Context
	app          fyne.App
	window       fyne.Window
	opts         Options
	prefs        config.Preferences
	localization *Localization
	logger       *slog.Logger

	themeBtn      *widget.Button
	urlEntry      *widget.Entry
	formatRadio   *widget.RadioGroup
	qualityLabel  *widget.Label
	qualitySelect *widget.Select
	pathEntry     *widget.Entry
	progressBar   *widget.ProgressBar
	statusLabel   *widget.Label
	downloadBtn   *widget.Button
	clearBtn      *widget.Button
	installBtn    *widget.Button
	creditsBtn    *widget.Button
}

// NewRootUI builds the window content, applies the persisted theme and reports
// converter availability in the status line.
func NewRootUI(ctx context.Context, app fyne.App, window fyne.Window, opts Options) *RootUI {
	if opts.InstallTimeout <= 0 {
		opts.InstallTimeout = InstallTimeout
	}

	localization := NewLocalization()
	localization.SetLanguage("system")

	ui := &RootUI{
		ctx:          ctx,
		app:          app,
		window:       window,
		opts:         opts,
		prefs:        opts.Preferences,
		localization: localization,
		logger:       logging.OrDefault(opts.Logger),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.applyTheme()
	ui.setupUI()
	ui.checkConverterAvailability()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	t := ui.localization.GetText

	ui.themeBtn = widget.NewButton(ui.themeIcon(), ui.onToggleTheme)
	ui.themeBtn.Importance = widget.LowImportance
	title := widget.NewLabelWithStyle(t(KeyAppTitle), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	title.SizeName = theme.SizeNameHeadingText
	header := container.NewHBox(ui.themeBtn, title)

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(t(KeyEnterURL))
	ui.urlEntry.OnSubmitted = func(string) { ui.onDownloadClick() }

	ui.formatRadio = widget.NewRadioGroup([]string{OptionVideo, OptionAudio}, ui.onFormatChange)
	ui.formatRadio.Horizontal = true
	ui.formatRadio.Required = true

	qualities := make([]string, 0, len(model.Qualities()))
	for _, q := range model.Qualities() {
		qualities = append(qualities, string(q))
	}
	ui.qualityLabel = widget.NewLabel(t(KeyQuality))
	ui.qualitySelect = widget.NewSelect(qualities, nil)
	ui.qualitySelect.SetSelected(string(model.DefaultQuality))
	ui.formatRadio.SetSelected(OptionVideo)

	ui.pathEntry = widget.NewEntry()
	ui.pathEntry.SetText(ui.opts.DownloadDir)
	browseBtn := widget.NewButton(t(KeyBrowse), ui.onBrowse)

	ui.progressBar = widget.NewProgressBar()
	ui.progressBar.TextFormatter = func() string {
		return fmt.Sprintf(ProgressLabelFormat, ui.progressBar.Value*100)
	}

	ui.statusLabel = widget.NewLabel(t(KeyReady))
	ui.statusLabel.Alignment = fyne.TextAlignCenter
	ui.statusLabel.Wrapping = fyne.TextWrapWord

	ui.downloadBtn = widget.NewButton(t(KeyDownload), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance
	ui.clearBtn = widget.NewButton(t(KeyClear), ui.onClear)
	ui.installBtn = widget.NewButton(t(KeyInstallFFmpeg), ui.onInstallConverter)
	ui.creditsBtn = widget.NewButton(t(KeyCredits), ui.onShowCredits)

	form := container.NewVBox(
		widget.NewLabel(t(KeyVideoURL)),
		ui.urlEntry,
		container.New(layout.NewFormLayout(),
			widget.NewLabel(t(KeyFormat)), ui.formatRadio,
			ui.qualityLabel, ui.qualitySelect,
		),
		widget.NewLabel(t(KeyDownloadLocation)),
		container.NewBorder(nil, nil, nil, browseBtn, ui.pathEntry),
		widget.NewLabel(t(KeyDownloadProgress)),
		ui.progressBar,
		ui.statusLabel,
		container.NewCenter(container.NewHBox(ui.downloadBtn, ui.clearBtn, ui.installBtn, ui.creditsBtn)),
	)

	ui.window.SetContent(container.NewPadded(container.NewBorder(header, nil, nil, nil, form)))
}

// onFormatChange hides the quality picker for audio.
func (ui *RootUI) onFormatChange(option string) {
	if ui.qualityLabel == nil || ui.qualitySelect == nil {
		return
	}
	if formatForOption(option) == model.FormatAudio {
		ui.qualityLabel.Hide()
		ui.qualitySelect.Hide()
		return
	}
	ui.qualityLabel.Show()
	ui.qualitySelect.Show()
}

// buildRequest snapshots the form into an immutable request.
func (ui *RootUI) buildRequest() model.DownloadRequest {
	format := formatForOption(ui.formatRadio.Selected)
	quality, err := model.ParseQuality(ui.qualitySelect.Selected)
	if err != nil {
		quality = model.DefaultQuality
	}
	return download.NewRequest(ui.urlEntry.Text, ui.pathEntry.Text, format, quality)
}

// onDownloadClick validates the form and starts the orchestrator.
func (ui *RootUI) onDownloadClick() {
	if ui.opts.Downloader.Busy() {
		ui.showBusyWarning()
		return
	}

	req := ui.buildRequest()
	if err := download.ValidateRequest(req); err != nil {
		dialog.ShowError(errors.New(model.DisplayMessage(err)), ui.window)
		return
	}

	results, err := ui.opts.Downloader.Start(ui.ctx, req, ui.observer())
	if errors.Is(err, download.ErrBusy) {
		ui.showBusyWarning()
		return
	}
	if err != nil {
		dialog.ShowError(err, ui.window)
		return
	}

	ui.logger.Info("download requested", "request_id", req.ID, "url", req.URL, "format", string(req.Format), "quality", string(req.Quality))
	ui.downloadBtn.Disable()
	ui.progressBar.SetValue(0)
	ui.setStatus(ui.localization.GetText(KeyDownloading), widget.HighImportance)

	go func() {
		result := <-results
		fyne.Do(func() { ui.onDownloadComplete(result) })
	}()
}

func (ui *RootUI) showBusyWarning() {
	dialog.ShowInformation(ui.localization.GetText(KeyWarning), ui.localization.GetText(KeyBusy), ui.window)
}

// observer marshals orchestrator notifications onto the UI thread.
func (ui *RootUI) observer() download.Observer {
	return download.ObserverFuncs{
		Stage: func(stage model.Stage) {
			if !stage.IsActive() {
				return
			}
			fyne.Do(func() { ui.setStatus(stageStatus(stage), widget.HighImportance) })
		},
		Progress: func(p model.Progress) {
			fyne.Do(func() {
				ui.progressBar.SetValue(p.Fraction())
				ui.setStatus(progressStatus(ui.localization.GetText(KeyDownloading), p), widget.HighImportance)
			})
		},
	}
}

// onDownloadComplete runs on the UI thread once per request.
func (ui *RootUI) onDownloadComplete(result model.DownloadResult) {
	ui.downloadBtn.Enable()
	t := ui.localization.GetText

	if !result.Success {
		ui.setStatus(result.Message, widget.DangerImportance)
		dialog.ShowError(errors.New(result.Message), ui.window)
		return
	}

	ui.progressBar.SetValue(1)
	ui.setStatus(result.Message, widget.SuccessImportance)

	if result.OutputPath == "" {
		dialog.ShowInformation(t(KeySuccess), result.Message, ui.window)
		return
	}
	path := result.OutputPath
	confirm := dialog.NewConfirm(t(KeySuccess), result.Message, func(reveal bool) {
		if !reveal {
			return
		}
		if err := platform.OpenFileInManager(path); err != nil {
			ui.logger.Warn("reveal file failed", "path", path, "error", err)
			dialog.ShowError(fmt.Errorf("%s: %w", t(KeyErrorOpeningFile), err), ui.window)
		}
	}, ui.window)
	confirm.SetConfirmText(t(KeyShowInFolder))
	confirm.SetDismissText(t(KeyClose))
	confirm.Show()
}

// onInstallConverter runs the installer on its own goroutine.
func (ui *RootUI) onInstallConverter() {
	ui.installBtn.Disable()
	ui.setStatus(ui.localization.GetText(KeyInstalling), widget.HighImportance)

	go func() {
		ctx, cancel := context.WithTimeout(ui.ctx, ui.opts.InstallTimeout)
		defer cancel()
		result := ui.opts.Installer.Install(ctx)
		fyne.Do(func() { ui.onInstallComplete(result) })
	}()
}

func (ui *RootUI) onInstallComplete(result converter.InstallResult) {
	t := ui.localization.GetText
	ui.installBtn.Enable()

	if result.Success {
		ui.setStatus(t(KeyInstallSucceeded), widget.SuccessImportance)
		dialog.ShowInformation(t(KeySuccess), result.Message, ui.window)
		return
	}
	ui.setStatus(t(KeyInstallFailed), widget.DangerImportance)
	dialog.ShowError(errors.New(result.Message), ui.window)
}

// onClear empties the URL, resets progress and re-probes the converter.
func (ui *RootUI) onClear() {
	ui.urlEntry.SetText("")
	ui.progressBar.SetValue(0)
	ui.opts.Prober.Refresh()
	ui.checkConverterAvailability()
}

func (ui *RootUI) checkConverterAvailability() {
	if ui.opts.Prober.Probe() {
		ui.setStatus(ui.localization.GetText(KeyFFmpegAvailable), widget.SuccessImportance)
		return
	}
	ui.setStatus(ui.localization.GetText(KeyFFmpegMissing), widget.WarningImportance)
}

func (ui *RootUI) onBrowse() {
	d := dialog.NewFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if dir == nil {
			return
		}
		ui.pathEntry.SetText(dir.Path())
	}, ui.window)

	if current := strings.TrimSpace(ui.pathEntry.Text); platform.DirExists(current) {
		if lister, err := storage.ListerForURI(storage.NewFileURI(current)); err == nil {
			d.SetLocation(lister)
		}
	}
	d.Show()
}

func (ui *RootUI) onShowCredits() {
	t := ui.localization.GetText
	dialog.ShowCustom(t(KeyCredits), t(KeyClose), widget.NewLabel(t(KeyCreditsText)), ui.window)
}

// onToggleTheme flips the palette and persists the choice.
func (ui *RootUI) onToggleTheme() {
	ui.prefs = ui.prefs.ToggleTheme()
	ui.applyTheme()
	ui.themeBtn.SetText(ui.themeIcon())

	if ui.opts.PreferencesPath == "" {
		return
	}
	if err := ui.prefs.Save(ui.opts.PreferencesPath); err != nil {
		ui.logger.Warn("save preferences failed", "path", ui.opts.PreferencesPath, "error", err)
		ui.setStatus(ui.localization.GetText(KeyErrorSavingTheme), widget.WarningImportance)
	}
}

func (ui *RootUI) applyTheme() {
	ui.app.Settings().SetTheme(NewCompactTheme(ui.prefs.Theme == config.ThemeDark))
}

func (ui *RootUI) themeIcon() string {
	if ui.prefs.Theme == config.ThemeDark {
		return IconThemeLight
	}
	return IconThemeDark
}

func (ui *RootUI) setStatus(text string, importance widget.Importance) {
	ui.statusLabel.Importance = importance
	ui.statusLabel.SetText(text)
}

// formatForOption maps a radio option to a format; anything but audio is video.
func formatForOption(option string) model.Format {
	if option == OptionAudio {
		return model.FormatAudio
	}
	return model.FormatVideo
}

// stageStatus renders a stage as a status line.
func stageStatus(stage model.Stage) string {
	return stage.String() + EllipsisSuffix
}

// progressStatus renders a progress sample, e.g. "Downloading... 42% · 1.2 MB/s · 00:31".
func progressStatus(prefix string, p model.Progress) string {
	parts := []string{fmt.Sprintf("%s %s", prefix, fmt.Sprintf(ProgressLabelFormat, p.Percent))}
	if p.TotalBytes > 0 {
		parts = append(parts, fmt.Sprintf("%s / %s", humanize.Bytes(uint64(p.DownloadedBytes)), humanize.Bytes(uint64(p.TotalBytes))))
	}
	if p.BytesPerSecond > 0 {
		parts = append(parts, humanize.Bytes(uint64(p.BytesPerSecond))+"/s")
	}
	if p.ETA > 0 {
		parts = append(parts, p.ETAString())
	}
	return strings.Join(parts, MiddleDotSeparator)
}
