package ui

import (
	"os"
	"strings"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle         = "app_title"
	KeyToggleTheme      = "toggle_theme"
	KeyVideoURL         = "video_url"
	KeyEnterURL         = "enter_url"
	KeyFormat           = "format"
	KeyQuality          = "quality"
	KeyDownloadLocation = "download_location"
	KeyBrowse           = "browse"
	KeyDownloadProgress = "download_progress"
	KeyDownload         = "download"
	KeyClear            = "clear"
	KeyInstallFFmpeg    = "install_ffmpeg"
	KeyCredits          = "credits"
	KeyCreditsText      = "credits_text"
	KeyReady            = "ready"
	KeyFFmpegAvailable  = "ffmpeg_available"
	KeyFFmpegMissing    = "ffmpeg_missing"
	KeyDownloading      = "downloading"
	KeyInstalling       = "installing"
	KeyInstallSucceeded = "install_succeeded"
	KeyInstallFailed    = "install_failed"
	KeyBusy             = "busy"
	KeyWarning          = "warning"
	KeySuccess          = "success"
	KeyError            = "error"
	KeyShowInFolder     = "show_in_folder"
	KeyClose            = "close"
	KeyErrorOpeningFile = "error_opening_file"
	KeyErrorSavingTheme = "error_saving_theme"
)

// DefaultLanguage is used when the requested language has no translation.
const DefaultLanguage = "en"

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: DefaultLanguage,
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. "system" picks the language from
// the LANG environment variable.
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = systemLanguage()
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	if texts, exists := l.texts[DefaultLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// systemLanguage extracts "ru" from values like "ru_RU.UTF-8".
func systemLanguage() string {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		value := strings.TrimSpace(os.Getenv(env))
		if value == "" || value == "C" || value == "POSIX" {
			continue
		}
		if i := strings.IndexAny(value, "_.-@"); i > 0 {
			value = value[:i]
		}
		return strings.ToLower(value)
	}
	return DefaultLanguage
}

const creditsTextEN = `Tube

Software Used:
• yt-dlp - Video/audio downloading
• FFmpeg - Video/audio processing and conversion
• Fyne - GUI toolkit

Special thanks to the yt-dlp developers and the FFmpeg team.`

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:         "Tube",
		KeyToggleTheme:      "Toggle theme",
		KeyVideoURL:         "Video URL",
		KeyEnterURL:         "https://www.youtube.com/watch?v=...",
		KeyFormat:           "Format",
		KeyQuality:          "Quality",
		KeyDownloadLocation: "Download Location",
		KeyBrowse:           "Browse",
		KeyDownloadProgress: "Download Progress",
		KeyDownload:         "Download",
		KeyClear:            "Clear",
		KeyInstallFFmpeg:    "Install FFmpeg",
		KeyCredits:          "Credits",
		KeyCreditsText:      creditsTextEN,
		KeyReady:            "Ready to download",
		KeyFFmpegAvailable:  "FFmpeg available. Ready to download.",
		KeyFFmpegMissing:    "FFmpeg not found. Click Install FFmpeg before downloading.",
		KeyDownloading:      "Downloading...",
		KeyInstalling:       "Installing FFmpeg...",
		KeyInstallSucceeded: "FFmpeg installed successfully!",
		KeyInstallFailed:    "FFmpeg installation failed",
		KeyBusy:             "Download in progress. Please wait.",
		KeyWarning:          "Warning",
		KeySuccess:          "Success",
		KeyError:            "Error",
		KeyShowInFolder:     "Show in folder",
		KeyClose:            "Close",
		KeyErrorOpeningFile: "Error opening file",
		KeyErrorSavingTheme: "Could not save theme preference",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:         "Tube",
		KeyToggleTheme:      "Сменить тему",
		KeyVideoURL:         "URL видео",
		KeyFormat:           "Формат",
		KeyQuality:          "Качество",
		KeyDownloadLocation: "Папка загрузки",
		KeyBrowse:           "Обзор",
		KeyDownloadProgress: "Ход загрузки",
		KeyDownload:         "Скачать",
		KeyClear:            "Очистить",
		KeyInstallFFmpeg:    "Установить FFmpeg",
		KeyCredits:          "Авторы",
		KeyReady:            "Готово к загрузке",
		KeyFFmpegAvailable:  "FFmpeg найден. Готово к загрузке.",
		KeyFFmpegMissing:    "FFmpeg не найден. Нажмите «Установить FFmpeg» перед загрузкой.",
		KeyDownloading:      "Загрузка...",
		KeyInstalling:       "Установка FFmpeg...",
		KeyInstallSucceeded: "FFmpeg успешно установлен!",
		KeyInstallFailed:    "Не удалось установить FFmpeg",
		KeyBusy:             "Идёт загрузка. Пожалуйста, подождите.",
		KeyWarning:          "Внимание",
		KeySuccess:          "Готово",
		KeyError:            "Ошибка",
		KeyShowInFolder:     "Показать в папке",
		KeyClose:            "Закрыть",
		KeyErrorOpeningFile: "Ошибка открытия файла",
		KeyErrorSavingTheme: "Не удалось сохранить тему",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:         "Tube",
		KeyToggleTheme:      "Alternar tema",
		KeyVideoURL:         "URL do vídeo",
		KeyFormat:           "Formato",
		KeyQuality:          "Qualidade",
		KeyDownloadLocation: "Local de Download",
		KeyBrowse:           "Navegar",
		KeyDownloadProgress: "Progresso do Download",
		KeyDownload:         "Baixar",
		KeyClear:            "Limpar",
		KeyInstallFFmpeg:    "Instalar FFmpeg",
		KeyCredits:          "Créditos",
		KeyReady:            "Pronto para baixar",
		KeyFFmpegAvailable:  "FFmpeg disponível. Pronto para baixar.",
		KeyFFmpegMissing:    "FFmpeg não encontrado. Clique em Instalar FFmpeg antes de baixar.",
		KeyDownloading:      "Baixando...",
		KeyInstalling:       "Instalando FFmpeg...",
		KeyInstallSucceeded: "FFmpeg instalado com sucesso!",
		KeyInstallFailed:    "Falha na instalação do FFmpeg",
		KeyBusy:             "Download em andamento. Por favor, aguarde.",
		KeyWarning:          "Aviso",
		KeySuccess:          "Sucesso",
		KeyError:            "Erro",
		KeyShowInFolder:     "Mostrar na pasta",
		KeyClose:            "Fechar",
		KeyErrorOpeningFile: "Erro ao abrir arquivo",
		KeyErrorSavingTheme: "Não foi possível salvar o tema",
	}
}
