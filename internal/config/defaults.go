package config

const (
	defaultSocketTimeoutSeconds  = 60
	defaultRetries               = 3
	defaultFragmentRetries       = 3
	defaultConvertTimeoutSeconds = 300
	defaultInstallTimeoutSeconds = 600
	defaultLogLevel              = "info"
	defaultLogFormat             = "console"
	defaultWindowsArchiveURL     = "https://github.com/BtbN/FFmpeg-Builds/releases/download/latest/ffmpeg-master-latest-win64-gpl.zip"
)

// Default returns a Config populated with repository defaults. Path defaults
// are resolved by Load.
func Default() Config {
	return Config{
		Network: Network{
			SocketTimeoutSeconds:  defaultSocketTimeoutSeconds,
			Retries:               defaultRetries,
			FragmentRetries:       defaultFragmentRetries,
			ConvertTimeoutSeconds: defaultConvertTimeoutSeconds,
			InstallTimeoutSeconds: defaultInstallTimeoutSeconds,
		},
		Installer: Installer{
			WindowsArchiveURL: defaultWindowsArchiveURL,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
