package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ytget/tube/internal/config"
)

func newEnvCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Show converter availability and resolved paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			components, err := ctx.ensureComponents(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cfg := components.Config
			prober := components.Prober

			location := prober.Location()
			localDir := prober.LocalDir()
			source := "search path"
			switch {
			case location == "":
				source = "-"
			case localDir != "":
				source = "local directory"
			}

			rows := [][]string{
				{"Platform", runtime.GOOS + "/" + runtime.GOARCH},
				{"FFmpeg available", yesNo(location != "")},
				{"FFmpeg location", orDash(location)},
				{"FFmpeg source", source},
				{"Converter directory", cfg.Paths.ConverterDir},
				{"Download directory", cfg.Paths.DownloadDir},
				{"Preferences file", cfg.Paths.PreferencesFile},
				{"Config file", config.DefaultPath()},
				{"Log level", cfg.Logging.Level},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Setting", "Value"}, rows, nil))
			return nil
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
