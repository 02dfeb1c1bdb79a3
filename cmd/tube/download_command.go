package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ytget/tube/internal/download"
	"github.com/ytget/tube/internal/model"
	"github.com/ytget/tube/internal/platform"
)

type downloadFlags struct {
	audio   bool
	format  string
	quality string
	output  string
	reveal  bool
}

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var flags downloadFlags

	cmd := &cobra.Command{
		Use:   "download <url>",
		Short: "Download a video (mp4) or its audio (mp3)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			components, err := ctx.ensureComponents(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			outputDir := flags.output
			if outputDir == "" {
				outputDir = components.Config.Paths.DownloadDir
			}
			req, err := buildRequest(args[0], outputDir, flags)
			if err != nil {
				return err
			}
			if err := download.ValidateRequest(req); err != nil {
				return fmt.Errorf("%s", model.DisplayMessage(err))
			}

			result, err := components.Service.Run(cmd.Context(), req, newProgressObserver(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			if !result.Success {
				return fmt.Errorf("%s", result.Message)
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			if result.OutputPath != "" {
				fmt.Fprintln(cmd.OutOrStdout(), describeOutput(result.OutputPath))
				if flags.reveal {
					if err := platform.OpenFileInManager(result.OutputPath); err != nil {
						components.Logger.Warn("reveal file failed", "path", result.OutputPath, "error", err)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&flags.audio, "audio", "a", false, "Download audio only and convert to mp3")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "Output format: mp4 (video) or mp3 (audio)")
	cmd.Flags().StringVarP(&flags.quality, "quality", "q", string(model.DefaultQuality), "Video quality: 4K, 1440p, 1080p, 720p, 480p, 360p")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Download directory (defaults to the configured download dir)")
	cmd.Flags().BoolVar(&flags.reveal, "reveal", false, "Show the downloaded file in the file manager")
	cmd.MarkFlagsMutuallyExclusive("audio", "format")

	return cmd
}

// buildRequest turns command line flags into a request.
func buildRequest(url, outputDir string, flags downloadFlags) (model.DownloadRequest, error) {
	format := model.FormatVideo
	switch {
	case flags.audio:
		format = model.FormatAudio
	case flags.format != "":
		parsed, err := model.ParseFormat(flags.format)
		if err != nil {
			return model.DownloadRequest{}, err
		}
		format = parsed
	}

	quality, err := model.ParseQuality(flags.quality)
	if err != nil {
		return model.DownloadRequest{}, err
	}
	return download.NewRequest(url, outputDir, format, quality), nil
}

func describeOutput(path string) string {
	if size, ok := fileSize(path); ok {
		return fmt.Sprintf("Saved to %s (%s)", path, humanize.Bytes(uint64(size)))
	}
	return fmt.Sprintf("Saved to %s", path)
}
