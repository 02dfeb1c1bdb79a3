package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newInstallCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "install-ffmpeg",
		Short: "Install the ffmpeg converter for this platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			components, err := ctx.ensureComponents(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			if components.Prober.Probe() {
				fmt.Fprintf(cmd.OutOrStdout(), "FFmpeg already available at %s\n", components.Prober.Location())
				return nil
			}

			installCtx, cancel := context.WithTimeout(cmd.Context(), components.Config.InstallTimeout())
			defer cancel()

			fmt.Fprintln(cmd.ErrOrStderr(), "Installing FFmpeg...")
			result := components.Installer.Install(installCtx)
			if !result.Success {
				return fmt.Errorf("%s", result.Message)
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
}
