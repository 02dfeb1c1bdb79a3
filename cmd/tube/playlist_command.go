package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ytget/tube/internal/model"
)

func newPlaylistCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "playlist <url>",
		Short: "List the videos of a playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			components, err := ctx.ensureComponents(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			playlist, err := components.Playlists.Inspect(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if asJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(playlist)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d videos)\n", playlist.Title, playlist.Len())
			fmt.Fprintln(cmd.OutOrStdout(), renderPlaylist(playlist))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the playlist as JSON")
	return cmd
}

func renderPlaylist(p *model.Playlist) string {
	rows := make([][]string, 0, p.Len())
	for i, entry := range p.Entries {
		rows = append(rows, []string{strconv.Itoa(i + 1), entry.Title, entry.URL})
	}
	return renderTable([]string{"#", "Title", "URL"}, rows, []columnAlignment{alignRight, alignLeft, alignLeft})
}
