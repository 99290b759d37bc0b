package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/desertthunder/boxtube/internal/formatter"
	"github.com/desertthunder/boxtube/internal/shared"
	"github.com/urfave/cli/v3"
)

// PlaylistList shows every playlist in the current scope.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	playlists := r.playlists.All()

	if cmd.Bool("json") {
		return r.writeJSON(playlists, true)
	}

	r.writePlainHeader("Playlists")
	for _, p := range playlists {
		marker := " "
		if p.IsDefault {
			marker = "*"
		}
		r.writePlain("%s %-14s %s (%d videos)\n", marker, p.ID, p.Name, len(p.Videos))
	}
	return nil
}

// PlaylistShow shows one playlist's videos.
func (r *Runner) PlaylistShow(ctx context.Context, cmd *cli.Command) error {
	playlist, err := r.playlists.Get(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlist, true)
	}

	r.writePlainHeader(playlist.Name)
	if len(playlist.Videos) == 0 {
		r.writePlainln("No videos yet.")
		return nil
	}
	for i, v := range playlist.Videos {
		line := fmt.Sprintf("%2d. %s — %s", i+1, v.Title, v.ChannelTitle)
		if v.Duration != "" {
			line += fmt.Sprintf(" [%s]", v.Duration)
		}
		r.writePlain("%s\n", line)
		r.writePlain("    added %s\n", formatter.FormatRelativeTime(v.AddedAt.Format(time.RFC3339)))
	}
	return nil
}

// PlaylistCreate creates a playlist with the given name.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: playlist name", shared.ErrMissingArgument)
	}

	playlist, err := r.playlists.Create(name, cmd.String("description"))
	if err != nil {
		return err
	}

	r.writePlain("✓ Created playlist %s (%s)\n", playlist.Name, playlist.ID)
	return nil
}

// PlaylistDelete deletes a playlist. Default playlists are protected.
func (r *Runner) PlaylistDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if err := r.playlists.Delete(id); err != nil {
		return err
	}

	r.writePlain("✓ Deleted playlist %s\n", id)
	return nil
}

// PlaylistRename renames a playlist.
func (r *Runner) PlaylistRename(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: new name", shared.ErrMissingArgument)
	}

	if err := r.playlists.Update(id, name, cmd.String("description")); err != nil {
		return err
	}

	r.writePlain("✓ Renamed playlist %s to %s\n", id, name)
	return nil
}

// PlaylistAdd fetches a video's full record and adds its snapshot to a playlist.
func (r *Runner) PlaylistAdd(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.StringArg("id")
	videoID := cmd.StringArg("video")
	if videoID == "" {
		return fmt.Errorf("%w: video id", shared.ErrMissingArgument)
	}

	page, err := r.catalog.Videos(ctx, []string{videoID})
	if err != nil {
		return err
	}
	if len(page.Items) == 0 {
		return fmt.Errorf("video %w: %s", shared.ErrNotFound, videoID)
	}

	video := page.Items[0].Video()
	video.Duration = formatter.FormatISODuration(video.Duration)

	if r.playlists.Contains(playlistID, video.ID) {
		r.writePlain("Already in %s: %s\n", playlistID, video.Title)
		return nil
	}
	if err := r.playlists.AddVideo(playlistID, video); err != nil {
		return err
	}

	r.writePlain("✓ Added %s to %s\n", video.Title, playlistID)
	return nil
}

// PlaylistRemove removes a video from a playlist.
func (r *Runner) PlaylistRemove(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.StringArg("id")
	videoID := cmd.StringArg("video")
	if videoID == "" {
		return fmt.Errorf("%w: video id", shared.ErrMissingArgument)
	}

	if err := r.playlists.RemoveVideo(playlistID, videoID); err != nil {
		return err
	}

	r.writePlain("✓ Removed %s from %s\n", videoID, playlistID)
	return nil
}

// PlaylistExport writes a playlist to stdout or a file in the chosen format.
func (r *Runner) PlaylistExport(ctx context.Context, cmd *cli.Command) error {
	playlist, err := r.playlists.Get(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	content, err := formatter.Export(playlist, cmd.String("format"))
	if err != nil {
		return err
	}

	if path := cmd.String("output"); path != "" {
		if err := os.WriteFile(path, content, 0644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		r.writePlain("✓ Exported %s to %s\n", playlist.Name, path)
		return nil
	}

	r.writePlain("%s", content)
	return nil
}

// playlistCommand handles playlist CRUD and membership
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "playlist",
		Usage: "Manage playlists",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List playlists",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output JSON"},
				},
				Action: r.PlaylistList,
			},
			{
				Name:      "show",
				Usage:     "Show a playlist's videos",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output JSON"},
				},
				Action: r.PlaylistShow,
			},
			{
				Name:      "create",
				Usage:     "Create a playlist",
				Arguments: []cli.Argument{&cli.StringArg{Name: "name"}},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Playlist description"},
				},
				Action: r.PlaylistCreate,
			},
			{
				Name:      "delete",
				Usage:     "Delete a playlist",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.PlaylistDelete,
			},
			{
				Name:      "rename",
				Usage:     "Rename a playlist",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}, &cli.StringArg{Name: "name"}},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Replace the description"},
				},
				Action: r.PlaylistRename,
			},
			{
				Name:      "add",
				Usage:     "Add a video to a playlist",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}, &cli.StringArg{Name: "video"}},
				Action:    r.PlaylistAdd,
			},
			{
				Name:      "remove",
				Usage:     "Remove a video from a playlist",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}, &cli.StringArg{Name: "video"}},
				Action:    r.PlaylistRemove,
			},
			{
				Name:      "export",
				Usage:     "Export a playlist",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "text", Usage: "Export format (csv, markdown, text)"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Write to file instead of stdout"},
				},
				Action: r.PlaylistExport,
			},
		},
	}
}
