package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/boxtube/internal/formatter"
	"github.com/desertthunder/boxtube/internal/shared"
	"github.com/urfave/cli/v3"
)

// VideoWatch fetches a video's full record, records it in watch history, and
// shows related videos.
func (r *Runner) VideoWatch(ctx context.Context, cmd *cli.Command) error {
	videoID := cmd.StringArg("id")
	if videoID == "" {
		return fmt.Errorf("%w: video id", shared.ErrMissingArgument)
	}

	result, err := r.engine.Watch(ctx, videoID)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}

	video := result.Video
	r.writePlainHeader(video.Title)
	r.writePlain("Channel:   %s (%s)\n", video.ChannelTitle, video.ChannelID)
	if video.Duration != "" {
		r.writePlain("Duration:  %s\n", video.Duration)
	}
	if video.ViewCount != "" {
		r.writePlain("Views:     %s\n", formatter.FormatCount(video.ViewCount))
	}
	if video.LikeCount != "" {
		r.writePlain("Likes:     %s\n", formatter.FormatCount(video.LikeCount))
	}
	if video.PublishedAt != "" {
		r.writePlain("Published: %s\n", formatter.FormatRelativeTime(video.PublishedAt))
	}

	if len(result.Related) > 0 {
		r.writePlainln("Related videos:")
		r.printItems(result.Related)
	}

	if cmd.Bool("open") {
		if err := shared.OpenBrowser(shared.WatchURL(video.ID)); err != nil {
			return err
		}
		r.writePlainln("✓ Opened in browser")
	}
	return nil
}

// VideoOpen records the video in watch history and opens its watch page.
func (r *Runner) VideoOpen(ctx context.Context, cmd *cli.Command) error {
	videoID := cmd.StringArg("id")
	if videoID == "" {
		return fmt.Errorf("%w: video id", shared.ErrMissingArgument)
	}

	if _, err := r.engine.Watch(ctx, videoID); err != nil {
		return err
	}
	if err := shared.OpenBrowser(shared.WatchURL(videoID)); err != nil {
		return err
	}

	r.writePlainln("✓ Opened in browser")
	return nil
}

// videoCommand handles single-video operations
func videoCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "video",
		Usage: "Video details and playback",
		Commands: []*cli.Command{
			{
				Name:      "watch",
				Usage:     "Show a video's details and related videos, recording watch history",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output JSON"},
					&cli.BoolFlag{Name: "open", Usage: "Also open the watch page in the browser"},
				},
				Action: r.VideoWatch,
			},
			{
				Name:      "open",
				Usage:     "Open a video's watch page in the browser",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.VideoOpen,
			},
		},
	}
}

// ChannelInfo shows a channel's record and recent uploads.
func (r *Runner) ChannelInfo(ctx context.Context, cmd *cli.Command) error {
	channelID := cmd.StringArg("id")
	if channelID == "" {
		return fmt.Errorf("%w: channel id", shared.ErrMissingArgument)
	}

	result, err := r.engine.Channel(ctx, channelID)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}

	channel := result.Channel
	r.writePlainHeader(channel.Snippet.Title)
	if channel.Snippet.Description != "" {
		r.writePlain("%s\n\n", channel.Snippet.Description)
	}
	if channel.Statistics != nil && channel.Statistics.SubscriberCount != "" {
		r.writePlain("Subscribers: %s\n", formatter.FormatCount(channel.Statistics.SubscriberCount))
	}
	if channel.Statistics != nil && channel.Statistics.VideoCount != "" {
		r.writePlain("Videos:      %s\n", formatter.FormatCount(channel.Statistics.VideoCount))
	}
	if r.users.IsSubscribed(channelID) {
		r.writePlain("Subscribed:  yes\n")
	}

	if len(result.Videos) > 0 {
		r.writePlainln("Recent uploads:")
		r.printItems(result.Videos)
	}
	return nil
}

// channelCommand handles channel operations
func channelCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "channel",
		Usage:     "Show a channel and its recent uploads",
		Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Output JSON"},
		},
		Action: r.ChannelInfo,
	}
}
