package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/boxtube/internal/shared"
	"github.com/urfave/cli/v3"
)

// SubsToggle subscribes to a channel, or unsubscribes when already subscribed.
//
// The channel's title and thumbnail are resolved from the catalog so the
// subscription renders without a refetch.
func (r *Runner) SubsToggle(ctx context.Context, cmd *cli.Command) error {
	channelID := cmd.StringArg("channel")
	if channelID == "" {
		return fmt.Errorf("%w: channel id", shared.ErrMissingArgument)
	}

	title := cmd.String("title")
	thumbnail := ""
	if title == "" {
		page, err := r.catalog.Channels(ctx, []string{channelID})
		if err != nil {
			return err
		}
		if len(page.Items) == 0 {
			return fmt.Errorf("channel %w: %s", shared.ErrNotFound, channelID)
		}
		title = page.Items[0].Snippet.Title
		thumbnail = page.Items[0].Snippet.Thumbnails.Best()
	}

	subscribed, err := r.users.SubscribeToChannel(channelID, title, thumbnail)
	if err != nil {
		return err
	}

	if subscribed {
		r.writePlainln("✓ Subscribed to %s", title)
	} else {
		r.writePlainln("✓ Unsubscribed from %s", title)
	}
	return nil
}

// SubsList prints the active account's subscriptions.
func (r *Runner) SubsList(ctx context.Context, cmd *cli.Command) error {
	user := r.users.Current()
	if user == nil {
		return shared.ErrNotLoggedIn
	}

	if cmd.Bool("json") {
		return r.writeJSON(user.Subscriptions, true)
	}

	if len(user.Subscriptions) == 0 {
		r.writePlainln("No subscriptions.")
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("Subscriptions (%d)", len(user.Subscriptions)))
	for _, sub := range user.Subscriptions {
		r.writePlain("%s  %s  (since %s)\n", sub.ChannelID, sub.ChannelTitle, sub.SubscribedAt.Format("2006-01-02"))
	}
	return nil
}

// subsCommand handles channel subscriptions
func subsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "subs",
		Usage: "Channel subscriptions",
		Commands: []*cli.Command{
			{
				Name:      "toggle",
				Usage:     "Subscribe to a channel, or unsubscribe if already subscribed",
				Arguments: []cli.Argument{&cli.StringArg{Name: "channel"}},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Usage: "Channel title (skips the catalog lookup)"},
				},
				Action: r.SubsToggle,
			},
			{
				Name:  "list",
				Usage: "List subscriptions",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output JSON"},
				},
				Action: r.SubsList,
			},
		},
	}
}
