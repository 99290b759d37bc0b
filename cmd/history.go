package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/boxtube/internal/formatter"
	"github.com/desertthunder/boxtube/internal/shared"
	"github.com/urfave/cli/v3"
)

// HistoryList shows the watch history, most recent first.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	entries := r.watched.All()

	if cmd.Bool("json") {
		return r.writeJSON(entries, true)
	}

	r.writePlainHeader("Watch History")
	if len(entries) == 0 {
		r.writePlainln("Nothing watched yet.")
		return nil
	}
	for i, entry := range entries {
		line := fmt.Sprintf("%2d. %s — %s", i+1, entry.Title, entry.ChannelTitle)
		if entry.Duration != "" {
			line += fmt.Sprintf(" [%s]", entry.Duration)
		}
		r.writePlain("%s\n", line)
		r.writePlain("    watched %s\n", formatter.FormatRelativeTime(entry.WatchedAt.Format(time.RFC3339)))
	}
	return nil
}

// HistoryClear empties the watch history.
func (r *Runner) HistoryClear(ctx context.Context, cmd *cli.Command) error {
	r.watched.Clear()
	r.writePlainln("✓ Watch history cleared")
	return nil
}

// historyCommand handles watch history
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Watch history",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List watched videos, most recent first",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output JSON"},
				},
				Action: r.HistoryList,
			},
			{
				Name:   "clear",
				Usage:  "Clear the watch history",
				Action: r.HistoryClear,
			},
		},
	}
}

// SearchesRecent shows recent search terms.
func (r *Runner) SearchesRecent(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("json") {
		return r.writeJSON(r.searches.All(), true)
	}

	r.writePlainHeader("Recent Searches")
	terms := r.searches.Recent()
	if len(terms) == 0 {
		r.writePlainln("No searches yet.")
		return nil
	}
	for _, term := range terms {
		r.writePlain("  %s\n", term)
	}
	return nil
}

// SearchesRemove deletes one term from search history.
func (r *Runner) SearchesRemove(ctx context.Context, cmd *cli.Command) error {
	term := cmd.StringArg("term")
	if term == "" {
		return fmt.Errorf("%w: search term", shared.ErrMissingArgument)
	}

	r.searches.Remove(term)
	r.writePlain("✓ Removed %q from search history\n", term)
	return nil
}

// SearchesClear empties the search history.
func (r *Runner) SearchesClear(ctx context.Context, cmd *cli.Command) error {
	r.searches.Clear()
	r.writePlainln("✓ Search history cleared")
	return nil
}

// SearchesSuggest prints completions for a partial term.
func (r *Runner) SearchesSuggest(ctx context.Context, cmd *cli.Command) error {
	input := cmd.StringArg("input")
	if input == "" {
		return fmt.Errorf("%w: input", shared.ErrMissingArgument)
	}

	suggestions := r.searches.Suggestions(input)
	if cmd.Bool("json") {
		return r.writeJSON(suggestions, true)
	}

	for _, s := range suggestions {
		r.writePlain("%s\n", s)
	}
	return nil
}

// searchesCommand handles search history and suggestions
func searchesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "searches",
		Usage: "Search history and suggestions",
		Commands: []*cli.Command{
			{
				Name:  "recent",
				Usage: "Show recent search terms",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output the full history as JSON"},
				},
				Action: r.SearchesRecent,
			},
			{
				Name:      "remove",
				Usage:     "Remove a term from search history",
				Arguments: []cli.Argument{&cli.StringArg{Name: "term"}},
				Action:    r.SearchesRemove,
			},
			{
				Name:   "clear",
				Usage:  "Clear the search history",
				Action: r.SearchesClear,
			},
			{
				Name:      "suggest",
				Usage:     "Show completions for a partial term",
				Arguments: []cli.Argument{&cli.StringArg{Name: "input"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output JSON"},
				},
				Action: r.SearchesSuggest,
			},
		},
	}
}
