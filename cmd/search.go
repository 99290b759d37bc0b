package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/boxtube/internal/formatter"
	"github.com/desertthunder/boxtube/internal/services"
	"github.com/desertthunder/boxtube/internal/shared"
	"github.com/desertthunder/boxtube/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Search runs a catalog search with the selected filters, paging through
// results with the query engine. The term is recorded in search history.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	term := cmd.StringArg("term")
	if term == "" {
		return fmt.Errorf("%w: search term", shared.ErrMissingArgument)
	}

	query := services.SearchQuery{
		Term:     term,
		Duration: cmd.String("duration"),
		Uploaded: cmd.String("uploaded"),
		Quality:  cmd.String("quality"),
		Language: cmd.String("language"),
		Order:    cmd.String("order"),
	}

	pager := tasks.NewPager(r.catalog, r.logger)
	r.engine.SearchPager(pager, query)

	if err := pager.Fetch(ctx); err != nil {
		return err
	}
	pages := int(cmd.Int("pages"))
	for page := 1; page < pages && pager.HasMore(); page++ {
		if err := pager.FetchMore(ctx); err != nil {
			// Later pages failing leaves the ones already fetched intact.
			r.logger.Warn("failed to fetch page", "page", page+1, "error", err)
			break
		}
	}

	items := pager.Items()
	if cmd.Bool("json") {
		return r.writeJSON(items, true)
	}

	r.writePlainHeader(fmt.Sprintf("Results for %q (%d)", term, len(items)))
	r.printItems(items)
	if pager.HasMore() {
		r.writePlain("\nMore results available; rerun with --pages %d\n", pages+1)
	}
	return nil
}

// printItems renders a page of catalog items, one per line.
func (r *Runner) printItems(items []services.Item) {
	for _, item := range items {
		if item.Kind == services.KindChannel {
			r.writePlain("[channel] %s  %s\n", item.ChannelID, item.Snippet.Title)
			continue
		}

		line := fmt.Sprintf("%s  %s — %s", item.VideoID, item.Snippet.Title, item.Snippet.ChannelTitle)
		if item.ContentDetails != nil && item.ContentDetails.Duration != "" {
			line += fmt.Sprintf(" [%s]", item.ContentDetails.Duration)
		}
		if item.Statistics != nil && item.Statistics.ViewCount != "" {
			line += fmt.Sprintf(" — %s views", formatter.FormatCount(item.Statistics.ViewCount))
		}
		r.writePlain("%s\n", line)
	}
}

// searchCommand handles catalog search
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search the video catalog",
		Arguments: []cli.Argument{&cli.StringArg{Name: "term"}},
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "duration", Usage: "Filter by length: short, medium, long"},
			&cli.StringFlag{Name: "uploaded", Usage: "Filter by upload window: hour, day, week, month, year"},
			&cli.StringFlag{Name: "quality", Usage: "Filter by definition: hd, 4k"},
			&cli.StringFlag{Name: "language", Usage: "Relevance language code, e.g. en"},
			&cli.StringFlag{Name: "order", Usage: "Sort: relevance, date, viewCount, rating"},
			&cli.IntFlag{Name: "pages", Usage: "Number of result pages to fetch", Value: 1},
			&cli.BoolFlag{Name: "json", Usage: "Output JSON"},
		},
		Action: r.Search,
	}
}

// Feed prints the home feed for a category.
func (r *Runner) Feed(ctx context.Context, cmd *cli.Command) error {
	category := cmd.StringArg("category")
	if category == "" {
		category = "New"
	}

	pager := tasks.NewPager(r.catalog, r.logger)
	pager.Reset(tasks.FeedQuery(category))
	if err := pager.Fetch(ctx); err != nil {
		return err
	}

	items := pager.Items()
	if cmd.Bool("json") {
		return r.writeJSON(items, true)
	}

	r.writePlainHeader(fmt.Sprintf("%s feed (%d)", category, len(items)))
	r.printItems(items)
	return nil
}

// feedCommand handles the home feed
func feedCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "feed",
		Usage:     "Browse the home feed by category",
		Arguments: []cli.Argument{&cli.StringArg{Name: "category"}},
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Output JSON"},
		},
		Action: r.Feed,
	}
}
