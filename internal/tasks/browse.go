package tasks

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/desertthunder/boxtube/internal/formatter"
	"github.com/desertthunder/boxtube/internal/models"
	"github.com/desertthunder/boxtube/internal/repositories"
	"github.com/desertthunder/boxtube/internal/services"
	"github.com/desertthunder/boxtube/internal/shared"
)

var timeNow = time.Now

// BrowseEngine composes the catalog client with the persisted stores for the
// watch and channel flows.
type BrowseEngine struct {
	catalog  services.Catalog
	history  *repositories.WatchHistoryStore
	searches *repositories.SearchHistoryStore
}

// NewBrowseEngine creates a [BrowseEngine] with the provided dependencies.
func NewBrowseEngine(catalog services.Catalog, history *repositories.WatchHistoryStore, searches *repositories.SearchHistoryStore) *BrowseEngine {
	return &BrowseEngine{catalog: catalog, history: history, searches: searches}
}

// WatchResult carries everything the watch flow renders.
type WatchResult struct {
	Video   models.Video
	Related []services.Item
}

// Watch fetches a video's full record, records it in watch history, and loads
// related videos. A failed related lookup degrades to an empty list.
func (e *BrowseEngine) Watch(ctx context.Context, videoID string) (*WatchResult, error) {
	page, err := e.catalog.Videos(ctx, []string{videoID})
	if err != nil {
		return nil, err
	}
	if len(page.Items) == 0 {
		return nil, fmt.Errorf("video %w: %s", shared.ErrNotFound, videoID)
	}

	video := page.Items[0].Video()
	video.Duration = formatter.FormatISODuration(video.Duration)

	if err := e.history.Add(video); err != nil {
		return nil, err
	}

	result := &WatchResult{Video: video}
	related, err := e.catalog.Search(ctx, services.SearchQuery{RelatedTo: videoID})
	if err == nil {
		result.Related = related.Items
	}

	return result, nil
}

// ChannelResult carries a channel's record plus its recent uploads.
type ChannelResult struct {
	Channel services.Item
	Videos  []services.Item
}

// Channel fetches a channel's record and its uploads, newest first.
func (e *BrowseEngine) Channel(ctx context.Context, channelID string) (*ChannelResult, error) {
	page, err := e.catalog.Channels(ctx, []string{channelID})
	if err != nil {
		return nil, err
	}
	if len(page.Items) == 0 {
		return nil, fmt.Errorf("channel %w: %s", shared.ErrNotFound, channelID)
	}

	result := &ChannelResult{Channel: page.Items[0]}

	uploads, err := e.catalog.Search(ctx, services.SearchQuery{ChannelID: channelID, Order: "date"})
	if err != nil {
		return nil, err
	}
	result.Videos = uploads.Items

	return result, nil
}

// SearchPager builds a pager for a search query and records the term in
// search history. The pager is returned unfetched.
func (e *BrowseEngine) SearchPager(pager *Pager, query services.SearchQuery) {
	if query.Term != "" {
		e.searches.Add(query.Term)
	}
	pager.Reset(Query{Resource: "search", Params: query.Values(timeNow())})
}

// FeedQuery builds the home-feed query for a category term.
func FeedQuery(category string) Query {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", category)
	params.Set("type", "video")
	return Query{Resource: "search", Params: params}
}
