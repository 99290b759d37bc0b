package tasks

import (
	"context"
	"errors"
	"io"
	"net/url"
	"testing"
	"time"

	"github.com/desertthunder/boxtube/internal/repositories"
	"github.com/desertthunder/boxtube/internal/services"
	"github.com/desertthunder/boxtube/internal/shared"
	tu "github.com/desertthunder/boxtube/internal/testing"
)

func videoPage(id, title string) *services.Page {
	return &services.Page{Items: []services.Item{
		{
			Kind:           services.KindVideo,
			VideoID:        id,
			Snippet:        services.Snippet{Title: title, ChannelID: "UC1", ChannelTitle: "Chan"},
			Statistics:     &services.Statistics{ViewCount: "100"},
			ContentDetails: &services.ContentDetails{Duration: "PT4M13S"},
		},
	}}
}

func newEngine(catalog services.Catalog) (*BrowseEngine, *repositories.WatchHistoryStore, *repositories.SearchHistoryStore) {
	logger := shared.NewLogger(io.Discard)
	history := repositories.NewWatchHistoryStore(tu.NewMemKV(), logger, "")
	searches := repositories.NewSearchHistoryStore(tu.NewMemKV(), logger, "")
	return NewBrowseEngine(catalog, history, searches), history, searches
}

func TestBrowseEngine(t *testing.T) {
	ctx := context.Background()

	t.Run("Watch", func(t *testing.T) {
		t.Run("loads the video and records history", func(t *testing.T) {
			mock := &tu.MockCatalog{
				FetchFunc: func(ctx context.Context, resource string, params url.Values) (*services.Page, error) {
					switch resource {
					case "videos":
						return videoPage("vid1", "First Video"), nil
					case "search":
						if params.Get("relatedToVideoId") != "vid1" {
							t.Errorf("expected related lookup for vid1, got %v", params)
						}
						return &services.Page{Items: []services.Item{
							{Kind: services.KindVideo, VideoID: "vid2", Snippet: services.Snippet{Title: "Related"}},
						}}, nil
					default:
						t.Fatalf("unexpected resource %s", resource)
						return nil, nil
					}
				},
			}
			engine, history, _ := newEngine(mock)

			result, err := engine.Watch(ctx, "vid1")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if result.Video.Title != "First Video" {
				t.Errorf("unexpected video: %+v", result.Video)
			}
			if result.Video.Duration != "4:13" {
				t.Errorf("expected display duration, got %s", result.Video.Duration)
			}
			if len(result.Related) != 1 || result.Related[0].VideoID != "vid2" {
				t.Errorf("unexpected related videos: %+v", result.Related)
			}
			if !history.IsWatched("vid1") {
				t.Error("expected the watch to be recorded")
			}
		})

		t.Run("unknown id", func(t *testing.T) {
			mock := &tu.MockCatalog{
				FetchFunc: func(ctx context.Context, resource string, params url.Values) (*services.Page, error) {
					return &services.Page{}, nil
				},
			}
			engine, _, _ := newEngine(mock)

			if _, err := engine.Watch(ctx, "vid-nope"); !errors.Is(err, shared.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})

		t.Run("degrades when the related lookup fails", func(t *testing.T) {
			mock := &tu.MockCatalog{
				FetchFunc: func(ctx context.Context, resource string, params url.Values) (*services.Page, error) {
					if resource == "videos" {
						return videoPage("vid1", "First Video"), nil
					}
					return nil, shared.ErrAPIRequest
				},
			}
			engine, history, _ := newEngine(mock)

			result, err := engine.Watch(ctx, "vid1")
			if err != nil {
				t.Fatalf("expected the watch to survive, got %v", err)
			}
			if len(result.Related) != 0 {
				t.Errorf("expected no related videos, got %+v", result.Related)
			}
			if !history.IsWatched("vid1") {
				t.Error("expected the watch still recorded")
			}
		})
	})

	t.Run("Channel", func(t *testing.T) {
		mock := &tu.MockCatalog{
			FetchFunc: func(ctx context.Context, resource string, params url.Values) (*services.Page, error) {
				switch resource {
				case "channels":
					return &services.Page{Items: []services.Item{
						{Kind: services.KindChannel, ChannelID: "UC1", Snippet: services.Snippet{Title: "Chan"}},
					}}, nil
				case "search":
					if params.Get("channelId") != "UC1" || params.Get("order") != "date" {
						t.Errorf("expected uploads query, got %v", params)
					}
					return &services.Page{Items: []services.Item{
						{Kind: services.KindVideo, VideoID: "vid1", Snippet: services.Snippet{Title: "Upload"}},
					}}, nil
				default:
					t.Fatalf("unexpected resource %s", resource)
					return nil, nil
				}
			},
		}
		engine, _, _ := newEngine(mock)

		result, err := engine.Channel(ctx, "UC1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Channel.Snippet.Title != "Chan" {
			t.Errorf("unexpected channel: %+v", result.Channel)
		}
		if len(result.Videos) != 1 {
			t.Errorf("expected 1 upload, got %d", len(result.Videos))
		}

		t.Run("unknown id", func(t *testing.T) {
			mock := &tu.MockCatalog{
				FetchFunc: func(ctx context.Context, resource string, params url.Values) (*services.Page, error) {
					return &services.Page{}, nil
				},
			}
			engine, _, _ := newEngine(mock)
			if _, err := engine.Channel(ctx, "UC-nope"); !errors.Is(err, shared.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	})

	t.Run("SearchPager", func(t *testing.T) {
		engine, _, searches := newEngine(&tu.MockCatalog{})
		pager := NewPager(&tu.MockCatalog{}, shared.NewLogger(io.Discard))

		engine.SearchPager(pager, services.SearchQuery{Term: "lofi"})

		entries := searches.All()
		if len(entries) != 1 || entries[0].Term != "lofi" {
			t.Errorf("expected the term recorded, got %+v", entries)
		}
		if pager.State() != StateIdle {
			t.Errorf("expected a reset pager, got %s", pager.State())
		}

		t.Run("blank terms are not recorded", func(t *testing.T) {
			engine.SearchPager(pager, services.SearchQuery{ChannelID: "UC1"})
			if len(searches.All()) != 1 {
				t.Error("expected no new history entry for a termless query")
			}
		})
	})

	t.Run("FeedQuery", func(t *testing.T) {
		query := FeedQuery("New")

		if query.Resource != "search" {
			t.Errorf("expected the search resource, got %s", query.Resource)
		}
		if query.Params.Get("q") != "New" {
			t.Errorf("expected the category as the term, got %s", query.Params.Get("q"))
		}
		if query.Params.Get("type") != "video" {
			t.Errorf("expected video results, got %s", query.Params.Get("type"))
		}
	})
}

func TestWatchTimestamps(t *testing.T) {
	mock := &tu.MockCatalog{
		FetchFunc: func(ctx context.Context, resource string, params url.Values) (*services.Page, error) {
			if resource == "videos" {
				return videoPage("vid1", "First Video"), nil
			}
			return &services.Page{}, nil
		},
	}
	engine, history, _ := newEngine(mock)

	before := time.Now()
	if _, err := engine.Watch(context.Background(), "vid1"); err != nil {
		t.Fatalf("watch failed: %v", err)
	}

	entries := history.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].WatchedAt.Before(before) {
		t.Error("expected WatchedAt stamped at watch time")
	}
}
