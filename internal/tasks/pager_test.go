package tasks

import (
	"context"
	"errors"
	"io"
	"net/url"
	"testing"

	"github.com/desertthunder/boxtube/internal/services"
	"github.com/desertthunder/boxtube/internal/shared"
	tu "github.com/desertthunder/boxtube/internal/testing"
)

func searchItem(id string) services.Item {
	return services.Item{
		Kind:    services.KindVideo,
		VideoID: id,
		Snippet: services.Snippet{Title: "Video " + id},
	}
}

func searchQuery(term string) Query {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", term)
	params.Set("type", "video")
	return Query{Resource: "search", Params: params}
}

func TestPager(t *testing.T) {
	logger := shared.NewLogger(io.Discard)
	ctx := context.Background()

	t.Run("starts idle", func(t *testing.T) {
		pager := NewPager(&tu.MockCatalog{}, logger)
		if pager.State() != StateIdle {
			t.Errorf("expected idle state, got %s", pager.State())
		}
		if pager.HasMore() {
			t.Error("expected no continuation before the first fetch")
		}
	})

	t.Run("pages through a query", func(t *testing.T) {
		pages := map[string]*services.Page{
			"": {
				Items:         []services.Item{searchItem("vid1"), searchItem("vid2")},
				NextPageToken: "PAGE2",
			},
			"PAGE2": {
				Items: []services.Item{searchItem("vid3")},
			},
		}
		mock := &tu.MockCatalog{
			FetchFunc: func(ctx context.Context, resource string, params url.Values) (*services.Page, error) {
				return pages[params.Get("pageToken")], nil
			},
		}

		pager := NewPager(mock, logger)
		pager.Reset(searchQuery("lofi"))

		if err := pager.Fetch(ctx); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(pager.Items()) != 2 {
			t.Fatalf("expected 2 items, got %d", len(pager.Items()))
		}
		if pager.State() != StateReady || !pager.HasMore() {
			t.Errorf("expected ready with more, got %s", pager.State())
		}

		if err := pager.FetchMore(ctx); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		items := pager.Items()
		if len(items) != 3 {
			t.Fatalf("expected 3 items after append, got %d", len(items))
		}
		if items[2].VideoID != "vid3" {
			t.Errorf("expected appended order preserved, got %s", items[2].VideoID)
		}
		if pager.State() != StateExhausted || pager.HasMore() {
			t.Errorf("expected exhausted after the final page, got %s", pager.State())
		}

		t.Run("further fetches are no-ops", func(t *testing.T) {
			calls := len(mock.Calls)
			if err := pager.FetchMore(ctx); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(mock.Calls) != calls {
				t.Error("expected no network call after exhaustion")
			}
		})
	})

	t.Run("enriches video items", func(t *testing.T) {
		mock := &tu.MockCatalog{
			FetchFunc: func(ctx context.Context, resource string, params url.Values) (*services.Page, error) {
				return &services.Page{Items: []services.Item{
					searchItem("vid1"),
					{Kind: services.KindChannel, ChannelID: "UC1"},
				}}, nil
			},
			VideoDetailsFunc: func(ctx context.Context, ids []string) (map[string]services.VideoDetail, error) {
				if len(ids) != 1 || ids[0] != "vid1" {
					t.Errorf("expected only video ids in the detail batch, got %v", ids)
				}
				return map[string]services.VideoDetail{
					"vid1": {Duration: "PT1H2M7S", ViewCount: "1234", LikeCount: "56"},
				}, nil
			},
		}

		pager := NewPager(mock, logger)
		pager.Reset(searchQuery("lofi"))
		if err := pager.Fetch(ctx); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		items := pager.Items()
		video := items[0]
		if video.ContentDetails == nil || video.ContentDetails.Duration != "1:02:07" {
			t.Errorf("expected display duration, got %+v", video.ContentDetails)
		}
		if video.Statistics == nil || video.Statistics.ViewCount != "1234" {
			t.Errorf("expected statistics merged, got %+v", video.Statistics)
		}
		if items[1].ContentDetails != nil {
			t.Error("expected channel items to pass through unenriched")
		}
	})

	t.Run("degrades when enrichment fails", func(t *testing.T) {
		mock := &tu.MockCatalog{
			FetchFunc: func(ctx context.Context, resource string, params url.Values) (*services.Page, error) {
				return &services.Page{Items: []services.Item{searchItem("vid1")}}, nil
			},
			VideoDetailsFunc: func(ctx context.Context, ids []string) (map[string]services.VideoDetail, error) {
				return nil, errors.New("details unavailable")
			},
		}

		pager := NewPager(mock, logger)
		pager.Reset(searchQuery("lofi"))
		if err := pager.Fetch(ctx); err != nil {
			t.Fatalf("expected fetch to survive a failed detail lookup, got %v", err)
		}

		items := pager.Items()
		if len(items) != 1 {
			t.Fatalf("expected the unenriched page, got %d items", len(items))
		}
		if items[0].ContentDetails != nil {
			t.Error("expected no enrichment fields on degraded items")
		}
	})

	t.Run("failed initial fetch clears results", func(t *testing.T) {
		mock := &tu.MockCatalog{
			FetchFunc: func(ctx context.Context, resource string, params url.Values) (*services.Page, error) {
				return nil, shared.ErrRateLimited
			},
		}

		pager := NewPager(mock, logger)
		pager.Reset(searchQuery("lofi"))
		if err := pager.Fetch(ctx); !errors.Is(err, shared.ErrRateLimited) {
			t.Fatalf("expected ErrRateLimited, got %v", err)
		}

		if len(pager.Items()) != 0 {
			t.Error("expected no items after a failed initial fetch")
		}
		if pager.State() != StateErrored {
			t.Errorf("expected errored state, got %s", pager.State())
		}
		if !errors.Is(pager.Err(), shared.ErrRateLimited) {
			t.Errorf("expected the error retained, got %v", pager.Err())
		}
	})

	t.Run("failed continuation keeps fetched pages", func(t *testing.T) {
		fail := false
		mock := &tu.MockCatalog{
			FetchFunc: func(ctx context.Context, resource string, params url.Values) (*services.Page, error) {
				if fail {
					return nil, shared.ErrAPIRequest
				}
				return &services.Page{
					Items:         []services.Item{searchItem("vid1")},
					NextPageToken: "PAGE2",
				}, nil
			},
		}

		pager := NewPager(mock, logger)
		pager.Reset(searchQuery("lofi"))
		if err := pager.Fetch(ctx); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		fail = true
		if err := pager.FetchMore(ctx); !errors.Is(err, shared.ErrAPIRequest) {
			t.Fatalf("expected ErrAPIRequest, got %v", err)
		}

		if len(pager.Items()) != 1 {
			t.Error("expected the first page to survive a failed continuation")
		}
		if pager.State() != StateErrored {
			t.Errorf("expected errored state with no fetch in flight, got %s", pager.State())
		}
		if !errors.Is(pager.Err(), shared.ErrAPIRequest) {
			t.Errorf("expected the error retained, got %v", pager.Err())
		}
	})

	t.Run("discards responses from a superseded query", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		mock := &tu.MockCatalog{
			FetchFunc: func(ctx context.Context, resource string, params url.Values) (*services.Page, error) {
				if params.Get("q") == "slow" {
					close(started)
					<-release
				}
				return &services.Page{Items: []services.Item{searchItem("stale")}}, nil
			},
		}

		pager := NewPager(mock, logger)
		pager.Reset(searchQuery("slow"))

		done := make(chan error, 1)
		go func() { done <- pager.Fetch(ctx) }()

		<-started
		pager.Reset(searchQuery("fresh"))
		close(release)

		if err := <-done; err != nil {
			t.Fatalf("a discarded fetch must not report an error, got %v", err)
		}
		if len(pager.Items()) != 0 {
			t.Errorf("expected the stale page to be discarded, got %d items", len(pager.Items()))
		}
		if pager.State() != StateIdle {
			t.Errorf("expected the fresh query to still be idle, got %s", pager.State())
		}
	})
}
