package services

import (
	"testing"
	"time"
)

func TestSearchQueryValues(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("defaults", func(t *testing.T) {
		values := SearchQuery{Term: "lofi"}.Values(now)

		if values.Get("part") != "snippet" {
			t.Errorf("expected part snippet, got %s", values.Get("part"))
		}
		if values.Get("q") != "lofi" {
			t.Errorf("expected q lofi, got %s", values.Get("q"))
		}
		if values.Get("type") != "video" {
			t.Errorf("expected type to default to video, got %s", values.Get("type"))
		}
		if values.Has("videoDuration") || values.Has("publishedAfter") || values.Has("order") {
			t.Error("expected zero-value filters to be omitted")
		}
	})

	t.Run("filters", func(t *testing.T) {
		query := SearchQuery{
			Term:     "news",
			Duration: "short",
			Language: "en",
			Order:    "viewCount",
			Type:     "channel",
		}
		values := query.Values(now)

		if values.Get("videoDuration") != "short" {
			t.Errorf("expected videoDuration short, got %s", values.Get("videoDuration"))
		}
		if values.Get("relevanceLanguage") != "en" {
			t.Errorf("expected relevanceLanguage en, got %s", values.Get("relevanceLanguage"))
		}
		if values.Get("order") != "viewCount" {
			t.Errorf("expected order viewCount, got %s", values.Get("order"))
		}
		if values.Get("type") != "channel" {
			t.Errorf("expected explicit type to win, got %s", values.Get("type"))
		}
	})

	t.Run("quality mapping", func(t *testing.T) {
		if got := (SearchQuery{Quality: "4k"}).Values(now).Get("videoDefinition"); got != "high" {
			t.Errorf("expected 4k to map to high, got %s", got)
		}
		if got := (SearchQuery{Quality: "hd"}).Values(now).Get("videoDefinition"); got != "hd" {
			t.Errorf("expected hd to pass through, got %s", got)
		}
	})

	t.Run("upload window", func(t *testing.T) {
		tc := []struct {
			window string
			want   time.Time
		}{
			{window: "hour", want: now.Add(-time.Hour)},
			{window: "day", want: now.AddDate(0, 0, -1)},
			{window: "week", want: now.AddDate(0, 0, -7)},
			{window: "month", want: now.AddDate(0, -1, 0)},
			{window: "year", want: now.AddDate(-1, 0, 0)},
			{window: "fortnight", want: now.AddDate(0, 0, -7)},
		}

		for _, tt := range tc {
			got := (SearchQuery{Uploaded: tt.window}).Values(now).Get("publishedAfter")
			if got != tt.want.Format(time.RFC3339) {
				t.Errorf("window %q: expected %s, got %s", tt.window, tt.want.Format(time.RFC3339), got)
			}
		}
	})

	t.Run("channel and related filters", func(t *testing.T) {
		values := SearchQuery{ChannelID: "UC123", RelatedTo: "vid9"}.Values(now)
		if values.Get("channelId") != "UC123" {
			t.Errorf("expected channelId UC123, got %s", values.Get("channelId"))
		}
		if values.Get("relatedToVideoId") != "vid9" {
			t.Errorf("expected relatedToVideoId vid9, got %s", values.Get("relatedToVideoId"))
		}
	})
}

func TestResponseCache(t *testing.T) {
	current := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	cache := newResponseCache(cacheTTL)
	cache.now = func() time.Time { return current }

	t.Run("miss on empty cache", func(t *testing.T) {
		if _, ok := cache.get("search?q=a"); ok {
			t.Error("expected miss on empty cache")
		}
	})

	t.Run("hit within TTL", func(t *testing.T) {
		cache.put("search?q=a", []byte(`{"items":[]}`))

		current = current.Add(4 * time.Minute)
		body, ok := cache.get("search?q=a")
		if !ok {
			t.Fatal("expected hit within TTL")
		}
		if string(body) != `{"items":[]}` {
			t.Errorf("expected stored body, got %s", body)
		}
	})

	t.Run("expires at TTL boundary", func(t *testing.T) {
		current = current.Add(time.Minute)
		if _, ok := cache.get("search?q=a"); ok {
			t.Error("expected entry to be expired after five minutes")
		}
		if cache.size() != 1 {
			t.Errorf("expired entries are not evicted, expected size 1, got %d", cache.size())
		}
	})

	t.Run("purge drops everything", func(t *testing.T) {
		cache.put("videos?id=x", []byte("{}"))
		cache.purge()
		if cache.size() != 0 {
			t.Errorf("expected empty cache after purge, got %d entries", cache.size())
		}
	})
}
