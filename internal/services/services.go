package services

import (
	"context"
	"net/url"
	"time"
)

// Catalog defines the operations the client needs from the remote video
// catalog. Implementations are read-only: the catalog is an external
// collaborator, never written to.
type Catalog interface {
	// Fetch performs one GET against a resource path ("search", "videos",
	// "channels") with the given query parameters merged over the defaults.
	Fetch(ctx context.Context, resource string, params url.Values) (*Page, error)

	// Search runs a catalog search with the query's filters applied.
	Search(ctx context.Context, query SearchQuery) (*Page, error)

	// VideoDetails batches duration and view/like statistics for a set of
	// video ids into a single request.
	VideoDetails(ctx context.Context, ids []string) (map[string]VideoDetail, error)

	// Videos retrieves full snippets and statistics for video ids.
	Videos(ctx context.Context, ids []string) (*Page, error)

	// Channels retrieves snippets and statistics for channel ids.
	Channels(ctx context.Context, ids []string) (*Page, error)

	// Name returns the catalog's display name.
	Name() string
}

// VideoDetail carries the secondary lookup fields merged into search results.
type VideoDetail struct {
	Duration  string // ISO-8601 compact form as returned, e.g. "PT4M13S"
	ViewCount string
	LikeCount string
}

// SearchQuery describes one catalog search, including the optional filters the
// search surface exposes. Zero values mean "no filter".
type SearchQuery struct {
	Term      string
	PageToken string
	Duration  string // "short", "medium", "long"
	Uploaded  string // "hour", "day", "week", "month", "year"
	Quality   string // "hd" (the UI's "4k" maps to "high" upstream)
	Language  string // relevanceLanguage code
	Order     string // "relevance", "date", "viewCount", "rating"
	Type      string // defaults to "video"
	ChannelID string
	RelatedTo string // relatedToVideoId
}

// Values encodes the query as catalog API parameters. The upload-date window
// is converted to an absolute publishedAfter instant relative to now.
func (q SearchQuery) Values(now time.Time) url.Values {
	params := url.Values{}
	params.Set("part", "snippet")

	if q.Term != "" {
		params.Set("q", q.Term)
	}
	if q.PageToken != "" {
		params.Set("pageToken", q.PageToken)
	}
	if q.Duration != "" {
		params.Set("videoDuration", q.Duration)
	}
	if q.Uploaded != "" {
		params.Set("publishedAfter", publishedAfter(now, q.Uploaded).Format(time.RFC3339))
	}
	if q.Quality != "" {
		quality := q.Quality
		if quality == "4k" {
			quality = "high"
		}
		params.Set("videoDefinition", quality)
	}
	if q.Language != "" {
		params.Set("relevanceLanguage", q.Language)
	}
	if q.Order != "" {
		params.Set("order", q.Order)
	}
	if q.ChannelID != "" {
		params.Set("channelId", q.ChannelID)
	}
	if q.RelatedTo != "" {
		params.Set("relatedToVideoId", q.RelatedTo)
	}

	itemType := q.Type
	if itemType == "" {
		itemType = "video"
	}
	params.Set("type", itemType)

	return params
}

// publishedAfter resolves an upload-date window name to its start instant.
// Unknown windows fall back to the last week.
func publishedAfter(now time.Time, window string) time.Time {
	switch window {
	case "hour":
		return now.Add(-time.Hour)
	case "day":
		return now.AddDate(0, 0, -1)
	case "week":
		return now.AddDate(0, 0, -7)
	case "month":
		return now.AddDate(0, -1, 0)
	case "year":
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, 0, -7)
	}
}
