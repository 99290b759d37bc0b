// Remote video catalog [Catalog] implementation.
//
// Talks to the youtube-v31 API through a RapidAPI host. Every call merges the
// caller's parameters over a default set, carries the fixed credential
// headers, and consults a five-minute response cache before the network.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/boxtube/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL    = "https://youtube-v31.p.rapidapi.com"
	defaultHost       = "youtube-v31.p.rapidapi.com"
	defaultMaxResults = 50
	defaultRate       = 4.0
)

// CatalogService implements [Catalog] over HTTP.
type CatalogService struct {
	baseURL    string
	host       string
	apiKey     string
	maxResults int
	httpClient *http.Client
	cache      *responseCache
	limiter    *rate.Limiter
	now        func() time.Time
}

// NewCatalogService creates a catalog client from configuration. A nil client
// falls back to [http.DefaultClient].
func NewCatalogService(cfg shared.CatalogConfig, client *http.Client) *CatalogService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Host == "" {
		cfg.Host = defaultHost
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultMaxResults
	}
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = defaultRate
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &CatalogService{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		host:       cfg.Host,
		apiKey:     cfg.APIKey,
		maxResults: cfg.MaxResults,
		httpClient: client,
		cache:      newResponseCache(cacheTTL),
		limiter:    rate.NewLimiter(rate.Limit(cfg.RatePerSec), 1),
		now:        time.Now,
	}
}

// Name returns the catalog's display name.
func (c *CatalogService) Name() string {
	return "YouTube"
}

// Fetch performs one GET against resource with params merged over the
// defaults. A valid cache hit short-circuits the network call and returns the
// stored response unchanged; a successful network response is always cached.
func (c *CatalogService) Fetch(ctx context.Context, resource string, params url.Values) (*Page, error) {
	body, err := c.fetchRaw(ctx, resource, params)
	if err != nil {
		return nil, err
	}
	return decodePage(body)
}

// FetchRaw performs the same request as Fetch but returns the raw body, for
// callers that want the untyped JSON (the `api get` command).
func (c *CatalogService) FetchRaw(ctx context.Context, resource string, params url.Values) ([]byte, error) {
	return c.fetchRaw(ctx, resource, params)
}

func (c *CatalogService) fetchRaw(ctx context.Context, resource string, params url.Values) ([]byte, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: set catalog.api_key or BOXTUBE_API_KEY", shared.ErrMissingAPIKey)
	}

	merged := url.Values{}
	merged.Set("maxResults", strconv.Itoa(c.maxResults))
	for key, values := range params {
		for i, value := range values {
			if i == 0 {
				merged.Set(key, value)
			} else {
				merged.Add(key, value)
			}
		}
	}

	cacheKey := resource + "?" + merged.Encode()
	if body, ok := c.cache.get(cacheKey); ok {
		return body, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	requestURL := fmt.Sprintf("%s/%s?%s", c.baseURL, resource, merged.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrConnectivity, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, mapStatusError(resp.StatusCode, body)
	}

	c.cache.put(cacheKey, body)
	return body, nil
}

// mapStatusError converts an HTTP failure into the shared error taxonomy.
func mapStatusError(status int, body []byte) error {
	switch status {
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: please try again later", shared.ErrRateLimited)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w (status %d)", shared.ErrUnauthorized, status)
	}

	var remote struct {
		Message string `json:"message"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	message := "unknown error occurred"
	if err := json.Unmarshal(body, &remote); err == nil {
		if remote.Message != "" {
			message = remote.Message
		} else if remote.Error.Message != "" {
			message = remote.Error.Message
		}
	}

	return fmt.Errorf("%w (status %d): %s", shared.ErrAPIRequest, status, message)
}

// Search runs a catalog search with the query's filters applied.
func (c *CatalogService) Search(ctx context.Context, query SearchQuery) (*Page, error) {
	return c.Fetch(ctx, "search", query.Values(c.now()))
}

// VideoDetails batches duration and statistics lookups for video ids.
func (c *CatalogService) VideoDetails(ctx context.Context, ids []string) (map[string]VideoDetail, error) {
	if len(ids) == 0 {
		return map[string]VideoDetail{}, nil
	}

	params := url.Values{}
	params.Set("part", "contentDetails,statistics")
	params.Set("id", strings.Join(ids, ","))

	page, err := c.Fetch(ctx, "videos", params)
	if err != nil {
		return nil, err
	}

	details := make(map[string]VideoDetail, len(page.Items))
	for _, item := range page.Items {
		if item.Kind != KindVideo {
			continue
		}
		detail := VideoDetail{}
		if item.ContentDetails != nil {
			detail.Duration = item.ContentDetails.Duration
		}
		if item.Statistics != nil {
			detail.ViewCount = item.Statistics.ViewCount
			detail.LikeCount = item.Statistics.LikeCount
		}
		details[item.VideoID] = detail
	}

	return details, nil
}

// Videos retrieves full snippets and statistics for video ids.
func (c *CatalogService) Videos(ctx context.Context, ids []string) (*Page, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics,contentDetails")
	params.Set("id", strings.Join(ids, ","))
	return c.Fetch(ctx, "videos", params)
}

// Channels retrieves snippets and statistics for channel ids.
func (c *CatalogService) Channels(ctx context.Context, ids []string) (*Page, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics")
	params.Set("id", strings.Join(ids, ","))
	return c.Fetch(ctx, "channels", params)
}

// PurgeCache drops every cached response.
func (c *CatalogService) PurgeCache() {
	c.cache.purge()
}

// CacheSize reports the number of cached responses, valid or expired.
func (c *CatalogService) CacheSize() int {
	return c.cache.size()
}
