package tasks

import (
	"context"
	"net/url"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/boxtube/internal/formatter"
	"github.com/desertthunder/boxtube/internal/services"
)

// State is the pager's position in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateExhausted
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateExhausted:
		return "exhausted"
	case StateErrored:
		return "errored"
	default:
		return "idle"
	}
}

// Query identifies one catalog query: a resource path plus its parameters.
type Query struct {
	Resource string
	Params   url.Values
}

// clone copies the params so in-flight requests never see later mutation.
func (q Query) clone() url.Values {
	params := url.Values{}
	for key, values := range q.Params {
		for _, value := range values {
			params.Add(key, value)
		}
	}
	return params
}

// Pager drives one catalog query across pages.
//
// Changing the query via Reset bumps a generation counter; a response carrying
// a stale generation is discarded instead of committed, so an abandoned
// query's late page can never leak into the current result set. Within one
// pager only a single fetch is in flight at a time.
type Pager struct {
	catalog services.Catalog
	logger  *log.Logger

	mu         sync.Mutex
	query      Query
	generation int
	items      []services.Item
	pageToken  string
	hasMore    bool
	inflight   bool
	state      State
	err        error
}

// NewPager creates a [Pager] over the given catalog.
func NewPager(catalog services.Catalog, logger *log.Logger) *Pager {
	return &Pager{catalog: catalog, logger: logger}
}

// Reset points the pager at a new query, discarding prior results and
// invalidating any fetch still in flight.
func (p *Pager) Reset(query Query) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.query = query
	p.generation++
	p.items = nil
	p.pageToken = ""
	p.hasMore = false
	p.inflight = false
	p.state = StateIdle
	p.err = nil
}

// Fetch loads the first page for the current query.
func (p *Pager) Fetch(ctx context.Context) error {
	return p.fetch(ctx, "")
}

// FetchMore loads the next page and appends it. It is a no-op when the query
// is exhausted, no continuation token is held, or a fetch is already in
// flight.
func (p *Pager) FetchMore(ctx context.Context) error {
	p.mu.Lock()
	if !p.hasMore || p.pageToken == "" || p.inflight {
		p.mu.Unlock()
		return nil
	}
	token := p.pageToken
	p.mu.Unlock()

	return p.fetch(ctx, token)
}

func (p *Pager) fetch(ctx context.Context, token string) error {
	p.mu.Lock()
	if p.inflight {
		p.mu.Unlock()
		return nil
	}
	p.inflight = true
	p.state = StateLoading
	generation := p.generation
	query := p.query
	p.mu.Unlock()

	params := query.clone()
	if token != "" {
		params.Set("pageToken", token)
	}

	page, err := p.catalog.Fetch(ctx, query.Resource, params)
	var enriched []services.Item
	if err == nil {
		enriched = p.enrich(ctx, page.Items)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if generation != p.generation {
		// The query changed while this page was in flight; drop it.
		return nil
	}
	p.inflight = false

	if err != nil {
		p.err = err
		p.state = StateErrored
		if token == "" {
			// A failed initial fetch clears results. A failed "more" fetch
			// keeps the pages already shown.
			p.items = nil
		}
		return err
	}

	p.err = nil
	if token == "" {
		p.items = enriched
	} else {
		p.items = append(p.items, enriched...)
	}

	p.pageToken = page.NextPageToken
	p.hasMore = page.NextPageToken != ""
	if p.hasMore {
		p.state = StateReady
	} else {
		p.state = StateExhausted
	}

	return nil
}

// enrich merges a batched detail lookup into the page's video items: display
// duration plus view/like counts. Channel items pass through unenriched, and
// a failed lookup degrades to the unenriched page rather than failing it.
func (p *Pager) enrich(ctx context.Context, items []services.Item) []services.Item {
	var ids []string
	for _, item := range items {
		if item.Kind == services.KindVideo {
			ids = append(ids, item.VideoID)
		}
	}
	if len(ids) == 0 {
		return items
	}

	details, err := p.catalog.VideoDetails(ctx, ids)
	if err != nil {
		p.logger.Warn("video detail lookup failed", "error", err)
		return items
	}

	enriched := make([]services.Item, len(items))
	for i, item := range items {
		detail, ok := details[item.VideoID]
		if item.Kind != services.KindVideo || !ok {
			enriched[i] = item
			continue
		}
		item.ContentDetails = &services.ContentDetails{
			Duration: formatter.FormatISODuration(detail.Duration),
		}
		item.Statistics = &services.Statistics{
			ViewCount: detail.ViewCount,
			LikeCount: detail.LikeCount,
		}
		enriched[i] = item
	}
	return enriched
}

// Items returns the enriched items committed so far.
func (p *Pager) Items() []services.Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.items
}

// State returns the pager's current lifecycle state.
func (p *Pager) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// HasMore reports whether another page can be fetched.
func (p *Pager) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMore
}

// Err returns the most recent fetch error, if any.
func (p *Pager) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}
