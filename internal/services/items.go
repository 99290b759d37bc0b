package services

import (
	"encoding/json"
	"fmt"

	"github.com/desertthunder/boxtube/internal/models"
)

// Kind tags a catalog item as a video or a channel.
type Kind int

const (
	KindVideo Kind = iota
	KindChannel
)

func (k Kind) String() string {
	if k == KindChannel {
		return "channel"
	}
	return "video"
}

// Thumbnail is one rendition of an item's preview image.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Thumbnails groups the renditions the catalog returns.
type Thumbnails struct {
	Default Thumbnail `json:"default"`
	Medium  Thumbnail `json:"medium"`
	High    Thumbnail `json:"high"`
}

// Best returns the largest available rendition URL.
func (t Thumbnails) Best() string {
	switch {
	case t.High.URL != "":
		return t.High.URL
	case t.Medium.URL != "":
		return t.Medium.URL
	default:
		return t.Default.URL
	}
}

// Snippet is the catalog's descriptive metadata block.
type Snippet struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	ChannelID    string     `json:"channelId"`
	ChannelTitle string     `json:"channelTitle"`
	PublishedAt  string     `json:"publishedAt"`
	Thumbnails   Thumbnails `json:"thumbnails"`
}

// Statistics carries an item's engagement counters as decimal strings.
type Statistics struct {
	ViewCount       string `json:"viewCount"`
	LikeCount       string `json:"likeCount"`
	SubscriberCount string `json:"subscriberCount,omitempty"`
	VideoCount      string `json:"videoCount,omitempty"`
}

// ContentDetails carries a video's duration.
//
// On the wire this is ISO-8601 compact ("PT4M13S"); after enrichment the
// pager rewrites it to display form ("4:13").
type ContentDetails struct {
	Duration string `json:"duration"`
}

// Item is a parsed catalog entry. The wire shape's optional id fields are
// resolved into an explicit Kind at the API boundary so nothing downstream
// probes for id.videoId vs id.channelId.
type Item struct {
	Kind           Kind
	VideoID        string
	ChannelID      string
	Snippet        Snippet
	Statistics     *Statistics
	ContentDetails *ContentDetails
}

// Page is one response page from the catalog.
type Page struct {
	Items         []Item
	NextPageToken string
}

// Video projects a video item into the snapshot shape the stores persist.
// Calling it on a channel item returns a zero Video.
func (i Item) Video() models.Video {
	if i.Kind != KindVideo {
		return models.Video{}
	}

	video := models.Video{
		ID:           i.VideoID,
		Title:        i.Snippet.Title,
		ChannelID:    i.Snippet.ChannelID,
		ChannelTitle: i.Snippet.ChannelTitle,
		Thumbnail:    i.Snippet.Thumbnails.Best(),
		PublishedAt:  i.Snippet.PublishedAt,
	}
	if i.ContentDetails != nil {
		video.Duration = i.ContentDetails.Duration
	}
	if i.Statistics != nil {
		video.ViewCount = i.Statistics.ViewCount
		video.LikeCount = i.Statistics.LikeCount
	}
	return video
}

// wireItem mirrors the raw response entry. The id field is either a plain
// string (videos/channels resources) or an object holding videoId/channelId
// (search resource).
type wireItem struct {
	Kind           string          `json:"kind"`
	ID             json.RawMessage `json:"id"`
	Snippet        Snippet         `json:"snippet"`
	Statistics     *Statistics     `json:"statistics"`
	ContentDetails *ContentDetails `json:"contentDetails"`
}

type wirePage struct {
	Items         []wireItem `json:"items"`
	NextPageToken string     `json:"nextPageToken"`
}

// decodePage parses a raw response body into a Page, resolving each entry's
// id variant.
func decodePage(body []byte) (*Page, error) {
	var raw wirePage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	page := &Page{NextPageToken: raw.NextPageToken}
	for _, entry := range raw.Items {
		item, err := parseItem(entry)
		if err != nil {
			return nil, err
		}
		page.Items = append(page.Items, item)
	}

	return page, nil
}

func parseItem(entry wireItem) (Item, error) {
	item := Item{
		Snippet:        entry.Snippet,
		Statistics:     entry.Statistics,
		ContentDetails: entry.ContentDetails,
	}

	var idObject struct {
		VideoID   string `json:"videoId"`
		ChannelID string `json:"channelId"`
	}
	if err := json.Unmarshal(entry.ID, &idObject); err == nil {
		switch {
		case idObject.VideoID != "":
			item.Kind = KindVideo
			item.VideoID = idObject.VideoID
			return item, nil
		case idObject.ChannelID != "":
			item.Kind = KindChannel
			item.ChannelID = idObject.ChannelID
			return item, nil
		}
	}

	var idString string
	if err := json.Unmarshal(entry.ID, &idString); err == nil && idString != "" {
		if entry.Kind == "youtube#channel" {
			item.Kind = KindChannel
			item.ChannelID = idString
		} else {
			item.Kind = KindVideo
			item.VideoID = idString
		}
		return item, nil
	}

	return Item{}, fmt.Errorf("unrecognized catalog item id: %s", string(entry.ID))
}
