package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/boxtube/internal/formatter"
	"github.com/desertthunder/boxtube/internal/services"
)

var (
	_ list.Item = resultItem{}
	_ list.Item = relatedItem{}
)

// resultItem wraps [services.Item] to implement [list.Item].
type resultItem struct {
	item services.Item
}

func (i resultItem) FilterValue() string { return i.item.Snippet.Title }
func (i resultItem) Title() string       { return i.item.Snippet.Title }
func (i resultItem) Description() string {
	if i.item.Kind == services.KindChannel {
		return "channel"
	}

	desc := i.item.Snippet.ChannelTitle
	if i.item.ContentDetails != nil && i.item.ContentDetails.Duration != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.item.ContentDetails.Duration)
	}
	if i.item.Statistics != nil && i.item.Statistics.ViewCount != "" {
		desc = fmt.Sprintf("%s • %s views", desc, formatter.FormatCount(i.item.Statistics.ViewCount))
	}
	return desc
}

// relatedItem wraps a related video for the detail view's list.
type relatedItem struct {
	item services.Item
}

func (i relatedItem) FilterValue() string { return i.item.Snippet.Title }
func (i relatedItem) Title() string       { return i.item.Snippet.Title }
func (i relatedItem) Description() string { return i.item.Snippet.ChannelTitle }
