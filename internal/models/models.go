package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/boxtube/internal/shared"
)

// MinPasswordLength is the shortest accepted credential on signup.
const MinPasswordLength = 6

// Video is a snapshot of a catalog video, stored wherever the client needs to
// render one without refetching (playlists, watch history).
type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ChannelID    string `json:"channelId"`
	ChannelTitle string `json:"channelTitle"`
	Thumbnail    string `json:"thumbnail"`
	PublishedAt  string `json:"publishedAt,omitempty"`
	Duration     string `json:"duration,omitempty"`  // display form, e.g. "4:13" or "1:02:07"
	ViewCount    string `json:"viewCount,omitempty"` // kept as the API's decimal string
	LikeCount    string `json:"likeCount,omitempty"`
}

// Validate checks that the snapshot carries enough to be stored and rendered.
func (v Video) Validate() error {
	if v.ID == "" {
		return fmt.Errorf("%w: video id is required", shared.ErrInvalidInput)
	}
	if v.Title == "" {
		return fmt.Errorf("%w: video title is required", shared.ErrInvalidInput)
	}
	return nil
}

// Subscription records one followed channel. At most one per (user, channel).
type Subscription struct {
	ChannelID        string    `json:"channelId"`
	ChannelTitle     string    `json:"channelTitle"`
	ChannelThumbnail string    `json:"channelThumbnail"`
	SubscribedAt     time.Time `json:"subscribedAt"`
}

// User is a locally registered account. The credential is a bcrypt hash; the
// record is never hard-deleted, only a cleared store removes it.
type User struct {
	ID             string         `json:"id"`
	Username       string         `json:"username"`
	PasswordHash   string         `json:"passwordHash"`
	CreatedAt      time.Time      `json:"createdAt"`
	Subscriptions  []Subscription `json:"subscriptions"`
	ProfilePicture string         `json:"profilePicture"`
}

// Validate checks signup input constraints. Password length is validated
// separately since only the hash is stored here.
func (u User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return fmt.Errorf("%w: username is required", shared.ErrInvalidInput)
	}
	if u.PasswordHash == "" {
		return fmt.Errorf("%w: credential is required", shared.ErrInvalidInput)
	}
	return nil
}

// Subscribed reports membership for a channel id.
func (u User) Subscribed(channelID string) bool {
	for _, sub := range u.Subscriptions {
		if sub.ChannelID == channelID {
			return true
		}
	}
	return false
}

// PlaylistVideo is a playlist entry: the video snapshot plus when it was added.
type PlaylistVideo struct {
	Video
	AddedAt time.Time `json:"addedAt"`
}

// Playlist is an ordered sequence of video entries. The two default playlists
// are seeded per identity scope and refuse deletion.
type Playlist struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Videos      []PlaylistVideo `json:"videos"`
	CreatedAt   time.Time       `json:"createdAt"`
	IsDefault   bool            `json:"isDefault"`
}

// Contains reports whether the playlist already holds the video id.
func (p Playlist) Contains(videoID string) bool {
	for _, v := range p.Videos {
		if v.ID == videoID {
			return true
		}
	}
	return false
}

// SearchEntry is one remembered search term. Identity is the case-insensitive
// term; Timestamp tracks the most recent use.
type SearchEntry struct {
	Term      string    `json:"term"`
	Timestamp time.Time `json:"timestamp"`
}

// WatchEntry is one watch-history record, newest first in the collection.
type WatchEntry struct {
	Video
	WatchedAt time.Time `json:"watchedAt"`
}
