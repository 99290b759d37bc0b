package repositories

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/boxtube/internal/models"
	"github.com/desertthunder/boxtube/internal/shared"
)

const playlistsKey = "boxtube_playlists"

// Default playlist ids, seeded per identity scope and protected from
// deletion. They can be renamed but never removed.
const (
	WatchLaterID = "watch-later"
	FavoritesID  = "favorites"
)

// PlaylistStore owns the identity-scoped playlist collection.
//
// Playlists keep insertion order; each video appears at most once per
// playlist. There is no cap on playlists or entries.
type PlaylistStore struct {
	kv        KV
	logger    *log.Logger
	scopeID   string
	playlists []models.Playlist
}

// NewPlaylistStore creates a [PlaylistStore] for the given identity scope and
// loads its collection, seeding the default playlists when none exist.
func NewPlaylistStore(kv KV, logger *log.Logger, scopeID string) *PlaylistStore {
	store := &PlaylistStore{kv: kv, logger: logger}
	store.SetScope(scopeID)
	return store
}

// SetScope swaps the active collection to the given identity scope. Nothing
// is merged; the previous scope's playlists stay under their own key.
func (s *PlaylistStore) SetScope(scopeID string) {
	s.scopeID = scopeID
	s.playlists = loadCollection(s.kv, s.logger, s.key(), []models.Playlist(nil))
	if len(s.playlists) == 0 {
		s.playlists = defaultPlaylists()
		s.persist()
	}
}

func (s *PlaylistStore) key() string {
	return ScopedKey(playlistsKey, s.scopeID)
}

func defaultPlaylists() []models.Playlist {
	now := time.Now()
	return []models.Playlist{
		{
			ID:          WatchLaterID,
			Name:        "Watch Later",
			Description: "Videos to watch later",
			Videos:      []models.PlaylistVideo{},
			CreatedAt:   now,
			IsDefault:   true,
		},
		{
			ID:          FavoritesID,
			Name:        "Favorites",
			Description: "Your favorite videos",
			Videos:      []models.PlaylistVideo{},
			CreatedAt:   now,
			IsDefault:   true,
		},
	}
}

// All returns the playlists in insertion order.
func (s *PlaylistStore) All() []models.Playlist {
	return s.playlists
}

// Get returns the playlist with the given id.
func (s *PlaylistStore) Get(id string) (*models.Playlist, error) {
	for i := range s.playlists {
		if s.playlists[i].ID == id {
			return &s.playlists[i], nil
		}
	}
	return nil, fmt.Errorf("playlist %w: %s", shared.ErrNotFound, id)
}

// Create appends a new playlist. The name is required.
func (s *PlaylistStore) Create(name, description string) (*models.Playlist, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: playlist name is required", shared.ErrInvalidInput)
	}

	playlist := models.Playlist{
		ID:          "playlist-" + shared.GenerateID(),
		Name:        strings.TrimSpace(name),
		Description: description,
		Videos:      []models.PlaylistVideo{},
		CreatedAt:   time.Now(),
	}
	s.playlists = append(s.playlists, playlist)
	s.persist()

	return &s.playlists[len(s.playlists)-1], nil
}

// Delete removes a playlist. Default playlists refuse deletion and the
// collection is left unchanged.
func (s *PlaylistStore) Delete(id string) error {
	playlist, err := s.Get(id)
	if err != nil {
		return err
	}
	if playlist.IsDefault {
		return shared.ErrDefaultPlaylist
	}

	kept := s.playlists[:0]
	for _, p := range s.playlists {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.playlists = kept
	s.persist()
	return nil
}

// Update renames a playlist and/or replaces its description. The default flag
// is immutable, so defaults can be renamed but keep their protection.
func (s *PlaylistStore) Update(id, name, description string) error {
	playlist, err := s.Get(id)
	if err != nil {
		return err
	}

	if strings.TrimSpace(name) != "" {
		playlist.Name = strings.TrimSpace(name)
	}
	if description != "" {
		playlist.Description = description
	}
	s.persist()
	return nil
}

// AddVideo appends a video snapshot to a playlist. Adding an id the playlist
// already holds is a no-op, so the call is idempotent.
func (s *PlaylistStore) AddVideo(playlistID string, video models.Video) error {
	if err := video.Validate(); err != nil {
		return err
	}

	playlist, err := s.Get(playlistID)
	if err != nil {
		return err
	}
	if playlist.Contains(video.ID) {
		return nil
	}

	playlist.Videos = append(playlist.Videos, models.PlaylistVideo{
		Video:   video,
		AddedAt: time.Now(),
	})
	s.persist()
	return nil
}

// RemoveVideo removes the entry with the given video id from a playlist.
func (s *PlaylistStore) RemoveVideo(playlistID, videoID string) error {
	playlist, err := s.Get(playlistID)
	if err != nil {
		return err
	}

	kept := playlist.Videos[:0]
	for _, v := range playlist.Videos {
		if v.ID != videoID {
			kept = append(kept, v)
		}
	}
	playlist.Videos = kept
	s.persist()
	return nil
}

// Contains reports whether the playlist holds the video id.
func (s *PlaylistStore) Contains(playlistID, videoID string) bool {
	playlist, err := s.Get(playlistID)
	if err != nil {
		return false
	}
	return playlist.Contains(videoID)
}

func (s *PlaylistStore) persist() {
	saveCollection(s.kv, s.logger, s.key(), s.playlists)
}
