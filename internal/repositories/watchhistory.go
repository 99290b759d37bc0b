package repositories

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/boxtube/internal/models"
)

const watchHistoryKey = "boxtube_watch_history"

// maxWatchHistory caps the watch-history collection.
const maxWatchHistory = 100

// WatchHistoryStore owns the identity-scoped watch history.
//
// Entries are deduped by video id, kept most-recent-first, and capped at 100.
type WatchHistoryStore struct {
	kv      KV
	logger  *log.Logger
	scopeID string
	entries []models.WatchEntry
}

// NewWatchHistoryStore creates a [WatchHistoryStore] for the given identity
// scope and loads its collection.
func NewWatchHistoryStore(kv KV, logger *log.Logger, scopeID string) *WatchHistoryStore {
	store := &WatchHistoryStore{kv: kv, logger: logger}
	store.SetScope(scopeID)
	return store
}

// SetScope swaps the active collection to the given identity scope.
func (s *WatchHistoryStore) SetScope(scopeID string) {
	s.scopeID = scopeID
	s.entries = loadCollection(s.kv, s.logger, s.key(), []models.WatchEntry{})
}

func (s *WatchHistoryStore) key() string {
	return ScopedKey(watchHistoryKey, s.scopeID)
}

// Add records a watched video. Re-watching moves the entry to the front; the
// collection is trimmed to its cap from the oldest end.
func (s *WatchHistoryStore) Add(video models.Video) error {
	if err := video.Validate(); err != nil {
		return err
	}

	entries := make([]models.WatchEntry, 0, len(s.entries)+1)
	entries = append(entries, models.WatchEntry{Video: video, WatchedAt: time.Now()})
	for _, entry := range s.entries {
		if entry.ID != video.ID {
			entries = append(entries, entry)
		}
	}
	if len(entries) > maxWatchHistory {
		entries = entries[:maxWatchHistory]
	}

	s.entries = entries
	s.persist()
	return nil
}

// Clear empties the history and removes the stored key.
func (s *WatchHistoryStore) Clear() {
	s.entries = []models.WatchEntry{}
	if err := s.kv.Delete(s.key()); err != nil {
		s.logger.Error("failed to clear watch history", "error", err)
	}
}

// IsWatched reports whether the video id is in the history.
func (s *WatchHistoryStore) IsWatched(videoID string) bool {
	for _, entry := range s.entries {
		if entry.ID == videoID {
			return true
		}
	}
	return false
}

// All returns the history, most recent first.
func (s *WatchHistoryStore) All() []models.WatchEntry {
	return s.entries
}

func (s *WatchHistoryStore) persist() {
	saveCollection(s.kv, s.logger, s.key(), s.entries)
}
