package repositories

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/desertthunder/boxtube/internal/models"
	"github.com/desertthunder/boxtube/internal/shared"
	tu "github.com/desertthunder/boxtube/internal/testing"
)

func testVideo(id string) models.Video {
	return models.Video{ID: id, Title: "Video " + id, ChannelTitle: "Chan"}
}

func TestPlaylistStore(t *testing.T) {
	logger := shared.NewLogger(io.Discard)

	t.Run("seeds default playlists", func(t *testing.T) {
		store := NewPlaylistStore(tu.NewMemKV(), logger, "")

		playlists := store.All()
		if len(playlists) != 2 {
			t.Fatalf("expected 2 default playlists, got %d", len(playlists))
		}
		if playlists[0].ID != WatchLaterID || playlists[1].ID != FavoritesID {
			t.Errorf("unexpected default ids: %s, %s", playlists[0].ID, playlists[1].ID)
		}
		for _, p := range playlists {
			if !p.IsDefault {
				t.Errorf("expected %s to be marked default", p.ID)
			}
		}
	})

	t.Run("Create", func(t *testing.T) {
		store := NewPlaylistStore(tu.NewMemKV(), logger, "")

		playlist, err := store.Create("  Study Mix  ", "for studying")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if playlist.Name != "Study Mix" {
			t.Errorf("expected trimmed name, got %q", playlist.Name)
		}
		if !strings.HasPrefix(playlist.ID, "playlist-") {
			t.Errorf("expected generated id, got %s", playlist.ID)
		}
		if playlist.IsDefault {
			t.Error("created playlists must not be default")
		}
		if len(store.All()) != 3 {
			t.Errorf("expected 3 playlists, got %d", len(store.All()))
		}

		t.Run("requires a name", func(t *testing.T) {
			if _, err := store.Create("   ", ""); !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	})

	t.Run("Delete", func(t *testing.T) {
		store := NewPlaylistStore(tu.NewMemKV(), logger, "")
		playlist, err := store.Create("Disposable", "")
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}

		t.Run("refuses default playlists", func(t *testing.T) {
			if err := store.Delete(WatchLaterID); !errors.Is(err, shared.ErrDefaultPlaylist) {
				t.Errorf("expected ErrDefaultPlaylist, got %v", err)
			}
			if _, err := store.Get(WatchLaterID); err != nil {
				t.Error("expected the default playlist to survive")
			}
		})

		t.Run("removes custom playlists", func(t *testing.T) {
			if err := store.Delete(playlist.ID); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if _, err := store.Get(playlist.ID); !errors.Is(err, shared.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})

		t.Run("unknown id", func(t *testing.T) {
			if err := store.Delete("playlist-nope"); !errors.Is(err, shared.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	})

	t.Run("Update", func(t *testing.T) {
		store := NewPlaylistStore(tu.NewMemKV(), logger, "")

		if err := store.Update(WatchLaterID, "Later List", ""); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		playlist, err := store.Get(WatchLaterID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if playlist.Name != "Later List" {
			t.Errorf("expected renamed playlist, got %s", playlist.Name)
		}
		if !playlist.IsDefault {
			t.Error("renaming must not clear the default flag")
		}
	})

	t.Run("AddVideo", func(t *testing.T) {
		store := NewPlaylistStore(tu.NewMemKV(), logger, "")

		if err := store.AddVideo(WatchLaterID, testVideo("vid1")); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		t.Run("is idempotent", func(t *testing.T) {
			if err := store.AddVideo(WatchLaterID, testVideo("vid1")); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			playlist, _ := store.Get(WatchLaterID)
			if len(playlist.Videos) != 1 {
				t.Errorf("expected 1 entry after duplicate add, got %d", len(playlist.Videos))
			}
		})

		t.Run("stamps the added time", func(t *testing.T) {
			playlist, _ := store.Get(WatchLaterID)
			if playlist.Videos[0].AddedAt.IsZero() {
				t.Error("expected AddedAt to be set")
			}
		})

		t.Run("validates the snapshot", func(t *testing.T) {
			if err := store.AddVideo(WatchLaterID, models.Video{ID: "x"}); !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput for missing title, got %v", err)
			}
		})

		t.Run("same video in two playlists", func(t *testing.T) {
			if err := store.AddVideo(FavoritesID, testVideo("vid1")); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !store.Contains(FavoritesID, "vid1") || !store.Contains(WatchLaterID, "vid1") {
				t.Error("expected the video in both playlists")
			}
		})
	})

	t.Run("RemoveVideo", func(t *testing.T) {
		store := NewPlaylistStore(tu.NewMemKV(), logger, "")
		store.AddVideo(WatchLaterID, testVideo("vid1"))
		store.AddVideo(WatchLaterID, testVideo("vid2"))

		if err := store.RemoveVideo(WatchLaterID, "vid1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		playlist, _ := store.Get(WatchLaterID)
		if len(playlist.Videos) != 1 || playlist.Videos[0].ID != "vid2" {
			t.Errorf("unexpected remaining entries: %+v", playlist.Videos)
		}
	})

	t.Run("SetScope", func(t *testing.T) {
		kv := tu.NewMemKV()
		store := NewPlaylistStore(kv, logger, "")
		store.AddVideo(WatchLaterID, testVideo("anon-vid"))

		store.SetScope("user-1")
		if store.Contains(WatchLaterID, "anon-vid") {
			t.Error("expected the user scope to start from its own collection")
		}

		store.AddVideo(WatchLaterID, testVideo("user-vid"))
		store.SetScope("")
		if !store.Contains(WatchLaterID, "anon-vid") {
			t.Error("expected the anonymous collection to be intact")
		}
		if store.Contains(WatchLaterID, "user-vid") {
			t.Error("collections must never merge across scopes")
		}
	})

	t.Run("survives storage write failures", func(t *testing.T) {
		kv := tu.NewMemKV()
		kv.FailWrite = true
		store := NewPlaylistStore(kv, logger, "")

		if err := store.AddVideo(WatchLaterID, testVideo("vid1")); err != nil {
			t.Fatalf("expected persistence failure to degrade, got %v", err)
		}
		if !store.Contains(WatchLaterID, "vid1") {
			t.Error("expected the in-memory collection to keep the entry")
		}
	})
}
