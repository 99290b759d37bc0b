package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/desertthunder/boxtube/internal/models"
	"github.com/desertthunder/boxtube/internal/repositories"
	tu "github.com/desertthunder/boxtube/internal/testing"
	"github.com/urfave/cli/v3"
)

func TestPlaylistShow(t *testing.T) {
	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		KV:      tu.NewMemKV(),
		Catalog: &tu.MockCatalog{},
		Output:  output,
	})

	video := models.Video{
		ID:           "vid1",
		Title:        "Lofi Beats",
		ChannelID:    "UC1",
		ChannelTitle: "Chill Channel",
		Thumbnail:    "thumb.jpg",
		Duration:     "1:02:07",
	}
	if err := runner.playlists.AddVideo(repositories.WatchLaterID, video); err != nil {
		t.Fatalf("failed to seed playlist: %v", err)
	}

	app := &cli.Command{Name: "boxtube", Commands: runner.register()}
	args := []string{"boxtube", "playlist", "show", repositories.WatchLaterID}
	if err := app.Run(context.Background(), args); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	result := output.String()
	if !strings.Contains(result, "Lofi Beats — Chill Channel [1:02:07]") {
		t.Errorf("expected the video line, got %q", result)
	}
	if !strings.Contains(result, "added now") {
		t.Errorf("expected a relative added timestamp, got %q", result)
	}
}
