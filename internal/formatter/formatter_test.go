package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/boxtube/internal/models"
)

func TestFormatISODuration(t *testing.T) {
	tc := []struct {
		name     string
		duration string
		want     string
	}{
		{
			name:     "minutes and seconds",
			duration: "PT4M13S",
			want:     "4:13",
		},
		{
			name:     "hours minutes seconds",
			duration: "PT1H2M7S",
			want:     "1:02:07",
		},
		{
			name:     "seconds only",
			duration: "PT45S",
			want:     "45",
		},
		{
			name:     "hours without minutes",
			duration: "PT2H5S",
			want:     "2:00:05",
		},
		{
			name:     "minutes without seconds",
			duration: "PT10M",
			want:     "10:00",
		},
		{
			name:     "single digit seconds padded",
			duration: "PT3M7S",
			want:     "3:07",
		},
		{
			name:     "non-matching input passes through",
			duration: "LIVE",
			want:     "LIVE",
		},
		{
			name:     "empty input passes through",
			duration: "",
			want:     "",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatISODuration(tt.duration)
			if got != tt.want {
				t.Errorf("FormatISODuration(%q) = %q, want %q", tt.duration, got, tt.want)
			}
		})
	}
}

func TestFormatCount(t *testing.T) {
	tc := []struct {
		name  string
		count string
		want  string
	}{
		{name: "millions", count: "1234567", want: "1,234,567"},
		{name: "thousands", count: "4200", want: "4,200"},
		{name: "small", count: "999", want: "999"},
		{name: "non-numeric passes through", count: "N/A", want: "N/A"},
		{name: "empty passes through", count: "", want: ""},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatCount(tt.count)
			if got != tt.want {
				t.Errorf("FormatCount(%q) = %q, want %q", tt.count, got, tt.want)
			}
		})
	}
}

func TestFormatRelativeTime(t *testing.T) {
	t.Run("renders a relative phrase", func(t *testing.T) {
		published := time.Now().Add(-48 * time.Hour).Format(time.RFC3339)
		got := FormatRelativeTime(published)
		if !strings.Contains(got, "ago") {
			t.Errorf("expected relative phrase, got %q", got)
		}
	})

	t.Run("unparseable input passes through", func(t *testing.T) {
		if got := FormatRelativeTime("yesterday"); got != "yesterday" {
			t.Errorf("expected passthrough, got %q", got)
		}
	})
}

func testPlaylist() *models.Playlist {
	added := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	return &models.Playlist{
		ID:          "playlist-1",
		Name:        "Study Mix",
		Description: "Background music",
		CreatedAt:   added,
		Videos: []models.PlaylistVideo{
			{
				Video: models.Video{
					ID:           "vid1",
					Title:        "Lofi Beats",
					ChannelTitle: "Chill Channel",
					Duration:     "1:02:07",
					ViewCount:    "1234567",
				},
				AddedAt: added,
			},
			{
				Video: models.Video{
					ID:           "vid2",
					Title:        "Rain Sounds",
					ChannelTitle: "Ambient Co",
				},
				AddedAt: added,
			},
		},
	}
}

func TestExport(t *testing.T) {
	t.Run("CSV", func(t *testing.T) {
		data, err := ExportToCSV(testPlaylist())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected header plus 2 records, got %d lines", len(lines))
		}
		if lines[0] != "ID,Title,Channel,Duration,Views,Added" {
			t.Errorf("unexpected header: %s", lines[0])
		}
		if !strings.HasPrefix(lines[1], "vid1,Lofi Beats,Chill Channel,1:02:07,1234567,2026-03-14") {
			t.Errorf("unexpected first record: %s", lines[1])
		}
	})

	t.Run("Markdown", func(t *testing.T) {
		data, err := ExportToMarkdown(testPlaylist())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		content := string(data)
		if !strings.Contains(content, "# Study Mix") {
			t.Error("expected playlist name heading")
		}
		if !strings.Contains(content, "**Videos**: 2") {
			t.Error("expected video count")
		}
		if !strings.Contains(content, "1. Lofi Beats — Chill Channel [1:02:07] — 1,234,567 views") {
			t.Errorf("unexpected video line in:\n%s", content)
		}
		if !strings.Contains(content, "2. Rain Sounds — Ambient Co\n") {
			t.Error("expected entry without duration or views suffix")
		}
	})

	t.Run("Text", func(t *testing.T) {
		data, err := ExportToText(testPlaylist())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		content := string(data)
		if !strings.HasPrefix(content, "Study Mix (2 videos)\n") {
			t.Errorf("unexpected first line:\n%s", content)
		}
		if !strings.Contains(content, "1. Lofi Beats — Chill Channel [1:02:07]") {
			t.Errorf("unexpected video line in:\n%s", content)
		}
	})

	t.Run("dispatch", func(t *testing.T) {
		for _, format := range []string{"csv", "markdown", "md", "text", "txt", ""} {
			if _, err := Export(testPlaylist(), format); err != nil {
				t.Errorf("format %q: expected no error, got %v", format, err)
			}
		}

		if _, err := Export(testPlaylist(), "xml"); err == nil {
			t.Error("expected error for unsupported format")
		}
	})
}
