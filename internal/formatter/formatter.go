// package formatter provides functions to export playlist data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/desertthunder/boxtube/internal/models"
)

// ExportToCSV converts a playlist to CSV format with columns: ID, Title, Channel, Duration, Views, Added
func ExportToCSV(playlist *models.Playlist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Channel", "Duration", "Views", "Added"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, video := range playlist.Videos {
		record := []string{
			video.ID,
			video.Title,
			video.ChannelTitle,
			video.Duration,
			video.ViewCount,
			video.AddedAt.Format("2006-01-02"),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a playlist to Markdown format
func ExportToMarkdown(playlist *models.Playlist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", playlist.Name))

	if playlist.Description != "" {
		buf.WriteString(fmt.Sprintf("**Description**: %s\n\n", playlist.Description))
	}

	buf.WriteString(fmt.Sprintf("**Videos**: %d\n", len(playlist.Videos)))
	buf.WriteString(fmt.Sprintf("**Created**: %s\n\n", playlist.CreatedAt.Format("2006-01-02")))

	buf.WriteString("## Videos\n\n")
	for i, video := range playlist.Videos {
		durationPart := ""
		if video.Duration != "" {
			durationPart = fmt.Sprintf(" [%s]", video.Duration)
		}
		viewsPart := ""
		if video.ViewCount != "" {
			viewsPart = fmt.Sprintf(" — %s views", FormatCount(video.ViewCount))
		}
		buf.WriteString(fmt.Sprintf("%d. %s — %s%s%s\n", i+1, video.Title, video.ChannelTitle, durationPart, viewsPart))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a playlist to plain text format, one video per line
func ExportToText(playlist *models.Playlist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s (%d videos)\n", playlist.Name, len(playlist.Videos)))
	if playlist.Description != "" {
		buf.WriteString(playlist.Description + "\n")
	}
	buf.WriteString("\n")

	for i, video := range playlist.Videos {
		line := fmt.Sprintf("%d. %s — %s", i+1, video.Title, video.ChannelTitle)
		if video.Duration != "" {
			line += fmt.Sprintf(" [%s]", video.Duration)
		}
		buf.WriteString(line + "\n")
	}

	return buf.Bytes(), nil
}

// Export renders the playlist in the named format ("csv", "markdown", "md", "text", "txt").
func Export(playlist *models.Playlist, format string) ([]byte, error) {
	switch format {
	case "csv":
		return ExportToCSV(playlist)
	case "markdown", "md":
		return ExportToMarkdown(playlist)
	case "text", "txt", "":
		return ExportToText(playlist)
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}
