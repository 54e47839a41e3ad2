// package formatter provides functions to render catalog and collection data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/desertthunder/gamedex/internal/igdb"
	"github.com/desertthunder/gamedex/internal/models"
	"github.com/desertthunder/gamedex/internal/shared"
)

// CollectionExport bundles a console with its tracked games for export.
type CollectionExport struct {
	Console *models.Console `json:"console"`
	Games   []*models.Game  `json:"games"`
}

// PlatformsToCSV converts platforms to CSV format with columns: RemoteID, Name, Abbreviation, Generation
func PlatformsToCSV(platforms []*models.Platform) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"RemoteID", "Name", "Abbreviation", "Generation"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, platform := range platforms {
		abbreviation := ""
		if platform.Abbreviation != nil {
			abbreviation = *platform.Abbreviation
		}
		generation := ""
		if platform.Generation != nil {
			generation = strconv.Itoa(*platform.Generation)
		}
		record := []string{
			strconv.Itoa(platform.RemoteID),
			platform.Name,
			abbreviation,
			generation,
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

// PlatformsToText renders platforms as aligned plain text rows.
func PlatformsToText(platforms []*models.Platform) []byte {
	var buf bytes.Buffer

	for _, platform := range platforms {
		abbreviation := "-"
		if platform.Abbreviation != nil {
			abbreviation = *platform.Abbreviation
		}
		generation := 0
		if platform.Generation != nil {
			generation = *platform.Generation
		}
		buf.WriteString(fmt.Sprintf("%6d  %-8s  %-12s  %s\n",
			platform.RemoteID, abbreviation, shared.FormatGeneration(generation), platform.Name))
	}

	return buf.Bytes()
}

// GenresToText renders genres one per line, preserving catalog order.
func GenresToText(genres []igdb.Genre) []byte {
	var buf bytes.Buffer
	for _, genre := range genres {
		buf.WriteString(fmt.Sprintf("%4d  %s\n", genre.ID, genre.Name))
	}
	return buf.Bytes()
}

// ExportToCSV converts a CollectionExport to CSV format with columns: ID, Name, Status, IGDBGameID
func ExportToCSV(export *CollectionExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Status", "IGDBGameID"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, game := range export.Games {
		record := []string{
			game.ID,
			game.Name,
			game.Status,
			strconv.Itoa(game.IGDBGameID),
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

// ExportToMarkdown converts a CollectionExport to Markdown format
func ExportToMarkdown(export *CollectionExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", export.Console.Nickname))

	if export.Console.Notes != "" {
		buf.WriteString(fmt.Sprintf("**Notes**: %s\n\n", export.Console.Notes))
	}

	buf.WriteString(fmt.Sprintf("**Games**: %d\n\n", len(export.Games)))

	buf.WriteString("## Games\n\n")
	for i, game := range export.Games {
		buf.WriteString(fmt.Sprintf("%d. %s [%s]\n", i+1, game.Name, game.Status))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a CollectionExport to plain text format
func ExportToText(export *CollectionExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Console: %s\n", export.Console.Nickname))
	if export.Console.Notes != "" {
		buf.WriteString(fmt.Sprintf("Notes: %s\n", export.Console.Notes))
	}
	buf.WriteString(fmt.Sprintf("Games: %d\n\n", len(export.Games)))

	for i, game := range export.Games {
		buf.WriteString(fmt.Sprintf("%d. %s [%s]\n", i+1, game.Name, game.Status))
	}

	return buf.Bytes(), nil
}

// WriteExport writes a collection export in the requested format.
//
// Defaults to {console.ID}.{ext} as the filename and JSON as the format.
func WriteExport(export *CollectionExport, format, filepath string) (string, error) {
	var (
		data []byte
		ext  string
		err  error
	)

	switch format {
	case "csv":
		ext = "csv"
		data, err = ExportToCSV(export)
	case "markdown":
		ext = "md"
		data, err = ExportToMarkdown(export)
	case "txt":
		ext = "txt"
		data, err = ExportToText(export)
	default:
		ext = "json"
		data, err = shared.MarshalJSON(export, true)
	}
	if err != nil {
		return "", fmt.Errorf("failed to generate %s export: %w", format, err)
	}

	if filepath == "" {
		filepath = fmt.Sprintf("%s.%s", export.Console.ID, ext)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return filepath, nil
}
