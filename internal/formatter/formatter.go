// package formatter converts paste collections to and from export formats (JSON, YAML, CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/desertthunder/pbin/internal/models"
	"github.com/desertthunder/pbin/internal/shared"
	"gopkg.in/yaml.v3"
)

// Format names an export or import encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "txt"
)

// DateLayout is the human-readable layout used for CreatedAt.
const DateLayout = "January 2, 2006"

const untitled = "Untitled"

// ParseFormat resolves a user-supplied format name, accepting common aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q", shared.ErrUnsupportedFormat, s)
	}
}

// FormatFromPath infers a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", shared.ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

// Extension returns the file extension (without dot) used for f.
func (f Format) Extension() string {
	if f == FormatMarkdown {
		return "md"
	}
	return string(f)
}

// FormatDate renders t as a calendar date, e.g. "March 4, 2024".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(DateLayout)
}

// DisplayTitle returns the title or a placeholder for empty titles.
func DisplayTitle(p models.Paste) string {
	if strings.TrimSpace(p.Title) == "" {
		return untitled
	}
	return p.Title
}

// Export encodes pastes in the given format.
func Export(pastes []models.Paste, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return ExportToJSON(pastes, true)
	case FormatYAML:
		return ExportToYAML(pastes)
	case FormatCSV:
		return ExportToCSV(pastes)
	case FormatMarkdown:
		return ExportToMarkdown(pastes)
	case FormatText:
		return ExportToText(pastes)
	default:
		return nil, fmt.Errorf("%w: %q", shared.ErrUnsupportedFormat, format)
	}
}

// ExportPaste encodes a single paste. JSON and YAML produce an object rather than a list.
func ExportPaste(p models.Paste, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return shared.MarshalJSON(p, true)
	case FormatYAML:
		data, err := yaml.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return data, nil
	case FormatMarkdown:
		var buf bytes.Buffer
		writeMarkdownPaste(&buf, p, "#")
		return buf.Bytes(), nil
	case FormatText:
		var buf bytes.Buffer
		writeTextPaste(&buf, p)
		return buf.Bytes(), nil
	default:
		return Export([]models.Paste{p}, format)
	}
}

// ExportToJSON encodes pastes as a JSON array. A nil slice encodes as [].
func ExportToJSON(pastes []models.Paste, pretty bool) ([]byte, error) {
	if pastes == nil {
		pastes = []models.Paste{}
	}
	return shared.MarshalJSON(pastes, pretty)
}

// ExportToYAML encodes pastes as a YAML sequence.
func ExportToYAML(pastes []models.Paste) ([]byte, error) {
	if pastes == nil {
		pastes = []models.Paste{}
	}
	data, err := yaml.Marshal(pastes)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return data, nil
}

// ExportToCSV converts pastes to CSV format with columns: ID, Title, Content, CreatedAt
func ExportToCSV(pastes []models.Paste) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Content", "CreatedAt"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, p := range pastes {
		record := []string{
			p.ID,
			p.Title,
			p.Content,
			p.CreatedAt.UTC().Format(time.RFC3339),
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

// ExportToMarkdown renders pastes as a Markdown document, one section per paste with its
// content in a fenced block.
func ExportToMarkdown(pastes []models.Paste) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Pastes\n\n")
	buf.WriteString(fmt.Sprintf("**Count**: %d\n", len(pastes)))

	for _, p := range pastes {
		buf.WriteString("\n")
		writeMarkdownPaste(&buf, p, "##")
	}

	return buf.Bytes(), nil
}

func writeMarkdownPaste(buf *bytes.Buffer, p models.Paste, heading string) {
	buf.WriteString(fmt.Sprintf("%s %s\n\n", heading, DisplayTitle(p)))
	buf.WriteString(fmt.Sprintf("- **ID**: `%s`\n", p.ID))
	buf.WriteString(fmt.Sprintf("- **Created**: %s\n\n", FormatDate(p.CreatedAt)))

	fence := codeFence(p.Content)
	buf.WriteString(fence + "\n")
	buf.WriteString(p.Content)
	if !strings.HasSuffix(p.Content, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString(fence + "\n")
}

// codeFence returns a backtick fence longer than any backtick run in content.
func codeFence(content string) string {
	longest, run := 0, 0
	for _, r := range content {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return strings.Repeat("`", max(3, longest+1))
}

// ExportToText converts pastes to plain text format
func ExportToText(pastes []models.Paste) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Pastes: %d\n", len(pastes)))

	for i, p := range pastes {
		buf.WriteString(fmt.Sprintf("\n[%d] ", i+1))
		writeTextPaste(&buf, p)
	}

	return buf.Bytes(), nil
}

func writeTextPaste(buf *bytes.Buffer, p models.Paste) {
	buf.WriteString(DisplayTitle(p) + "\n")
	buf.WriteString(fmt.Sprintf("ID: %s\n", p.ID))
	buf.WriteString(fmt.Sprintf("Created: %s\n\n", FormatDate(p.CreatedAt)))
	buf.WriteString(p.Content)
	if !strings.HasSuffix(p.Content, "\n") {
		buf.WriteString("\n")
	}
}

// WriteExport encodes pastes and writes them to path.
//
// Defaults to pastes.{ext} in the working directory when path is empty.
func WriteExport(pastes []models.Paste, format Format, path string) (string, error) {
	if path == "" {
		path = "pastes." + format.Extension()
	}

	data, err := Export(pastes, format)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", format, err)
	}

	return path, nil
}
