package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/pbin/internal/formatter"
	"github.com/desertthunder/pbin/internal/models"
)

var _ list.Item = pasteItem{}

const previewLength = 60

// pasteItem wraps [models.Paste] to implement [list.Item].
type pasteItem struct {
	paste models.Paste
}

func (i pasteItem) FilterValue() string { return i.paste.Title }
func (i pasteItem) Title() string       { return formatter.DisplayTitle(i.paste) }
func (i pasteItem) Description() string {
	desc := formatter.FormatDate(i.paste.CreatedAt)
	if preview := contentPreview(i.paste.Content); preview != "" {
		desc = desc + " • " + preview
	}
	return desc
}

// contentPreview returns the first non-blank line of content, truncated to previewLength runes.
func contentPreview(content string) string {
	for line := range strings.Lines(content) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if r := []rune(line); len(r) > previewLength {
			return string(r[:previewLength-1]) + "…"
		}
		return line
	}
	return ""
}

func toItems(pastes []models.Paste) []list.Item {
	items := make([]list.Item, len(pastes))
	for i, p := range pastes {
		items[i] = pasteItem{paste: p}
	}
	return items
}
