package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/pbin/internal/models"
	"github.com/desertthunder/pbin/internal/shared"
	"gopkg.in/yaml.v3"
)

// importRecord accepts both the current shape and the legacy browser-store shape,
// which keyed records by "_id". Unknown fields are ignored.
type importRecord struct {
	ID        string `json:"id" yaml:"id"`
	LegacyID  string `json:"_id" yaml:"_id"`
	Title     string `json:"title" yaml:"title"`
	Content   string `json:"content" yaml:"content"`
	CreatedAt string `json:"createdAt" yaml:"createdAt"`
}

func (r importRecord) toPaste() (models.Paste, error) {
	id := r.ID
	if id == "" {
		id = r.LegacyID
	}

	var createdAt time.Time
	if s := strings.TrimSpace(r.CreatedAt); s != "" {
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return models.Paste{}, fmt.Errorf("%w: invalid createdAt %q for paste %q", shared.ErrInvalidInput, s, id)
		}
		createdAt = t
	}

	return models.NewPaste(id, r.Title, r.Content, createdAt), nil
}

// ParseImport decodes a JSON or YAML paste collection.
//
// Both a list and a single object are accepted. Records without an id are returned with an
// empty ID so the caller can assign one; a missing createdAt is returned as the zero time.
func ParseImport(data []byte, format Format) ([]models.Paste, error) {
	var records []importRecord

	switch format {
	case FormatJSON:
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] == '{' {
			var single importRecord
			if err := json.Unmarshal(trimmed, &single); err != nil {
				return nil, fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
			}
			records = []importRecord{single}
		} else if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
		}
	case FormatYAML:
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
		}
		if len(node.Content) > 0 && node.Content[0].Kind == yaml.MappingNode {
			var single importRecord
			if err := node.Content[0].Decode(&single); err != nil {
				return nil, fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
			}
			records = []importRecord{single}
		} else if len(node.Content) > 0 {
			if err := node.Content[0].Decode(&records); err != nil {
				return nil, fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
			}
		}
	default:
		return nil, fmt.Errorf("%w: cannot import %q", shared.ErrUnsupportedFormat, format)
	}

	pastes := make([]models.Paste, 0, len(records))
	for _, r := range records {
		p, err := r.toPaste()
		if err != nil {
			return nil, err
		}
		pastes = append(pastes, p)
	}
	return pastes, nil
}
