package shared

import (
	"fmt"
	"net/url"
	"strings"
)

// EditQueryParam is the query parameter carrying the identifier of the paste being edited.
const EditQueryParam = "pasteId"

// ShareURL builds the read-only link for a paste: {origin}/pastes/{id}.
func ShareURL(origin, id string) string {
	return strings.TrimRight(origin, "/") + "/pastes/" + url.PathEscape(id)
}

// EditURL builds the editor link for a paste: {origin}/?pasteId={id}.
func EditURL(origin, id string) string {
	q := url.Values{}
	q.Set(EditQueryParam, id)
	return strings.TrimRight(origin, "/") + "/?" + q.Encode()
}

// ParseLink extracts a paste identifier from a share link, an edit link or a bare identifier.
//
// Input that does not look like a URL is returned trimmed and unchanged.
func ParseLink(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "://") {
		if s == "" {
			return "", fmt.Errorf("%w: empty paste reference", ErrInvalidArgument)
		}
		return s, nil
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	if id := u.Query().Get(EditQueryParam); id != "" {
		return id, nil
	}
	if id, ok := strings.CutPrefix(u.Path, "/pastes/"); ok && id != "" && !strings.Contains(id, "/") {
		return id, nil
	}
	return "", fmt.Errorf("%w: %s is not a paste link", ErrInvalidArgument, s)
}
