package server

import (
	"html/template"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/pbin/internal/formatter"
	"github.com/desertthunder/pbin/internal/models"
)

// PasteGetter looks up a single paste.
type PasteGetter interface {
	Get(id string) (models.Paste, bool)
}

var shareTemplate = template.Must(template.New("share").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} · pbin</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 56rem; margin: 2rem auto; padding: 0 1rem; color: #222; }
h1 { margin-bottom: .25rem; }
.meta { color: #626262; font-size: .9rem; }
pre { background: #f6f6f6; padding: 1rem; border-radius: 6px; overflow-x: auto; white-space: pre-wrap; }
</style>
</head>
<body>
{{- if .Found}}
<h1>{{.Title}}</h1>
<p class="meta">Created {{.Created}} · <a href="?raw=1">raw</a></p>
<pre>{{.Content}}</pre>
{{- else}}
<h1>Paste not found</h1>
<p class="meta">No paste exists with id <code>{{.ID}}</code>.</p>
{{- end}}
</body>
</html>
`))

type sharePage struct {
	Found   bool
	ID      string
	Title   string
	Created string
	Content string
}

// ShareHandler serves the read-only view of a single paste at /pastes/{id}.
type ShareHandler struct {
	store     PasteGetter
	validator *Validator
	logger    *log.Logger
}

var _ Handler = (*ShareHandler)(nil)

// NewShareHandler creates a [ShareHandler].
func NewShareHandler(s PasteGetter, v *Validator, logger *log.Logger) *ShareHandler {
	return &ShareHandler{store: s, validator: v, logger: logger}
}

func (h *ShareHandler) Routes() []string {
	return []string{"GET /pastes/{id}"}
}

func (h *ShareHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var (
		p     models.Paste
		found bool
	)
	if h.validator.ValidID(id) {
		p, found = h.store.Get(id)
	}

	if r.URL.Query().Get("raw") == "1" {
		if !found {
			http.Error(w, "paste not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(p.Content)) //nolint:errcheck
		return
	}

	page := sharePage{Found: found, ID: id}
	status := http.StatusNotFound
	if found {
		status = http.StatusOK
		page.Title = formatter.DisplayTitle(p)
		page.Created = formatter.FormatDate(p.CreatedAt)
		page.Content = p.Content
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := shareTemplate.Execute(w, page); err != nil {
		h.logger.Error("failed to render share page", "id", id, "error", err)
	}
}
