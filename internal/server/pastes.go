package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/pbin/internal/models"
	"github.com/desertthunder/pbin/internal/shared"
)

// maxBodyBytes caps request bodies for create and update.
const maxBodyBytes = 1 << 20

type createPasteRequest struct {
	ID      string `json:"id" validate:"omitempty,pasteid"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type updatePasteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type pasteResponse struct {
	models.Paste
	ShareURL string `json:"shareUrl"`
	EditURL  string `json:"editUrl"`
}

type listResponse struct {
	Pastes []pasteResponse `json:"pastes"`
	Count  int             `json:"count"`
	Query  string          `json:"query,omitempty"`
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// PasteHandler serves the JSON paste API under /api/pastes.
type PasteHandler struct {
	store     PasteService
	validator *Validator
	origin    string
	logger    *log.Logger
	mux       *http.ServeMux
}

var _ Handler = (*PasteHandler)(nil)

// NewPasteHandler creates a [PasteHandler]. Share and edit links in responses are built against origin.
func NewPasteHandler(s PasteService, v *Validator, origin string, logger *log.Logger) *PasteHandler {
	h := &PasteHandler{store: s, validator: v, origin: origin, logger: logger, mux: http.NewServeMux()}

	h.mux.HandleFunc("GET /api/pastes", h.list)
	h.mux.HandleFunc("POST /api/pastes", h.create)
	h.mux.HandleFunc("GET /api/pastes/{id}", h.get)
	h.mux.HandleFunc("PUT /api/pastes/{id}", h.update)
	h.mux.HandleFunc("DELETE /api/pastes/{id}", h.remove)
	return h
}

func (h *PasteHandler) Routes() []string {
	return []string{"/api/pastes", "/api/pastes/"}
}

func (h *PasteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *PasteHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	pastes := h.store.FilterByTitle(q)

	resp := listResponse{Pastes: make([]pasteResponse, 0, len(pastes)), Count: len(pastes), Query: q}
	for _, p := range pastes {
		resp.Pastes = append(resp.Pastes, h.toResponse(p))
	}
	jsonResp(w, http.StatusOK, resp)
}

func (h *PasteHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createPasteRequest
	if !h.decode(w, r, &req) {
		return
	}

	var (
		p   models.Paste
		err error
	)
	if req.ID != "" {
		p, err = h.store.CreateWithID(r.Context(), req.ID, req.Title, req.Content)
	} else {
		p, err = h.store.Create(r.Context(), req.Title, req.Content)
	}
	if err != nil {
		h.storeErr(w, err)
		return
	}

	w.Header().Set("Location", "/api/pastes/"+p.ID)
	jsonResp(w, http.StatusCreated, h.toResponse(p))
}

func (h *PasteHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	p, found := h.store.Get(id)
	if !found {
		jsonErr(w, http.StatusNotFound, shared.ErrPasteNotFound.Error())
		return
	}
	jsonResp(w, http.StatusOK, h.toResponse(p))
}

func (h *PasteHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req updatePasteRequest
	if !h.decode(w, r, &req) {
		return
	}

	p, err := h.store.Update(r.Context(), id, req.Title, req.Content)
	if err != nil {
		h.storeErr(w, err)
		return
	}
	jsonResp(w, http.StatusOK, h.toResponse(p))
}

func (h *PasteHandler) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	removed, err := h.store.Remove(r.Context(), id)
	if err != nil {
		h.storeErr(w, err)
		return
	}
	if !removed {
		jsonErr(w, http.StatusNotFound, shared.ErrPasteNotFound.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PasteHandler) toResponse(p models.Paste) pasteResponse {
	return pasteResponse{
		Paste:    p,
		ShareURL: shared.ShareURL(h.origin, p.ID),
		EditURL:  shared.EditURL(h.origin, p.ID),
	}
}

// decode reads a JSON body into dst and validates it, writing a 400 on failure.
// Unknown fields are ignored.
func (h *PasteHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonErr(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		jsonErr(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}

	if fields := h.validator.ValidateStruct(dst); fields != nil {
		jsonResp(w, http.StatusBadRequest, errorResponse{Error: shared.ErrInvalidInput.Error(), Fields: fields})
		return false
	}
	return true
}

func (h *PasteHandler) pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if !h.validator.ValidID(id) {
		jsonErr(w, http.StatusBadRequest, shared.ErrInvalidID.Error())
		return "", false
	}
	return id, true
}

// storeErr maps store sentinel errors to HTTP statuses.
func (h *PasteHandler) storeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrPasteNotFound):
		jsonErr(w, http.StatusNotFound, shared.ErrPasteNotFound.Error())
	case errors.Is(err, shared.ErrDuplicateID):
		jsonErr(w, http.StatusConflict, shared.ErrDuplicateID.Error())
	case errors.Is(err, shared.ErrInvalidID), errors.Is(err, shared.ErrInvalidInput):
		jsonErr(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("store operation failed", "error", err)
		jsonErr(w, http.StatusInternalServerError, "internal server error")
	}
}

func jsonResp(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: strings.TrimSpace(msg)})
}
