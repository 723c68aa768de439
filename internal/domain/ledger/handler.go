package ledger

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cryptoprivacy/storefront-api/internal/pkg/errorhandler"
	"github.com/cryptoprivacy/storefront-api/internal/pkg/response"
)

// Handler handles admin ledger HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates ledger handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// MountRequest is the body of POST /sessions
type MountRequest struct {
	Timezone string `json:"tz"`
}

// MountResponse returns the new session id with its first view
type MountResponse struct {
	SessionID string      `json:"session_id"`
	View      RenderModel `json:"view"`
}

// PageRequest is the body of PUT /sessions/{id}/page
type PageRequest struct {
	Page int `json:"page"`
}

// ListTransactions handles GET /admin/api/transactions.
// The body is the bare record array, or {"error": msg} on store failure.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.FetchAll(r.Context())
	if err != nil {
		msg := err.Error()
		var storeErr *StoreError
		if errors.As(err, &storeErr) {
			msg = storeErr.Message
		}
		msg = errorhandler.Truncate(msg, 500)
		errorhandler.LogExternalServiceError(r.Context(), "ledger_store", "fetch_all", err)
		response.Raw(w, http.StatusInternalServerError, map[string]string{"error": msg})
		return
	}
	response.Raw(w, http.StatusOK, records)
}

// CreateSession handles POST /admin/api/ledger/sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req MountRequest
	if err := response.DecodeJSON(r.Body, &req, true); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if req.Timezone == "" {
		req.Timezone = r.URL.Query().Get("tz")
	}

	sess, view, err := h.svc.Mount(r.Context(), req.Timezone)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.Created(w, MountResponse{SessionID: sess.ID, View: view})
}

// GetSession handles GET /admin/api/ledger/sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	h.respondView(w, r, view, err)
}

// UpdateFilters handles PUT /admin/api/ledger/sessions/{id}/filters
func (h *Handler) UpdateFilters(w http.ResponseWriter, r *http.Request) {
	var req FilterState
	if err := response.DecodeJSON(r.Body, &req, false); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	view, err := h.svc.SetFilters(r.Context(), chi.URLParam(r, "id"), req)
	h.respondView(w, r, view, err)
}

// NextPage handles POST /admin/api/ledger/sessions/{id}/next
func (h *Handler) NextPage(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Next(r.Context(), chi.URLParam(r, "id"))
	h.respondView(w, r, view, err)
}

// PreviousPage handles POST /admin/api/ledger/sessions/{id}/previous
func (h *Handler) PreviousPage(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Previous(r.Context(), chi.URLParam(r, "id"))
	h.respondView(w, r, view, err)
}

// SetPage handles PUT /admin/api/ledger/sessions/{id}/page
func (h *Handler) SetPage(w http.ResponseWriter, r *http.Request) {
	var req PageRequest
	if err := response.DecodeJSON(r.Body, &req, true); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if req.Page == 0 {
		if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
			req.Page = p
		}
	}

	view, err := h.svc.SetPage(r.Context(), chi.URLParam(r, "id"), req.Page)
	h.respondView(w, r, view, err)
}

// Export handles GET /admin/api/ledger/sessions/{id}/export
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	exp, err := h.svc.Export(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	out := response.Attachment(w, exp.Filename, exportContentType)
	_, _ = out.Write(exp.Data)
}

// DeleteSession handles DELETE /admin/api/ledger/sessions/{id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Unmount(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleError(w, r, err)
		return
	}
	response.NoContent(w)
}

func (h *Handler) respondView(w http.ResponseWriter, r *http.Request, view RenderModel, err error) {
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	response.OK(w, view)
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		response.NotFound(w, "Ledger session not found")
	case errors.Is(err, ErrInvalidTimezone):
		response.BadRequest(w, err.Error())
	default:
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "Ledger session failed", err)
	}
}
