package storefront

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cryptoprivacy/storefront-api/internal/pkg/errorhandler"
	"github.com/cryptoprivacy/storefront-api/internal/pkg/response"
)

// Handler handles storefront HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates storefront handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Landing handles GET /landing
// @Summary Landing page model
// @Tags Storefront
// @Produce json
// @Param lang query string false "en or jp"
// @Success 200 {object} response.Response{data=Landing}
// @Router /landing [get]
func (h *Handler) Landing(w http.ResponseWriter, r *http.Request) {
	landing, err := h.service.Landing(r.Context(), ParseLang(r.URL.Query().Get("lang")))
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load products", err)
		return
	}
	response.OK(w, landing)
}

// Success handles GET /status/success
func (h *Handler) Success(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.Success(r.Context(), r.URL.Query().Get("product_id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	response.OK(w, page)
}

// Cancel handles GET /status/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.Cancel(r.Context(), r.URL.Query().Get("product_id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	response.OK(w, page)
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrInvalidProduct) {
		response.NotFound(w, "Missing or invalid product")
		return
	}
	errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", err)
}

// Routes returns storefront routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/landing", h.Landing)
	r.Route("/status", func(r chi.Router) {
		r.Get("/success", h.Success)
		r.Get("/cancel", h.Cancel)
	})

	return r
}
