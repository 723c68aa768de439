package product

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cryptoprivacy/storefront-api/internal/pkg/errorhandler"
	"github.com/cryptoprivacy/storefront-api/internal/pkg/response"
)

// Handler handles product HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates product handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List handles GET /products
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListActive(r.Context())
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load products", err)
		return
	}
	response.OK(w, products)
}

// Get handles GET /products/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			response.NotFound(w, "Product not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load product", err)
		return
	}
	response.OK(w, p)
}

// Routes returns product routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{id}", h.Get)

	return r
}
