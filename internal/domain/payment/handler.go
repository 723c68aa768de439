package payment

import (
	"errors"
	"net/http"

	"github.com/cryptoprivacy/storefront-api/internal/pkg/errorhandler"
	"github.com/cryptoprivacy/storefront-api/internal/pkg/nowpayments"
	"github.com/cryptoprivacy/storefront-api/internal/pkg/response"
	"github.com/cryptoprivacy/storefront-api/internal/pkg/validator"
)

// Handler handles payment HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates payment handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreatePayment handles POST /payments
// @Summary Create a hosted crypto invoice
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body CreatePaymentRequest true "Payment parameters"
// @Success 200 {object} response.Response{data=CreatePaymentResponse}
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /payments [post]
func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentRequest
	if err := response.DecodeJSON(r.Body, &req, false); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		if validator.HasRequiredErrors(errs) {
			response.ErrorWithDetails(w, http.StatusBadRequest, "BAD_REQUEST", "Missing required fields", errs)
			return
		}
		errorhandler.HandleValidation(r.Context(), w, errs)
		return
	}

	out, err := h.service.CreateInvoice(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.OK(w, out)
}

// RecordTransaction handles POST /transactions
// @Summary Record a pending wallet transaction
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body RecordTransactionRequest true "Transaction"
// @Success 201 {object} response.Response{data=Transaction}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /transactions [post]
func (h *Handler) RecordTransaction(w http.ResponseWriter, r *http.Request) {
	var req RecordTransactionRequest
	if err := response.DecodeJSON(r.Body, &req, false); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		if validator.HasRequiredErrors(errs) {
			response.ErrorWithDetails(w, http.StatusBadRequest, "BAD_REQUEST", "Missing required fields", errs)
			return
		}
		errorhandler.HandleValidation(r.Context(), w, errs)
		return
	}

	tx, err := h.service.RecordTransaction(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidAmount) {
			response.ValidationError(w, map[string]string{"amount": "Amount must be positive"})
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save transaction", err)
		return
	}

	response.Created(w, tx)
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *nowpayments.APIError
	switch {
	case errors.Is(err, ErrInvalidAmount):
		response.ValidationError(w, map[string]string{"amount": "Amount must be positive"})
	case errors.Is(err, ErrUnknownProduct):
		response.NotFound(w, "Product not found")
	case errors.As(err, &apiErr):
		errorhandler.LogExternalServiceError(r.Context(), "nowpayments", "create_payment", err)
		response.Error(w, http.StatusInternalServerError, "PAYMENT_PROVIDER_ERROR", apiErr.Message)
	case errors.Is(err, nowpayments.ErrNotConfigured):
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "PAYMENT_PROVIDER_ERROR", "Payment provider is not configured", err)
	case errors.Is(err, ErrProviderFailure):
		errorhandler.LogExternalServiceError(r.Context(), "nowpayments", "create_payment", err)
		response.Error(w, http.StatusInternalServerError, "PAYMENT_PROVIDER_ERROR", "Payment provider unavailable")
	default:
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", err)
	}
}
