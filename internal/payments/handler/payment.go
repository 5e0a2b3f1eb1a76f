package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"staybook/internal/payments/service"
	apperrors "staybook/pkg/errors"
	httputil "staybook/pkg/http"
	"staybook/pkg/logger"
	"staybook/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

// maxWebhookBytes bounds the webhook payload read.
const maxWebhookBytes = 1 << 20

type PaymentHandler struct {
	service service.PaymentService
	auth    func(httprouter.Handle) httprouter.Handle
	log     *logger.Logger
}

func NewPaymentHandler(service service.PaymentService, auth func(httprouter.Handle) httprouter.Handle, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

func (h *PaymentHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/bookings/stripe-payment", h.auth(h.CreateCheckout))
	router.POST("/api/bookings/stripe-webhook", h.Webhook)
}

type checkoutRequest struct {
	BookingID string `json:"bookingId"`
}

func (h *PaymentHandler) CreateCheckout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.writeFailure(w, "CreateCheckout", apperrors.Unauthorized("Authentication required"))
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeFailure(w, "CreateCheckout", apperrors.InvalidInput("Invalid request body"))
		return
	}

	url, err := h.service.CreateCheckout(r.Context(), identity.Subject, req.BookingID)
	if err != nil {
		h.writeFailure(w, "CreateCheckout", err)
		return
	}

	if err := httputil.WriteSuccess(w, httputil.Envelope{"url": url}); err != nil {
		h.log.Error("failed to write response", "handler", "CreateCheckout", "error", err)
	}
}

// Webhook answers the gateway with plain status codes: non-2xx makes the
// gateway retry delivery.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBytes))
	if err != nil {
		if writeErr := httputil.WriteBadRequest(w, "Failed to read webhook payload"); writeErr != nil {
			h.log.Error("failed to write response", "handler", "Webhook", "error", writeErr)
		}
		return
	}

	signature := r.Header.Get("Stripe-Signature")

	if err := h.service.HandleWebhook(r.Context(), payload, signature); err != nil {
		appErr := apperrors.AsAppError(err)
		if writeErr := httputil.WriteBadRequest(w, appErr.Message); writeErr != nil {
			h.log.Error("failed to write response", "handler", "Webhook", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, httputil.Envelope{"received": true}); err != nil {
		h.log.Error("failed to write response", "handler", "Webhook", "error", err)
	}
}

func (h *PaymentHandler) writeFailure(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteFailure(w, err); writeErr != nil {
		h.log.Error("failed to write failure response", "handler", handlerName, "error", writeErr)
	}
}
