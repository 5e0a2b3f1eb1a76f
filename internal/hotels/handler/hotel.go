package handler

import (
	"encoding/json"
	"net/http"

	"staybook/internal/hotels/service"
	apperrors "staybook/pkg/errors"
	httputil "staybook/pkg/http"
	"staybook/pkg/logger"
	"staybook/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

type HotelHandler struct {
	service service.HotelService
	auth    func(httprouter.Handle) httprouter.Handle
	log     *logger.Logger
}

func NewHotelHandler(service service.HotelService, auth func(httprouter.Handle) httprouter.Handle, log *logger.Logger) *HotelHandler {
	return &HotelHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

func (h *HotelHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/hotels", h.auth(h.Register))
}

func (h *HotelHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.writeFailure(w, "Register", apperrors.Unauthorized("Authentication required"))
		return
	}

	var req service.RegisterHotelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeFailure(w, "Register", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if _, err := h.service.Register(r.Context(), identity.Subject, &req); err != nil {
		h.writeFailure(w, "Register", err)
		return
	}

	if err := httputil.WriteMessage(w, "Hotel Registered Successfully"); err != nil {
		h.log.Error("failed to write response", "handler", "Register", "error", err)
	}
}

func (h *HotelHandler) writeFailure(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteFailure(w, err); writeErr != nil {
		h.log.Error("failed to write failure response", "handler", handlerName, "error", writeErr)
	}
}
