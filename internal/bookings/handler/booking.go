package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"staybook/internal/bookings/service"
	apperrors "staybook/pkg/errors"
	httputil "staybook/pkg/http"
	"staybook/pkg/logger"
	"staybook/pkg/middleware"
	"staybook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	auth    func(httprouter.Handle) httprouter.Handle
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, auth func(httprouter.Handle) httprouter.Handle, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/bookings/check-availability", h.CheckAvailability)
	router.POST("/api/bookings/create", h.auth(h.Create))
	router.GET("/api/bookings/user", h.auth(h.ListForUser))
	router.GET("/api/bookings/hotel", h.auth(h.HotelDashboard))
}

func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeFailure(w, "CheckAvailability", apperrors.InvalidInput("Invalid request body"))
		return
	}

	isAvailable, err := h.service.CheckAvailability(r.Context(), &req)
	if err != nil {
		h.writeFailure(w, "CheckAvailability", err)
		return
	}

	if err := httputil.WriteSuccess(w, httputil.Envelope{"isAvailable": isAvailable}); err != nil {
		h.log.Error("failed to write response", "handler", "CheckAvailability", "error", err)
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.writeFailure(w, "Create", apperrors.Unauthorized("Authentication required"))
		return
	}

	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeFailure(w, "Create", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if _, err := h.service.Create(r.Context(), identity.Subject, &req); err != nil {
		h.writeFailure(w, "Create", err)
		return
	}

	if err := httputil.WriteMessage(w, "Booking created successfully"); err != nil {
		h.log.Error("failed to write response", "handler", "Create", "error", err)
	}
}

func (h *BookingHandler) ListForUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.writeFailure(w, "ListForUser", apperrors.Unauthorized("Authentication required"))
		return
	}

	query := r.URL.Query()

	limit := 0
	if limitStr := query.Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			h.writeFailure(w, "ListForUser", apperrors.InvalidInput("invalid limit parameter: "+limitStr))
			return
		}
	}

	var offset int64
	if offsetStr := query.Get("offset"); offsetStr != "" {
		var err error
		offset, err = strconv.ParseInt(offsetStr, 10, 64)
		if err != nil {
			h.writeFailure(w, "ListForUser", apperrors.InvalidInput("invalid offset parameter: "+offsetStr))
			return
		}
	}

	bookings, err := h.service.ListForUser(r.Context(), identity.Subject, limit, offset)
	if err != nil {
		h.writeFailure(w, "ListForUser", err)
		return
	}

	if err := httputil.WriteSuccess(w, httputil.Envelope{"bookings": bookings}); err != nil {
		h.log.Error("failed to write response", "handler", "ListForUser", "error", err)
	}
}

func (h *BookingHandler) HotelDashboard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.writeFailure(w, "HotelDashboard", apperrors.Unauthorized("Authentication required"))
		return
	}

	dashboard, err := h.service.HotelDashboard(r.Context(), identity.Subject)
	if err != nil {
		h.writeFailure(w, "HotelDashboard", err)
		return
	}

	if err := httputil.WriteSuccess(w, httputil.Envelope{"dashboardData": dashboard}); err != nil {
		h.log.Error("failed to write response", "handler", "HotelDashboard", "error", err)
	}
}

func (h *BookingHandler) writeFailure(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteFailure(w, err); writeErr != nil {
		h.log.Error("failed to write failure response", "handler", handlerName, "error", writeErr)
	}
}
