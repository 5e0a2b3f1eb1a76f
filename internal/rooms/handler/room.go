package handler

import (
	"encoding/json"
	"net/http"

	"staybook/internal/rooms/service"
	apperrors "staybook/pkg/errors"
	httputil "staybook/pkg/http"
	"staybook/pkg/logger"
	"staybook/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

type RoomHandler struct {
	service service.RoomService
	auth    func(httprouter.Handle) httprouter.Handle
	log     *logger.Logger
}

func NewRoomHandler(service service.RoomService, auth func(httprouter.Handle) httprouter.Handle, log *logger.Logger) *RoomHandler {
	return &RoomHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

func (h *RoomHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/rooms", h.auth(h.Create))
	router.GET("/api/rooms", h.ListAvailable)
	router.GET("/api/rooms/owner", h.auth(h.ListForOwner))
	router.POST("/api/rooms/toggle-availability", h.auth(h.ToggleAvailability))
}

func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.writeFailure(w, "Create", apperrors.Unauthorized("Authentication required"))
		return
	}

	var req service.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeFailure(w, "Create", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if _, err := h.service.Create(r.Context(), identity.Subject, &req); err != nil {
		h.writeFailure(w, "Create", err)
		return
	}

	if err := httputil.WriteMessage(w, "Room created successfully"); err != nil {
		h.log.Error("failed to write response", "handler", "Create", "error", err)
	}
}

func (h *RoomHandler) ListAvailable(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rooms, err := h.service.ListAvailable(r.Context())
	if err != nil {
		h.writeFailure(w, "ListAvailable", err)
		return
	}

	if err := httputil.WriteSuccess(w, httputil.Envelope{"rooms": rooms}); err != nil {
		h.log.Error("failed to write response", "handler", "ListAvailable", "error", err)
	}
}

func (h *RoomHandler) ListForOwner(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.writeFailure(w, "ListForOwner", apperrors.Unauthorized("Authentication required"))
		return
	}

	rooms, err := h.service.ListForOwner(r.Context(), identity.Subject)
	if err != nil {
		h.writeFailure(w, "ListForOwner", err)
		return
	}

	if err := httputil.WriteSuccess(w, httputil.Envelope{"rooms": rooms}); err != nil {
		h.log.Error("failed to write response", "handler", "ListForOwner", "error", err)
	}
}

type toggleRequest struct {
	RoomID string `json:"roomId"`
}

func (h *RoomHandler) ToggleAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.writeFailure(w, "ToggleAvailability", apperrors.Unauthorized("Authentication required"))
		return
	}

	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeFailure(w, "ToggleAvailability", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if _, err := h.service.ToggleAvailability(r.Context(), identity.Subject, req.RoomID); err != nil {
		h.writeFailure(w, "ToggleAvailability", err)
		return
	}

	if err := httputil.WriteMessage(w, "Room availability updated"); err != nil {
		h.log.Error("failed to write response", "handler", "ToggleAvailability", "error", err)
	}
}

func (h *RoomHandler) writeFailure(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteFailure(w, err); writeErr != nil {
		h.log.Error("failed to write failure response", "handler", handlerName, "error", writeErr)
	}
}
