package handler

import (
	"encoding/json"
	"net/http"

	"staybook/internal/users/service"
	apperrors "staybook/pkg/errors"
	httputil "staybook/pkg/http"
	"staybook/pkg/logger"
	"staybook/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

type UserHandler struct {
	service service.UserService
	auth    func(httprouter.Handle) httprouter.Handle
	log     *logger.Logger
}

func NewUserHandler(service service.UserService, auth func(httprouter.Handle) httprouter.Handle, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/user", h.auth(h.GetProfile))
	router.POST("/api/user/store-recent-search", h.auth(h.StoreRecentSearch))
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.writeFailure(w, "GetProfile", apperrors.Unauthorized("Authentication required"))
		return
	}

	user, err := h.service.GetProfile(r.Context(), identity.Subject)
	if err != nil {
		h.writeFailure(w, "GetProfile", err)
		return
	}

	if err := httputil.WriteSuccess(w, httputil.Envelope{
		"role":                 user.Role,
		"recentSearchedCities": user.RecentSearchedCities,
	}); err != nil {
		h.log.Error("failed to write response", "handler", "GetProfile", "error", err)
	}
}

type recentSearchRequest struct {
	RecentSearchedCity string `json:"recentSearchedCity"`
}

func (h *UserHandler) StoreRecentSearch(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.writeFailure(w, "StoreRecentSearch", apperrors.Unauthorized("Authentication required"))
		return
	}

	var req recentSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeFailure(w, "StoreRecentSearch", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.StoreRecentSearch(r.Context(), identity.Subject, req.RecentSearchedCity); err != nil {
		h.writeFailure(w, "StoreRecentSearch", err)
		return
	}

	if err := httputil.WriteMessage(w, "City added"); err != nil {
		h.log.Error("failed to write response", "handler", "StoreRecentSearch", "error", err)
	}
}

func (h *UserHandler) writeFailure(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteFailure(w, err); writeErr != nil {
		h.log.Error("failed to write failure response", "handler", handlerName, "error", writeErr)
	}
}
