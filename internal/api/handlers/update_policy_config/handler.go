package update_policy_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/policyconfig"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/policyconfig/models"
)

const (
	msgInvalidStudioID    = "некорректный ID студии"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется аутентификация"
	msgStudioNotFound     = "студия не найдена"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректные параметры политики"
)

type Handler struct {
	service PolicyConfigService
	logger  Logger
}

func NewHandler(service PolicyConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/studios/{studioId}/policy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	studioID, err := strconv.ParseInt(vars["studioId"], 10, 64)
	if err != nil || studioID <= 0 {
		h.logger.Warn("PUT /studios/{id}/policy - Invalid studio ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.UpdatePolicyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /studios/{id}/policy - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.Update(r.Context(), studioID, &req)
	if err != nil {
		switch {
		case errors.Is(err, policyconfig.ErrStudioNotFound):
			h.logger.Warn("PUT /studios/{id}/policy - Studio not found: studio_id=%d", studioID)
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, policyconfig.ErrAccessDenied):
			h.logger.Warn("PUT /studios/{id}/policy - Access denied: studio_id=%d, user_id=%d", studioID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, policyconfig.ErrInvalidInput):
			h.logger.Warn("PUT /studios/{id}/policy - Invalid input: studio_id=%d, error=%v", studioID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /studios/{id}/policy - Failed to update policy: studio_id=%d, error=%v", studioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /studios/{id}/policy - Policy updated: studio_id=%d, user_id=%d", studioID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
