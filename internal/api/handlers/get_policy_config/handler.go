package get_policy_config

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
)

const (
	msgInvalidStudioID = "некорректный ID студии"
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

// Handle GET /api/v1/studios/{studioId}/policy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	studioID, err := strconv.ParseInt(vars["studioId"], 10, 64)
	if err != nil || studioID <= 0 {
		h.logger.Warn("GET /studios/{id}/policy - Invalid studio ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	result, err := h.service.Get(r.Context(), studioID)
	if err != nil {
		h.logger.Error("GET /studios/{id}/policy - Failed to get policy: studio_id=%d, error=%v", studioID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
