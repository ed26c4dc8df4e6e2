package put_shift_template

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/shifts"
)

const (
	msgInvalidStudioID    = "некорректный ID студии"
	msgInvalidStaffID     = "некорректный ID сотрудника"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется аутентификация"
	msgStudioNotFound     = "студия не найдена"
	msgStaffNotFound      = "сотрудник не найден"
	msgLocationNotFound   = "локация не найдена"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service ShiftService
	logger  Logger
}

func NewHandler(service ShiftService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/studios/{studioId}/staff/{staffId}/shift-template
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	studioID, err := strconv.ParseInt(vars["studioId"], 10, 64)
	if err != nil || studioID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}
	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil || staffID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req PutTemplateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /studios/{id}/staff/{id}/shift-template - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(userID, studioID, staffID)
	if err != nil {
		h.logger.Warn("PUT /studios/{id}/staff/{id}/shift-template - Invalid request: studio_id=%d, staff_id=%d, error=%v",
			studioID, staffID, err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.PutTemplate(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, shifts.ErrStudioNotFound):
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, shifts.ErrStaffNotFound):
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, shifts.ErrLocationNotFound):
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, shifts.ErrAccessDenied):
			h.logger.Warn("PUT /studios/{id}/staff/{id}/shift-template - Access denied: studio_id=%d, user_id=%d",
				studioID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, shifts.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /studios/{id}/staff/{id}/shift-template - Failed: studio_id=%d, staff_id=%d, error=%v",
				studioID, staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /studios/{id}/staff/{id}/shift-template - Replaced: studio_id=%d, staff_id=%d, entries=%d",
		studioID, staffID, len(result.Entries))
	handlers.RespondJSON(w, http.StatusOK, result)
}
