package create_shift

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
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется аутентификация"
	msgStudioNotFound     = "студия не найдена"
	msgStaffNotFound      = "сотрудник не найден"
	msgLocationNotFound   = "локация не найдена"
	msgForbidden          = "доступ запрещен"
	msgShiftConflict      = "смена пересекается с существующей сменой"
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

// Handle POST /api/v1/studios/{studioId}/shifts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	studioID, err := strconv.ParseInt(vars["studioId"], 10, 64)
	if err != nil || studioID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateShiftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /studios/{id}/shifts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(userID, studioID)
	if err != nil {
		h.logger.Warn("POST /studios/{id}/shifts - Invalid request: studio_id=%d, error=%v", studioID, err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, shifts.ErrStudioNotFound):
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, shifts.ErrStaffNotFound):
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, shifts.ErrLocationNotFound):
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, shifts.ErrAccessDenied):
			h.logger.Warn("POST /studios/{id}/shifts - Access denied: studio_id=%d, user_id=%d",
				studioID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, shifts.ErrShiftConflict):
			h.logger.Warn("POST /studios/{id}/shifts - Shift conflict: studio_id=%d, staff_id=%d",
				studioID, req.StaffID)
			handlers.RespondConflict(w, msgShiftConflict)

		case errors.Is(err, shifts.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /studios/{id}/shifts - Failed: studio_id=%d, error=%v", studioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /studios/{id}/shifts - Created: shift_id=%d, studio_id=%d, staff_id=%d",
		result.ID, studioID, req.StaffID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
