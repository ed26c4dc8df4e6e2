package delete_shift

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
	msgInvalidShiftID = "некорректный ID смены"
	msgUnauthorized   = "требуется аутентификация"
	msgShiftNotFound  = "смена не найдена"
	msgForbidden      = "доступ запрещен"
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

// Handle DELETE /api/v1/shifts/{shiftId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	shiftID, err := strconv.ParseInt(vars["shiftId"], 10, 64)
	if err != nil || shiftID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidShiftID)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	if err := h.service.Delete(r.Context(), shiftID, userID); err != nil {
		switch {
		case errors.Is(err, shifts.ErrShiftNotFound):
			handlers.RespondNotFound(w, msgShiftNotFound)

		case errors.Is(err, shifts.ErrStudioNotFound):
			handlers.RespondNotFound(w, msgShiftNotFound)

		case errors.Is(err, shifts.ErrAccessDenied):
			h.logger.Warn("DELETE /shifts/{id} - Access denied: shift_id=%d, user_id=%d", shiftID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /shifts/{id} - Failed: shift_id=%d, error=%v", shiftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /shifts/{id} - Deleted: shift_id=%d, user_id=%d", shiftID, userID)
	w.WriteHeader(http.StatusNoContent)
}
