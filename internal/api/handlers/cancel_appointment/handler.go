package cancel_appointment

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBookingService/internal/policy"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgUnauthorized         = "требуется аутентификация"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "доступ запрещен"
	msgCannotCancel         = "бронирование не может быть отменено"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil || appointmentID <= 0 {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Тело опционально: отмена без причины - пустой body
	var req CancelAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Cancel(r.Context(), appointmentID, req.ToServiceRequest(userID))
	if err != nil {
		// Отказ политики - ожидаемый исход, отдельный формат ответа
		if v, ok := policy.AsViolation(err); ok {
			h.logger.Info("PATCH /appointments/{id}/cancel - Policy violation: appointment_id=%d, reason=%s",
				appointmentID, v.Reason)
			handlers.RespondPolicyViolation(w, v)
			return
		}

		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Access denied: appointment_id=%d, user_id=%d",
				appointmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrNotCancellable):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Cannot cancel: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgCannotCancel)

		case errors.Is(err, appointments.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /appointments/{id}/cancel - Failed: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/cancel - Cancelled: appointment_id=%d, user_id=%d",
		appointmentID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
