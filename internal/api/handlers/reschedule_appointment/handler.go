package reschedule_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBookingService/internal/policy"
	rescheduleAppointment "github.com/m04kA/SMC-StudioBookingService/internal/usecase/reschedule_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidNewStart      = "некорректный формат newStart, ожидается RFC 3339"
	msgUnauthorized         = "требуется аутентификация"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "доступ запрещен"
	msgCannotReschedule     = "бронирование не может быть перенесено"
	msgSlotUnavailable      = "выбранный слот больше недоступен"
)

type Handler struct {
	useCase RescheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil || appointmentID <= 0 {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req RescheduleAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(appointmentID, userID)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Failed to parse newStart: %v", err)
		handlers.RespondBadRequest(w, msgInvalidNewStart)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Отказ политики - ожидаемый исход, отдельный формат ответа
		if v, ok := policy.AsViolation(err); ok {
			h.logger.Info("PATCH /appointments/{id}/reschedule - Policy violation: appointment_id=%d, reason=%s",
				appointmentID, v.Reason)
			handlers.RespondPolicyViolation(w, v)
			return
		}

		switch {
		case errors.Is(err, rescheduleAppointment.ErrSlotNoLongerAvailable):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Slot no longer available: appointment_id=%d",
				appointmentID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, rescheduleAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleAppointment.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Access denied: appointment_id=%d, user_id=%d",
				appointmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleAppointment.ErrNotReschedulable):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Cannot reschedule: appointment_id=%d",
				appointmentID)
			handlers.RespondBadRequest(w, msgCannotReschedule)

		case errors.Is(err, rescheduleAppointment.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /appointments/{id}/reschedule - Failed: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/reschedule - Rescheduled: appointment_id=%d, user_id=%d",
		appointmentID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
