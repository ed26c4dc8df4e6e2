package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBookingService/internal/policy"
	createAppointment "github.com/m04kA/SMC-StudioBookingService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStart       = "некорректный формат scheduledStart, ожидается RFC 3339"
	msgUnauthorized       = "требуется аутентификация"
	msgStudioNotFound     = "студия не найдена"
	msgLocationNotFound   = "локация не найдена"
	msgServiceNotFound    = "услуга не найдена"
	msgStaffNotFound      = "мастер не найден"
	msgServiceNotAtLoc    = "услуга недоступна на выбранной локации"
	msgStaffNotAtLoc      = "мастер не работает на выбранной локации"
	msgSlotUnavailable    = "выбранный слот больше недоступен"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse scheduledStart: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Отказ политики - ожидаемый исход, отдельный формат ответа
		if v, ok := policy.AsViolation(err); ok {
			h.logger.Info("POST /appointments - Policy violation: client_id=%d, reason=%s", clientID, v.Reason)
			handlers.RespondPolicyViolation(w, v)
			return
		}

		switch {
		case errors.Is(err, createAppointment.ErrSlotNoLongerAvailable):
			h.logger.Warn("POST /appointments - Slot no longer available: client_id=%d, studio_id=%d",
				clientID, req.StudioID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createAppointment.ErrStudioNotFound):
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, createAppointment.ErrLocationNotFound):
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrStaffNotFound):
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotAvailableAtLocation):
			handlers.RespondBadRequest(w, msgServiceNotAtLoc)

		case errors.Is(err, createAppointment.ErrStaffNotAtLocation):
			handlers.RespondBadRequest(w, msgStaffNotAtLoc)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: client_id=%d, error=%v",
				clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, client_id=%d",
		result.ID, clientID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
