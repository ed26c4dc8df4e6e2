package materialize_shifts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/api/middleware"
	materializeShifts "github.com/m04kA/SMC-StudioBookingService/internal/usecase/materialize_shifts"
)

const (
	msgInvalidStudioID    = "некорректный ID студии"
	msgInvalidStaffID     = "некорректный ID сотрудника"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется аутентификация"
	msgStudioNotFound     = "студия не найдена"
	msgStaffNotFound      = "сотрудник не найден"
	msgStaffNoLocation    = "у сотрудника нет локации для смен по умолчанию"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	useCase MaterializeShiftsUseCase
	logger  Logger
}

func NewHandler(useCase MaterializeShiftsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/studios/{studioId}/staff/{staffId}/shift-template/materialize
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

	var req MaterializeShiftsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST shift-template/materialize - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, studioID, staffID)
	if err != nil {
		h.logger.Warn("POST shift-template/materialize - Invalid request: studio_id=%d, staff_id=%d, error=%v",
			studioID, staffID, err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, materializeShifts.ErrStudioNotFound):
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, materializeShifts.ErrStaffNotFound):
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, materializeShifts.ErrStaffHasNoLocation):
			handlers.RespondBadRequest(w, msgStaffNoLocation)

		case errors.Is(err, materializeShifts.ErrAccessDenied):
			h.logger.Warn("POST shift-template/materialize - Access denied: studio_id=%d, user_id=%d",
				studioID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, materializeShifts.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST shift-template/materialize - Failed: studio_id=%d, staff_id=%d, error=%v",
				studioID, staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST shift-template/materialize - Done: studio_id=%d, staff_id=%d, created=%d, rejected=%d",
		studioID, staffID, result.CreatedCount, len(result.Rejected))
	handlers.RespondJSON(w, http.StatusOK, result)
}
