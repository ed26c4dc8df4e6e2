package get_staff_shifts

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/shifts"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/shifts/models"
)

const (
	msgInvalidStudioID   = "некорректный ID студии"
	msgInvalidStaffID    = "некорректный ID сотрудника"
	msgInvalidLocationID = "некорректный параметр locationId"
	msgInvalidFrom       = "некорректный параметр from, ожидается YYYY-MM-DD"
	msgInvalidTo         = "некорректный параметр to, ожидается YYYY-MM-DD"
	msgStudioNotFound    = "студия не найдена"
	msgStaffNotFound     = "сотрудник не найден"
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

// Handle GET /api/v1/studios/{studioId}/staff/{staffId}/shifts
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

	from, err := time.Parse(domain.DateFormat, r.URL.Query().Get("from"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidFrom)
		return
	}
	to, err := time.Parse(domain.DateFormat, r.URL.Query().Get("to"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTo)
		return
	}

	var locationID *int64
	if raw := r.URL.Query().Get("locationId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			handlers.RespondBadRequest(w, msgInvalidLocationID)
			return
		}
		locationID = &id
	}

	result, err := h.service.GetStaffShifts(r.Context(), &models.GetStaffShiftsRequest{
		StudioID:   studioID,
		StaffID:    staffID,
		From:       from,
		To:         to,
		LocationID: locationID,
	})
	if err != nil {
		switch {
		case errors.Is(err, shifts.ErrStudioNotFound):
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, shifts.ErrStaffNotFound):
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, shifts.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /studios/{id}/staff/{id}/shifts - Failed: studio_id=%d, staff_id=%d, error=%v",
				studioID, staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
