package get_bookable_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	getBookableSlots "github.com/m04kA/SMC-StudioBookingService/internal/usecase/get_bookable_slots"
)

const (
	msgInvalidStudioID    = "некорректный ID студии"
	msgInvalidLocationID  = "некорректный ID локации"
	msgInvalidStaffID     = "некорректный ID мастера"
	msgInvalidServiceID   = "некорректный параметр serviceId"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidGranularity = "некорректный параметр granularityMinutes"
	msgStudioNotFound     = "студия не найдена"
	msgLocationNotFound   = "локация не найдена"
	msgServiceNotFound    = "услуга не найдена"
	msgStaffNotFound      = "мастер не найден"
	msgServiceNotAtLoc    = "услуга недоступна на выбранной локации"
	msgStaffNotAtLoc      = "мастер не работает на выбранной локации"
)

type Handler struct {
	useCase GetBookableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetBookableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/studios/{studioId}/locations/{locationId}/staff/{staffId}/bookable-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	studioID, err := strconv.ParseInt(vars["studioId"], 10, 64)
	if err != nil || studioID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}
	locationID, err := strconv.ParseInt(vars["locationId"], 10, 64)
	if err != nil || locationID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}
	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil || staffID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	serviceID, err := strconv.ParseInt(r.URL.Query().Get("serviceId"), 10, 64)
	if err != nil || serviceID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	granularity := 0
	if raw := r.URL.Query().Get("granularityMinutes"); raw != "" {
		granularity, err = strconv.Atoi(raw)
		if err != nil || granularity <= 0 {
			handlers.RespondBadRequest(w, msgInvalidGranularity)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getBookableSlots.Request{
		StudioID:           studioID,
		LocationID:         locationID,
		ServiceID:          serviceID,
		StaffID:            staffID,
		Date:               date,
		GranularityMinutes: granularity,
	})
	if err != nil {
		switch {
		case errors.Is(err, getBookableSlots.ErrStudioNotFound):
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, getBookableSlots.ErrLocationNotFound):
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, getBookableSlots.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getBookableSlots.ErrStaffNotFound):
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, getBookableSlots.ErrServiceNotAvailableAtLocation):
			handlers.RespondBadRequest(w, msgServiceNotAtLoc)

		case errors.Is(err, getBookableSlots.ErrStaffNotAtLocation):
			handlers.RespondBadRequest(w, msgStaffNotAtLoc)

		case errors.Is(err, getBookableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET bookable-slots - Failed: studio_id=%d, staff_id=%d, error=%v",
				studioID, staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
