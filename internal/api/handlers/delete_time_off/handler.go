package delete_time_off

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/NikoCousin/book-am/internal/api/handlers"
	"github.com/NikoCousin/book-am/internal/api/middleware"
	"github.com/NikoCousin/book-am/internal/service/staff"
)

const (
	msgInvalidTimeOffID = "некорректный ID отгула"
	msgTimeOffNotFound  = "запись отгула не найдена"
	msgUnauthorized     = "требуется заголовок X-Business-ID"
)

type Handler struct {
	service StaffService
	logger  Logger
}

func NewHandler(service StaffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/time-off/{timeOffId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	timeOffID, err := strconv.ParseInt(mux.Vars(r)["timeOffId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /time-off/{id} - Invalid time off ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeOffID)
		return
	}

	if err := h.service.DeleteTimeOff(r.Context(), businessID, timeOffID); err != nil {
		if errors.Is(err, staff.ErrTimeOffNotFound) {
			h.logger.Warn("DELETE /time-off/{id} - Time off not found: time_off_id=%d, business_id=%d",
				timeOffID, businessID)
			handlers.RespondNotFound(w, msgTimeOffNotFound)
			return
		}
		h.logger.Error("DELETE /time-off/{id} - Failed to delete time off: time_off_id=%d, error=%v", timeOffID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /time-off/{id} - Time off deleted: time_off_id=%d, business_id=%d", timeOffID, businessID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
