package get_slots

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-VenueMonitor/internal/api/handlers"
	"github.com/m04kA/SMC-VenueMonitor/internal/domain"
)

const msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"

type Handler struct {
	store  StatusStore
	logger Logger
}

func NewHandler(store StatusStore, logger Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

// Handle GET /api/v1/slots
// Query params: venueId (optional), date (optional, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID := r.URL.Query().Get("venueId")
	date := r.URL.Query().Get("date")

	if date != "" {
		if _, err := time.Parse(domain.DateFormat, date); err != nil {
			h.logger.Warn("GET /slots - Invalid date format: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	items, err := h.store.ListWithSlots(r.Context())
	if err != nil {
		h.logger.Error("GET /slots - Failed to list slots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	filtered := make([]domain.PairStatus, 0, len(items))
	for _, item := range items {
		if venueID != "" && item.VenueID != venueID {
			continue
		}
		if date != "" && item.Date != date {
			continue
		}
		filtered = append(filtered, item)
	}

	h.logger.Info("GET /slots - Slots retrieved: venues=%d", len(filtered))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(filtered))
}
