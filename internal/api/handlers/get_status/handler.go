package get_status

import (
	"net/http"

	"github.com/m04kA/SMC-VenueMonitor/internal/api/handlers"
)

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

// Handle GET /api/v1/status
// Query params: venueId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("GET /status - Failed to list statuses: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	if venueID := r.URL.Query().Get("venueId"); venueID != "" {
		filtered := items[:0]
		for _, item := range items {
			if item.VenueID == venueID {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	h.logger.Info("GET /status - Statuses retrieved: pairs=%d", len(items))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(items))
}
