package get_history

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-VenueMonitor/internal/api/handlers"
)

const (
	defaultLimit = 50
	maxLimit     = 500

	msgInvalidLimit = "некорректный limit, ожидается число от 1 до 500"
)

type Handler struct {
	repo   HistoryRepository
	logger Logger
}

func NewHandler(repo HistoryRepository, logger Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// Handle GET /api/v1/history
// Query params: limit (optional, default 50)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	limit := uint64(defaultLimit)
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.ParseUint(limitStr, 10, 64)
		if err != nil || parsed == 0 || parsed > maxLimit {
			h.logger.Warn("GET /history - Invalid limit: %q", limitStr)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		limit = parsed
	}

	records, err := h.repo.ListRecent(r.Context(), limit)
	if err != nil {
		h.logger.Error("GET /history - Failed to list history: limit=%d, error=%v", limit, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /history - History retrieved: records=%d", len(records))
	handlers.RespondJSON(w, http.StatusOK, FromRecords(records))
}
