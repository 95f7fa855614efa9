package get_history

import (
	"context"

	"github.com/m04kA/SMC-VenueMonitor/internal/infra/storage/history"
)

type HistoryRepository interface {
	ListRecent(ctx context.Context, limit uint64) ([]history.Record, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
