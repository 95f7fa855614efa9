package get_slots

import (
	"context"

	"github.com/m04kA/SMC-VenueMonitor/internal/domain"
)

type StatusStore interface {
	ListWithSlots(ctx context.Context) ([]domain.PairStatus, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
