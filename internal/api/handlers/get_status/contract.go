package get_status

import (
	"context"

	"github.com/m04kA/SMC-VenueMonitor/internal/domain"
)

type StatusStore interface {
	List(ctx context.Context) ([]domain.PairStatus, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
