package monitor

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VenueMonitor/internal/domain"
	monitorVenue "github.com/m04kA/SMC-VenueMonitor/internal/usecase/monitor_venue"
)

// VenueChecker интерфейс use case проверки пары площадка/дата
type VenueChecker interface {
	Execute(ctx context.Context, req *monitorVenue.Request) (*monitorVenue.Response, error)
}

// StatusStore интерфейс хранилища статусов пар
type StatusStore interface {
	Retain(ctx context.Context, keep map[string]struct{}) ([]domain.PairStatus, error)
}

// Metrics интерфейс для учета циклов мониторинга
type Metrics interface {
	IncCycle()
	DeleteSlotsFound(venueID, date string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
