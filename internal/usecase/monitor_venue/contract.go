package monitor_venue

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VenueMonitor/internal/domain"
)

// UpstreamClient интерфейс клиента сайта бронирования
type UpstreamClient interface {
	// CheckBookable проверяет, открыто ли бронирование площадки на дату
	CheckBookable(ctx context.Context, venueID, date string) (domain.BookableStatus, error)
	// GetResources получает матрицу ресурсов площадки на дату
	GetResources(ctx context.Context, venueID, date string) (*domain.ResourceMatrix, error)
}

// Notifier интерфейс сервиса уведомлений
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}

// StatusStore интерфейс хранилища последних результатов проверки
type StatusStore interface {
	Save(ctx context.Context, status domain.PairStatus) error
}

// HistoryRepository интерфейс журнала отправленных уведомлений
type HistoryRepository interface {
	SaveNotified(ctx context.Context, venue domain.Venue, date string, slots []domain.AvailableSlot, notifiedAt time.Time) error
}

// Metrics интерфейс для учета результатов проверки
type Metrics interface {
	ObservePair(outcome string)
	SetSlotsFound(venueID, date string, count int)
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

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
