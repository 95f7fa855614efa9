package notifier

import (
	"context"

	"github.com/m04kA/SMC-VenueMonitor/internal/domain"
)

// Channel канал доставки уведомлений
type Channel interface {
	Name() string
	Send(ctx context.Context, n domain.Notification) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс для учета отправленных уведомлений
type Metrics interface {
	IncNotification(channel, result string)
}
