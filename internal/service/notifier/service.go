package notifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueMonitor/internal/domain"
)

// Service рассылает уведомления по всем включенным каналам
type Service struct {
	channels []Channel
	log      Logger
	metrics  Metrics
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(channels []Channel, log Logger, metrics Metrics) *Service {
	return &Service{
		channels: channels,
		log:      log,
		metrics:  metrics,
	}
}

// Channels возвращает имена подключенных каналов
func (s *Service) Channels() []string {
	names := make([]string, len(s.channels))
	for i, ch := range s.channels {
		names[i] = ch.Name()
	}
	return names
}

// Notify отправляет уведомление во все каналы.
// Ошибка одного канала не мешает отправке в остальные, повторов нет.
func (s *Service) Notify(ctx context.Context, n domain.Notification) error {
	if len(s.channels) == 0 {
		s.log.Warn("Notify: no channels enabled, venue=%s date=%s", n.VenueID, n.Date)
		return nil
	}

	var errs []error
	for _, ch := range s.channels {
		if err := s.send(ctx, ch, n); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ch.Name(), err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, errors.Join(errs...))
	}
	return nil
}

func (s *Service) send(ctx context.Context, ch Channel, n domain.Notification) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			s.metrics.IncNotification(ch.Name(), "error")
			s.log.Error("Notify: channel %s failed, venue=%s date=%s: %v", ch.Name(), n.VenueID, n.Date, err)
			return
		}
		s.metrics.IncNotification(ch.Name(), "ok")
		s.log.Info("Notify: channel %s delivered, venue=%s date=%s slots=%d", ch.Name(), n.VenueID, n.Date, len(n.Slots))
	}()

	return ch.Send(ctx, n)
}
