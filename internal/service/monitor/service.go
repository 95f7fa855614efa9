package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-VenueMonitor/internal/domain"
	monitorVenue "github.com/m04kA/SMC-VenueMonitor/internal/usecase/monitor_venue"
)

// Options настройки цикла мониторинга
type Options struct {
	Interval  time.Duration // Интервал между циклами
	PairDelay time.Duration // Минимальная пауза между проверками пар площадка/дата
}

// CycleReport итог одного цикла
type CycleReport struct {
	CycleID string
	Pairs   int // Сколько пар было проверено
	Failed  int // Сколько проверок завершились ошибкой
}

// Service периодически проверяет все площадки и даты из конфигурации.
// Пары обрабатываются строго последовательно.
type Service struct {
	venues       []domain.Venue
	checker      VenueChecker
	store        StatusStore
	interval     time.Duration
	limiter      *rate.Limiter
	timeProvider TimeProvider
	newCycleID   func() string
	logger       Logger
	metrics      Metrics
}

// NewService создает новый экземпляр сервиса мониторинга
func NewService(venues []domain.Venue, checker VenueChecker, store StatusStore, opts Options, logger Logger, metrics Metrics) *Service {
	interval := opts.Interval
	if interval <= 0 {
		interval = domain.DefaultCheckInterval
	}

	limit := rate.Inf
	if opts.PairDelay > 0 {
		limit = rate.Every(opts.PairDelay)
	}

	return &Service{
		venues:       venues,
		checker:      checker,
		store:        store,
		interval:     interval,
		limiter:      rate.NewLimiter(limit, 1),
		timeProvider: &monitorVenue.RealTimeProvider{},
		newCycleID:   uuid.NewString,
		logger:       logger,
		metrics:      metrics,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Run выполняет первый цикл сразу, затем повторяет его каждые interval
// до отмены контекста. Возвращает nil при штатной остановке.
func (s *Service) Run(ctx context.Context) error {
	s.logger.Info("Monitor: starting, interval=%s venues=%d", s.interval, len(s.venues))

	s.RunCycle(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Monitor: stopped")
			return nil
		case <-ticker.C:
			s.RunCycle(ctx)
		}
	}
}

// RunCycle проверяет все пары площадка/дата один раз.
// Ошибка одной пары не прерывает цикл.
func (s *Service) RunCycle(ctx context.Context) CycleReport {
	report := CycleReport{CycleID: s.newCycleID()}

	if ctx.Err() != nil {
		return report
	}

	if len(s.venues) == 0 {
		s.logger.Error("Monitor[%s]: no venues configured", report.CycleID)
		return report
	}

	defer s.metrics.IncCycle()

	checked := make(map[string]struct{})
	for _, venue := range s.venues {
		for _, date := range s.datesFor(venue) {
			if err := s.limiter.Wait(ctx); err != nil {
				s.logger.Info("Monitor[%s]: cycle interrupted: %v", report.CycleID, err)
				return report
			}
			checked[domain.PairKey(venue.ID, date)] = struct{}{}

			report.Pairs++
			if err := s.checkPair(ctx, report.CycleID, venue, date); err != nil {
				report.Failed++
				s.logger.Error("Monitor[%s]: check failed for venue %s date=%s: %v", report.CycleID, venue.DisplayName(), date, err)
			}
		}
	}

	s.prune(ctx, report.CycleID, checked)

	s.logger.Info("Monitor[%s]: cycle finished, pairs=%d failed=%d", report.CycleID, report.Pairs, report.Failed)
	return report
}

// prune убирает из хранилища и метрик пары, которых не было в полном цикле
// (например, вчерашняя дата площадки без дат)
func (s *Service) prune(ctx context.Context, cycleID string, checked map[string]struct{}) {
	if s.store == nil {
		return
	}

	removed, err := s.store.Retain(ctx, checked)
	if err != nil {
		s.logger.Warn("Monitor[%s]: failed to prune stale pairs: %v", cycleID, err)
		return
	}

	for _, st := range removed {
		s.metrics.DeleteSlotsFound(st.VenueID, st.Date)
		s.logger.Info("Monitor[%s]: dropped stale pair venue=%s date=%s", cycleID, st.VenueID, st.Date)
	}
}

// checkPair выполняет проверку одной пары, паника превращается в ошибку
func (s *Service) checkPair(ctx context.Context, cycleID string, venue domain.Venue, date string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	_, err = s.checker.Execute(ctx, &monitorVenue.Request{
		Venue:   venue,
		Date:    date,
		CycleID: cycleID,
	})
	return err
}

// datesFor возвращает даты площадки, без дат - сегодняшнюю
func (s *Service) datesFor(venue domain.Venue) []string {
	if len(venue.Dates) > 0 {
		return venue.Dates
	}
	return []string{s.timeProvider.Now().Format(domain.DateFormat)}
}
