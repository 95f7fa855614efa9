package monitor_venue

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-VenueMonitor/internal/domain"
)

// UseCase use case проверки одной пары площадка/дата:
// проверка открытия бронирования -> матрица ресурсов -> фильтр слотов -> уведомление
type UseCase struct {
	client       UpstreamClient
	notifier     Notifier
	statusStore  StatusStore
	history      HistoryRepository
	metrics      Metrics
	timeProvider TimeProvider
	opts         Options
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// history может быть nil, если журнал выключен.
func NewUseCase(
	client UpstreamClient,
	notifier Notifier,
	statusStore StatusStore,
	history HistoryRepository,
	metrics Metrics,
	opts Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		client:       client,
		notifier:     notifier,
		statusStore:  statusStore,
		history:      history,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		opts:         opts,
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет проверку пары площадка/дата.
// "Не открыто" и "нет слотов" не являются ошибками; ошибки запросов к сайту
// возвращаются, но состояние все равно фиксируется в хранилище статусов.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("MonitorVenue: validation failed: %v", err)
		uc.metrics.ObservePair(string(domain.OutcomeInvalidInput))
		return nil, err
	}

	venue := req.Venue
	name := venue.DisplayName()

	uc.logger.Info("MonitorVenue[%s]: checking venue=%s (%s) date=%s", req.CycleID, venue.ID, name, req.Date)

	// 2. Проверяем, открыто ли бронирование
	bookable, err := uc.client.CheckBookable(ctx, venue.ID, req.Date)
	if err != nil {
		uc.logger.Warn("MonitorVenue[%s]: unable to get bookable status for %s date=%s: %v", req.CycleID, name, req.Date, err)
		resp := uc.finish(ctx, req, domain.StateCheckingBookable, domain.OutcomeBookableUnknown, err.Error(), nil)
		return resp, fmt.Errorf("%w: venue=%s date=%s: %v", ErrBookableUnknown, venue.ID, req.Date, err)
	}

	if !bookable.Bookable {
		msg := bookable.Msg
		if msg == "" {
			msg = "unknown"
		}
		uc.logger.Info("MonitorVenue[%s]: %s date=%s is not open for booking yet (msg: %s)", req.CycleID, name, req.Date, msg)
		return uc.finish(ctx, req, domain.StateCheckingBookable, domain.OutcomeNotOpen, msg, nil), nil
	}

	uc.logger.Info("MonitorVenue[%s]: %s date=%s is open, fetching resources", req.CycleID, name, req.Date)

	// 3. Получаем матрицу ресурсов
	matrix, err := uc.client.GetResources(ctx, venue.ID, req.Date)
	if err != nil {
		uc.logger.Warn("MonitorVenue[%s]: unable to get resources for %s date=%s: %v", req.CycleID, name, req.Date, err)
		resp := uc.finish(ctx, req, domain.StateFetchingMatrix, domain.OutcomeMatrixUnavailable, err.Error(), nil)
		return resp, fmt.Errorf("%w: venue=%s date=%s: %v", ErrMatrixUnavailable, venue.ID, req.Date, err)
	}

	if !matrix.IsSuccess() {
		msg := "unknown error"
		if matrix != nil && matrix.Msg != "" {
			msg = matrix.Msg
		}
		uc.logger.Warn("MonitorVenue[%s]: resources request for %s date=%s was rejected: %s", req.CycleID, name, req.Date, msg)
		resp := uc.finish(ctx, req, domain.StateFetchingMatrix, domain.OutcomeMatrixUnavailable, msg, nil)
		return resp, fmt.Errorf("%w: venue=%s date=%s: %s", ErrMatrixUnavailable, venue.ID, req.Date, msg)
	}

	// 4. Отбираем свободные слоты
	slots := ParseAvailableSlots(matrix, uc.opts.Filter)

	if len(slots) == 0 {
		message := fmt.Sprintf("😔 %s 在 %s 暂无可用时段", name, req.Date)
		uc.logger.Info("MonitorVenue[%s]: %s", req.CycleID, message)

		if !uc.opts.NotifyWhenEmpty {
			return uc.finish(ctx, req, domain.StateParsing, domain.OutcomeNoSlots, message, nil), nil
		}

		uc.notify(ctx, req, uc.notification(req, domain.NotificationNoSlots, message, nil))
		resp := uc.finish(ctx, req, domain.StateNotifying, domain.OutcomeNoSlots, message, nil)
		resp.Notified = true
		return resp, nil
	}

	for _, slot := range slots {
		uc.logger.Info("MonitorVenue[%s]: found slot %s %s status=%s price=¥%.2f", req.CycleID, slot.FieldName, slot.Time, slot.Status, slot.Price)
	}

	// 5. Отправляем уведомление
	message := fmt.Sprintf("🎉🎉🎉🎉🎉 %s 在 %s 有 %d 个可用时段！", name, req.Date, len(slots))
	uc.logger.Info("MonitorVenue[%s]: %s", req.CycleID, message)

	uc.notify(ctx, req, uc.notification(req, domain.NotificationSlotsFound, message, slots))

	if uc.history != nil {
		if err := uc.history.SaveNotified(ctx, venue, req.Date, slots, uc.timeProvider.Now()); err != nil {
			uc.logger.Error("MonitorVenue[%s]: failed to save history for %s date=%s: %v", req.CycleID, name, req.Date, err)
		}
	}

	resp := uc.finish(ctx, req, domain.StateNotifying, domain.OutcomeSlotsFound, message, slots)
	resp.Notified = true
	return resp, nil
}

func (uc *UseCase) notification(req *Request, kind domain.NotificationKind, message string, slots []domain.AvailableSlot) domain.Notification {
	return domain.Notification{
		Kind:      kind,
		Message:   message,
		VenueID:   req.Venue.ID,
		VenueName: req.Venue.DisplayName(),
		Date:      req.Date,
		WatchFrom: uc.opts.Filter.WatchFrom(),
		Slots:     slots,
	}
}

// notify отправляет уведомление; ошибки каналов только логируются
func (uc *UseCase) notify(ctx context.Context, req *Request, n domain.Notification) {
	if err := uc.notifier.Notify(ctx, n); err != nil {
		uc.logger.Warn("MonitorVenue[%s]: notification for %s date=%s partially failed: %v", req.CycleID, n.VenueName, req.Date, err)
	}
}

// finish фиксирует результат проверки в хранилище статусов и метриках
func (uc *UseCase) finish(
	ctx context.Context,
	req *Request,
	state domain.PairState,
	outcome domain.Outcome,
	message string,
	slots []domain.AvailableSlot,
) *Response {
	status := domain.PairStatus{
		VenueID:   req.Venue.ID,
		VenueName: req.Venue.DisplayName(),
		Date:      req.Date,
		State:     state,
		Outcome:   outcome,
		Message:   message,
		Slots:     slots,
		CheckedAt: uc.timeProvider.Now(),
	}

	if err := uc.statusStore.Save(ctx, status); err != nil {
		uc.logger.Error("MonitorVenue[%s]: failed to save status for venue=%s date=%s: %v", req.CycleID, req.Venue.ID, req.Date, err)
	}

	uc.metrics.ObservePair(string(outcome))
	uc.metrics.SetSlotsFound(req.Venue.ID, req.Date, len(slots))

	if slots == nil {
		slots = []domain.AvailableSlot{}
	}

	return &Response{
		State:   state,
		Outcome: outcome,
		Slots:   slots,
	}
}
