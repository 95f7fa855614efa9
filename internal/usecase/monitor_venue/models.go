package monitor_venue

import "github.com/m04kA/SMC-VenueMonitor/internal/domain"

// Request модель запроса на проверку одной пары площадка/дата
type Request struct {
	Venue   domain.Venue
	Date    string // YYYY-MM-DD
	CycleID string // Идентификатор цикла для корреляции логов
}

// Response результат проверки
type Response struct {
	State    domain.PairState // Последний пройденный шаг
	Outcome  domain.Outcome
	Slots    []domain.AvailableSlot
	Notified bool
}

// Options настройки use case
type Options struct {
	Filter          SlotFilter
	NotifyWhenEmpty bool // Отправлять уведомление, когда открыто, но свободных слотов нет
}
