package domain

// NotificationKind вид уведомления, определяет текст подвала сообщения
type NotificationKind string

const (
	NotificationSlotsFound NotificationKind = "slots_found"
	NotificationNoSlots    NotificationKind = "no_slots"
	NotificationNotOpen    NotificationKind = "not_open"
	NotificationError      NotificationKind = "error"
)

// Notification уведомление по одной паре площадка/дата
type Notification struct {
	Kind      NotificationKind
	Message   string // Итоговая строка, например "... 有 2 个可用时段！"
	VenueID   string
	VenueName string
	Date      string
	WatchFrom string // Начало отслеживаемого окна, "HH:MM"
	Slots     []AvailableSlot
}
