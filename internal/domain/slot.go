package domain

// SlotStatus статус слота в матрице ресурсов площадки
type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "AVAILABLE"
	SlotStatusOrdered   SlotStatus = "ORDERED"
	SlotStatusLocked    SlotStatus = "LOCKED"
)

// BookableStatus ответ на вопрос, открыто ли бронирование площадки на дату
type BookableStatus struct {
	Bookable bool   `json:"bookable"`
	Msg      string `json:"msg,omitempty"`
}

// ResourceMatrix матрица "поле x временной слот" на дату
type ResourceMatrix struct {
	Code int          `json:"code"`
	Msg  string       `json:"msg,omitempty"`
	Data []FieldEntry `json:"data"`
}

// IsSuccess возвращает true, если данным матрицы можно доверять
func (m *ResourceMatrix) IsSuccess() bool {
	return m != nil && m.Code == MatrixSuccessCode
}

// FieldEntry отдельное поле (корт) площадки
type FieldEntry struct {
	FieldID       string       `json:"fieldId"`
	FieldName     string       `json:"fieldName"`
	FieldResource []SlotRecord `json:"fieldResource"`
}

// SlotRecord сырой слот из матрицы
type SlotRecord struct {
	Status   SlotStatus `json:"status"`
	Start    int        `json:"start"` // Минуты от полуночи
	End      int        `json:"end"`   // Минуты от полуночи
	Price    int64      `json:"price"` // В минимальных единицах валюты (фэнь)
	RecordID *string    `json:"recordId,omitempty"`
}

// AvailableSlot слот, прошедший фильтрацию.
// Живет только в рамках одного уведомления.
type AvailableSlot struct {
	FieldID      string     `json:"field_id"`
	FieldName    string     `json:"field_name"`
	Time         string     `json:"time"` // "HH:MM-HH:MM"
	StartMinutes int        `json:"start_minutes"`
	EndMinutes   int        `json:"end_minutes"`
	Price        float64    `json:"price"` // В юанях
	Status       SlotStatus `json:"status"`
	RecordID     *string    `json:"record_id"`
	RawData      SlotRecord `json:"raw_data"`
}
