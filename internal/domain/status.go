package domain

import "time"

// PairState шаг проверки пары площадка/дата
type PairState string

const (
	StateCheckingBookable PairState = "checking_bookable"
	StateFetchingMatrix   PairState = "fetching_matrix"
	StateParsing          PairState = "parsing"
	StateNotifying        PairState = "notifying"
)

// Outcome результат проверки пары площадка/дата
type Outcome string

const (
	OutcomeSlotsFound        Outcome = "slots_found"
	OutcomeNoSlots           Outcome = "no_slots"
	OutcomeNotOpen           Outcome = "not_open"
	OutcomeBookableUnknown   Outcome = "bookable_unknown"
	OutcomeMatrixUnavailable Outcome = "matrix_unavailable"
	OutcomeInvalidInput      Outcome = "invalid_input"
)

// PairStatus последний известный результат проверки пары площадка/дата
type PairStatus struct {
	VenueID   string
	VenueName string
	Date      string
	State     PairState // Шаг, на котором проверка завершилась
	Outcome   Outcome
	Message   string
	Slots     []AvailableSlot
	CheckedAt time.Time
}

// Key возвращает ключ пары для хранения
func (s PairStatus) Key() string {
	return PairKey(s.VenueID, s.Date)
}

// PairKey ключ пары площадка/дата
func PairKey(venueID, date string) string {
	return venueID + "/" + date
}
