package get_status

import (
	"time"

	"github.com/m04kA/SMC-VenueMonitor/internal/domain"
)

// StatusResponse HTTP response model
type StatusResponse struct {
	Pairs []PairStatus `json:"pairs"`
}

// PairStatus последний результат проверки пары площадка/дата
type PairStatus struct {
	VenueID    string    `json:"venueId"`
	VenueName  string    `json:"venueName"`
	Date       string    `json:"date"`
	State      string    `json:"state"`
	Outcome    string    `json:"outcome"`
	Message    string    `json:"message,omitempty"`
	SlotsCount int       `json:"slotsCount"`
	CheckedAt  time.Time `json:"checkedAt"`
}

// FromDomain конвертирует результаты проверок в HTTP response
func FromDomain(items []domain.PairStatus) *StatusResponse {
	pairs := make([]PairStatus, len(items))
	for i, item := range items {
		pairs[i] = PairStatus{
			VenueID:    item.VenueID,
			VenueName:  item.VenueName,
			Date:       item.Date,
			State:      string(item.State),
			Outcome:    string(item.Outcome),
			Message:    item.Message,
			SlotsCount: len(item.Slots),
			CheckedAt:  item.CheckedAt,
		}
	}
	return &StatusResponse{Pairs: pairs}
}
