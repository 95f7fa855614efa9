package get_slots

import (
	"time"

	"github.com/m04kA/SMC-VenueMonitor/internal/domain"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Venues []VenueSlots `json:"venues"`
}

// VenueSlots свободные слоты площадки на дату
type VenueSlots struct {
	VenueID   string                 `json:"venueId"`
	VenueName string                 `json:"venueName"`
	Date      string                 `json:"date"`
	CheckedAt time.Time              `json:"checkedAt"`
	Slots     []domain.AvailableSlot `json:"slots"`
}

// FromDomain конвертирует результаты проверок в HTTP response
func FromDomain(items []domain.PairStatus) *SlotsResponse {
	venues := make([]VenueSlots, len(items))
	for i, item := range items {
		venues[i] = VenueSlots{
			VenueID:   item.VenueID,
			VenueName: item.VenueName,
			Date:      item.Date,
			CheckedAt: item.CheckedAt,
			Slots:     item.Slots,
		}
	}
	return &SlotsResponse{Venues: venues}
}
