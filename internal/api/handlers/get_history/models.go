package get_history

import (
	"time"

	"github.com/m04kA/SMC-VenueMonitor/internal/infra/storage/history"
)

// HistoryResponse HTTP response model
type HistoryResponse struct {
	Records []Record `json:"records"`
}

// Record запись журнала уведомлений
type Record struct {
	ID           int64     `json:"id"`
	VenueID      string    `json:"venueId"`
	VenueName    string    `json:"venueName"`
	Date         string    `json:"date"`
	FieldID      string    `json:"fieldId"`
	FieldName    string    `json:"fieldName"`
	Time         string    `json:"time"`
	StartMinutes int       `json:"startMinutes"`
	EndMinutes   int       `json:"endMinutes"`
	Price        float64   `json:"price"`
	Status       string    `json:"status"`
	RecordID     *string   `json:"recordId"`
	NotifiedAt   time.Time `json:"notifiedAt"`
}

func FromRecords(records []history.Record) *HistoryResponse {
	result := make([]Record, len(records))
	for i, rec := range records {
		result[i] = Record{
			ID:           rec.ID,
			VenueID:      rec.VenueID,
			VenueName:    rec.VenueName,
			Date:         rec.Date,
			FieldID:      rec.FieldID,
			FieldName:    rec.FieldName,
			Time:         rec.TimeRange,
			StartMinutes: rec.StartMinutes,
			EndMinutes:   rec.EndMinutes,
			Price:        rec.Price,
			Status:       rec.Status,
			RecordID:     rec.RecordID,
			NotifiedAt:   rec.NotifiedAt,
		}
	}
	return &HistoryResponse{Records: result}
}
