package history

import "time"

// Record запись журнала отправленных уведомлений
type Record struct {
	ID           int64
	VenueID      string
	VenueName    string
	Date         string
	FieldID      string
	FieldName    string
	TimeRange    string
	StartMinutes int
	EndMinutes   int
	Price        float64
	Status       string
	RecordID     *string
	NotifiedAt   time.Time
}
