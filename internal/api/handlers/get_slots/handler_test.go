package get_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueMonitor/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeStore struct {
	items []domain.PairStatus
	calls int
}

func (s *fakeStore) ListWithSlots(context.Context) ([]domain.PairStatus, error) {
	s.calls++
	return s.items, nil
}

func newStore() *fakeStore {
	slot := domain.AvailableSlot{FieldID: "A", FieldName: "1号场", Time: "18:00-19:00", StartMinutes: 1080, EndMinutes: 1140, Price: 80, Status: domain.SlotStatusAvailable}
	return &fakeStore{items: []domain.PairStatus{
		{VenueID: "1001", Date: "2025-06-01", Slots: []domain.AvailableSlot{slot}},
		{VenueID: "1001", Date: "2025-06-02", Slots: []domain.AvailableSlot{slot, slot}},
		{VenueID: "2002", Date: "2025-06-01", Slots: []domain.AvailableSlot{slot}},
	}}
}

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPairs int
	}{
		{name: "no filter", query: "", wantPairs: 3},
		{name: "by venue", query: "?venueId=1001", wantPairs: 2},
		{name: "by venue and date", query: "?venueId=1001&date=2025-06-02", wantPairs: 1},
		{name: "unknown venue", query: "?venueId=9999", wantPairs: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(newStore(), nopLogger{})

			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/slots"+tt.query, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			var resp SlotsResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Len(t, resp.Venues, tt.wantPairs)
			assert.NotNil(t, resp.Venues)
		})
	}
}

func TestHandler_Handle_SlotPayload(t *testing.T) {
	h := NewHandler(newStore(), nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/slots?venueId=2002", nil))

	var raw map[string][]map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	slots := raw["venues"][0]["slots"].([]interface{})
	slot := slots[0].(map[string]interface{})
	assert.Equal(t, "18:00-19:00", slot["time"])
	assert.Equal(t, 80.0, slot["price"])
	assert.Equal(t, "AVAILABLE", slot["status"])
}

func TestHandler_Handle_InvalidDate(t *testing.T) {
	store := newStore()
	h := NewHandler(store, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/slots?date=01.06.2025", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, store.calls)
}
