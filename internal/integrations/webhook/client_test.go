package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueMonitor/internal/domain"
	"github.com/m04kA/SMC-VenueMonitor/internal/service/notifier/message"
)

func testNotification() domain.Notification {
	return domain.Notification{
		Kind:      domain.NotificationSlotsFound,
		Message:   "🎉 体育馆 在 2025-06-01 有 1 个可用时段！",
		VenueID:   "1001",
		VenueName: "体育馆",
		Date:      "2025-06-01",
		Slots: []domain.AvailableSlot{
			{FieldID: "f1", FieldName: "1号场", Time: "18:00-19:00", StartMinutes: 1080, EndMinutes: 1140, Price: 80, Status: domain.SlotStatusAvailable},
		},
	}
}

func TestDetectFlavor(t *testing.T) {
	tests := []struct {
		host     string
		expected Flavor
	}{
		{host: "oapi.dingtalk.com", expected: FlavorDingTalk},
		{host: "OAPI.DingTalk.com", expected: FlavorDingTalk},
		{host: "qyapi.weixin.qq.com", expected: FlavorWeCom},
		{host: "hooks.example.com", expected: FlavorGeneric},
		{host: "127.0.0.1", expected: FlavorGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectFlavor(tt.host))
		})
	}
}

func TestBuildPayload_Chat(t *testing.T) {
	n := testNotification()

	for _, flavor := range []Flavor{FlavorDingTalk, FlavorWeCom} {
		payload, ok := BuildPayload(flavor, n).(message.ChatPayload)
		require.True(t, ok)
		assert.Equal(t, "text", payload.MsgType)
		assert.Contains(t, payload.Text.Content, "1号场 - 18:00-19:00 - ¥80.0")
	}
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient("not a url", time.Second, false)
	assert.ErrorIs(t, err, ErrInvalidURL)

	_, err = NewClient("ftp://example.com/hook", time.Second, false)
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestClient_Send_Generic(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, time.Second, false)
	require.NoError(t, err)
	assert.Equal(t, FlavorGeneric, client.Flavor())

	require.NoError(t, client.Send(context.Background(), testNotification()))

	assert.Equal(t, "体育馆", got["venue_name"])
	assert.Equal(t, "2025-06-01", got["date"])
	assert.Contains(t, got["text"], "📅 日期: 2025-06-01")

	slots, ok := got["available_slots"].([]interface{})
	require.True(t, ok)
	require.Len(t, slots, 1)
	slot := slots[0].(map[string]interface{})
	assert.Equal(t, "18:00-19:00", slot["time"])
	assert.Equal(t, 80.0, slot["price"])
}

func TestClient_Send_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, time.Second, false)
	require.NoError(t, err)

	err = client.Send(context.Background(), testNotification())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_Send_TLSVerification(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	strict, err := NewClient(srv.URL, 2*time.Second, false)
	require.NoError(t, err)
	assert.ErrorIs(t, strict.Send(context.Background(), testNotification()), ErrInternal)

	insecure, err := NewClient(srv.URL, 2*time.Second, true)
	require.NoError(t, err)
	assert.NoError(t, insecure.Send(context.Background(), testNotification()))
}
