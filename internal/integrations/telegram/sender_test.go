package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueMonitor/internal/domain"
)

// fakeBotAPI эмулирует Bot API: getMe и sendMessage
func fakeBotAPI(t *testing.T, sendOK bool, sent chan<- string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"Monitor","username":"monitor_bot"}}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "42", r.Form.Get("chat_id"))
			if !sendOK {
				_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
				return
			}
			sent <- r.Form.Get("text")
			_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":1700000000,"chat":{"id":42,"type":"private"}}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func testNotification() domain.Notification {
	return domain.Notification{
		Kind:      domain.NotificationSlotsFound,
		Message:   "🎉 体育馆 在 2025-06-01 有 1 个可用时段！",
		VenueName: "体育馆",
		Date:      "2025-06-01",
		Slots: []domain.AvailableSlot{
			{FieldName: "1号场", Time: "18:00-19:00", Price: 80, Status: domain.SlotStatusAvailable},
		},
	}
}

func TestNewSender_InvalidConfig(t *testing.T) {
	_, err := NewSender(Config{Token: "x"}, http.DefaultClient)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSender_Send(t *testing.T) {
	sent := make(chan string, 1)
	srv := fakeBotAPI(t, true, sent)
	defer srv.Close()

	sender, err := NewSender(Config{
		Token:       "123:abc",
		ChatID:      42,
		APIEndpoint: srv.URL + "/bot%s/%s",
	}, srv.Client())
	require.NoError(t, err)

	require.NoError(t, sender.Send(context.Background(), testNotification()))

	select {
	case text := <-sent:
		assert.Contains(t, text, "🏸 1号场 - 18:00-19:00 - ¥80.0 - AVAILABLE")
	case <-time.After(2 * time.Second):
		t.Fatal("message was not sent")
	}
}

func TestSender_Send_APIError(t *testing.T) {
	srv := fakeBotAPI(t, false, nil)
	defer srv.Close()

	sender, err := NewSender(Config{Token: "123:abc", ChatID: 42, APIEndpoint: srv.URL + "/bot%s/%s"}, srv.Client())
	require.NoError(t, err)

	err = sender.Send(context.Background(), testNotification())
	assert.ErrorIs(t, err, ErrSend)
}

func TestLimitText(t *testing.T) {
	text := strings.Repeat("场", 10)

	limited := limitText(text, 5)

	assert.Equal(t, 5, utf8.RuneCountInString(limited))
	assert.True(t, strings.HasSuffix(limited, "…"))
	assert.Equal(t, text, limitText(text, 10))
}
