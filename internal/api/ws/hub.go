package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/m04kA/SMC-VenueMonitor/internal/domain"
	"github.com/m04kA/SMC-VenueMonitor/internal/service/notifier/message"
)

const (
	channelName  = "websocket"
	writeTimeout = 5 * time.Second
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Hub live-лента уведомлений: каждое уведомление рассылается всем подключенным клиентам
type Hub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader
	logger   Logger
}

// NewHub создает hub. Пустой allowedOrigins разрешает любые источники.
func NewHub(allowedOrigins []string, logger Logger) *Hub {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = struct{}{}
	}

	return &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(origins) == 0 {
					return true
				}
				_, ok := origins[r.Header.Get("Origin")]
				return ok
			},
		},
		logger: logger,
	}
}

// ServeHTTP GET /api/v1/ws
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("WS - Upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()
	h.logger.Info("WS - Client connected: remote=%s, clients=%d", r.RemoteAddr, total)

	// Клиент только слушает, чтение нужно для обработки close и ping
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.remove(conn)
	h.logger.Info("WS - Client disconnected: remote=%s", r.RemoteAddr)
}

// Clients возвращает количество подключенных клиентов
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Name имя канала уведомлений
func (h *Hub) Name() string {
	return channelName
}

// Send рассылает уведомление всем клиентам в формате generic webhook payload
func (h *Hub) Send(_ context.Context, n domain.Notification) error {
	payload, err := json.Marshal(message.NewGenericPayload(n))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	delivered := h.Broadcast(payload)
	h.logger.Info("WS - Notification broadcast: clients=%d", delivered)
	return nil
}

// Broadcast отправляет сообщение всем клиентам и возвращает число успешных отправок.
// Клиенты, запись в которых не удалась, отключаются.
func (h *Hub) Broadcast(payload []byte) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for conn := range h.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.logger.Warn("WS - Write failed, dropping client: %v", err)
			delete(h.clients, conn)
			_ = conn.Close()
			continue
		}
		delivered++
	}
	return delivered
}

// Close отключает всех клиентов
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutdown"),
			time.Now().Add(time.Second))
		_ = conn.Close()
		delete(h.clients, conn)
	}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		_ = conn.Close()
	}
}
