package message

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-VenueMonitor/internal/domain"
)

// chatSlotMarker префикс строки слота в сообщениях чатов
const chatSlotMarker = "🏸🏸🏸🏸🏸🏸🏸"

// ChatPayload формат текстового сообщения чат-ботов DingTalk и WeCom
type ChatPayload struct {
	MsgType string      `json:"msgtype"`
	Text    ChatContent `json:"text"`
}

// ChatContent содержимое текстового сообщения чат-бота
type ChatContent struct {
	Content string `json:"content"`
}

// GenericPayload формат уведомления для остальных получателей
type GenericPayload struct {
	Message        string                 `json:"message"`
	VenueName      string                 `json:"venue_name"`
	Date           string                 `json:"date"`
	AvailableSlots []domain.AvailableSlot `json:"available_slots"`
	Text           string                 `json:"text"`
}

// NewChatPayload формирует сообщение для чат-бота
func NewChatPayload(n domain.Notification) ChatPayload {
	return ChatPayload{
		MsgType: "text",
		Text:    ChatContent{Content: Text(n)},
	}
}

// NewGenericPayload формирует структурированное уведомление
func NewGenericPayload(n domain.Notification) GenericPayload {
	slots := n.Slots
	if slots == nil {
		slots = []domain.AvailableSlot{}
	}

	return GenericPayload{
		Message:        n.Message,
		VenueName:      n.VenueName,
		Date:           n.Date,
		AvailableSlots: slots,
		Text:           Text(n),
	}
}

// Text формирует полный текст уведомления для чатов
func Text(n domain.Notification) string {
	var b strings.Builder
	b.WriteString(header(n))
	b.WriteString("\n\n")

	if len(n.Slots) > 0 {
		lines := make([]string, len(n.Slots))
		for i, slot := range n.Slots {
			lines[i] = fmt.Sprintf("%s %s - %s - ¥%s - %s", chatSlotMarker, slot.FieldName, slot.Time, FormatPrice(slot.Price), slot.Status)
		}
		b.WriteString(strings.Join(lines, "\n"))
		return b.String()
	}

	switch n.Kind {
	case domain.NotificationError:
		b.WriteString("🔧 请检查网络连接或稍后重试")
	case domain.NotificationNotOpen:
		b.WriteString("🔄 将继续监控开放状态")
	default:
		watchFrom := n.WatchFrom
		if watchFrom == "" {
			watchFrom = "18:00"
		}
		b.WriteString("⏰ 监控时间段: " + watchFrom + "之后\n")
		b.WriteString("🔄 将继续监控，有可用时段时会立即通知")
	}

	return b.String()
}

// EmailSubject формирует тему письма
func EmailSubject(n domain.Notification) string {
	return fmt.Sprintf("🏸 %s %s 场馆预定提醒", n.VenueName, n.Date)
}

// EmailBody формирует текст письма
func EmailBody(n domain.Notification) string {
	var b strings.Builder
	b.WriteString(header(n))
	b.WriteString("\n\n可用时段：\n")

	for _, slot := range n.Slots {
		fmt.Fprintf(&b, "🏸 %s - %s - ¥%s - 状态: %s\n", slot.FieldName, slot.Time, FormatPrice(slot.Price), slot.Status)
	}

	return b.String()
}

// FormatPrice форматирует цену в юанях, всегда как минимум с одним знаком после точки: 80 -> "80.0"
func FormatPrice(price float64) string {
	s := strconv.FormatFloat(price, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func header(n domain.Notification) string {
	return fmt.Sprintf("%s\n\n📅 日期: %s\n🏟️ 场馆: %s", n.Message, n.Date, n.VenueName)
}
