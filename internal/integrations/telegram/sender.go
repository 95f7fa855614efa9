package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/m04kA/SMC-VenueMonitor/internal/domain"
	"github.com/m04kA/SMC-VenueMonitor/internal/service/notifier/message"
)

const (
	channelName = "telegram"

	// maxMessageLength ограничение Bot API на длину текста сообщения
	maxMessageLength = 4096
)

var (
	// ErrInvalidConfig возвращается при пустом токене или chat_id
	ErrInvalidConfig = errors.New("telegram sender: invalid config")

	// ErrSend возвращается при ошибке отправки сообщения
	ErrSend = errors.New("telegram sender: send failed")
)

// Config параметры бота
type Config struct {
	Token       string
	ChatID      int64
	APIEndpoint string // Формат "https://api.telegram.org/bot%s/%s", пустое значение - стандартный
}

type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Sender отправляет уведомления сообщением в Telegram чат
type Sender struct {
	bot    botAPI
	chatID int64
}

// NewSender создает бота и проверяет токен запросом getMe
func NewSender(cfg Config, httpClient *http.Client) (*Sender, error) {
	if cfg.Token == "" || cfg.ChatID == 0 {
		return nil, fmt.Errorf("%w: token and chat_id are required", ErrInvalidConfig)
	}

	endpoint := cfg.APIEndpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}

	bot, err := tgbotapi.NewBotAPIWithClient(cfg.Token, endpoint, httpClient)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to init bot: %v", ErrInvalidConfig, err)
	}
	bot.Debug = false

	return &Sender{bot: bot, chatID: cfg.ChatID}, nil
}

// Name возвращает имя канала
func (s *Sender) Name() string {
	return channelName
}

// Send отправляет текст уведомления в чат
func (s *Sender) Send(ctx context.Context, n domain.Notification) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSend, err)
	}

	msg := tgbotapi.NewMessage(s.chatID, limitText(message.Text(n), maxMessageLength))
	msg.DisableWebPagePreview = true

	if _, err := s.bot.Send(msg); err != nil {
		return fmt.Errorf("%w: %v", ErrSend, err)
	}
	return nil
}

// limitText обрезает текст до max символов, не разрывая UTF-8 последовательности
func limitText(text string, max int) string {
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return string(runes[:max-1]) + "…"
}
