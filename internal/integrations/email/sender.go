package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-VenueMonitor/internal/domain"
	"github.com/m04kA/SMC-VenueMonitor/internal/service/notifier/message"
)

const (
	channelName = "email"
	sendTimeout = 10 * time.Second
	lineLength  = 76
)

// Config параметры SMTP
type Config struct {
	FromEmail  string
	ToEmail    string // Несколько адресов через запятую
	SMTPServer string
	SMTPPort   int
	Password   string
}

// Sender отправляет уведомления письмом через SMTP со STARTTLS
type Sender struct {
	cfg     Config
	to      []string
	now     func() time.Time
	timeout time.Duration // Ограничение на всю SMTP сессию, включая подключение
}

// NewSender создает новый экземпляр отправителя
func NewSender(cfg Config) (*Sender, error) {
	if cfg.FromEmail == "" || cfg.ToEmail == "" || cfg.SMTPServer == "" || cfg.SMTPPort <= 0 {
		return nil, fmt.Errorf("%w: from_email, to_email, smtp_server and smtp_port are required", ErrInvalidConfig)
	}

	var to []string
	for _, addr := range strings.Split(cfg.ToEmail, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			to = append(to, addr)
		}
	}
	if len(to) == 0 {
		return nil, fmt.Errorf("%w: to_email has no addresses", ErrInvalidConfig)
	}

	return &Sender{cfg: cfg, to: to, now: time.Now, timeout: sendTimeout}, nil
}

// Name возвращает имя канала
func (s *Sender) Name() string {
	return channelName
}

// Send отправляет письмо с уведомлением
func (s *Sender) Send(ctx context.Context, n domain.Notification) error {
	addr := net.JoinHostPort(s.cfg.SMTPServer, strconv.Itoa(s.cfg.SMTPPort))

	deadline := time.Now().Add(s.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	dialer := &net.Dialer{Deadline: deadline}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: dial %s: %v", ErrSMTP, addr, err)
	}
	_ = conn.SetDeadline(deadline)

	// Отмена контекста прерывает зависшую сессию
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	client, err := smtp.NewClient(conn, s.cfg.SMTPServer)
	if err != nil {
		conn.Close()
		return fmt.Errorf("%w: handshake: %v", ErrSMTP, err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.cfg.SMTPServer}); err != nil {
			return fmt.Errorf("%w: starttls: %v", ErrSMTP, err)
		}
	}

	if s.cfg.Password != "" {
		if err := client.Auth(smtp.PlainAuth("", s.cfg.FromEmail, s.cfg.Password, s.cfg.SMTPServer)); err != nil {
			return fmt.Errorf("%w: auth: %v", ErrSMTP, err)
		}
	}

	if err := client.Mail(s.cfg.FromEmail); err != nil {
		return fmt.Errorf("%w: mail from: %v", ErrSMTP, err)
	}
	for _, rcpt := range s.to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("%w: rcpt %s: %v", ErrSMTP, rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("%w: data: %v", ErrSMTP, err)
	}
	if _, err := w.Write(s.buildMessage(n)); err != nil {
		return fmt.Errorf("%w: write body: %v", ErrSMTP, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: close body: %v", ErrSMTP, err)
	}

	return client.Quit()
}

// buildMessage собирает MIME письмо: text/plain в UTF-8, тело в base64
func (s *Sender) buildMessage(n domain.Notification) []byte {
	var b bytes.Buffer

	writeHeader(&b, "From", s.cfg.FromEmail)
	writeHeader(&b, "To", strings.Join(s.to, ", "))
	writeHeader(&b, "Subject", mime.BEncoding.Encode("UTF-8", message.EmailSubject(n)))
	writeHeader(&b, "Date", s.now().Format(time.RFC1123Z))
	writeHeader(&b, "MIME-Version", "1.0")
	writeHeader(&b, "Content-Type", `text/plain; charset="utf-8"`)
	writeHeader(&b, "Content-Transfer-Encoding", "base64")
	b.WriteString("\r\n")

	encoded := base64.StdEncoding.EncodeToString([]byte(message.EmailBody(n)))
	for len(encoded) > lineLength {
		b.WriteString(encoded[:lineLength])
		b.WriteString("\r\n")
		encoded = encoded[lineLength:]
	}
	b.WriteString(encoded)
	b.WriteString("\r\n")

	return b.Bytes()
}

func writeHeader(b *bytes.Buffer, key, value string) {
	b.WriteString(key)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\r\n")
}
