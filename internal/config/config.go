package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-VenueMonitor/internal/domain"
	"github.com/m04kA/SMC-VenueMonitor/pkg/types"
)

const (
	defaultHTTPPort        = 8080
	defaultShutdownTimeout = 10
	defaultMetricsPath     = "/metrics"
	defaultServiceName     = "venue_monitor"
	defaultLogLevel        = "info"
	defaultSMTPPort        = 587
	defaultHistoryPort     = 5432
	defaultHistorySSLMode  = "disable"
	defaultAWSRegion       = "ap-east-1"
)

// Переменные окружения, переопределяющие секреты из файла
const (
	envSMTPPassword         = "SMTP_PASSWORD"
	envTelegramBotToken     = "TELEGRAM_BOT_TOKEN"
	envUpstreamClientSecret = "UPSTREAM_CLIENT_SECRET"
	envUpstreamCode         = "UPSTREAM_CODE"
	envHistoryDBPassword    = "HISTORY_DB_PASSWORD"
	envWebhookURL           = "WEBHOOK_URL"
)

// Config конфигурация приложения
type Config struct {
	CheckInterval   int                 `toml:"check_interval"` // секунды
	PairDelay       *float64            `toml:"pair_delay"`     // секунды, 0 отключает паузу
	NotifyWhenEmpty bool                `toml:"notify_when_empty"`
	Referer         string              `toml:"referer"`
	Venues          []VenueConfig       `toml:"venues"`
	Headers         map[string]string   `toml:"headers"`
	Upstream        UpstreamConfig      `toml:"upstream"`
	Filter          FilterConfig        `toml:"filter"`
	Notifications   NotificationsConfig `toml:"notifications"`
	Server          ServerConfig        `toml:"server"`
	Metrics         MetricsConfig       `toml:"metrics"`
	History         HistoryConfig       `toml:"history"`
	Logs            LogsConfig          `toml:"logs"`
}

// VenueConfig площадка для мониторинга
type VenueConfig struct {
	ID    string   `toml:"id"`
	Name  string   `toml:"name"`
	Dates []string `toml:"dates"`
}

// UpstreamConfig настройки сайта бронирования
type UpstreamConfig struct {
	BaseURL            string `toml:"base_url"`
	Timeout            int    `toml:"timeout"` // секунды
	InsecureSkipVerify *bool  `toml:"insecure_skip_verify"`
	ClientID           string `toml:"client_id"`
	ClientSecret       string `toml:"client_secret"`
	GrantType          string `toml:"grant_type"`
	Code               string `toml:"code"`
}

// FilterConfig правила отбора слотов
type FilterConfig struct {
	ExcludedStatuses *[]string `toml:"excluded_statuses"` // Пустой список отключает фильтр по статусу
	MinStartMinutes  *int      `toml:"min_start_minutes"`
}

// NotificationsConfig каналы уведомлений
type NotificationsConfig struct {
	Email     EmailConfig     `toml:"email"`
	Webhook   WebhookConfig   `toml:"webhook"`
	Telegram  TelegramConfig  `toml:"telegram"`
	SQS       SQSConfig       `toml:"sqs"`
	Websocket WebsocketConfig `toml:"websocket"`
}

type EmailConfig struct {
	Enabled    bool   `toml:"enabled"`
	FromEmail  string `toml:"from_email"`
	ToEmail    string `toml:"to_email"`
	SMTPServer string `toml:"smtp_server"`
	SMTPPort   int    `toml:"smtp_port"`
	Password   string `toml:"password"`
}

type WebhookConfig struct {
	Enabled            bool   `toml:"enabled"`
	URL                string `toml:"url"`
	InsecureSkipVerify bool   `toml:"insecure_skip_verify"`
}

type TelegramConfig struct {
	Enabled     bool   `toml:"enabled"`
	Token       string `toml:"token"`
	ChatID      int64  `toml:"chat_id"`
	APIEndpoint string `toml:"api_endpoint"`
}

type SQSConfig struct {
	Enabled  bool   `toml:"enabled"`
	Region   string `toml:"region"`
	QueueURL string `toml:"queue_url"`
}

// WebsocketConfig live-лента уведомлений, требует включенного сервера
type WebsocketConfig struct {
	Enabled bool `toml:"enabled"`
}

// ServerConfig HTTP сервер статуса
type ServerConfig struct {
	Enabled         bool     `toml:"enabled"`
	HTTPPort        int      `toml:"http_port"`
	ShutdownTimeout int      `toml:"shutdown_timeout"` // секунды
	AllowedOrigins  []string `toml:"allowed_origins"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// HistoryConfig журнал отправленных уведомлений в PostgreSQL
type HistoryConfig struct {
	Enabled  bool   `toml:"enabled"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	DBName   string `toml:"dbname"`
	SSLMode  string `toml:"sslmode"`
}

// DSN строка подключения для lib/pq
func (c HistoryConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Load читает конфигурацию из TOML файла.
// Секреты могут быть переопределены через окружение или файл .env рядом с процессом.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: failed to load .env: %v", ErrConfig, err)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %v", ErrConfig, path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyEnv() {
	overrides := []struct {
		key    string
		target *string
	}{
		{envSMTPPassword, &c.Notifications.Email.Password},
		{envTelegramBotToken, &c.Notifications.Telegram.Token},
		{envUpstreamClientSecret, &c.Upstream.ClientSecret},
		{envUpstreamCode, &c.Upstream.Code},
		{envHistoryDBPassword, &c.History.Password},
		{envWebhookURL, &c.Notifications.Webhook.URL},
	}

	for _, o := range overrides {
		if value, ok := os.LookupEnv(o.key); ok && value != "" {
			*o.target = value
		}
	}
}

func (c *Config) applyDefaults() {
	if c.CheckInterval <= 0 {
		c.CheckInterval = int(domain.DefaultCheckInterval / time.Second)
	}
	if c.PairDelay == nil {
		delay := domain.DefaultPairDelay.Seconds()
		c.PairDelay = &delay
	}
	if c.Upstream.Timeout <= 0 {
		c.Upstream.Timeout = int(domain.DefaultRequestTimeout / time.Second)
	}
	if c.Upstream.InsecureSkipVerify == nil {
		skip := true
		c.Upstream.InsecureSkipVerify = &skip
	}
	if c.Filter.ExcludedStatuses == nil {
		excluded := make([]string, 0, len(domain.DefaultExcludedStatuses))
		for _, status := range domain.DefaultExcludedStatuses {
			excluded = append(excluded, string(status))
		}
		c.Filter.ExcludedStatuses = &excluded
	}
	if c.Filter.MinStartMinutes == nil {
		minStart := domain.DefaultMinStartMinutes
		c.Filter.MinStartMinutes = &minStart
	}
	if c.Notifications.Email.SMTPPort == 0 {
		c.Notifications.Email.SMTPPort = defaultSMTPPort
	}
	if c.Notifications.SQS.Region == "" {
		c.Notifications.SQS.Region = defaultAWSRegion
	}
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = defaultHTTPPort
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = defaultShutdownTimeout
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = defaultMetricsPath
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = defaultServiceName
	}
	if c.History.Port == 0 {
		c.History.Port = defaultHistoryPort
	}
	if c.History.SSLMode == "" {
		c.History.SSLMode = defaultHistorySSLMode
	}
	if c.Logs.Level == "" {
		c.Logs.Level = defaultLogLevel
	}
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	if len(c.Venues) == 0 {
		return fmt.Errorf("%w: at least one venue is required", ErrConfig)
	}
	for i, venue := range c.Venues {
		if strings.TrimSpace(venue.ID) == "" {
			return fmt.Errorf("%w: venues[%d]: id is required", ErrConfig, i)
		}
		for _, date := range venue.Dates {
			if _, err := time.Parse(domain.DateFormat, date); err != nil {
				return fmt.Errorf("%w: venues[%d]: invalid date %q, expected YYYY-MM-DD", ErrConfig, i, date)
			}
		}
	}

	if *c.PairDelay < 0 {
		return fmt.Errorf("%w: pair_delay must not be negative", ErrConfig)
	}
	if *c.Filter.MinStartMinutes < 0 || *c.Filter.MinStartMinutes >= types.MinutesPerDay {
		return fmt.Errorf("%w: filter.min_start_minutes must be within a day", ErrConfig)
	}
	if c.Upstream.BaseURL != "" {
		if _, err := url.ParseRequestURI(c.Upstream.BaseURL); err != nil {
			return fmt.Errorf("%w: upstream.base_url: %v", ErrConfig, err)
		}
	}

	email := c.Notifications.Email
	if email.Enabled && (email.FromEmail == "" || email.ToEmail == "" || email.SMTPServer == "") {
		return fmt.Errorf("%w: notifications.email requires from_email, to_email and smtp_server", ErrConfig)
	}
	if c.Notifications.Webhook.Enabled && c.Notifications.Webhook.URL == "" {
		return fmt.Errorf("%w: notifications.webhook requires url", ErrConfig)
	}
	telegram := c.Notifications.Telegram
	if telegram.Enabled && (telegram.Token == "" || telegram.ChatID == 0) {
		return fmt.Errorf("%w: notifications.telegram requires token and chat_id", ErrConfig)
	}
	if c.Notifications.SQS.Enabled && c.Notifications.SQS.QueueURL == "" {
		return fmt.Errorf("%w: notifications.sqs requires queue_url", ErrConfig)
	}
	if c.Notifications.Websocket.Enabled && !c.Server.Enabled {
		return fmt.Errorf("%w: notifications.websocket requires server.enabled", ErrConfig)
	}
	if c.History.Enabled && (c.History.Host == "" || c.History.DBName == "") {
		return fmt.Errorf("%w: history requires host and dbname", ErrConfig)
	}

	return nil
}

// VenueList площадки в доменном представлении
func (c *Config) VenueList() []domain.Venue {
	venues := make([]domain.Venue, 0, len(c.Venues))
	for _, v := range c.Venues {
		venues = append(venues, domain.Venue{
			ID:    v.ID,
			Name:  v.Name,
			Dates: v.Dates,
		})
	}
	return venues
}

func (c *Config) CheckIntervalDuration() time.Duration {
	return time.Duration(c.CheckInterval) * time.Second
}

func (c *Config) PairDelayDuration() time.Duration {
	return time.Duration(*c.PairDelay * float64(time.Second))
}

func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.Upstream.Timeout) * time.Second
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeout) * time.Second
}

// ExcludedStatuses статусы слотов, которые не считаются свободными
func (c *Config) ExcludedStatuses() []domain.SlotStatus {
	if c.Filter.ExcludedStatuses == nil {
		return nil
	}

	statuses := make([]domain.SlotStatus, 0, len(*c.Filter.ExcludedStatuses))
	for _, s := range *c.Filter.ExcludedStatuses {
		statuses = append(statuses, domain.SlotStatus(strings.ToUpper(strings.TrimSpace(s))))
	}
	return statuses
}
