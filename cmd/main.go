package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/rs/cors"

	getHistoryHandler "github.com/m04kA/SMC-VenueMonitor/internal/api/handlers/get_history"
	getSlotsHandler "github.com/m04kA/SMC-VenueMonitor/internal/api/handlers/get_slots"
	getStatusHandler "github.com/m04kA/SMC-VenueMonitor/internal/api/handlers/get_status"
	"github.com/m04kA/SMC-VenueMonitor/internal/api/middleware"
	"github.com/m04kA/SMC-VenueMonitor/internal/api/ws"
	"github.com/m04kA/SMC-VenueMonitor/internal/config"
	"github.com/m04kA/SMC-VenueMonitor/internal/infra/storage/history"
	"github.com/m04kA/SMC-VenueMonitor/internal/infra/storage/status"
	"github.com/m04kA/SMC-VenueMonitor/internal/integrations/email"
	"github.com/m04kA/SMC-VenueMonitor/internal/integrations/shsports"
	"github.com/m04kA/SMC-VenueMonitor/internal/integrations/sqsqueue"
	"github.com/m04kA/SMC-VenueMonitor/internal/integrations/telegram"
	"github.com/m04kA/SMC-VenueMonitor/internal/integrations/webhook"
	monitorService "github.com/m04kA/SMC-VenueMonitor/internal/service/monitor"
	notifierService "github.com/m04kA/SMC-VenueMonitor/internal/service/notifier"
	monitorVenueUC "github.com/m04kA/SMC-VenueMonitor/internal/usecase/monitor_venue"
	"github.com/m04kA/SMC-VenueMonitor/pkg/logger"
	"github.com/m04kA/SMC-VenueMonitor/pkg/metrics"
)

func main() {
	configPath := "config.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-VenueMonitor...")
	log.Info("Configuration loaded from %s: venues=%d interval=%s", configPath, len(cfg.Venues), cfg.CheckIntervalDuration())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Клиент сайта бронирования
	upstreamClient := shsports.NewClient(shsports.Options{
		BaseURL:            cfg.Upstream.BaseURL,
		Timeout:            cfg.UpstreamTimeout(),
		InsecureSkipVerify: *cfg.Upstream.InsecureSkipVerify,
		Referer:            cfg.Referer,
		Headers:            cfg.Headers,
		Credentials: shsports.Credentials{
			ClientID:     cfg.Upstream.ClientID,
			ClientSecret: cfg.Upstream.ClientSecret,
			GrantType:    cfg.Upstream.GrantType,
			Code:         cfg.Upstream.Code,
		},
	}, log, metricsCollector)
	if *cfg.Upstream.InsecureSkipVerify {
		log.Warn("TLS certificate verification is disabled for the booking site")
	}

	// Live-лента через websocket
	var hub *ws.Hub
	if cfg.Notifications.Websocket.Enabled {
		hub = ws.NewHub(cfg.Server.AllowedOrigins, log)
	}

	// Каналы уведомлений
	channels := buildChannels(ctx, cfg, hub, log)
	if len(channels) == 0 {
		log.Warn("No notification channels enabled, found slots will only be logged")
	}
	notifier := notifierService.NewService(channels, log, metricsCollector)
	log.Info("Notification channels: %v", notifier.Channels())

	statusStore := status.NewStore()

	// Журнал уведомлений (если включен)
	var (
		historyRepo    *history.Repository
		historyJournal monitorVenueUC.HistoryRepository
	)
	if cfg.History.Enabled {
		db, err := sql.Open("postgres", cfg.History.DSN())
		if err != nil {
			log.Fatal("Failed to connect to history database: %v", err)
		}
		defer db.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = db.PingContext(pingCtx)
		cancel()
		if err != nil {
			log.Fatal("Failed to ping history database: %v", err)
		}

		historyRepo = history.NewRepository(db)
		if err := historyRepo.EnsureSchema(ctx); err != nil {
			log.Fatal("Failed to prepare history schema: %v", err)
		}
		historyJournal = historyRepo
		log.Info("History journal enabled (host=%s, port=%d, db=%s)", cfg.History.Host, cfg.History.Port, cfg.History.DBName)
	}

	// Use case проверки одной пары площадка/дата
	filter := monitorVenueUC.SlotFilter{
		ExcludedStatuses: cfg.ExcludedStatuses(),
		MinStartMinutes:  *cfg.Filter.MinStartMinutes,
	}
	monitorVenue := monitorVenueUC.NewUseCase(
		upstreamClient,
		notifier,
		statusStore,
		historyJournal,
		metricsCollector,
		monitorVenueUC.Options{
			Filter:          filter,
			NotifyWhenEmpty: cfg.NotifyWhenEmpty,
		},
		log,
	)

	monitor := monitorService.NewService(
		cfg.VenueList(),
		monitorVenue,
		statusStore,
		monitorService.Options{
			Interval:  cfg.CheckIntervalDuration(),
			PairDelay: cfg.PairDelayDuration(),
		},
		log,
		metricsCollector,
	)

	// HTTP сервер статуса (если включен)
	var srv *http.Server
	if cfg.Server.Enabled {
		r := mux.NewRouter()

		if cfg.Metrics.Enabled {
			r.Use(middleware.MetricsMiddleware(metricsCollector))
			r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
			log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
		}

		api := r.PathPrefix("/api/v1").Subrouter()

		// Последний результат по каждой паре площадка/дата
		api.HandleFunc("/status", getStatusHandler.NewHandler(statusStore, log).Handle).Methods(http.MethodGet)

		// Свободные слоты последней проверки
		api.HandleFunc("/slots", getSlotsHandler.NewHandler(statusStore, log).Handle).Methods(http.MethodGet)

		// Журнал отправленных уведомлений
		if historyRepo != nil {
			api.HandleFunc("/history", getHistoryHandler.NewHandler(historyRepo, log).Handle).Methods(http.MethodGet)
		}

		// Live-лента уведомлений
		if hub != nil {
			api.Handle("/ws", hub).Methods(http.MethodGet)
		}

		handler := cors.New(cors.Options{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		}).Handler(r)

		addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
		srv = &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			log.Info("Starting status server on %s", addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatal("Server failed to start: %v", err)
			}
		}()
	}

	// Мониторинг работает до SIGINT/SIGTERM
	if err := monitor.Run(ctx); err != nil {
		log.Error("Monitor stopped with error: %v", err)
	}

	log.Info("Shutting down...")

	if hub != nil {
		hub.Close()
	}

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server forced to shutdown: %v", err)
		}
	}

	log.Info("Monitor stopped gracefully")
}

// buildChannels создает включенные каналы уведомлений.
// Канал, который не удалось создать, пропускается с ошибкой в логе.
func buildChannels(ctx context.Context, cfg *config.Config, hub *ws.Hub, log *logger.Logger) []notifierService.Channel {
	var channels []notifierService.Channel

	if c := cfg.Notifications.Email; c.Enabled {
		sender, err := email.NewSender(email.Config{
			FromEmail:  c.FromEmail,
			ToEmail:    c.ToEmail,
			SMTPServer: c.SMTPServer,
			SMTPPort:   c.SMTPPort,
			Password:   c.Password,
		})
		if err != nil {
			log.Error("Failed to init email channel: %v", err)
		} else {
			channels = append(channels, sender)
		}
	}

	if c := cfg.Notifications.Webhook; c.Enabled {
		client, err := webhook.NewClient(c.URL, cfg.UpstreamTimeout(), c.InsecureSkipVerify)
		if err != nil {
			log.Error("Failed to init webhook channel: %v", err)
		} else {
			log.Info("Webhook channel format: %s", client.Flavor())
			channels = append(channels, client)
		}
	}

	if c := cfg.Notifications.Telegram; c.Enabled {
		sender, err := telegram.NewSender(telegram.Config{
			Token:       c.Token,
			ChatID:      c.ChatID,
			APIEndpoint: c.APIEndpoint,
		}, &http.Client{Timeout: cfg.UpstreamTimeout()})
		if err != nil {
			log.Error("Failed to init telegram channel: %v", err)
		} else {
			channels = append(channels, sender)
		}
	}

	if c := cfg.Notifications.SQS; c.Enabled {
		publisher, err := sqsqueue.NewPublisherFromEnv(ctx, c.Region, c.QueueURL)
		if err != nil {
			log.Error("Failed to init sqs channel: %v", err)
		} else {
			channels = append(channels, publisher)
		}
	}

	if hub != nil {
		channels = append(channels, hub)
	}

	return channels
}
