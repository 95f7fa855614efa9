package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics коллектор метрик мониторинга.
// Все методы безопасно вызывать на nil-указателе: при выключенных метриках
// вызывающий код не проверяет, включены ли они.
type Metrics struct {
	registry *prometheus.Registry

	cycles           prometheus.Counter
	pairs            *prometheus.CounterVec
	upstreamRequests *prometheus.HistogramVec
	tokenRefreshes   *prometheus.CounterVec
	notifications    *prometheus.CounterVec
	slotsFound       *prometheus.GaugeVec
	httpRequests     *prometheus.HistogramVec
}

// New создает коллектор с собственным registry
func New(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: registry,
		cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "monitor_cycles_total",
			Help:        "Number of completed monitoring cycles",
			ConstLabels: constLabels,
		}),
		pairs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "monitor_pairs_total",
			Help:        "Venue/date checks by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		upstreamRequests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "upstream_request_duration_seconds",
			Help:        "Duration of requests to the booking site",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"endpoint", "result"}),
		tokenRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "upstream_token_refreshes_total",
			Help:        "Access token refresh attempts by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_total",
			Help:        "Notification deliveries by channel and result",
			ConstLabels: constLabels,
		}, []string{"channel", "result"}),
		slotsFound: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "available_slots",
			Help:        "Available slots found on the last check",
			ConstLabels: constLabels,
		}, []string{"venue", "date"}),
		httpRequests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "Duration of status API requests",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}

	registry.MustRegister(
		m.cycles,
		m.pairs,
		m.upstreamRequests,
		m.tokenRefreshes,
		m.notifications,
		m.slotsFound,
		m.httpRequests,
	)

	return m
}

// Handler возвращает http.Handler для эндпоинта /metrics
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// IncCycle увеличивает счетчик завершенных циклов
func (m *Metrics) IncCycle() {
	if m == nil {
		return
	}
	m.cycles.Inc()
}

// ObservePair учитывает результат проверки пары площадка/дата
func (m *Metrics) ObservePair(outcome string) {
	if m == nil {
		return
	}
	m.pairs.WithLabelValues(outcome).Inc()
}

// SetSlotsFound выставляет количество найденных слотов для пары площадка/дата
func (m *Metrics) SetSlotsFound(venueID, date string, count int) {
	if m == nil {
		return
	}
	m.slotsFound.WithLabelValues(venueID, date).Set(float64(count))
}

// DeleteSlotsFound удаляет серию available_slots для пары, которая больше не проверяется
func (m *Metrics) DeleteSlotsFound(venueID, date string) {
	if m == nil {
		return
	}
	m.slotsFound.DeleteLabelValues(venueID, date)
}

// ObserveUpstreamRequest учитывает запрос к сайту бронирования
func (m *Metrics) ObserveUpstreamRequest(endpoint, result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(endpoint, result).Observe(duration.Seconds())
}

// IncTokenRefresh учитывает попытку обновления токена
func (m *Metrics) IncTokenRefresh(result string) {
	if m == nil {
		return
	}
	m.tokenRefreshes.WithLabelValues(result).Inc()
}

// IncNotification учитывает попытку отправки уведомления
func (m *Metrics) IncNotification(channel, result string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(channel, result).Inc()
}

// ObserveHTTPRequest учитывает запрос к status API
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
