package shsports

import "time"

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс для сбора метрик запросов к сайту бронирования
type Metrics interface {
	ObserveUpstreamRequest(endpoint, result string, duration time.Duration)
	IncTokenRefresh(result string)
}
