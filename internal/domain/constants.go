package domain

import "time"

// Значения по умолчанию
const (
	DefaultCheckInterval   = 60 * time.Second
	DefaultPairDelay       = 2 * time.Second
	DefaultRequestTimeout  = 10 * time.Second
	DefaultMinStartMinutes = 1080 // 18:00
	DefaultMaxRetries      = 2
)

// MatrixSuccessCode значение поля code в успешном ответе матрицы ресурсов
const MatrixSuccessCode = 200

// PriceMinorUnits количество минимальных единиц валюты в одной основной
const PriceMinorUnits = 100

// DateFormat формат дат в конфигурации и запросах к сайту
const DateFormat = "2006-01-02" // YYYY-MM-DD

// DefaultExcludedStatuses статусы слотов, которые никогда не считаются свободными
var DefaultExcludedStatuses = []SlotStatus{
	SlotStatusOrdered,
	SlotStatusLocked,
}
