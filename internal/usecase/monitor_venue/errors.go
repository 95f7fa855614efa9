package monitor_venue

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrBookableUnknown возвращается, когда не удалось узнать, открыто ли бронирование
	ErrBookableUnknown = errors.New("bookable status unavailable")

	// ErrMatrixUnavailable возвращается, когда матрица ресурсов не получена или code != 200
	ErrMatrixUnavailable = errors.New("resource matrix unavailable")
)
