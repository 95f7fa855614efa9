package config

import "errors"

var (
	// ErrConfig ошибка загрузки или валидации конфигурации
	ErrConfig = errors.New("invalid config")
)
