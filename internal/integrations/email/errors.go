package email

import "errors"

var (
	// ErrInvalidConfig возвращается при неполной конфигурации SMTP
	ErrInvalidConfig = errors.New("email sender: invalid config")

	// ErrSMTP возвращается при ошибках диалога с SMTP сервером
	ErrSMTP = errors.New("email sender: smtp error")
)
