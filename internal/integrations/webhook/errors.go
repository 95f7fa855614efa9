package webhook

import "errors"

var (
	// ErrInvalidURL возвращается при некорректном адресе вебхука
	ErrInvalidURL = errors.New("webhook client: invalid url")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("webhook client: internal error")

	// ErrInvalidResponse возвращается при ответе со статусом не 2xx
	ErrInvalidResponse = errors.New("webhook client: invalid response")
)
