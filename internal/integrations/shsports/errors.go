package shsports

import "errors"

var (
	// ErrAuth возвращается, когда не удалось обновить access token
	ErrAuth = errors.New("shsports client: token refresh failed")

	// ErrTransport возвращается при сетевых ошибках (соединение, таймаут)
	ErrTransport = errors.New("shsports client: transport error")

	// ErrHTTPStatus возвращается при ответе со статусом 4xx/5xx
	ErrHTTPStatus = errors.New("shsports client: unexpected http status")

	// ErrDecode возвращается, когда тело ответа не является корректным JSON
	ErrDecode = errors.New("shsports client: failed to decode response")

	// ErrUnsupportedMethod возвращается для HTTP методов, отличных от GET и POST
	ErrUnsupportedMethod = errors.New("shsports client: unsupported http method")
)
