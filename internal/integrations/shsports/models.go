package shsports

import "time"

// Пути эндпоинтов сайта бронирования
const (
	tokenPath          = "/api/oauth/token"
	bookablePathFormat = "/order/v3/map/stadiumItem/bookable/%s/%s"
	matrixPathFormat   = "/api/stadium/resources/%s/matrix"
)

// Метки эндпоинтов для метрик
const (
	endpointToken    = "token"
	endpointBookable = "bookable"
	endpointMatrix   = "matrix"
	endpointCustom   = "custom"
)

// Метки результатов для метрик
const (
	resultOK             = "ok"
	resultTransportError = "transport_error"
	resultHTTPError      = "http_error"
	resultAuthError      = "auth_error"
	resultDecodeError    = "decode_error"
)

const (
	// DefaultBaseURL хост сайта бронирования
	DefaultBaseURL = "https://map.shsports.cn"

	// DefaultUserAgent User-Agent встроенного браузера мессенджера на iOS
	DefaultUserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148 MicroMessenger/8.0.29(0x18001d2f) NetType/WIFI Language/zh_CN"

	// DefaultGrantType тип гранта мини-программы
	DefaultGrantType = "wxmp_code"

	tokenPreviewLength = 20
)

// Credentials статические учетные данные для получения токена
type Credentials struct {
	ClientID     string
	ClientSecret string
	GrantType    string
	Code         string
}

// Options параметры клиента
type Options struct {
	BaseURL            string
	Timeout            time.Duration
	InsecureSkipVerify bool              // Отключает проверку TLS сертификата сайта
	Referer            string
	Headers            map[string]string // Переопределяют заголовки по умолчанию
	Credentials        Credentials
	MaxRetries         int
}

// tokenResponse ответ эндпоинта /api/oauth/token
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int    `json:"expires_in,omitempty"`
}
