package shsports

import (
	"net/http"
	"strings"
	"sync"
)

const bearerPrefix = "Bearer "

// Session общие заголовки и access token для всех запросов к сайту.
// Токен заменяется целиком при каждом успешном обновлении.
type Session struct {
	mu      sync.RWMutex
	headers http.Header
	token   string
}

// NewSession создает сессию с заголовками по умолчанию, поверх которых
// применяются overrides. Заголовок Authorization из overrides становится
// начальным токеном.
func NewSession(referer string, overrides map[string]string) *Session {
	headers := http.Header{}
	headers.Set("User-Agent", DefaultUserAgent)
	headers.Set("Accept", "application/json, text/plain, */*")
	headers.Set("Accept-Language", "zh-CN,zh;q=0.9")
	if referer != "" {
		headers.Set("Referer", referer)
	}

	s := &Session{headers: headers}

	for key, value := range overrides {
		if http.CanonicalHeaderKey(key) == "Authorization" {
			s.token = strings.TrimPrefix(value, bearerPrefix)
			continue
		}
		s.headers.Set(key, value)
	}

	return s
}

// Token возвращает текущий access token (может быть пустым)
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken заменяет access token
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Apply проставляет общие заголовки и Authorization в запрос
func (s *Session) Apply(req *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.applyHeaders(req)
	if s.token != "" {
		req.Header.Set("Authorization", bearerPrefix+s.token)
	}
}

// ApplyBase проставляет только общие заголовки, без Authorization
func (s *Session) ApplyBase(req *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.applyHeaders(req)
}

func (s *Session) applyHeaders(req *http.Request) {
	for key, values := range s.headers {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
}
