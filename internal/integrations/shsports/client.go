package shsports

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/SMC-VenueMonitor/internal/domain"
)

// Client клиент для работы с сайтом бронирования спортивных площадок
type Client struct {
	baseURL     string
	httpClient  *http.Client
	session     *Session
	credentials Credentials
	maxRetries  int
	log         Logger
	metrics     Metrics
}

// NewClient создает новый экземпляр клиента
func NewClient(opts Options, log Logger, metrics Metrics) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.InsecureSkipVerify {
		// Сертификат сайта периодически не проходит проверку
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	return NewClientWithHTTP(opts, &http.Client{
		Timeout:   opts.Timeout,
		Transport: transport,
	}, log, metrics)
}

// NewClientWithHTTP создает клиент поверх переданного http.Client
func NewClientWithHTTP(opts Options, httpClient *http.Client, log Logger, metrics Metrics) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = domain.DefaultMaxRetries
	}

	if httpClient.Timeout == 0 {
		httpClient.Timeout = domain.DefaultRequestTimeout
	}

	credentials := opts.Credentials
	if credentials.GrantType == "" {
		credentials.GrantType = DefaultGrantType
	}

	return &Client{
		baseURL:     baseURL,
		httpClient:  httpClient,
		session:     NewSession(opts.Referer, opts.Headers),
		credentials: credentials,
		maxRetries:  maxRetries,
		log:         log,
		metrics:     metrics,
	}
}

// Session возвращает сессию клиента
func (c *Client) Session() *Session {
	return c.session
}

// RefreshToken получает новый access token и сохраняет его в сессии.
// При ошибке предыдущий токен остается без изменений.
func (c *Client) RefreshToken(ctx context.Context) (string, error) {
	params := url.Values{}
	params.Set("client_id", c.credentials.ClientID)
	params.Set("grant_type", c.credentials.GrantType)
	params.Set("client_secret", c.credentials.ClientSecret)
	params.Set("code", c.credentials.Code)

	c.log.Info("shsports: refreshing access token")
	started := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+tokenPath+"?"+params.Encode(), nil)
	if err != nil {
		return "", c.tokenFailure(started, fmt.Errorf("%w: failed to create request: %v", ErrAuth, err))
	}
	c.session.ApplyBase(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", c.tokenFailure(started, fmt.Errorf("%w: failed to execute request: %v", ErrAuth, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", c.tokenFailure(started, fmt.Errorf("%w: unexpected status code %d: %s", ErrAuth, resp.StatusCode, string(body)))
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", c.tokenFailure(started, fmt.Errorf("%w: failed to decode response: %v", ErrAuth, err))
	}
	if token.AccessToken == "" {
		return "", c.tokenFailure(started, fmt.Errorf("%w: response has no access_token", ErrAuth))
	}

	c.session.SetToken(token.AccessToken)
	c.metrics.ObserveUpstreamRequest(endpointToken, resultOK, time.Since(started))
	c.metrics.IncTokenRefresh(resultOK)
	c.log.Info("shsports: got new access token %s...", preview(token.AccessToken))

	return token.AccessToken, nil
}

// CheckBookable проверяет, открыто ли бронирование площадки на дату.
// При ошибке запроса возвращает Bookable=false вместе с ошибкой.
func (c *Client) CheckBookable(ctx context.Context, venueID, date string) (domain.BookableStatus, error) {
	path := fmt.Sprintf(bookablePathFormat, url.PathEscape(venueID), url.PathEscape(date))

	var status domain.BookableStatus
	if err := c.do(ctx, endpointBookable, http.MethodGet, path, nil, nil, &status); err != nil {
		c.log.Warn("shsports: failed to check bookable status venue=%s date=%s: %v", venueID, date, err)
		return domain.BookableStatus{}, err
	}

	c.log.Info("shsports: bookable status venue=%s date=%s bookable=%t msg=%s", venueID, date, status.Bookable, status.Msg)
	return status, nil
}

// GetResources получает матрицу ресурсов площадки на дату.
// Перед использованием Data вызывающий код должен проверить IsSuccess.
func (c *Client) GetResources(ctx context.Context, venueID, date string) (*domain.ResourceMatrix, error) {
	path := fmt.Sprintf(matrixPathFormat, url.PathEscape(venueID))

	query := url.Values{}
	query.Set("stadiumItemId", venueID)
	query.Set("date", date)

	var matrix domain.ResourceMatrix
	if err := c.do(ctx, endpointMatrix, http.MethodGet, path, query, nil, &matrix); err != nil {
		c.log.Warn("shsports: failed to get resources venue=%s date=%s: %v", venueID, date, err)
		return nil, err
	}

	return &matrix, nil
}

// Request выполняет произвольный аутентифицированный запрос и декодирует JSON ответ в out
func (c *Client) Request(ctx context.Context, method, path string, query url.Values, body interface{}, out interface{}) error {
	return c.do(ctx, endpointCustom, method, path, query, body, out)
}

// do выполняет запрос с повторами.
// Сетевая ошибка или 401/403 при оставшихся попытках приводит к обновлению
// токена перед следующей попыткой. Ошибка декодирования JSON не повторяется.
func (c *Client) do(ctx context.Context, endpoint, method, path string, query url.Values, body interface{}, out interface{}) error {
	if method != http.MethodGet && method != http.MethodPost {
		return fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		payload, statusCode, err := c.send(ctx, endpoint, method, path, query, body)
		if err == nil {
			if err := json.Unmarshal(payload, out); err != nil {
				c.log.Error("shsports: failed to decode response %s %s: %v", method, path, err)
				return fmt.Errorf("%w: %s %s: %v", ErrDecode, method, path, err)
			}
			return nil
		}

		lastErr = err
		c.log.Warn("shsports: request %s %s failed (attempt %d/%d): %v", method, path, attempt, c.maxRetries, err)

		if ctx.Err() != nil {
			return lastErr
		}

		if attempt < c.maxRetries && needsTokenRefresh(statusCode, err) {
			if _, refreshErr := c.RefreshToken(ctx); refreshErr != nil {
				c.log.Error("shsports: %v", refreshErr)
			}
		}
	}

	c.log.Error("shsports: request %s %s finally failed: %v", method, path, lastErr)
	return lastErr
}

// send выполняет одну попытку запроса.
// Возвращает тело ответа, HTTP статус (0 при сетевой ошибке) и ошибку.
func (c *Client) send(ctx context.Context, endpoint, method, path string, query url.Values, body interface{}) ([]byte, int, error) {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: failed to encode request body: %v", ErrTransport, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: failed to create request: %v", ErrTransport, err)
	}
	c.session.Apply(req)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveUpstreamRequest(endpoint, resultTransportError, time.Since(started))
		return nil, 0, fmt.Errorf("%w: failed to execute request: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.ObserveUpstreamRequest(endpoint, resultTransportError, time.Since(started))
		return nil, resp.StatusCode, fmt.Errorf("%w: failed to read response body: %v", ErrTransport, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		result := resultHTTPError
		if isAuthStatus(resp.StatusCode) {
			result = resultAuthError
		}
		c.metrics.ObserveUpstreamRequest(endpoint, result, time.Since(started))
		return nil, resp.StatusCode, fmt.Errorf("%w: status code %d: %s", ErrHTTPStatus, resp.StatusCode, truncate(string(payload), 200))
	}

	elapsed := time.Since(started)
	if !json.Valid(payload) {
		c.metrics.ObserveUpstreamRequest(endpoint, resultDecodeError, elapsed)
	} else {
		c.metrics.ObserveUpstreamRequest(endpoint, resultOK, elapsed)
	}
	c.log.Debug("shsports: %s %s -> %d in %s, %d bytes", method, path, resp.StatusCode, elapsed, len(payload))

	return payload, resp.StatusCode, nil
}

func (c *Client) tokenFailure(started time.Time, err error) error {
	c.metrics.ObserveUpstreamRequest(endpointToken, resultAuthError, time.Since(started))
	c.metrics.IncTokenRefresh(resultAuthError)
	return err
}

// needsTokenRefresh решает по результату последней попытки, нужно ли
// обновить токен перед повтором
func needsTokenRefresh(statusCode int, err error) bool {
	if errors.Is(err, ErrTransport) {
		return true
	}
	return isAuthStatus(statusCode)
}

func isAuthStatus(statusCode int) bool {
	return statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden
}

func preview(token string) string {
	if len(token) <= tokenPreviewLength {
		return token
	}
	return token[:tokenPreviewLength]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
