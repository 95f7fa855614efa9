package webhook

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/SMC-VenueMonitor/internal/domain"
	"github.com/m04kA/SMC-VenueMonitor/internal/service/notifier/message"
)

const channelName = "webhook"

// Flavor формат тела запроса, определяется по хосту вебхука
type Flavor string

const (
	FlavorDingTalk Flavor = "dingtalk"
	FlavorWeCom    Flavor = "wecom"
	FlavorGeneric  Flavor = "generic"
)

// Client отправляет уведомления на вебхук
type Client struct {
	url        string
	flavor     Flavor
	httpClient *http.Client
}

// NewClient создает новый экземпляр клиента вебхука
func NewClient(rawURL string, timeout time.Duration, insecureSkipVerify bool) (*Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if insecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	return &Client{
		url:    rawURL,
		flavor: DetectFlavor(parsed.Hostname()),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}, nil
}

// Name возвращает имя канала
func (c *Client) Name() string {
	return channelName
}

// Flavor возвращает формат, выбранный для адреса вебхука
func (c *Client) Flavor() Flavor {
	return c.flavor
}

// Send отправляет уведомление POST запросом с JSON телом
func (c *Client) Send(ctx context.Context, n domain.Notification) error {
	body, err := json.Marshal(BuildPayload(c.flavor, n))
	if err != nil {
		return fmt.Errorf("%w: failed to encode payload: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	return nil
}

// DetectFlavor выбирает формат тела по хосту вебхука
func DetectFlavor(host string) Flavor {
	host = strings.ToLower(host)
	switch {
	case strings.Contains(host, "dingtalk"):
		return FlavorDingTalk
	case host == "qyapi.weixin.qq.com":
		return FlavorWeCom
	default:
		return FlavorGeneric
	}
}

// BuildPayload формирует тело запроса для выбранного формата
func BuildPayload(flavor Flavor, n domain.Notification) interface{} {
	switch flavor {
	case FlavorDingTalk, FlavorWeCom:
		return message.NewChatPayload(n)
	default:
		return message.NewGenericPayload(n)
	}
}
