package paymentservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент платёжного сервиса
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента платёжного сервиса
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetExtensionRate получает почасовую ставку продления для пакета
func (c *Client) GetExtensionRate(ctx context.Context, packageID int64) (*ExtensionRate, error) {
	url := fmt.Sprintf("%s/internal/packages/%d/extension-rate", c.baseURL, packageID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrRateNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var rate ExtensionRate
	if err := json.NewDecoder(resp.Body).Decode(&rate); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &rate, nil
}

// GetExtensionRateWithGracefulDegradation получает ставку с graceful degradation
// При недоступности платёжного сервиса возвращает ErrServiceDegraded:
// продление проходит, но производная сумма к оплате в ответ не попадает
func (c *Client) GetExtensionRateWithGracefulDegradation(ctx context.Context, packageID int64) (*ExtensionRate, error) {
	rate, err := c.GetExtensionRate(ctx, packageID)
	if err != nil {
		if errors.Is(err, ErrRateNotFound) {
			c.log.Info("No extension rate configured for package=%d", packageID)
			return nil, err
		}

		c.log.Error("PaymentService unavailable, applying graceful degradation for package=%d: %v", packageID, err)
		return nil, fmt.Errorf("%w: package=%d, error=%v", ErrServiceDegraded, packageID, err)
	}

	return rate, nil
}
