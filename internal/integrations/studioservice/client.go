package studioservice

import (
	"context"
	"encoding/json"
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

// Client клиент для работы со StudioService (каталог студий,
// локаций, услуг и сотрудников)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента StudioService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetStudio получает профиль студии (часовой пояс, менеджеры, локации)
func (c *Client) GetStudio(ctx context.Context, studioID int64) (*Studio, error) {
	url := fmt.Sprintf("%s/internal/studios/%d", c.baseURL, studioID)

	var studio Studio
	if err := c.getJSON(ctx, url, &studio, ErrStudioNotFound); err != nil {
		return nil, err
	}
	return &studio, nil
}

// GetService получает услугу из каталога студии
func (c *Client) GetService(ctx context.Context, studioID, serviceID int64) (*Service, error) {
	url := fmt.Sprintf("%s/internal/studios/%d/services/%d", c.baseURL, studioID, serviceID)

	var service Service
	if err := c.getJSON(ctx, url, &service, ErrServiceNotFound); err != nil {
		return nil, err
	}
	return &service, nil
}

// GetStaffMember получает сотрудника студии
func (c *Client) GetStaffMember(ctx context.Context, studioID, staffID int64) (*StaffMember, error) {
	url := fmt.Sprintf("%s/internal/studios/%d/staff/%d", c.baseURL, studioID, staffID)

	var staff StaffMember
	if err := c.getJSON(ctx, url, &staff, ErrStaffNotFound); err != nil {
		return nil, err
	}
	return &staff, nil
}

// getJSON выполняет GET запрос и декодирует JSON ответ.
// notFound возвращается при статусе 404.
func (c *Client) getJSON(ctx context.Context, url string, dst interface{}, notFound error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}
