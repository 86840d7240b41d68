package calendarservice

import (
	"context"
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

// Client клиент для удаления событий из Outlook календарей пользователей
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CalendarService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// DeleteReservationEvent удаляет событие брони из календаря пользователя
// 404 считается успехом: события может не быть (пользователь удалил сам)
func (c *Client) DeleteReservationEvent(ctx context.Context, userID, reservationID int64) error {
	url := fmt.Sprintf("%s/internal/users/%d/events/reservation/%d", c.baseURL, userID, reservationID)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		c.log.Info("Calendar event removed for reservation_id=%d user_id=%d", reservationID, userID)
		return nil
	case http.StatusNotFound:
		c.log.Info("Calendar event already absent for reservation_id=%d user_id=%d", reservationID, userID)
		return nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}
}
