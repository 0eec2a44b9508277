package userservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	usersPath = "/internal/users/"

	// сколько байт тела ошибки попадает в текст ошибки клиента
	maxErrorBodySize = 4 << 10
)

// Client клиент для работы с UserService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента UserService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// GetUser получает имя и роль пользователя: GET /internal/users/{id}
func (c *Client) GetUser(ctx context.Context, userID int64) (*User, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id %d is not positive", ErrInternal, userID)
	}

	resp, err := c.get(ctx, usersPath+strconv.FormatInt(userID, 10))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	user, err := decodeUser(resp.Body)
	if err != nil {
		return nil, err
	}
	if user.ID != userID {
		return nil, fmt.Errorf("%w: requested user %d, got %d", ErrInvalidResponse, userID, user.ID)
	}
	return user, nil
}

// GetUserWithGracefulDegradation получает пользователя с graceful degradation.
// При недоступности UserService возвращает ErrServiceDegraded: вызывающий продолжает
// работу с непривилегированным пользователем без имени
func (c *Client) GetUserWithGracefulDegradation(ctx context.Context, userID int64) (*User, error) {
	user, err := c.GetUser(ctx, userID)
	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, ErrUserNotFound):
		c.log.Warn("User id=%d not found in UserService", userID)
		return nil, err
	default:
		c.log.Error("UserService unavailable, applying graceful degradation for user_id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: user_id=%d, error=%v", ErrServiceDegraded, userID, err)
	}
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", ErrInternal, path, err)
	}
	return resp, nil
}

// statusError переводит ответ с кодом, отличным от 200, в ошибку клиента
func statusError(resp *http.Response) error {
	if resp.StatusCode == http.StatusNotFound {
		return ErrUserNotFound
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	detail := strings.TrimSpace(string(raw))

	var body ErrorResponse
	if json.Unmarshal(raw, &body) == nil && body.Message != "" {
		detail = body.Message
	}
	return fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, detail)
}

func decodeUser(r io.Reader) (*User, error) {
	var user User
	if err := json.NewDecoder(r).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: decode user: %v", ErrInvalidResponse, err)
	}
	user.Name = strings.TrimSpace(user.Name)
	user.Role = strings.ToLower(strings.TrimSpace(user.Role))
	return &user, nil
}
