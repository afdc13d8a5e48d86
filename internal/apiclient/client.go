package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader - заголовок, по которому запрос находится в логах API
const RequestIDHeader = "X-Request-ID"

// maxBodySize ограничивает размер читаемого ответа
const maxBodySize = 10 << 20

// Client - типизированный клиент REST API школы. Бизнес-логики здесь нет.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient создаёт клиента. timeout ограничивает каждый запрос, повторов нет.
func NewClient(baseURL, token string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// do выполняет запрос и раскладывает ответ в out. key - имя поля, под которым
// часть эндпоинтов отдаёт сущность ({"schedule": {...}}). Возвращает total, если API его прислал.
func (c *Client) do(ctx context.Context, method, path, key string, query url.Values, body, out interface{}) (int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshal %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return 0, fmt.Errorf("build request %s %s: %w", method, path, err)
	}

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return 0, fmt.Errorf("read response %s %s: %w", method, path, err)
	}

	c.logger.Debug("API request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(started)),
		zap.String("request_id", requestID))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, newAPIError(resp.StatusCode, raw, requestID)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return 0, nil
	}

	total, err := decodeBody(raw, key, out)
	if err != nil {
		return 0, fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return total, nil
}

// decodeBody понимает три формы ответа: {"data": ..., "total": n}, {"<key>": ...}
// и сущность без обёртки. "data": null - пустой результат, out не трогается.
func decodeBody(raw []byte, key string, out interface{}) (int, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		// массив без обёртки
		return 0, json.Unmarshal(raw, out)
	}

	total := 0
	if value, ok := fields["total"]; ok {
		_ = json.Unmarshal(value, &total)
	}

	for _, name := range []string{"data", key} {
		if name == "" {
			continue
		}
		value, ok := fields[name]
		if !ok {
			continue
		}
		if isNull(value) {
			return total, nil
		}
		return total, json.Unmarshal(value, out)
	}

	return 0, json.Unmarshal(raw, out)
}

func isNull(value json.RawMessage) bool {
	trimmed := bytes.TrimSpace(value)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func (c *Client) get(ctx context.Context, path, key string, query url.Values, out interface{}) (int, error) {
	return c.do(ctx, http.MethodGet, path, key, query, nil, out)
}

func (c *Client) post(ctx context.Context, path, key string, body, out interface{}) error {
	_, err := c.do(ctx, http.MethodPost, path, key, nil, body, out)
	return err
}

func (c *Client) put(ctx context.Context, path, key string, body, out interface{}) error {
	_, err := c.do(ctx, http.MethodPut, path, key, nil, body, out)
	return err
}

func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, "", nil, nil, nil)
	return err
}

// requireID - созданная сущность должна прийти с id, иначе ответ API не распознан
func requireID(id int64, resource string) error {
	if id == 0 {
		return fmt.Errorf("%w: %s without id", ErrUnexpectedResponse, resource)
	}
	return nil
}

func idQuery(key string, id *int64, q url.Values) {
	if id != nil && *id > 0 {
		q.Set(key, fmt.Sprint(*id))
	}
}
