// Package historyapi implements the HTTP client for the weather history
// persistence service.
package historyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aldermoor/weatherlog/internal/domain/records"
)

// Client talks to the history service's REST resource collection. It
// implements ports.HistoryAPI.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// New creates a Client for the service at baseURL.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// List fetches the full record collection, newest first.
func (c *Client) List(ctx context.Context) ([]records.Record, error) {
	body, err := c.do(ctx, http.MethodGet, "/history", nil)
	if err != nil {
		return nil, err
	}

	var recs []records.Record
	if err := json.Unmarshal(body, &recs); err != nil {
		return nil, fmt.Errorf("decoding history list: %w", err)
	}
	return recs, nil
}

// Create persists a new record.
func (c *Client) Create(ctx context.Context, rec records.NewRecord) (*records.Record, error) {
	body, err := c.do(ctx, http.MethodPost, "/history", rec)
	if err != nil {
		return nil, err
	}

	var created records.Record
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decoding created record: %w", err)
	}
	return &created, nil
}

// Update applies a partial update to a record's editable fields.
func (c *Client) Update(ctx context.Context, id string, upd records.Update) (*records.Record, error) {
	body, err := c.do(ctx, http.MethodPut, "/history/"+id, upd)
	if err != nil {
		return nil, err
	}

	var updated records.Record
	if err := json.Unmarshal(body, &updated); err != nil {
		return nil, fmt.Errorf("decoding updated record: %w", err)
	}
	return &updated, nil
}

// Delete removes a record.
func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/history/"+id, nil)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling history service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, records.ErrNotFound
	case resp.StatusCode >= 400:
		c.logger.Warn("history service error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("history service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}
