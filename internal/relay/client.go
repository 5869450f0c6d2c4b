package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/maheshrc27/pageflow/internal/transfer"
)

// Client calls the relay endpoint over HTTP. It satisfies the dashboard's
// Publisher interface.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) Publish(ctx context.Context, req *transfer.PublishRequest) (*transfer.PublishResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		slog.Error(err.Error())
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/publish", bytes.NewReader(body))
	if err != nil {
		slog.Error(err.Error())
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		slog.Error(err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		ID    string `json:"id"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		slog.Error(err.Error())
		return nil, fmt.Errorf("relay returned an unreadable response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || payload.ID == "" {
		message := payload.Error
		if message == "" {
			message = fmt.Sprintf("relay returned status %d", resp.StatusCode)
		}
		return nil, errors.New(message)
	}

	return &transfer.PublishResult{ID: payload.ID}, nil
}
