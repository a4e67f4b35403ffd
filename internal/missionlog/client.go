package missionlog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/operatorprotocol/internal/workout"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const clientUserAgent = "OperatorWorkout/1.0"

var _ workout.LogWriter = (*Client)(nil)

// Client posts completed workouts to the service on behalf of a logged in operator.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   15 * time.Second,
		},
	}
}

func (c *Client) WriteLog(ctx context.Context, req workout.LogRequest) error {
	payload, err := json.Marshal(NewLog{
		Category: Category(req.Category),
		Date:     req.Date,
	})
	if err != nil {
		return fmt.Errorf("marshal log request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/logs", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("new log request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", clientUserAgent)
	if c.token != "" {
		httpReq.Header.Set("X-SERJ-TOKEN", c.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("post log: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusCreated, http.StatusOK:
		return nil
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	case http.StatusBadRequest:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s", ErrValidation, strings.TrimSpace(string(body)))
	default:
		return fmt.Errorf("post log: unexpected status %d", resp.StatusCode)
	}
}
