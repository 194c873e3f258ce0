package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"NewsSnap/internal/domain"
	"NewsSnap/internal/ports"
)

const (
	summarizePath = "/api/summarize"
	healthPath    = "/api/health"

	defaultTimeout = 30 * time.Second
	maxErrorBody   = 64 << 10
)

// StatusError is a non-2xx reply from the summarization service.
type StatusError struct {
	Code    int
	Status  string
	Message string
}

// Error reports the status and the server message, if any.
func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("unexpected status %s: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("unexpected status %s", e.Status)
}

// StatusCode returns the HTTP status code.
func (e *StatusError) StatusCode() int { return e.Code }

// ServerMessage returns the error text the server put in the body, if any.
func (e *StatusError) ServerMessage() string { return e.Message }

// Client talks to the summarization service over JSON/HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
	now     func() time.Time
}

var _ ports.SummaryAPI = (*Client)(nil)

// NewClient creates a reusable HTTP client. A non-positive timeout falls back to 30s.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
		now:     time.Now,
	}
}

// Summarize posts the article URL and decodes the summary envelope.
func (c *Client) Summarize(ctx context.Context, req domain.SummaryRequest) (domain.SummaryEnvelope, error) {
	var env domain.SummaryEnvelope
	if err := c.do(ctx, http.MethodPost, summarizePath, req, &env); err != nil {
		return domain.SummaryEnvelope{}, err
	}
	return env, nil
}

// Health queries the service liveness endpoint.
func (c *Client) Health(ctx context.Context) (domain.HealthStatus, error) {
	var status domain.HealthStatus
	if err := c.do(ctx, http.MethodGet, healthPath, nil, &status); err != nil {
		return domain.HealthStatus{}, err
	}
	return status, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any, v any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	endpoint, err := c.endpoint(path)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	started := c.now()
	c.logger.Debug("api request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api response",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"elapsed", c.now().Sub(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if v == nil {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrInvalidStructure, err)
	}
	return nil
}

// endpoint adds a millisecond cache-busting parameter to every request.
func (c *Client) endpoint(path string) (string, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return "", fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("_t", strconv.FormatInt(c.now().UnixMilli(), 10))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func statusError(resp *http.Response) *StatusError {
	serr := &StatusError{Code: resp.StatusCode, Status: resp.Status}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return serr
	}

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &body) == nil {
		serr.Message = body.Error
		if serr.Message == "" {
			serr.Message = body.Message
		}
	}
	return serr
}
