package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"go.uber.org/zap"
)

type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	Logger    *zap.Logger
	// HTTPClient overrides the default client; its Jar is replaced when nil.
	HTTPClient *http.Client
	Now        func() time.Time
}

// Client talks to the order backend for a single user. The backend keeps its
// login session in a cookie, so every Client owns its own jar and must not be
// shared between users.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	logger    *zap.Logger
	now       func() time.Time
}

func New(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("backend base url is required")
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	} else {
		clone := *hc
		hc = &clone
	}
	if hc.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		hc.Jar = jar
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	ua := strings.TrimSpace(opts.UserAgent)
	if ua == "" {
		ua = "group-order-client"
	}

	return &Client{baseURL: base, userAgent: ua, http: hc, logger: logger, now: now}, nil
}

type envelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, op, method, path string, body any, out any) (string, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return "", &Error{Kind: KindValidation, Op: op, Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return "", &Error{Kind: KindTransport, Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if method != http.MethodGet {
		req.Header.Set("Content-Type", "application/json")
	}

	start := c.now()
	res, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("backend request failed", zap.String("op", op), zap.String("path", path), zap.Error(err))
		return "", &Error{Kind: KindTransport, Op: op, Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return "", &Error{Kind: KindTransport, Op: op, Status: res.StatusCode, Err: err}
	}

	c.logger.Debug(
		"backend request",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", res.StatusCode),
		zap.Int64("duration_ms", c.now().Sub(start).Milliseconds()),
	)

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", &Error{Kind: KindProtocol, Op: op, Status: res.StatusCode, Message: env.Message}
	}
	if decodeErr != nil {
		return "", &Error{Kind: KindProtocol, Op: op, Status: res.StatusCode, Err: decodeErr}
	}
	if env.Success != nil && !*env.Success {
		return "", &Error{Kind: KindApplication, Op: op, Status: res.StatusCode, Message: env.Message}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return "", &Error{Kind: KindProtocol, Op: op, Status: res.StatusCode, Err: err}
		}
	}
	return env.Message, nil
}
