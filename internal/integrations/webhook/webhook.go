// Package webhook submits captured property addresses to an intake webhook.
package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Dan9191/property-service/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout bounds a single delivery attempt.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is the number of delivery attempts.
	DefaultMaxRetries = 3

	// DefaultRateLimit caps outbound requests per second.
	DefaultRateLimit = 5

	pingTimeout   = 10 * time.Second
	payloadSource = "property-service"
	payloadVer    = "1.0"
	userAgent     = "RealEstate-Property-Service/1.0"
)

// ErrDeliveryFailed is returned when every attempt failed.
var ErrDeliveryFailed = errors.New("webhook delivery failed")

// Client posts address payloads to the webhook
type Client struct {
	url        string
	secret     string
	client     *http.Client
	limiter    *rate.Limiter
	log        *logrus.Logger
	maxRetries int
	backoff    time.Duration
	now        func() time.Time
}

// Option configures the Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.client = c }
}

// WithSecret enables HMAC signing of payloads.
func WithSecret(secret string) Option {
	return func(cl *Client) { cl.secret = secret }
}

// WithRateLimit sets the outbound request rate.
func WithRateLimit(requestsPerSecond int) Option {
	return func(cl *Client) {
		if requestsPerSecond > 0 {
			cl.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		}
	}
}

// WithBackoff sets the base delay between attempts; attempt n waits base*2^n.
func WithBackoff(base time.Duration) Option {
	return func(cl *Client) { cl.backoff = base }
}

// WithMaxRetries sets the number of delivery attempts.
func WithMaxRetries(n int) Option {
	return func(cl *Client) {
		if n > 0 {
			cl.maxRetries = n
		}
	}
}

// NewClient initializes a new webhook client
func NewClient(url string, log *logrus.Logger, opts ...Option) *Client {
	c := &Client{
		url: url,
		client: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		log:        log,
		maxRetries: DefaultMaxRetries,
		backoff:    time.Second,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Payload is the JSON body delivered to the webhook
type Payload struct {
	models.Address
	Timestamp string `json:"timestamp"`
	Source    string `json:"source"`
	Version   string `json:"version"`
}

// Result describes the outcome of a delivery
type Result struct {
	Success      bool    `json:"success"`
	StatusCode   int     `json:"status_code,omitempty"`
	ResponseText string  `json:"response_text"`
	Attempt      int     `json:"attempt"`
	Payload      Payload `json:"payload"`
}

// Send delivers an address, retrying with exponential backoff. Only a 200
// response counts as success. The returned Result is never nil.
func (c *Client) Send(ctx context.Context, addr models.Address) (*Result, error) {
	payload := Payload{
		Address:   addr,
		Timestamp: c.now().Format(time.RFC3339),
		Source:    payloadSource,
		Version:   payloadVer,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return &Result{Payload: payload}, fmt.Errorf("failed to encode payload: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		status, text, err := c.post(ctx, body)
		if err == nil && status == http.StatusOK {
			c.log.Infof("Address %s delivered on attempt %d", addr.FormattedAddress, attempt)
			return &Result{Success: true, StatusCode: status, ResponseText: text, Attempt: attempt, Payload: payload}, nil
		}
		if err == nil {
			err = fmt.Errorf("unexpected status code: %d", status)
		}
		lastErr = err
		c.log.Warnf("Webhook attempt %d failed: %v", attempt, err)

		if attempt < c.maxRetries {
			select {
			case <-ctx.Done():
				return &Result{ResponseText: ctx.Err().Error(), Attempt: attempt, Payload: payload},
					fmt.Errorf("%w: %v", ErrDeliveryFailed, ctx.Err())
			case <-time.After(c.backoff << (attempt - 1)):
			}
		}
	}

	return &Result{ResponseText: "All retry attempts failed", Attempt: c.maxRetries, Payload: payload},
		fmt.Errorf("%w: %v", ErrDeliveryFailed, lastErr)
}

// post sends one signed request and returns status and body text.
func (c *Client) post(ctx context.Context, body []byte) (int, string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, "", fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return 0, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.secret != "" {
		req.Header.Set("X-Signature", Sign(body, c.secret))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, string(text), nil
}

// PingResult reports webhook reachability
type PingResult struct {
	Success      bool    `json:"success"`
	StatusCode   int     `json:"status_code,omitempty"`
	ResponseTime float64 `json:"response_time"`
	ResponseText string  `json:"response_text,omitempty"`
	Error        string  `json:"error,omitempty"`
}

// Ping posts a test payload. Any HTTP response counts as reachable.
func (c *Client) Ping(ctx context.Context) *PingResult {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	body, _ := json.Marshal(map[string]any{
		"test":      true,
		"message":   "Connection test from property-service",
		"timestamp": c.now().Format(time.RFC3339),
	})

	start := time.Now()
	status, text, err := c.post(ctx, body)
	if err != nil && status == 0 {
		return &PingResult{Error: err.Error()}
	}
	if len(text) > 200 {
		text = text[:200]
	}
	return &PingResult{
		Success:      true,
		StatusCode:   status,
		ResponseTime: time.Since(start).Seconds(),
		ResponseText: text,
	}
}

// Sign returns the hex HMAC-SHA256 of body.
func Sign(body []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// ValidateURL reports whether url looks like an http(s) webhook endpoint.
func ValidateURL(url string) bool {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return false
	}
	return strings.Contains(strings.ToLower(url), "webhook")
}
