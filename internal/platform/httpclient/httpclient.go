// Package httpclient es el cliente JSON compartido por los adapters upstream
// (Odin para auth, plans-features para capabilities).
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultTimeout = 10 * time.Second

	maxBody = 1 << 20
)

var ErrRelativeURL = errors.New("httpclient: relative path requires BaseURL")

type Client struct {
	HTTP    *http.Client
	BaseURL string

	limiter *rate.Limiter
	retries int
	backoff time.Duration
}

func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{HTTP: &http.Client{Timeout: timeout}}
}

// NewWithBaseURL valida baseURL; vacío deja un cliente que solo acepta URLs absolutas.
func NewWithBaseURL(baseURL string, timeout time.Duration) (*Client, error) {
	c := New(timeout)
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return c, nil
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	c.BaseURL = strings.TrimRight(baseURL, "/")
	return c, nil
}

// WithRateLimit limita los requests salientes a perSec por segundo.
// perSec <= 0 deja el cliente sin límite.
func (c *Client) WithRateLimit(perSec float64) *Client {
	if perSec <= 0 {
		c.limiter = nil
		return c
	}
	c.limiter = rate.NewLimiter(rate.Limit(perSec), max(int(perSec), 1))
	return c
}

// WithRetries reintenta GETs que fallan con 429/5xx o error de red,
// esperando backoff, 2*backoff, ... entre intentos.
func (c *Client) WithRetries(n int, backoff time.Duration) *Client {
	c.retries = max(n, 0)
	c.backoff = backoff
	return c
}

// HTTPError representa una respuesta no-2xx.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// Retryable: el upstream puede responder distinto si se vuelve a intentar.
func (e *HTTPError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// DoJSON manda in como JSON (si no es nil) y decodifica la respuesta en out
// (si no es nil). pathOrURL es absoluta o relativa a BaseURL.
// Una respuesta no-2xx vuelve como *HTTPError.
func (c *Client) DoJSON(ctx context.Context, method, pathOrURL string, headers map[string]string, in, out any) error {
	if c == nil || c.HTTP == nil {
		return errors.New("httpclient: nil client")
	}
	fullURL, err := c.resolveURL(pathOrURL)
	if err != nil {
		return err
	}

	var payload []byte
	if in != nil {
		if payload, err = json.Marshal(in); err != nil {
			return fmt.Errorf("httpclient: marshal json: %w", err)
		}
	}

	attempts := 1
	if method == http.MethodGet {
		attempts += c.retries
	}

	var raw []byte
	for i := 0; i < attempts; i++ {
		if i > 0 {
			if err := sleep(ctx, c.backoff*time.Duration(1<<(i-1))); err != nil {
				return fmt.Errorf("httpclient: retry: %w", err)
			}
		}
		raw, err = c.once(ctx, method, fullURL, headers, payload)
		if !retryable(err) {
			break
		}
	}
	if err != nil {
		return err
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return nil
}

func (c *Client) once(ctx context.Context, method, fullURL string, headers map[string]string, payload []byte) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("httpclient: rate limit: %w", err)
		}
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		if strings.TrimSpace(k) != "" {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &transportError{err: err}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	return raw, nil
}

type transportError struct{ err error }

func (e *transportError) Error() string { return "httpclient: do request: " + e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }

func retryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Retryable()
	}
	var te *transportError
	return errors.As(err, &te)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (c *Client) resolveURL(pathOrURL string) (string, error) {
	pathOrURL = strings.TrimSpace(pathOrURL)
	if pathOrURL == "" {
		return "", errors.New("httpclient: empty url")
	}
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return pathOrURL, nil
	}
	if c.BaseURL == "" {
		return "", ErrRelativeURL
	}
	return c.BaseURL + "/" + strings.TrimPrefix(pathOrURL, "/"), nil
}
