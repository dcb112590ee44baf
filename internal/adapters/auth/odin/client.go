package odin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-care-insights/internal/platform/httpclient"
	"pet-care-insights/internal/ports/auth"
)

var (
	ErrOdinNotConfigured = errors.New("odin client not configured")
	ErrOdinUnauthorized  = errors.New("odin unauthorized")
	ErrOdinUpstream      = errors.New("odin upstream error")
)

const verifyPath = "/v1/tokens/verify"

// Config del cliente Odin (IAM). Viene de config.Config en main.
type Config struct {
	BaseURL string
	APIKey  string

	// Opcional: nombre del header donde se manda la API key.
	// Si está vacío, se usa "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration

	// RatePerSec limita las verificaciones salientes (0 = sin límite).
	RatePerSec float64
}

type Client struct {
	apiKey       string
	apiKeyHeader string
	http         *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), timeout)
	if err != nil {
		return nil, fmt.Errorf("odin: %w", err)
	}

	return &Client{
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
		http:         hc.WithRateLimit(cfg.RatePerSec),
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != "" && c.apiKey != ""
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	TenantID string `json:"tenant_id"`
}

// VerifyToken llama a Odin para verificar un token y traer claims.
func (c *Client) VerifyToken(ctx context.Context, token string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrOdinNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrOdinUnauthorized
	}

	headers := map[string]string{
		c.apiKeyHeader: c.apiKey,
		// Algunos IAM esperan el token en Authorization, aunque también vaya en body.
		"Authorization": "Bearer " + token,
	}

	var out verifyResponse
	err := c.http.DoJSON(ctx, http.MethodPost, verifyPath, headers, verifyRequest{Token: token}, &out)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			switch httpErr.StatusCode {
			case http.StatusUnauthorized, http.StatusForbidden:
				return auth.Claims{}, ErrOdinUnauthorized
			}
			return auth.Claims{}, fmt.Errorf("%w: status=%d", ErrOdinUpstream, httpErr.StatusCode)
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrOdinUpstream, err)
	}

	out.UserID = strings.TrimSpace(out.UserID)
	if out.UserID == "" {
		return auth.Claims{}, fmt.Errorf("%w: response missing user_id", ErrOdinUpstream)
	}

	return auth.Claims{
		UserID:   out.UserID,
		Email:    strings.TrimSpace(out.Email),
		TenantID: strings.TrimSpace(out.TenantID),
	}, nil
}
