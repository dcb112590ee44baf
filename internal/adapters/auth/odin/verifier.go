package odin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-care-insights/internal/ports/auth"
)

var ErrTokenEmpty = errors.New("token is empty")

// Verifier implementa auth.AuthVerifier usando Odin. main lo instancia solo
// si ODIN_BASE_URL y ODIN_API_KEY están configurados; si no, modo dev.
type Verifier struct {
	client *Client
}

func NewVerifier(client *Client) *Verifier {
	return &Verifier{client: client}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil {
		return auth.Claims{}, ErrOdinNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	claims, err := v.client.VerifyToken(ctx, token)
	if err != nil {
		// El middleware no corta; el handler decide 401.
		return auth.Claims{}, fmt.Errorf("odin verify failed: %w", err)
	}
	return claims, nil
}
