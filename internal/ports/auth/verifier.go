package auth

import "context"

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// VerifierFunc permite usar una función como AuthVerifier.
type VerifierFunc func(ctx context.Context, token string) (Claims, error)

func (f VerifierFunc) Verify(ctx context.Context, token string) (Claims, error) {
	return f(ctx, token)
}
