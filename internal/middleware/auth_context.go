package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-care-insights/internal/ports/auth"
)

// DebugUserHeader identifica al dueño cuando no hay verifier configurado.
const DebugUserHeader = "X-Debug-User-ID"

type claimsKey struct{}

// AuthContext resuelve la identidad del dueño y la deja en el contexto.
// Nunca corta el request: los handlers responden 401 si necesitan usuario.
//
// Sin verifier se acepta DebugUserHeader (modo local). Con verifier solo
// cuenta un Bearer token válido.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	resolve := debugClaims
	if verifier != nil {
		resolve = bearerClaims(verifier)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c, ok := resolve(r); ok {
				r = r.WithContext(WithClaims(r.Context(), c))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func debugClaims(r *http.Request) (auth.Claims, bool) {
	c := auth.Claims{UserID: strings.TrimSpace(r.Header.Get(DebugUserHeader))}
	return c, c.Authenticated()
}

func bearerClaims(v auth.AuthVerifier) func(*http.Request) (auth.Claims, bool) {
	return func(r *http.Request) (auth.Claims, bool) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			return auth.Claims{}, false
		}
		c, err := v.Verify(r.Context(), token)
		if err != nil {
			return auth.Claims{}, false
		}
		return c, c.Authenticated()
	}
}

// WithClaims guarda claims en ctx.
func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(auth.Claims)
	return c, ok && c.Authenticated()
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
