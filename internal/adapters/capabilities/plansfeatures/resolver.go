package plansfeatures

import (
	"context"
	"sync"
	"time"

	"pet-care-insights/internal/ports/capabilities"
)

const DefaultCacheTTL = time.Minute

// Resolver implementa capabilities.Resolver contra plans-features, con una
// caché corta por usuario para no consultar en cada reporte.
type Resolver struct {
	client   *Client
	allowAll bool
	ttl      time.Duration
	now      func() time.Time

	mu    sync.Mutex
	cache map[string]cached
}

type cached struct {
	set     capabilities.Set
	expires time.Time
}

// NewResolver: con allowAll (ALLOW_ALL_CAPABILITIES) todo queda habilitado
// sin llamar upstream (modo dev).
func NewResolver(client *Client, allowAll bool) *Resolver {
	return &Resolver{
		client:   client,
		allowAll: allowAll,
		ttl:      DefaultCacheTTL,
		now:      time.Now,
		cache:    map[string]cached{},
	}
}

func (r *Resolver) Resolve(ctx context.Context, userID string) (capabilities.Set, error) {
	if r.allowAll {
		return capabilities.Set{capabilities.Wildcard: true}, nil
	}
	if r.client == nil || !r.client.IsConfigured() {
		// Preferimos fallar explícito en vez de permitir sin control.
		return nil, ErrPlansNotConfigured
	}

	now := r.now()
	r.mu.Lock()
	if c, ok := r.cache[userID]; ok && now.Before(c.expires) {
		r.mu.Unlock()
		return c.set, nil
	}
	r.mu.Unlock()

	resp, err := r.client.GetCapabilities(ctx, userID)
	if err != nil {
		return nil, err
	}
	set := capabilities.Set(resp.Capabilities)

	r.mu.Lock()
	r.cache[userID] = cached{set: set, expires: now.Add(r.ttl)}
	r.mu.Unlock()

	return set, nil
}
