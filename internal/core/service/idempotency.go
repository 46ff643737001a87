package service

import (
	"context"

	"github.com/rs/zerolog"
)

const (
	scopePost    = "post"
	scopeComment = "comment"
)

// IdempotencyStore remembers which resource a client-supplied retry key produced.
// Keys are namespaced by scope and owner so two users never collide.
type IdempotencyStore interface {
	Lookup(ctx context.Context, scope, owner, key string) (resourceID string, found bool, err error)
	Remember(ctx context.Context, scope, owner, key, resourceID string) error
}

type noopIdempotency struct{}

func (noopIdempotency) Lookup(context.Context, string, string, string) (string, bool, error) {
	return "", false, nil
}

func (noopIdempotency) Remember(context.Context, string, string, string, string) error {
	return nil
}

// replayedID returns the resource previously created under key. Store
// failures are logged and treated as a miss.
func replayedID(ctx context.Context, store IdempotencyStore, log zerolog.Logger, scope, owner, key string) (string, bool) {
	if key == "" {
		return "", false
	}
	id, found, err := store.Lookup(ctx, scope, owner, key)
	if err != nil {
		log.Warn().Err(err).Str("scope", scope).Str("idempotency_key", key).Msg("idempotency lookup failed, creating anyway")
		return "", false
	}
	return id, found
}

func rememberID(ctx context.Context, store IdempotencyStore, log zerolog.Logger, scope, owner, key, id string) {
	if key == "" {
		return
	}
	if err := store.Remember(ctx, scope, owner, key, id); err != nil {
		log.Warn().Err(err).Str("scope", scope).Str("idempotency_key", key).Msg("failed to store idempotency key")
	}
}
