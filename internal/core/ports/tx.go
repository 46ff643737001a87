package ports

import "context"

// TxRunner runs fn inside a single transactional boundary when the store
// supports one. Implementations without transactions run fn directly, so
// completed steps stay in place if a later step fails.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
