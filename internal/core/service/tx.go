package service

import "context"

// directTx runs every step on its own; used when no TxRunner is configured.
type directTx struct{}

func (directTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
