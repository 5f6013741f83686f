package repositories

import "context"

// TxFn runs with a context that carries the open transaction
type TxFn func(ctx context.Context) error

// TransactionManager runs a unit of work atomically. Publishing reads the
// article, validates it and writes the new status inside one ExecTx call.
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}
