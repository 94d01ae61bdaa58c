package usage

import "context"

// Repo is the append-only ledger store. ListByEmail must reflect every
// prior Append at read time; CountByEmail is a convenience over the same
// rows, never a cached counter.
type Repo interface {
	Append(ctx context.Context, rec Record) error
	ListByEmail(ctx context.Context, email string) ([]Record, error)
	CountByEmail(ctx context.Context, email string) (int, error)
}
