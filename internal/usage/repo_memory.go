package usage

import (
	"context"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory ledger for dev and tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	records []Record
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Append(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.Email = normalizeEmail(rec.Email)
	r.records = append(r.records, rec)
	return nil
}

func (r *MemoryRepo) ListByEmail(ctx context.Context, email string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	needle := normalizeEmail(email)
	var out []Record
	for _, rec := range r.records {
		if rec.Email == needle {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *MemoryRepo) CountByEmail(ctx context.Context, email string) (int, error) {
	records, err := r.ListByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var _ Repo = (*MemoryRepo)(nil)
