package usage

import (
	"context"
	"database/sql"
	"strings"
)

// PGRepo is the Postgres-backed ledger. Inserts only, never updates.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Append(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO generation_usage (id, email, input_type, input_size, template_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query,
		rec.ID,
		strings.ToLower(strings.TrimSpace(rec.Email)),
		rec.InputType,
		rec.InputSize,
		rec.TemplateID,
		rec.CreatedAt,
	)
	return err
}

func (r *PGRepo) ListByEmail(ctx context.Context, email string) ([]Record, error) {
	const query = `
SELECT id, email, input_type, input_size, template_id, created_at
FROM generation_usage
WHERE email = $1
ORDER BY created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Email, &rec.InputType, &rec.InputSize, &rec.TemplateID, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *PGRepo) CountByEmail(ctx context.Context, email string) (int, error) {
	const query = `
SELECT COUNT(*) FROM generation_usage WHERE email = $1`
	var count int
	err := r.DB.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(email))).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

var _ Repo = (*PGRepo)(nil)
