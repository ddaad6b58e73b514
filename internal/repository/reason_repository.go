package repository

import "context"

// ReasonRepository lists the configured rejection and cancellation reasons.
type ReasonRepository interface {
	ListRejectionReasons(ctx context.Context) ([]string, error)
	ListCancellationReasons(ctx context.Context) ([]string, error)
}

type reasonRepository struct {
	q Querier
}

// NewReasonRepository instantiates repository.
func NewReasonRepository(q Querier) ReasonRepository {
	return &reasonRepository{q: q}
}

func (r *reasonRepository) ListRejectionReasons(ctx context.Context) ([]string, error) {
	return r.listReasons(ctx, `SELECT reason FROM rejection_reasons ORDER BY reason`)
}

func (r *reasonRepository) ListCancellationReasons(ctx context.Context) ([]string, error) {
	return r.listReasons(ctx, `SELECT reason FROM cancellation_reasons ORDER BY reason`)
}

func (r *reasonRepository) listReasons(ctx context.Context, query string) ([]string, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reasons []string
	for rows.Next() {
		var reason string
		if err := rows.Scan(&reason); err != nil {
			return nil, err
		}
		reasons = append(reasons, reason)
	}
	return reasons, rows.Err()
}
