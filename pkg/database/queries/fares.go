package queries

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/OldStager01/airfare-pricer/internal/faretable"
)

// FareRepository reads the base_fares table. It satisfies faretable.Source.
type FareRepository struct {
	db *sql.DB
}

func NewFareRepository(db *sql.DB) *FareRepository {
	return &FareRepository{db: db}
}

func (r *FareRepository) LoadFares(ctx context.Context) ([]faretable.Entry, error) {
	query := `
		SELECT route, class, fare
		FROM base_fares
		ORDER BY route, class`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query base fares: %w", err)
	}
	defer rows.Close()

	var entries []faretable.Entry
	for rows.Next() {
		var e faretable.Entry
		if err := rows.Scan(&e.Route, &e.Class, &e.Fare); err != nil {
			return nil, fmt.Errorf("failed to scan base fare: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (r *FareRepository) Upsert(ctx context.Context, e faretable.Entry) error {
	query := `
		INSERT INTO base_fares (route, class, fare, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (route, class) DO UPDATE SET fare = EXCLUDED.fare, updated_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query, e.Route, e.Class, e.Fare); err != nil {
		return fmt.Errorf("failed to upsert base fare: %w", err)
	}
	return nil
}
