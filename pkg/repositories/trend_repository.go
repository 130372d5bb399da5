package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lazydrobe/lazydrobe-engine/pkg/database"
	"github.com/lazydrobe/lazydrobe-engine/pkg/models"
)

// TrendRepository provides data access for canonical fashion trends.
type TrendRepository interface {
	// SaveNew inserts trends in a single transaction, skipping any whose
	// (name, search phrase) pair already exists. Returns the rows that
	// were actually inserted, with ids and timestamps populated.
	SaveNew(ctx context.Context, trends []models.CanonicalTrend) ([]models.CanonicalTrend, error)
	// GetRecent returns the most recently added trends, newest first.
	GetRecent(ctx context.Context, limit int) ([]models.CanonicalTrend, error)
}

type trendRepository struct {
	db *database.DB
}

func NewTrendRepository(db *database.DB) TrendRepository {
	return &trendRepository{db: db}
}

var _ TrendRepository = (*trendRepository)(nil)

func (r *trendRepository) SaveNew(ctx context.Context, trends []models.CanonicalTrend) ([]models.CanonicalTrend, error) {
	var inserted []models.CanonicalTrend

	err := pgx.BeginFunc(ctx, r.db.Pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO fashion_trends (trend_name, trend_description, trend_search_phrase)
			VALUES ($1, $2, $3)
			ON CONFLICT (trend_name, trend_search_phrase) DO NOTHING
			RETURNING trend_id, date_added`

		for _, trend := range trends {
			row := tx.QueryRow(ctx, query, trend.Name, trend.Description, trend.SearchPhrase)
			if err := row.Scan(&trend.ID, &trend.DateAdded); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					// Duplicate of an existing trend, skip it.
					continue
				}
				return fmt.Errorf("failed to insert trend %q: %w", trend.Name, err)
			}
			inserted = append(inserted, trend)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return inserted, nil
}

func (r *trendRepository) GetRecent(ctx context.Context, limit int) ([]models.CanonicalTrend, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT trend_id, trend_name, trend_description, trend_search_phrase, date_added
		FROM fashion_trends
		ORDER BY date_added DESC, trend_id DESC
		LIMIT $1`

	rows, err := r.db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent trends: %w", err)
	}
	defer rows.Close()

	var trends []models.CanonicalTrend
	for rows.Next() {
		var trend models.CanonicalTrend
		err := rows.Scan(
			&trend.ID,
			&trend.Name,
			&trend.Description,
			&trend.SearchPhrase,
			&trend.DateAdded,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trend: %w", err)
		}
		trends = append(trends, trend)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trends: %w", err)
	}

	return trends, nil
}
