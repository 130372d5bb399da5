package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lazydrobe/lazydrobe-engine/pkg/database"
	"github.com/lazydrobe/lazydrobe-engine/pkg/models"
)

// SuggestionRepository provides data access for persisted outfit suggestions.
type SuggestionRepository interface {
	Create(ctx context.Context, suggestion *models.OutfitSuggestion) error
	GetByUser(ctx context.Context, userID int64, limit int) ([]models.OutfitSuggestion, error)
}

type suggestionRepository struct {
	db *database.DB
}

func NewSuggestionRepository(db *database.DB) SuggestionRepository {
	return &suggestionRepository{db: db}
}

var _ SuggestionRepository = (*suggestionRepository)(nil)

func (r *suggestionRepository) Create(ctx context.Context, suggestion *models.OutfitSuggestion) error {
	detailsJSON, err := json.Marshal(suggestion.Outfits)
	if err != nil {
		return fmt.Errorf("failed to marshal outfit details: %w", err)
	}

	query := `
		INSERT INTO outfit_suggestions (user_id, outfit_details, gender)
		VALUES ($1, $2, $3)
		RETURNING suggestion_id, date_suggested`

	row := r.db.Pool.QueryRow(ctx, query, suggestion.UserID, detailsJSON, string(suggestion.Gender))
	if err := row.Scan(&suggestion.ID, &suggestion.DateSuggested); err != nil {
		return fmt.Errorf("failed to create outfit suggestion: %w", err)
	}

	return nil
}

func (r *suggestionRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]models.OutfitSuggestion, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT suggestion_id, user_id, outfit_details, gender, date_suggested
		FROM outfit_suggestions
		WHERE user_id = $1
		ORDER BY date_suggested DESC, suggestion_id DESC
		LIMIT $2`

	rows, err := r.db.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query outfit suggestions: %w", err)
	}
	defer rows.Close()

	var suggestions []models.OutfitSuggestion
	for rows.Next() {
		var suggestion models.OutfitSuggestion
		var detailsJSON []byte
		var gender string

		err := rows.Scan(
			&suggestion.ID,
			&suggestion.UserID,
			&detailsJSON,
			&gender,
			&suggestion.DateSuggested,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan outfit suggestion: %w", err)
		}

		if err := json.Unmarshal(detailsJSON, &suggestion.Outfits); err != nil {
			return nil, fmt.Errorf("failed to unmarshal outfit details: %w", err)
		}
		suggestion.Gender = models.Gender(gender)

		suggestions = append(suggestions, suggestion)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating outfit suggestions: %w", err)
	}

	return suggestions, nil
}
