package response

import (
	"time"

	"game-review/internal/data/entity"
)

type GameResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Platform    string    `json:"platform"`
	Description *string   `json:"description,omitempty"`
	CoverURL    *string   `json:"cover_url,omitempty"`
	AvgRating   float64   `json:"avg_rating"`
	ReviewCount int       `json:"review_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Helper converter
func GameToResponse(game *entity.Game) GameResponse {
	return GameResponse{
		ID:          game.ID.String(),
		Name:        game.Name,
		Platform:    game.Platform,
		Description: game.Description,
		CoverURL:    game.CoverURL,
		AvgRating:   game.AvgRating,
		ReviewCount: game.ReviewCount,
		CreatedAt:   game.CreatedAt,
	}
}
