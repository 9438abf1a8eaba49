package response

import (
	"time"

	"game-review/internal/data/entity"
)

type CommentResponse struct {
	ID        string    `json:"id"`
	GameID    string    `json:"game_id"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentCreatedResponse struct {
	CommentID string `json:"comment_id"`
}

// Helper converter
func CommentToResponse(comment *entity.CommentWithAuthor) CommentResponse {
	return CommentResponse{
		ID:        comment.ID.String(),
		GameID:    comment.GameID.String(),
		Username:  comment.Username,
		Rating:    comment.Rating,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
}
