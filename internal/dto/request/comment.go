package request

type CreateCommentRequest struct {
	GameID string `json:"game_id" validate:"required,uuid4"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	// Content may be empty
	Content string `json:"content" validate:"omitempty,max=2000"`
}
