package entity

import (
	"github.com/google/uuid"
)

// Comment is one rating+text record. At most one exists per
// (user_id, game_id); the database enforces this with a unique
// constraint.
type Comment struct {
	BaseSimple
	UserID  uuid.UUID `db:"user_id"`
	GameID  uuid.UUID `db:"game_id"`
	Rating  int       `db:"rating"` // 1-5
	Content string    `db:"content"`
}

// CommentWithAuthor is a comment row joined with the author username
// for listing.
type CommentWithAuthor struct {
	Comment
	Username string `db:"username"`
}
