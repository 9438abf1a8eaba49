package repository

import (
	"game-review/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User    UserRepository
	Session SessionRepository
	Game    GameRepository
	Comment CommentRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Session: NewSessionRepository(db, log),
		Game:    NewGameRepository(db, log),
		Comment: NewCommentRepository(db, log),
	}
}
