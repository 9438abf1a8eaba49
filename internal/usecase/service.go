package usecase

import (
	"game-review/internal/data/repository"
	"game-review/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Game    GameService
	Comment CommentService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		User:    NewUserService(repo.User, log),
		Game:    NewGameService(repo.Game, log),
		Comment: NewCommentService(repo, log),
	}
}
