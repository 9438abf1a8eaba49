package wire

import (
	"game-review/internal/adaptor"
	"game-review/internal/data/repository"
	"game-review/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// GET /api/user - current user profile (protected)
	r.With(middleware.AuthSession(repo.Session, log)).Get("/api/user", userHandler.GetCurrentUser)
}
