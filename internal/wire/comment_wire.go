package wire

import (
	"game-review/internal/adaptor"
	"game-review/internal/data/repository"
	"game-review/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireComment(
	r chi.Router,
	commentHandler *adaptor.CommentHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// POST /api/comments - submit a rating+comment (authenticated
	// users only; the session check runs before any body validation)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Post("/api/comments", commentHandler.SubmitComment)
	})
}
