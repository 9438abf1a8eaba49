package wire

import (
	"game-review/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireGame(
	r chi.Router,
	gameHandler *adaptor.GameHandler,
	commentHandler *adaptor.CommentHandler,
) {
	// The whole catalog is public. /search must be registered before
	// /{id} so the keyword route is not captured as an id.
	r.Get("/api/games", gameHandler.ListGames)
	r.Get("/api/games/search", gameHandler.SearchGames)
	r.Get("/api/games/{id}", gameHandler.GetGameByID)
	r.Get("/api/games/{id}/comments", commentHandler.ListGameComments)
}
