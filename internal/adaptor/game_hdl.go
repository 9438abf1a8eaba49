package adaptor

import (
	"net/http"

	"game-review/internal/dto/request"
	"game-review/internal/usecase"
	"game-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type GameHandler struct {
	service usecase.GameService
	log     *zap.Logger
}

func NewGameHandler(service usecase.GameService, log *zap.Logger) *GameHandler {
	return &GameHandler{
		service: service,
		log:     log.With(zap.String("handler", "game")),
	}
}

// ListGames handles GET /api/games (public)
func (h *GameHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.GameListRequest{
		Search: query.Get("search"),
		SortBy: query.Get("sort_by"),
		Order:  query.Get("order"),
	}

	games, err := h.service.ListGames(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err, "list games")
		return
	}

	utils.ResponseSuccess(w, "success", games)
}

// SearchGames handles GET /api/games/search (public)
func (h *GameHandler) SearchGames(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")

	games, err := h.service.SearchGames(r.Context(), name)
	if err != nil {
		writeServiceError(w, h.log, err, "search games")
		return
	}

	utils.ResponseSuccess(w, "success", games)
}

// GetGameByID handles GET /api/games/{id} (public)
func (h *GameHandler) GetGameByID(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "id")
	if gameID == "" {
		utils.ResponseBadRequest(w, "Game ID is required", nil)
		return
	}

	game, err := h.service.GetGameByID(r.Context(), gameID)
	if err != nil {
		writeServiceError(w, h.log, err, "get game")
		return
	}

	utils.ResponseSuccess(w, "success", game)
}
