package usecase

import (
	"context"
	"fmt"
	"strings"

	"game-review/internal/data/repository"
	"game-review/internal/dto/request"
	"game-review/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultSortField = "name"
	defaultSortOrder = "asc"
)

// validSortFields mirrors the repository allow-list; listing requests
// outside it are rejected, never passed through to SQL.
var validSortFields = map[string]bool{
	"name":         true,
	"avg_rating":   true,
	"review_count": true,
	"created_at":   true,
}

var validSortOrders = map[string]bool{
	"asc":  true,
	"desc": true,
}

type GameService interface {
	ListGames(ctx context.Context, req *request.GameListRequest) ([]response.GameResponse, error)
	SearchGames(ctx context.Context, name string) ([]response.GameResponse, error)
	GetGameByID(ctx context.Context, gameID string) (*response.GameResponse, error)
}

type gameService struct {
	gameRepo repository.GameRepository
	log      *zap.Logger
}

func NewGameService(gameRepo repository.GameRepository, log *zap.Logger) GameService {
	return &gameService{
		gameRepo: gameRepo,
		log:      log.With(zap.String("service", "game")),
	}
}

func (s *gameService) ListGames(ctx context.Context, req *request.GameListRequest) ([]response.GameResponse, error) {
	sortBy := strings.ToLower(strings.TrimSpace(req.SortBy))
	if sortBy == "" {
		sortBy = defaultSortField
	}
	order := strings.ToLower(strings.TrimSpace(req.Order))
	if order == "" {
		order = defaultSortOrder
	}

	if !validSortFields[sortBy] {
		return nil, fmt.Errorf("%w: unsupported sort field %q", ErrInvalidInput, req.SortBy)
	}
	if !validSortOrders[order] {
		return nil, fmt.Errorf("%w: unsupported sort order %q", ErrInvalidInput, req.Order)
	}

	filter := repository.GameFilter{
		Search: strings.TrimSpace(req.Search),
		SortBy: sortBy,
		Order:  order,
	}

	games, err := s.gameRepo.FindAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list games",
			zap.Error(err),
			zap.String("search", filter.Search),
			zap.String("sort_by", filter.SortBy),
			zap.String("order", filter.Order),
		)
		return nil, fmt.Errorf("list games: %w", err)
	}

	responses := make([]response.GameResponse, len(games))
	for i, game := range games {
		responses[i] = response.GameToResponse(game)
	}

	s.log.Debug("Games listed",
		zap.Int("count", len(games)),
		zap.String("search", filter.Search),
	)

	return responses, nil
}

func (s *gameService) SearchGames(ctx context.Context, name string) ([]response.GameResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: search keyword is required", ErrInvalidInput)
	}

	games, err := s.gameRepo.SearchByName(ctx, name)
	if err != nil {
		s.log.Error("Failed to search games",
			zap.Error(err),
			zap.String("name", name),
		)
		return nil, fmt.Errorf("search games: %w", err)
	}

	responses := make([]response.GameResponse, len(games))
	for i, game := range games {
		responses[i] = response.GameToResponse(game)
	}

	return responses, nil
}

func (s *gameService) GetGameByID(ctx context.Context, gameID string) (*response.GameResponse, error) {
	gameUUID, err := uuid.Parse(gameID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid game ID %q", ErrInvalidInput, gameID)
	}

	game, err := s.gameRepo.FindByID(ctx, gameUUID)
	if err != nil {
		s.log.Error("Failed to get game",
			zap.Error(err),
			zap.String("game_id", gameID),
		)
		return nil, fmt.Errorf("get game: %w", err)
	}
	if game == nil {
		return nil, fmt.Errorf("%w: game %s", ErrNotFound, gameID)
	}

	resp := response.GameToResponse(game)
	return &resp, nil
}
