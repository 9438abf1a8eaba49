package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"game-review/internal/data/entity"
	"game-review/internal/data/repository"
	"game-review/internal/dto/request"
	"game-review/internal/dto/response"
	"game-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CommentService interface {
	// SubmitComment runs the full submission workflow: validate,
	// resolve game, duplicate check, insert, then a best-effort
	// aggregate refresh.
	SubmitComment(ctx context.Context, userID uuid.UUID, req *request.CreateCommentRequest) (*response.CommentCreatedResponse, error)
	ListGameComments(ctx context.Context, gameID string) ([]response.CommentResponse, error)

	// RefreshGameRating recomputes avg_rating and review_count from
	// the comment rows and overwrites both fields on the game.
	RefreshGameRating(ctx context.Context, gameID uuid.UUID) error

	// RefreshStaleAggregates recomputes every game with comment
	// activity since the given time. The reconciliation worker calls
	// this to close the window left by a failed post-insert refresh.
	RefreshStaleAggregates(ctx context.Context, since time.Time) error
}

type commentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCommentService(repo *repository.Repository, log *zap.Logger) CommentService {
	return &commentService{
		repo: repo,
		log:  log.With(zap.String("service", "comment")),
	}
}

func (s *commentService) SubmitComment(ctx context.Context, userID uuid.UUID, req *request.CreateCommentRequest) (*response.CommentCreatedResponse, error) {
	// 1. Validate request (rating present and within 1-5)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Submit comment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	gameID, err := uuid.Parse(req.GameID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid game ID %q", ErrInvalidInput, req.GameID)
	}

	// 2. Resolve game
	game, err := s.repo.Game.FindByID(ctx, gameID)
	if err != nil {
		s.log.Error("Failed to resolve game", zap.Error(err), zap.String("game_id", req.GameID))
		return nil, fmt.Errorf("resolve game: %w", err)
	}
	if game == nil {
		return nil, fmt.Errorf("%w: game %s", ErrNotFound, req.GameID)
	}

	// 3. Duplicate pre-check. The unique constraint on
	// (user_id, game_id) still decides races; this only answers the
	// common case without an insert attempt.
	exists, err := s.repo.Comment.ExistsByUserAndGame(ctx, userID, gameID)
	if err != nil {
		s.log.Error("Failed to check existing comment", zap.Error(err))
		return nil, fmt.Errorf("check existing comment: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: already reviewed this game", ErrConflict)
	}

	// 4. Insert
	comment := &entity.Comment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:  userID,
		GameID:  gameID,
		Rating:  req.Rating,
		Content: req.Content,
	}

	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost the race against a concurrent submission from the
			// same user.
			return nil, fmt.Errorf("%w: already reviewed this game", ErrConflict)
		}
		s.log.Error("Failed to create comment",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("game_id", req.GameID),
		)
		return nil, fmt.Errorf("create comment: %w", err)
	}

	// 5. Refresh the game aggregate. The comment row is already
	// committed; a refresh failure leaves the aggregate stale until
	// the reconciler recomputes it, so the submission still succeeds.
	if err := s.RefreshGameRating(ctx, gameID); err != nil {
		s.log.Warn("Failed to refresh game rating after comment insert",
			zap.Error(err),
			zap.String("game_id", req.GameID),
		)
	}

	s.log.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("game_id", req.GameID),
		zap.Int("rating", req.Rating),
	)

	return &response.CommentCreatedResponse{CommentID: comment.ID.String()}, nil
}

func (s *commentService) ListGameComments(ctx context.Context, gameID string) ([]response.CommentResponse, error) {
	gameUUID, err := uuid.Parse(gameID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid game ID %q", ErrInvalidInput, gameID)
	}

	game, err := s.repo.Game.FindByID(ctx, gameUUID)
	if err != nil {
		s.log.Error("Failed to resolve game", zap.Error(err), zap.String("game_id", gameID))
		return nil, fmt.Errorf("resolve game: %w", err)
	}
	if game == nil {
		return nil, fmt.Errorf("%w: game %s", ErrNotFound, gameID)
	}

	comments, err := s.repo.Comment.FindByGameID(ctx, gameUUID)
	if err != nil {
		s.log.Error("Failed to list game comments",
			zap.Error(err),
			zap.String("game_id", gameID),
		)
		return nil, fmt.Errorf("list game comments: %w", err)
	}

	responses := make([]response.CommentResponse, len(comments))
	for i, comment := range comments {
		responses[i] = response.CommentToResponse(comment)
	}

	return responses, nil
}

func (s *commentService) RefreshGameRating(ctx context.Context, gameID uuid.UUID) error {
	avgRating, reviewCount, err := s.repo.Comment.GetGameRatingStats(ctx, gameID)
	if err != nil {
		return fmt.Errorf("get rating stats: %w", err)
	}

	// A game with no comments gets 0/0 rather than a stale average.
	rounded := roundRating(avgRating)

	if err := s.repo.Game.UpdateAggregate(ctx, gameID, rounded, reviewCount); err != nil {
		return fmt.Errorf("update game aggregate: %w", err)
	}

	s.log.Debug("Game rating refreshed",
		zap.String("game_id", gameID.String()),
		zap.Float64("avg_rating", rounded),
		zap.Int("review_count", reviewCount),
	)

	return nil
}

func (s *commentService) RefreshStaleAggregates(ctx context.Context, since time.Time) error {
	gameIDs, err := s.repo.Comment.ListGameIDsWithCommentsSince(ctx, since)
	if err != nil {
		return fmt.Errorf("list games with recent comments: %w", err)
	}

	var failed int
	for _, gameID := range gameIDs {
		if err := s.RefreshGameRating(ctx, gameID); err != nil {
			failed++
			s.log.Warn("Reconcile: failed to refresh game rating",
				zap.Error(err),
				zap.String("game_id", gameID.String()),
			)
		}
	}

	if failed > 0 {
		return fmt.Errorf("reconcile: %d of %d games failed to refresh", failed, len(gameIDs))
	}

	if len(gameIDs) > 0 {
		s.log.Info("Reconcile: aggregates refreshed", zap.Int("games", len(gameIDs)))
	}

	return nil
}

// roundRating rounds half-up to 2 decimal places, matching the value
// exposed through the API.
func roundRating(avg float64) float64 {
	return math.Round(avg*100) / 100
}
