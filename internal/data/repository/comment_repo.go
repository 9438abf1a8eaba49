package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"game-review/internal/data/entity"
	"game-review/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrDuplicate is returned when an insert loses the race against the
// comments_user_game_unique constraint.
var ErrDuplicate = errors.New("comment already exists for this user and game")

const uniqueViolation = "23505"

type CommentRepository interface {
	// Create inserts the comment. The unique constraint on
	// (user_id, game_id) is the authoritative duplicate guard; a
	// violation surfaces as ErrDuplicate.
	Create(ctx context.Context, comment *entity.Comment) error
	FindByGameID(ctx context.Context, gameID uuid.UUID) ([]*entity.CommentWithAuthor, error)
	ExistsByUserAndGame(ctx context.Context, userID, gameID uuid.UUID) (bool, error)

	// GetGameRatingStats returns the mean rating and row count for a
	// game's comments. Zero comments yields (0, 0).
	GetGameRatingStats(ctx context.Context, gameID uuid.UUID) (float64, int, error)

	// ListGameIDsWithCommentsSince feeds the reconciliation sweep.
	ListGameIDsWithCommentsSince(ctx context.Context, since time.Time) ([]uuid.UUID, error)
}

type commentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCommentRepository(db database.PgxIface, log *zap.Logger) CommentRepository {
	return &commentRepository{
		db:  db,
		log: log.With(zap.String("repository", "comment")),
	}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	query := `
		INSERT INTO comments (id, user_id, game_id, rating, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		comment.ID,
		comment.UserID,
		comment.GameID,
		comment.Rating,
		comment.Content,
		comment.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.log.Warn("Duplicate comment insert rejected",
				zap.String("user_id", comment.UserID.String()),
				zap.String("game_id", comment.GameID.String()),
			)
			return ErrDuplicate
		}

		r.log.Error("Failed to create comment",
			zap.Error(err),
			zap.String("user_id", comment.UserID.String()),
			zap.String("game_id", comment.GameID.String()),
		)
		return fmt.Errorf("create comment for game %s by user %s: %w",
			comment.GameID.String(), comment.UserID.String(), err)
	}

	return nil
}

func (r *commentRepository) FindByGameID(ctx context.Context, gameID uuid.UUID) ([]*entity.CommentWithAuthor, error) {
	// Newest comment first is part of the listing contract.
	query := `
		SELECT c.id, c.user_id, c.game_id, c.rating, c.content, c.created_at,
		       u.username
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.game_id = $1
		ORDER BY c.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, gameID)
	if err != nil {
		r.log.Error("Failed to find comments by game ID",
			zap.Error(err),
			zap.String("game_id", gameID.String()),
		)
		return nil, fmt.Errorf("find comments by game ID %s: %w", gameID.String(), err)
	}
	defer rows.Close()

	var comments []*entity.CommentWithAuthor
	for rows.Next() {
		var comment entity.CommentWithAuthor
		err := rows.Scan(
			&comment.ID,
			&comment.UserID,
			&comment.GameID,
			&comment.Rating,
			&comment.Content,
			&comment.CreatedAt,
			&comment.Username,
		)
		if err != nil {
			r.log.Error("Failed to scan comment row", zap.Error(err))
			return nil, fmt.Errorf("scan comment row: %w", err)
		}
		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate comment rows: %w", err)
	}

	return comments, nil
}

func (r *commentRepository) ExistsByUserAndGame(ctx context.Context, userID, gameID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM comments WHERE user_id = $1 AND game_id = $2)`

	var exists bool
	err := r.db.QueryRow(ctx, query, userID, gameID).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check existing comment",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("game_id", gameID.String()),
		)
		return false, fmt.Errorf("check comment for user %s and game %s: %w",
			userID.String(), gameID.String(), err)
	}

	return exists, nil
}

func (r *commentRepository) GetGameRatingStats(ctx context.Context, gameID uuid.UUID) (float64, int, error) {
	query := `
		SELECT
			COALESCE(AVG(rating), 0) AS avg_rating,
			COUNT(*) AS review_count
		FROM comments
		WHERE game_id = $1
	`

	var avgRating float64
	var reviewCount int
	err := r.db.QueryRow(ctx, query, gameID).Scan(&avgRating, &reviewCount)
	if err != nil {
		r.log.Error("Failed to get game rating stats",
			zap.Error(err),
			zap.String("game_id", gameID.String()),
		)
		return 0, 0, fmt.Errorf("get rating stats for game %s: %w", gameID.String(), err)
	}

	return avgRating, reviewCount, nil
}

func (r *commentRepository) ListGameIDsWithCommentsSince(ctx context.Context, since time.Time) ([]uuid.UUID, error) {
	query := `SELECT DISTINCT game_id FROM comments WHERE created_at >= $1`

	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		r.log.Error("Failed to list games with recent comments",
			zap.Error(err),
			zap.Time("since", since),
		)
		return nil, fmt.Errorf("list games with comments since %s: %w", since, err)
	}
	defer rows.Close()

	var gameIDs []uuid.UUID
	for rows.Next() {
		var gameID uuid.UUID
		if err := rows.Scan(&gameID); err != nil {
			return nil, fmt.Errorf("scan game id: %w", err)
		}
		gameIDs = append(gameIDs, gameID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate game ids: %w", err)
	}

	return gameIDs, nil
}
