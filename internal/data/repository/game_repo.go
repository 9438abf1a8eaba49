package repository

import (
	"context"
	"fmt"
	"strings"

	"game-review/internal/data/entity"
	"game-review/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// GameFilter carries an already-validated listing filter. SortBy and
// Order must come from the allow-list below; anything else is refused
// before query building so user input never reaches the ORDER BY.
type GameFilter struct {
	Search string
	SortBy string
	Order  string
}

// sortColumns is the only source of ORDER BY fragments.
var sortColumns = map[string]string{
	"name":         "name",
	"avg_rating":   "avg_rating",
	"review_count": "review_count",
	"created_at":   "created_at",
}

var sortOrders = map[string]string{
	"asc":  "ASC",
	"desc": "DESC",
}

type GameRepository interface {
	Create(ctx context.Context, game *entity.Game) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Game, error)
	FindAll(ctx context.Context, filter GameFilter) ([]*entity.Game, error)
	SearchByName(ctx context.Context, name string) ([]*entity.Game, error)

	// UpdateAggregate overwrites the two derived rating columns.
	// Only the rating refresh calls this.
	UpdateAggregate(ctx context.Context, gameID uuid.UUID, avgRating float64, reviewCount int) error
}

type gameRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewGameRepository(db database.PgxIface, log *zap.Logger) GameRepository {
	return &gameRepository{
		db:  db,
		log: log.With(zap.String("repository", "game")),
	}
}

func (r *gameRepository) Create(ctx context.Context, game *entity.Game) error {
	query := `
		INSERT INTO games (id, name, platform, description, cover_url,
		                   avg_rating, review_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		game.ID,
		game.Name,
		game.Platform,
		game.Description,
		game.CoverURL,
		game.AvgRating,
		game.ReviewCount,
		game.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create game",
			zap.Error(err),
			zap.String("name", game.Name),
		)
		return fmt.Errorf("create game %s: %w", game.Name, err)
	}

	return nil
}

func (r *gameRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Game, error) {
	query := `
		SELECT id, name, platform, description, cover_url,
		       avg_rating, review_count, created_at
		FROM games
		WHERE id = $1
	`

	var game entity.Game
	err := r.db.QueryRow(ctx, query, id).Scan(
		&game.ID,
		&game.Name,
		&game.Platform,
		&game.Description,
		&game.CoverURL,
		&game.AvgRating,
		&game.ReviewCount,
		&game.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find game by ID",
			zap.Error(err),
			zap.String("game_id", id.String()),
		)
		return nil, fmt.Errorf("find game by ID %s: %w", id.String(), err)
	}

	return &game, nil
}

func (r *gameRepository) FindAll(ctx context.Context, filter GameFilter) ([]*entity.Game, error) {
	column, ok := sortColumns[filter.SortBy]
	if !ok {
		return nil, fmt.Errorf("unsupported sort field %q", filter.SortBy)
	}
	direction, ok := sortOrders[filter.Order]
	if !ok {
		return nil, fmt.Errorf("unsupported sort order %q", filter.Order)
	}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, name, platform, description, cover_url,
		       avg_rating, review_count, created_at
		FROM games
	`)

	args := []interface{}{}

	if filter.Search != "" {
		queryBuilder.WriteString(" WHERE name ILIKE $1")
		args = append(args, "%"+filter.Search+"%")
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s %s", column, direction))

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all games",
			zap.Error(err),
			zap.String("search", filter.Search),
			zap.String("sort_by", filter.SortBy),
			zap.String("order", filter.Order),
		)
		return nil, fmt.Errorf("find games: %w", err)
	}
	defer rows.Close()

	return scanGames(rows)
}

func (r *gameRepository) SearchByName(ctx context.Context, name string) ([]*entity.Game, error) {
	query := `
		SELECT id, name, platform, description, cover_url,
		       avg_rating, review_count, created_at
		FROM games
		WHERE name ILIKE $1
		ORDER BY avg_rating DESC
	`

	rows, err := r.db.Query(ctx, query, "%"+name+"%")
	if err != nil {
		r.log.Error("Failed to search games",
			zap.Error(err),
			zap.String("name", name),
		)
		return nil, fmt.Errorf("search games by name %s: %w", name, err)
	}
	defer rows.Close()

	return scanGames(rows)
}

func (r *gameRepository) UpdateAggregate(ctx context.Context, gameID uuid.UUID, avgRating float64, reviewCount int) error {
	query := `UPDATE games SET avg_rating = $2, review_count = $3 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, gameID, avgRating, reviewCount)
	if err != nil {
		r.log.Error("Failed to update game aggregate",
			zap.Error(err),
			zap.String("game_id", gameID.String()),
			zap.Float64("avg_rating", avgRating),
			zap.Int("review_count", reviewCount),
		)
		return fmt.Errorf("update aggregate for game %s: %w", gameID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("game %s not found", gameID.String())
	}

	return nil
}

func scanGames(rows pgx.Rows) ([]*entity.Game, error) {
	var games []*entity.Game
	for rows.Next() {
		var game entity.Game
		err := rows.Scan(
			&game.ID,
			&game.Name,
			&game.Platform,
			&game.Description,
			&game.CoverURL,
			&game.AvgRating,
			&game.ReviewCount,
			&game.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan game row: %w", err)
		}
		games = append(games, &game)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate game rows: %w", err)
	}

	return games, nil
}
