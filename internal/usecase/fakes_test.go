package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"game-review/internal/data/entity"
	"game-review/internal/data/repository"

	"github.com/google/uuid"
)

var errContextForced = errors.New("forced repository failure")

// In-memory repository fakes. They implement the same interfaces the
// pgx repositories do, including the duplicate guard, so the services
// can be exercised without a database.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) FindByUsernameOrEmail(ctx context.Context, identifier string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == identifier || user.Email == identifier {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username || user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*entity.Session
	failNext bool
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*entity.Session)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *session
	f.sessions[session.Token.String()] = &copied
	return nil
}

func (f *fakeSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[token]
	if !ok || session.RevokedAt != nil || session.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (f *fakeSessionRepo) Revoke(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[token]
	if ok && session.RevokedAt == nil {
		now := time.Now()
		session.RevokedAt = &now
	}
	return nil
}

func (f *fakeSessionRepo) CleanExpiredSessions(ctx context.Context) error {
	return nil
}

type fakeGameRepo struct {
	mu              sync.Mutex
	games           map[uuid.UUID]*entity.Game
	failAggregate   bool
	aggregateWrites int
}

func newFakeGameRepo() *fakeGameRepo {
	return &fakeGameRepo{games: make(map[uuid.UUID]*entity.Game)}
}

func (f *fakeGameRepo) Create(ctx context.Context, game *entity.Game) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *game
	f.games[game.ID] = &copied
	return nil
}

func (f *fakeGameRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	game, ok := f.games[id]
	if !ok {
		return nil, nil
	}
	copied := *game
	return &copied, nil
}

func (f *fakeGameRepo) FindAll(ctx context.Context, filter repository.GameFilter) ([]*entity.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var games []*entity.Game
	for _, game := range f.games {
		copied := *game
		games = append(games, &copied)
	}
	return games, nil
}

func (f *fakeGameRepo) SearchByName(ctx context.Context, name string) ([]*entity.Game, error) {
	return f.FindAll(ctx, repository.GameFilter{})
}

func (f *fakeGameRepo) UpdateAggregate(ctx context.Context, gameID uuid.UUID, avgRating float64, reviewCount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAggregate {
		return errContextForced
	}
	game, ok := f.games[gameID]
	if !ok {
		return errContextForced
	}
	game.AvgRating = avgRating
	game.ReviewCount = reviewCount
	f.aggregateWrites++
	return nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments []*entity.Comment
	byPair   map[string]bool
	authors  map[uuid.UUID]string

	// hideExisting makes ExistsByUserAndGame report false even when the
	// pair is taken, simulating a concurrent insert landing between the
	// pre-check and the insert.
	hideExisting bool
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{
		byPair:  make(map[string]bool),
		authors: make(map[uuid.UUID]string),
	}
}

func pairKey(userID, gameID uuid.UUID) string {
	return userID.String() + "/" + gameID.String()
}

func (f *fakeCommentRepo) Create(ctx context.Context, comment *entity.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := pairKey(comment.UserID, comment.GameID)
	if f.byPair[key] {
		return repository.ErrDuplicate
	}
	f.byPair[key] = true
	copied := *comment
	f.comments = append(f.comments, &copied)
	return nil
}

func (f *fakeCommentRepo) FindByGameID(ctx context.Context, gameID uuid.UUID) ([]*entity.CommentWithAuthor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.CommentWithAuthor
	// Newest first
	for i := len(f.comments) - 1; i >= 0; i-- {
		comment := f.comments[i]
		if comment.GameID != gameID {
			continue
		}
		out = append(out, &entity.CommentWithAuthor{
			Comment:  *comment,
			Username: f.authors[comment.UserID],
		})
	}
	return out, nil
}

func (f *fakeCommentRepo) ExistsByUserAndGame(ctx context.Context, userID, gameID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hideExisting {
		return false, nil
	}
	return f.byPair[pairKey(userID, gameID)], nil
}

func (f *fakeCommentRepo) GetGameRatingStats(ctx context.Context, gameID uuid.UUID) (float64, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum, count int
	for _, comment := range f.comments {
		if comment.GameID == gameID {
			sum += comment.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

func (f *fakeCommentRepo) ListGameIDsWithCommentsSince(ctx context.Context, since time.Time) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := make(map[uuid.UUID]bool)
	var gameIDs []uuid.UUID
	for _, comment := range f.comments {
		if comment.CreatedAt.Before(since) || seen[comment.GameID] {
			continue
		}
		seen[comment.GameID] = true
		gameIDs = append(gameIDs, comment.GameID)
	}
	return gameIDs, nil
}
