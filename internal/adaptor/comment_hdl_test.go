package adaptor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"game-review/internal/data/entity"
	"game-review/internal/dto/request"
	"game-review/internal/dto/response"
	"game-review/internal/usecase"
	"game-review/pkg/middleware"
	"game-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// stubCommentService scripts the service layer so handler tests only
// exercise HTTP concerns: routing, auth, decoding and status mapping.
type stubCommentService struct {
	submitErr   error
	submitCalls int
	lastUserID  uuid.UUID
	lastReq     *request.CreateCommentRequest
	comments    []response.CommentResponse
	listErr     error
}

func (s *stubCommentService) SubmitComment(ctx context.Context, userID uuid.UUID, req *request.CreateCommentRequest) (*response.CommentCreatedResponse, error) {
	s.submitCalls++
	s.lastUserID = userID
	s.lastReq = req
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	return &response.CommentCreatedResponse{CommentID: uuid.New().String()}, nil
}

func (s *stubCommentService) ListGameComments(ctx context.Context, gameID string) ([]response.CommentResponse, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.comments, nil
}

func (s *stubCommentService) RefreshGameRating(ctx context.Context, gameID uuid.UUID) error {
	return nil
}

func (s *stubCommentService) RefreshStaleAggregates(ctx context.Context, since time.Time) error {
	return nil
}

// stubSessionRepo resolves exactly one token.
type stubSessionRepo struct {
	token   string
	session *entity.Session
}

func (s *stubSessionRepo) Create(ctx context.Context, session *entity.Session) error { return nil }

func (s *stubSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	if token == s.token {
		return s.session, nil
	}
	return nil, nil
}

func (s *stubSessionRepo) Revoke(ctx context.Context, token string) error { return nil }
func (s *stubSessionRepo) CleanExpiredSessions(ctx context.Context) error { return nil }

func newCommentTestServer(svc usecase.CommentService, sessions *stubSessionRepo) *chi.Mux {
	log := zap.NewNop()
	handler := NewCommentHandler(svc, log)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(sessions, log))
		r.Post("/api/comments", handler.SubmitComment)
	})
	r.Get("/api/games/{id}/comments", handler.ListGameComments)
	return r
}

func validSession() (*stubSessionRepo, string, uuid.UUID) {
	userID := uuid.New()
	token := uuid.New().String()
	return &stubSessionRepo{
		token: token,
		session: &entity.Session{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
			UserID:     userID,
			ExpiresAt:  time.Now().Add(time.Hour),
		},
	}, token, userID
}

func TestSubmitComment_RequiresAuth(t *testing.T) {
	svc := &stubCommentService{}
	sessions, _, _ := validSession()
	router := newCommentTestServer(svc, sessions)

	body := `{"game_id":"` + uuid.New().String() + `","rating":5}`

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not-a-uuid"},
		{"unknown token", "Bearer " + uuid.New().String()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/comments", strings.NewReader(body))
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
		})
	}

	// The auth check runs before anything touches the service.
	if svc.submitCalls != 0 {
		t.Fatalf("service reached %d times by unauthenticated requests", svc.submitCalls)
	}
}

func TestSubmitComment_Success(t *testing.T) {
	svc := &stubCommentService{}
	sessions, token, userID := validSession()
	router := newCommentTestServer(svc, sessions)

	gameID := uuid.New().String()
	body := fmt.Sprintf(`{"game_id":%q,"rating":4,"content":"great game"}`, gameID)

	req := httptest.NewRequest(http.MethodPost, "/api/comments", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}

	var envelope utils.Response
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Status {
		t.Fatalf("status flag false on success")
	}

	// The user comes from the session, never from the body.
	if svc.lastUserID != userID {
		t.Fatalf("service saw user %s, want %s", svc.lastUserID, userID)
	}
	if svc.lastReq.GameID != gameID || svc.lastReq.Rating != 4 {
		t.Fatalf("decoded request = %+v", svc.lastReq)
	}
}

func TestSubmitComment_StatusMapping(t *testing.T) {
	sessions, token, _ := validSession()
	gameID := uuid.New().String()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", fmt.Errorf("%w: rating out of range", usecase.ErrInvalidInput), http.StatusBadRequest},
		{"game not found", fmt.Errorf("%w: game", usecase.ErrNotFound), http.StatusNotFound},
		{"duplicate review", fmt.Errorf("%w: already reviewed this game", usecase.ErrConflict), http.StatusConflict},
		{"storage failure", fmt.Errorf("create comment: connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubCommentService{submitErr: tc.err}
			router := newCommentTestServer(svc, sessions)

			body := fmt.Sprintf(`{"game_id":%q,"rating":4}`, gameID)
			req := httptest.NewRequest(http.MethodPost, "/api/comments", strings.NewReader(body))
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestSubmitComment_InternalErrorHidesDetail(t *testing.T) {
	sessions, token, _ := validSession()
	svc := &stubCommentService{submitErr: fmt.Errorf("pq: connection refused to 10.0.0.5")}
	router := newCommentTestServer(svc, sessions)

	body := fmt.Sprintf(`{"game_id":%q,"rating":4}`, uuid.New().String())
	req := httptest.NewRequest(http.MethodPost, "/api/comments", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "10.0.0.5") {
		t.Fatalf("internal detail leaked: %s", rec.Body.String())
	}
}

func TestSubmitComment_MalformedBody(t *testing.T) {
	svc := &stubCommentService{}
	sessions, token, _ := validSession()
	router := newCommentTestServer(svc, sessions)

	for _, body := range []string{`{not json`, `{"rating":"five"}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/comments", strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status = %d, want 400", body, rec.Code)
		}
	}

	if svc.submitCalls != 0 {
		t.Fatalf("malformed bodies must not reach the service")
	}
}

func TestListGameComments_Public(t *testing.T) {
	svc := &stubCommentService{
		comments: []response.CommentResponse{
			{ID: uuid.New().String(), Username: "alice", Rating: 5},
		},
	}
	sessions, _, _ := validSession()
	router := newCommentTestServer(svc, sessions)

	// No Authorization header: listing is public.
	req := httptest.NewRequest(http.MethodGet, "/api/games/"+uuid.New().String()+"/comments", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var envelope utils.Response
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Status {
		t.Fatalf("status flag false on success")
	}
}

func TestListGameComments_UnknownGame(t *testing.T) {
	svc := &stubCommentService{listErr: fmt.Errorf("%w: game", usecase.ErrNotFound)}
	sessions, _, _ := validSession()
	router := newCommentTestServer(svc, sessions)

	req := httptest.NewRequest(http.MethodGet, "/api/games/"+uuid.New().String()+"/comments", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
