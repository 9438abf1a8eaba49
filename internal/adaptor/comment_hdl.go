package adaptor

import (
	"encoding/json"
	"net/http"

	"game-review/internal/dto/request"
	"game-review/internal/usecase"
	"game-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CommentHandler struct {
	service usecase.CommentService
	log     *zap.Logger
}

func NewCommentHandler(service usecase.CommentService, log *zap.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		log:     log.With(zap.String("handler", "comment")),
	}
}

// SubmitComment handles POST /api/comments (protected). The auth
// middleware runs first, so an unauthenticated call never reaches
// body validation.
func (h *CommentHandler) SubmitComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Covers malformed JSON and non-integer ratings
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.service.SubmitComment(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "submit comment")
		return
	}

	utils.ResponseCreated(w, "success", created)
}

// ListGameComments handles GET /api/games/{id}/comments (public)
func (h *CommentHandler) ListGameComments(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "id")
	if gameID == "" {
		utils.ResponseBadRequest(w, "Game ID is required", nil)
		return
	}

	comments, err := h.service.ListGameComments(r.Context(), gameID)
	if err != nil {
		writeServiceError(w, h.log, err, "list game comments")
		return
	}

	utils.ResponseSuccess(w, "success", comments)
}
