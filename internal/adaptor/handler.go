package adaptor

import (
	"errors"
	"net/http"

	"game-review/internal/usecase"
	"game-review/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Game    *GameHandler
	Comment *CommentHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, log),
		Game:    NewGameHandler(service.Game, log),
		Comment: NewCommentHandler(service.Comment, log),
	}
}

// writeServiceError maps the service error taxonomy to HTTP statuses.
// Anything outside the taxonomy is an internal failure; its detail is
// logged but never crosses the API.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		log.Warn(operation+" rejected: invalid input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrUnauthorized):
		log.Warn(operation+" rejected: unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" rejected: not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrConflict):
		log.Warn(operation+" rejected: conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
