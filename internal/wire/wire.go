package wire

import (
	"net/http"

	"game-review/internal/adaptor"
	"game-review/internal/data/repository"
	"game-review/internal/usecase"
	"game-review/internal/worker"
	"game-review/pkg/middleware"
	"game-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired application
type App struct {
	Router     *chi.Mux
	Reconciler *worker.Reconciler
}

// Wiring initializes all dependencies
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	// Initialize services and handlers
	service := usecase.NewService(repo, config, logger)
	handler := adaptor.NewHandler(service, logger)

	// Background aggregate reconciliation
	reconciler := worker.NewReconciler(service.Comment, config.Reconcile, logger)

	// Setup router
	router := setupRouter(handler, repo, logger)

	return &App{
		Router:     router,
		Reconciler: reconciler,
	}
}

// setupRouter configures the chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, repo, logger)
	wireUser(r, handler.User, repo, logger)
	wireGame(r, handler.Game, handler.Comment)
	wireComment(r, handler.Comment, repo, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
