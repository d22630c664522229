package wire

import (
	"movie-reviews/internal/adaptor"
	"movie-reviews/internal/data/repository"
	"movie-reviews/pkg/middleware"
	"movie-reviews/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/movies - List movies (public, anyone can view)
	r.Get("/api/movies", movieHandler.GetMovies)

	// GET /api/movies/{id} - Movie details (public)
	r.Get("/api/movies/{id}", movieHandler.GetMovieByID)

	// GET /api/movies/{id}/review-stats - Rating statistics (public)
	r.Get("/api/movies/{id}/review-stats", movieHandler.GetMovieReviewStats)

	// POST /api/movies - Register a movie by title (public)
	r.Post("/api/movies", movieHandler.CreateMovie)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/movies", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log)) // Must be authenticated
		r.Use(middleware.Admin(repo.User, log))                     // Must be admin

		r.Delete("/{id}", movieHandler.DeleteMovie) // DELETE /api/admin/movies/{id}
	})
}
