package wire

import (
	"movie-reviews/internal/adaptor"
	"movie-reviews/internal/data/repository"
	"movie-reviews/pkg/middleware"
	"movie-reviews/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/reviews - List reviews with filters (public)
	r.Get("/api/reviews", reviewHandler.GetReviews)

	// GET /api/reviews/{id} - Review details (public)
	r.Get("/api/reviews/{id}", reviewHandler.GetReviewByID)

	// GET /api/movies/{id}/reviews - View movie reviews (public)
	r.Get("/api/movies/{id}/reviews", reviewHandler.GetMovieReviews)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/reviews - Create new review (authenticated users only)
		r.Post("/api/reviews", reviewHandler.CreateReview)

		// GET /api/user/reviews - View user's own reviews
		r.Get("/api/user/reviews", reviewHandler.GetUserReviews)

		// PUT/PATCH /api/reviews/{id} - Update review (owner only)
		r.Put("/api/reviews/{id}", reviewHandler.UpdateReview)
		r.Patch("/api/reviews/{id}", reviewHandler.UpdateReview)

		// DELETE /api/reviews/{id} - Delete review (owner only)
		r.Delete("/api/reviews/{id}", reviewHandler.DeleteReview)

		// POST /api/reviews/{id}/like and /unlike - Like endpoints
		r.Post("/api/reviews/{id}/like", reviewHandler.LikeReview)
		r.Post("/api/reviews/{id}/unlike", reviewHandler.UnlikeReview)
	})
}
