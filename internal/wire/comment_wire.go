package wire

import (
	"movie-reviews/internal/adaptor"
	"movie-reviews/internal/data/repository"
	"movie-reviews/pkg/middleware"
	"movie-reviews/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireComment(
	r chi.Router,
	commentHandler *adaptor.CommentHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/reviews/{id}/comments - View review comments (public)
	r.Get("/api/reviews/{id}/comments", commentHandler.GetReviewComments)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/reviews/{id}/comments - Comment on a review
		r.Post("/api/reviews/{id}/comments", commentHandler.CreateComment)

		// PUT /api/comments/{id} - Update comment (owner only)
		r.Put("/api/comments/{id}", commentHandler.UpdateComment)

		// DELETE /api/comments/{id} - Delete comment (owner only)
		r.Delete("/api/comments/{id}", commentHandler.DeleteComment)
	})
}
