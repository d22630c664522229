package repository

import (
	"context"
	"fmt"

	"movie-reviews/internal/data/entity"
	"movie-reviews/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type LikeRepository interface {
	// Create inserts the like. It reports false when the user already
	// liked the review; the unique constraint makes this safe under
	// concurrent requests.
	Create(ctx context.Context, like *entity.Like) (bool, error)
	// Delete removes the like and reports whether one existed.
	Delete(ctx context.Context, userID, reviewID uuid.UUID) (bool, error)
	CountByReviewID(ctx context.Context, reviewID uuid.UUID) (int64, error)
}

type likeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewLikeRepository(db database.PgxIface, log *zap.Logger) LikeRepository {
	return &likeRepository{
		db:  db,
		log: log.With(zap.String("repository", "like")),
	}
}

func (r *likeRepository) Create(ctx context.Context, like *entity.Like) (bool, error) {
	query := `
		INSERT INTO likes (id, user_id, review_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, review_id) DO NOTHING
	`

	result, err := r.db.Exec(ctx, query,
		like.ID,
		like.UserID,
		like.ReviewID,
		like.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create like",
			zap.Error(err),
			zap.String("user_id", like.UserID.String()),
			zap.String("review_id", like.ReviewID.String()),
		)
		return false, fmt.Errorf("create like for review %s by user %s: %w",
			like.ReviewID.String(), like.UserID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *likeRepository) Delete(ctx context.Context, userID, reviewID uuid.UUID) (bool, error) {
	query := `DELETE FROM likes WHERE user_id = $1 AND review_id = $2`

	result, err := r.db.Exec(ctx, query, userID, reviewID)
	if err != nil {
		r.log.Error("Failed to delete like",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("review_id", reviewID.String()),
		)
		return false, fmt.Errorf("delete like for review %s by user %s: %w",
			reviewID.String(), userID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *likeRepository) CountByReviewID(ctx context.Context, reviewID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM likes WHERE review_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, reviewID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count likes",
			zap.Error(err),
			zap.String("review_id", reviewID.String()),
		)
		return 0, fmt.Errorf("count likes for review %s: %w", reviewID.String(), err)
	}

	return count, nil
}
