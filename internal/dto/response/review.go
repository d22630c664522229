package response

import (
	"time"

	"movie-reviews/internal/data/entity"
)

type ReviewResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Username     string    `json:"username,omitempty"`
	MovieID      string    `json:"movie_id"`
	MovieTitle   string    `json:"movie_title,omitempty"`
	Rating       float64   `json:"rating"`
	ReviewText   string    `json:"review_text"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type MovieReviewStats struct {
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

type LikeResponse struct {
	ReviewID  string `json:"review_id"`
	Liked     bool   `json:"liked"`
	LikeCount int64  `json:"like_count"`
}

// Helper converter
func ReviewToResponse(review *entity.Review, username, movieTitle string, likeCount, commentCount int64) ReviewResponse {
	return ReviewResponse{
		ID:           review.ID.String(),
		UserID:       review.UserID.String(),
		Username:     username,
		MovieID:      review.MovieID.String(),
		MovieTitle:   movieTitle,
		Rating:       review.Rating,
		ReviewText:   review.ReviewText,
		LikeCount:    likeCount,
		CommentCount: commentCount,
		CreatedAt:    review.CreatedAt,
		UpdatedAt:    review.UpdatedAt,
	}
}
