package response

import (
	"time"

	"movie-reviews/internal/data/entity"
)

type CommentResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	ReviewID  string    `json:"review_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Helper converter
func CommentToResponse(comment *entity.Comment, username string) CommentResponse {
	return CommentResponse{
		ID:        comment.ID.String(),
		UserID:    comment.UserID.String(),
		Username:  username,
		ReviewID:  comment.ReviewID.String(),
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
}
