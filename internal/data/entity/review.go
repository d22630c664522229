package entity

import (
	"github.com/google/uuid"
)

type Review struct {
	BaseNoDelete
	UserID     uuid.UUID `db:"user_id"`
	MovieID    uuid.UUID `db:"movie_id"`
	Rating     float64   `db:"rating"` // 0.0-5.0, one decimal place
	ReviewText string    `db:"review_text"`
}

type Comment struct {
	BaseSimple
	UserID   uuid.UUID `db:"user_id"`
	ReviewID uuid.UUID `db:"review_id"`
	Content  string    `db:"content"`
}

// Like records one user's endorsement of one review. The (user_id,
// review_id) pair is unique at the database level.
type Like struct {
	BaseSimple
	UserID   uuid.UUID `db:"user_id"`
	ReviewID uuid.UUID `db:"review_id"`
}
