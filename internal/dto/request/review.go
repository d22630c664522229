package request

// CreateReviewRequest accepts either an existing movie by ID or a movie
// title. A title that does not match a stored movie triggers a metadata
// lookup and the movie is created together with the review.
type CreateReviewRequest struct {
	MovieID    *string `json:"movie_id,omitempty" validate:"omitempty,uuid4"`
	MovieTitle *string `json:"movie_title,omitempty" validate:"omitempty,min=1,max=255"`
	Rating     float64 `json:"rating" validate:"gte=0,lte=5"`
	ReviewText string  `json:"review_text" validate:"required,max=5000"`
}

type UpdateReviewRequest struct {
	Rating     *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	ReviewText *string  `json:"review_text,omitempty" validate:"omitempty,max=5000"`
}

// ReviewListRequest carries the query parameters of the review listing.
type ReviewListRequest struct {
	Rating     *float64
	RatingMin  *float64
	RatingMax  *float64
	MovieTitle *string
	Search     *string
	Ordering   string
	Pagination PaginatedRequest
}
