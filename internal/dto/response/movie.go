package response

import (
	"time"

	"movie-reviews/internal/data/entity"
)

type MovieResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	ReleaseYear *int      `json:"release_year,omitempty"`
	ImdbID      *string   `json:"imdb_id,omitempty"`
	Plot        *string   `json:"plot,omitempty"`
	PosterURL   *string   `json:"poster_url,omitempty"`
	Genre       *string   `json:"genre,omitempty"`
	Director    *string   `json:"director,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

type MovieDetailResponse struct {
	MovieResponse
	AverageRating float64    `json:"average_rating"`
	ReviewCount   int64      `json:"review_count"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// Helper converters
func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:          movie.ID.String(),
		Title:       movie.Title,
		ReleaseYear: movie.ReleaseYear,
		ImdbID:      movie.ImdbID,
		Plot:        movie.Plot,
		PosterURL:   movie.PosterURL,
		Genre:       movie.Genre,
		Director:    movie.Director,
		CreatedAt:   movie.CreatedAt,
	}
}

func MovieToDetailResponse(movie *entity.Movie, avgRating float64, reviewCount int64) MovieDetailResponse {
	return MovieDetailResponse{
		MovieResponse: MovieToResponse(movie),
		AverageRating: avgRating,
		ReviewCount:   reviewCount,
		UpdatedAt:     &movie.UpdatedAt,
	}
}
