package request

// CreateMovieRequest names a movie to register. Metadata is fetched
// from OMDB by title.
type CreateMovieRequest struct {
	Title string `json:"title" validate:"required,min=1,max=255"`
}
