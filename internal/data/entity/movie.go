package entity

// Movie metadata comes from the OMDB lookup on first reference and is
// immutable through the API afterwards. Nullable fields stay nil when
// OMDB reports "N/A".
type Movie struct {
	Base
	Title       string  `db:"title"`
	ReleaseYear *int    `db:"release_year"`
	ImdbID      *string `db:"imdb_id"`
	Plot        *string `db:"plot"`
	PosterURL   *string `db:"poster_url"`
	Genre       *string `db:"genre"`
	Director    *string `db:"director"`
}
