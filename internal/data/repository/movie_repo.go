package repository

import (
	"context"
	"fmt"
	"strings"

	"movie-reviews/internal/data/entity"
	"movie-reviews/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	// FindByTitle matches case-insensitively, backed by the unique
	// index on lower(title).
	FindByTitle(ctx context.Context, title string) (*entity.Movie, error)
	FindByImdbID(ctx context.Context, imdbID string) (*entity.Movie, error)
	FindAll(ctx context.Context, limit, offset int, search *string) ([]*entity.Movie, error)
	CountAll(ctx context.Context, search *string) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

const movieColumns = `id, title, release_year, imdb_id, plot, poster_url,
	       genre, director, created_at, updated_at`

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (id, title, release_year, imdb_id, plot,
		                   poster_url, genre, director, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.ReleaseYear,
		movie.ImdbID,
		movie.Plot,
		movie.PosterURL,
		movie.Genre,
		movie.Director,
		movie.CreatedAt,
		movie.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("create movie %q: %w", movie.Title, err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	query := `
		SELECT ` + movieColumns + `
		FROM movies
		WHERE id = $1 AND deleted_at IS NULL
	`

	movie, err := r.scanOne(r.db.QueryRow(ctx, query, id))
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("find movie by ID %s: %w", id.String(), err)
	}

	return movie, nil
}

func (r *movieRepository) FindByTitle(ctx context.Context, title string) (*entity.Movie, error) {
	query := `
		SELECT ` + movieColumns + `
		FROM movies
		WHERE LOWER(title) = LOWER($1) AND deleted_at IS NULL
	`

	movie, err := r.scanOne(r.db.QueryRow(ctx, query, title))
	if err != nil {
		r.log.Error("Failed to find movie by title",
			zap.Error(err),
			zap.String("title", title),
		)
		return nil, fmt.Errorf("find movie by title %q: %w", title, err)
	}

	return movie, nil
}

func (r *movieRepository) FindByImdbID(ctx context.Context, imdbID string) (*entity.Movie, error) {
	query := `
		SELECT ` + movieColumns + `
		FROM movies
		WHERE imdb_id = $1 AND deleted_at IS NULL
	`

	movie, err := r.scanOne(r.db.QueryRow(ctx, query, imdbID))
	if err != nil {
		r.log.Error("Failed to find movie by IMDb ID",
			zap.Error(err),
			zap.String("imdb_id", imdbID),
		)
		return nil, fmt.Errorf("find movie by IMDb ID %s: %w", imdbID, err)
	}

	return movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context, limit, offset int, search *string) ([]*entity.Movie, error) {
	// Build query with optional search filter
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT ` + movieColumns + `
		FROM movies
		WHERE deleted_at IS NULL
	`)

	args := []interface{}{}
	argCount := 1

	if search != nil && *search != "" {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND (title ILIKE $%d OR genre ILIKE $%d OR director ILIKE $%d OR plot ILIKE $%d)",
			argCount, argCount, argCount, argCount))
		args = append(args, "%"+*search+"%")
		argCount++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY title, id LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all movies",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
			zap.Stringp("search", search),
		)
		return nil, fmt.Errorf("find movies: %w", err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		var movie entity.Movie
		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.ReleaseYear,
			&movie.ImdbID,
			&movie.Plot,
			&movie.PosterURL,
			&movie.Genre,
			&movie.Director,
			&movie.CreatedAt,
			&movie.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		movies = append(movies, &movie)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate movie rows: %w", err)
	}

	return movies, nil
}

func (r *movieRepository) CountAll(ctx context.Context, search *string) (int64, error) {
	query := `SELECT COUNT(*) FROM movies WHERE deleted_at IS NULL`
	args := []interface{}{}

	if search != nil && *search != "" {
		query += " AND (title ILIKE $1 OR genre ILIKE $1 OR director ILIKE $1 OR plot ILIKE $1)"
		args = append(args, "%"+*search+"%")
	}

	var total int64
	err := r.db.QueryRow(ctx, query, args...).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count movies",
			zap.Error(err),
			zap.Stringp("search", search),
		)
		return 0, fmt.Errorf("count movies: %w", err)
	}

	return total, nil
}

// Delete soft-deletes a movie. The service layer refuses deletion
// while reviews reference the movie; the subquery is the backstop.
func (r *movieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE movies SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		  AND NOT EXISTS (SELECT 1 FROM reviews WHERE movie_id = $1)
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return fmt.Errorf("delete movie %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie %s not found or has reviews", id.String())
	}

	r.log.Info("Movie deleted", zap.String("movie_id", id.String()))
	return nil
}

func (r *movieRepository) scanOne(row pgx.Row) (*entity.Movie, error) {
	var movie entity.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.ReleaseYear,
		&movie.ImdbID,
		&movie.Plot,
		&movie.PosterURL,
		&movie.Genre,
		&movie.Director,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &movie, nil
}
