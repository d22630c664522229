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

// ReviewFilter narrows review listings. Nil fields are ignored.
// MovieTitle matches exactly (case-insensitive); Search matches as a
// substring against the movie title and the review text.
type ReviewFilter struct {
	Rating     *float64
	RatingMin  *float64
	RatingMax  *float64
	MovieTitle *string
	Search     *string
	Ordering   string
}

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	// CreateWithMovie inserts the movie and the review in one
	// transaction, so a failure leaves neither row behind.
	CreateWithMovie(ctx context.Context, movie *entity.Movie, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	FindAll(ctx context.Context, filter ReviewFilter, limit, offset int) ([]*entity.Review, error)
	CountFiltered(ctx context.Context, filter ReviewFilter) (int64, error)
	FindByMovieID(ctx context.Context, movieID uuid.UUID, limit, offset int) ([]*entity.Review, error)
	CountByMovieID(ctx context.Context, movieID uuid.UUID) (int64, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Review, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindByUserAndMovie(ctx context.Context, userID, movieID uuid.UUID) (*entity.Review, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id uuid.UUID) error

	GetMovieReviewStats(ctx context.Context, movieID uuid.UUID) (float64, int64, error) // avg rating, count
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

const reviewColumns = `r.id, r.user_id, r.movie_id, r.rating, r.review_text, r.created_at, r.updated_at`

const insertReviewQuery = `
	INSERT INTO reviews (id, user_id, movie_id, rating, review_text, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
`

const insertMovieQuery = `
	INSERT INTO movies (id, title, release_year, imdb_id, plot,
	                   poster_url, genre, director, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	_, err := r.db.Exec(ctx, insertReviewQuery,
		review.ID,
		review.UserID,
		review.MovieID,
		review.Rating,
		review.ReviewText,
		review.CreatedAt,
		review.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", review.UserID.String()),
			zap.String("movie_id", review.MovieID.String()),
		)
		return fmt.Errorf("create review for movie %s by user %s: %w",
			review.MovieID.String(), review.UserID.String(), err)
	}

	return nil
}

func (r *reviewRepository) CreateWithMovie(ctx context.Context, movie *entity.Movie, review *entity.Review) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin create review with movie: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, insertMovieQuery,
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
		r.log.Error("Failed to create movie in transaction",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("create movie %q: %w", movie.Title, err)
	}

	_, err = tx.Exec(ctx, insertReviewQuery,
		review.ID,
		review.UserID,
		review.MovieID,
		review.Rating,
		review.ReviewText,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create review in transaction",
			zap.Error(err),
			zap.String("user_id", review.UserID.String()),
			zap.String("movie_id", review.MovieID.String()),
		)
		return fmt.Errorf("create review for new movie %q: %w", movie.Title, err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit review with movie", zap.Error(err))
		return fmt.Errorf("commit create review with movie: %w", err)
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews r
		WHERE r.id = $1
	`

	var review entity.Review
	err := r.db.QueryRow(ctx, query, id).Scan(
		&review.ID,
		&review.UserID,
		&review.MovieID,
		&review.Rating,
		&review.ReviewText,
		&review.CreatedAt,
		&review.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return nil, fmt.Errorf("find review by ID %s: %w", id.String(), err)
	}

	return &review, nil
}

// buildFilter appends WHERE conditions for the filter and returns the
// updated args and placeholder counter.
func buildFilter(qb *strings.Builder, filter ReviewFilter, args []interface{}, argCount int) ([]interface{}, int) {
	if filter.Rating != nil {
		qb.WriteString(fmt.Sprintf(" AND r.rating = $%d", argCount))
		args = append(args, *filter.Rating)
		argCount++
	}
	if filter.RatingMin != nil {
		qb.WriteString(fmt.Sprintf(" AND r.rating >= $%d", argCount))
		args = append(args, *filter.RatingMin)
		argCount++
	}
	if filter.RatingMax != nil {
		qb.WriteString(fmt.Sprintf(" AND r.rating <= $%d", argCount))
		args = append(args, *filter.RatingMax)
		argCount++
	}
	if filter.MovieTitle != nil && *filter.MovieTitle != "" {
		qb.WriteString(fmt.Sprintf(" AND LOWER(m.title) = LOWER($%d)", argCount))
		args = append(args, *filter.MovieTitle)
		argCount++
	}
	if filter.Search != nil && *filter.Search != "" {
		qb.WriteString(fmt.Sprintf(" AND (m.title ILIKE $%d OR r.review_text ILIKE $%d)", argCount, argCount))
		args = append(args, "%"+*filter.Search+"%")
		argCount++
	}
	return args, argCount
}

// orderClause maps the ordering parameter to SQL. The review id is
// always the tie-break so pagination stays deterministic across pages.
func orderClause(ordering string) string {
	switch ordering {
	case "rating":
		return " ORDER BY r.rating ASC, r.id ASC"
	case "-rating":
		return " ORDER BY r.rating DESC, r.id ASC"
	case "review_date":
		return " ORDER BY r.created_at ASC, r.id ASC"
	default: // "-review_date" and anything unrecognized
		return " ORDER BY r.created_at DESC, r.id ASC"
	}
}

func (r *reviewRepository) FindAll(ctx context.Context, filter ReviewFilter, limit, offset int) ([]*entity.Review, error) {
	var qb strings.Builder
	qb.WriteString(`
		SELECT ` + reviewColumns + `
		FROM reviews r
		JOIN movies m ON m.id = r.movie_id
		WHERE m.deleted_at IS NULL
	`)

	args := []interface{}{}
	args, argCount := buildFilter(&qb, filter, args, 1)

	qb.WriteString(orderClause(filter.Ordering))
	qb.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, qb.String(), args...)
	if err != nil {
		r.log.Error("Failed to find reviews",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
			zap.String("ordering", filter.Ordering),
		)
		return nil, fmt.Errorf("find reviews: %w", err)
	}
	defer rows.Close()

	return r.scanRows(rows)
}

func (r *reviewRepository) CountFiltered(ctx context.Context, filter ReviewFilter) (int64, error) {
	var qb strings.Builder
	qb.WriteString(`
		SELECT COUNT(*)
		FROM reviews r
		JOIN movies m ON m.id = r.movie_id
		WHERE m.deleted_at IS NULL
	`)

	args := []interface{}{}
	args, _ = buildFilter(&qb, filter, args, 1)

	var count int64
	err := r.db.QueryRow(ctx, qb.String(), args...).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reviews", zap.Error(err))
		return 0, fmt.Errorf("count reviews: %w", err)
	}

	return count, nil
}

func (r *reviewRepository) FindByMovieID(ctx context.Context, movieID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews r
		WHERE r.movie_id = $1
		ORDER BY r.created_at DESC, r.id ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, movieID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reviews by movie ID",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find reviews by movie ID %s: %w", movieID.String(), err)
	}
	defer rows.Close()

	return r.scanRows(rows)
}

func (r *reviewRepository) CountByMovieID(ctx context.Context, movieID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reviews WHERE movie_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, movieID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reviews by movie ID",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return 0, fmt.Errorf("count reviews by movie ID %s: %w", movieID.String(), err)
	}

	return count, nil
}

func (r *reviewRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews r
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC, r.id ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reviews by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find reviews by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return r.scanRows(rows)
}

func (r *reviewRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reviews WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reviews by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count reviews by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *reviewRepository) FindByUserAndMovie(ctx context.Context, userID, movieID uuid.UUID) (*entity.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews r
		WHERE r.user_id = $1 AND r.movie_id = $2
		LIMIT 1
	`

	var review entity.Review
	err := r.db.QueryRow(ctx, query, userID, movieID).Scan(
		&review.ID,
		&review.UserID,
		&review.MovieID,
		&review.Rating,
		&review.ReviewText,
		&review.CreatedAt,
		&review.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by user and movie",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("find review by user %s and movie %s: %w",
			userID.String(), movieID.String(), err)
	}

	return &review, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	query := `
		UPDATE reviews
		SET rating = $2, review_text = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		review.ID,
		review.Rating,
		review.ReviewText,
		review.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", review.ID.String()),
		)
		return fmt.Errorf("update review %s: %w", review.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found", review.ID.String())
	}

	return nil
}

// Delete removes the review; its comments and likes go with it via
// ON DELETE CASCADE.
func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reviews WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return fmt.Errorf("delete review %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found", id.String())
	}

	r.log.Info("Review deleted", zap.String("review_id", id.String()))
	return nil
}

func (r *reviewRepository) GetMovieReviewStats(ctx context.Context, movieID uuid.UUID) (float64, int64, error) {
	query := `
		SELECT
			COALESCE(AVG(rating), 0) as avg_rating,
			COUNT(*) as review_count
		FROM reviews
		WHERE movie_id = $1
	`

	var avgRating float64
	var reviewCount int64
	err := r.db.QueryRow(ctx, query, movieID).Scan(&avgRating, &reviewCount)
	if err != nil {
		r.log.Error("Failed to get movie review stats",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return 0, 0, fmt.Errorf("get movie review stats for %s: %w", movieID.String(), err)
	}

	return avgRating, reviewCount, nil
}

func (r *reviewRepository) scanRows(rows pgx.Rows) ([]*entity.Review, error) {
	var reviews []*entity.Review
	for rows.Next() {
		var review entity.Review
		err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.MovieID,
			&review.Rating,
			&review.ReviewText,
			&review.CreatedAt,
			&review.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}
