package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"movie-reviews/internal/data/entity"
	"movie-reviews/internal/data/repository"
	"movie-reviews/internal/dto/request"
	"movie-reviews/internal/dto/response"
	"movie-reviews/internal/omdb"
	"movie-reviews/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MovieLookup fetches movie metadata from an external catalog. The
// OMDB client satisfies it; tests substitute a fake.
type MovieLookup interface {
	FetchByTitle(ctx context.Context, title string) (*omdb.Movie, error)
}

type MovieService interface {
	GetMovies(ctx context.Context, req *request.PaginatedRequest, search *string) (*response.PaginatedResponse[response.MovieResponse], error)
	GetMovieByID(ctx context.Context, movieID string) (*response.MovieDetailResponse, error)
	GetMovieReviewStats(ctx context.Context, movieID string) (*response.MovieReviewStats, error)
	CreateMovie(ctx context.Context, req *request.CreateMovieRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID string) error
}

type movieService struct {
	repo   *repository.Repository
	lookup MovieLookup
	config *utils.Config
	log    *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	lookup MovieLookup,
	config *utils.Config,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo:   repo,
		lookup: lookup,
		config: config,
		log:    log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context, req *request.PaginatedRequest, search *string) (*response.PaginatedResponse[response.MovieResponse], error) {
	if req.Page < 1 {
		req.Page = 1
	}
	req.PerPage = utils.ClampPerPage(req.PerPage,
		s.config.Pagination.DefaultPerPage, s.config.Pagination.MaxPerPage)

	movies, err := s.repo.Movie.FindAll(ctx, req.PerPage, req.Offset(), search)
	if err != nil {
		s.log.Error("Failed to get movies",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
			zap.Stringp("search", search),
		)
		return nil, fmt.Errorf("get movies: %w", err)
	}

	total, err := s.repo.Movie.CountAll(ctx, search)
	if err != nil {
		s.log.Error("Failed to count movies", zap.Error(err), zap.Stringp("search", search))
		return nil, fmt.Errorf("count movies: %w", err)
	}

	movieResponses := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		movieResponses[i] = response.MovieToResponse(movie)
	}

	return response.NewPaginatedResponse(movieResponses, req.Page, req.PerPage, total), nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieDetailResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid movie ID", ErrValidation)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find movie", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("%w: movie not found", ErrNotFound)
	}

	avgRating, reviewCount, err := s.repo.Review.GetMovieReviewStats(ctx, id)
	if err != nil {
		s.log.Warn("Failed to get review stats for movie",
			zap.Error(err), zap.String("movie_id", movieID))
		// Detail still returned, stats stay zero
	}

	resp := response.MovieToDetailResponse(movie, avgRating, reviewCount)
	return &resp, nil
}

func (s *movieService) GetMovieReviewStats(ctx context.Context, movieID string) (*response.MovieReviewStats, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid movie ID", ErrValidation)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find movie for stats", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("%w: movie not found", ErrNotFound)
	}

	avgRating, reviewCount, err := s.repo.Review.GetMovieReviewStats(ctx, id)
	if err != nil {
		s.log.Error("Failed to get review stats", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("get review stats: %w", err)
	}

	return &response.MovieReviewStats{
		AverageRating: avgRating,
		ReviewCount:   reviewCount,
	}, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.CreateMovieRequest) (*response.MovieResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create movie validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	// 2. Reject duplicates (title match is case-insensitive)
	existing, err := s.repo.Movie.FindByTitle(ctx, title)
	if err != nil {
		s.log.Error("Failed to check movie title", zap.Error(err), zap.String("title", title))
		return nil, fmt.Errorf("check movie title: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: movie %q already exists", ErrConflict, existing.Title)
	}

	// 3. Fetch metadata
	movie, err := s.fetchMovie(ctx, title)
	if err != nil {
		return nil, err
	}

	// The catalog may canonicalize the title ("matrix" resolves to
	// "The Matrix"), so recheck against stored movies.
	dup, err := findCatalogDuplicate(ctx, s.repo.Movie, movie)
	if err != nil {
		s.log.Error("Failed to check catalog duplicate", zap.Error(err), zap.String("title", movie.Title))
		return nil, err
	}
	if dup != nil {
		return nil, fmt.Errorf("%w: movie %q already exists", ErrConflict, dup.Title)
	}

	// 4. Save
	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		s.log.Error("Failed to create movie", zap.Error(err), zap.String("title", title))
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title))

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID string) error {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return fmt.Errorf("%w: invalid movie ID", ErrValidation)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find movie for delete", zap.Error(err), zap.String("movie_id", movieID))
		return fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return fmt.Errorf("%w: movie not found", ErrNotFound)
	}

	// Movies with reviews stay; reviews reference them
	reviewCount, err := s.repo.Review.CountByMovieID(ctx, id)
	if err != nil {
		s.log.Error("Failed to count reviews for movie", zap.Error(err), zap.String("movie_id", movieID))
		return fmt.Errorf("count reviews: %w", err)
	}
	if reviewCount > 0 {
		return fmt.Errorf("%w: movie has %d reviews", ErrConflict, reviewCount)
	}

	if err := s.repo.Movie.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete movie", zap.Error(err), zap.String("movie_id", movieID))
		return fmt.Errorf("delete movie: %w", err)
	}

	s.log.Info("Movie deleted",
		zap.String("movie_id", id.String()),
		zap.String("title", movie.Title))
	return nil
}

// findCatalogDuplicate looks for a stored movie matching the fetched
// metadata by canonical title or IMDB id.
func findCatalogDuplicate(ctx context.Context, movies repository.MovieRepository, movie *entity.Movie) (*entity.Movie, error) {
	existing, err := movies.FindByTitle(ctx, movie.Title)
	if err != nil {
		return nil, fmt.Errorf("check canonical title: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	if movie.ImdbID != nil {
		existing, err = movies.FindByImdbID(ctx, *movie.ImdbID)
		if err != nil {
			return nil, fmt.Errorf("check imdb id: %w", err)
		}
		if existing != nil {
			return existing, nil
		}
	}

	return nil, nil
}

func (s *movieService) fetchMovie(ctx context.Context, title string) (*entity.Movie, error) {
	movie, err := movieFromCatalog(ctx, s.lookup, title)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.log.Warn("Movie not found in catalog", zap.String("title", title))
		} else {
			s.log.Error("Catalog lookup failed", zap.Error(err), zap.String("title", title))
		}
		return nil, err
	}
	return movie, nil
}

// movieFromCatalog looks the title up in the external catalog and
// builds the movie entity from the result.
func movieFromCatalog(ctx context.Context, lookup MovieLookup, title string) (*entity.Movie, error) {
	meta, err := lookup.FetchByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, omdb.ErrNotFound) {
			return nil, fmt.Errorf("%w: movie %q not found in catalog", ErrNotFound, title)
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	now := time.Now()
	return &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:       meta.Title,
		ReleaseYear: meta.Year,
		ImdbID:      meta.ImdbID,
		Plot:        meta.Plot,
		PosterURL:   meta.Poster,
		Genre:       meta.Genre,
		Director:    meta.Director,
	}, nil
}
