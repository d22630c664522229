package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"movie-reviews/internal/data/entity"
	"movie-reviews/internal/data/repository"
	"movie-reviews/internal/dto/request"
	"movie-reviews/internal/dto/response"
	"movie-reviews/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewService interface {
	CreateReview(ctx context.Context, userID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	GetReviews(ctx context.Context, req *request.ReviewListRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	GetReviewByID(ctx context.Context, reviewID string) (*response.ReviewResponse, error)
	GetMovieReviews(ctx context.Context, movieID string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	GetUserReviews(ctx context.Context, userID uuid.UUID, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	UpdateReview(ctx context.Context, userID uuid.UUID, role entity.UserRole, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, userID uuid.UUID, role entity.UserRole, reviewID string) error
	LikeReview(ctx context.Context, userID uuid.UUID, reviewID string) (*response.LikeResponse, error)
	UnlikeReview(ctx context.Context, userID uuid.UUID, reviewID string) (*response.LikeResponse, error)
}

type reviewService struct {
	repo   *repository.Repository
	lookup MovieLookup
	config *utils.Config
	log    *zap.Logger
}

func NewReviewService(
	repo *repository.Repository,
	lookup MovieLookup,
	config *utils.Config,
	log *zap.Logger,
) ReviewService {
	return &reviewService{
		repo:   repo,
		lookup: lookup,
		config: config,
		log:    log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, userID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}
	if (req.MovieID == nil) == (req.MovieTitle == nil) {
		return nil, fmt.Errorf("%w: exactly one of movie_id and movie_title is required", ErrValidation)
	}

	now := time.Now()
	review := &entity.Review{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:     userID,
		Rating:     req.Rating,
		ReviewText: req.ReviewText,
	}

	// 2. Resolve the movie. An unknown title goes through the catalog
	// lookup BEFORE any row is written, so a failed lookup leaves the
	// database untouched.
	var newMovie *entity.Movie

	switch {
	case req.MovieID != nil:
		movieID, err := uuid.Parse(*req.MovieID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid movie ID", ErrValidation)
		}
		movie, err := s.repo.Movie.FindByID(ctx, movieID)
		if err != nil {
			s.log.Error("Failed to find movie", zap.Error(err), zap.String("movie_id", *req.MovieID))
			return nil, fmt.Errorf("find movie: %w", err)
		}
		if movie == nil {
			return nil, fmt.Errorf("%w: movie not found", ErrNotFound)
		}
		review.MovieID = movie.ID

	default:
		title := strings.TrimSpace(*req.MovieTitle)
		if title == "" {
			return nil, fmt.Errorf("%w: movie_title must not be empty", ErrValidation)
		}
		movie, err := s.repo.Movie.FindByTitle(ctx, title)
		if err != nil {
			s.log.Error("Failed to find movie by title", zap.Error(err), zap.String("title", title))
			return nil, fmt.Errorf("find movie by title: %w", err)
		}
		if movie != nil {
			review.MovieID = movie.ID
		} else {
			newMovie, err = movieFromCatalog(ctx, s.lookup, title)
			if err != nil {
				s.log.Warn("Catalog lookup failed for review",
					zap.Error(err), zap.String("title", title))
				return nil, err
			}

			// The catalog may resolve the title to a movie already
			// stored under its canonical name. Reuse it.
			dup, err := findCatalogDuplicate(ctx, s.repo.Movie, newMovie)
			if err != nil {
				s.log.Error("Failed to check catalog duplicate",
					zap.Error(err), zap.String("title", newMovie.Title))
				return nil, err
			}
			if dup != nil {
				review.MovieID = dup.ID
				newMovie = nil
			} else {
				review.MovieID = newMovie.ID
			}
		}
	}

	// 3. One review per user per movie
	existing, err := s.repo.Review.FindByUserAndMovie(ctx, userID, review.MovieID)
	if err != nil {
		s.log.Error("Failed to check existing review",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("movie_id", review.MovieID.String()),
		)
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: you have already reviewed this movie", ErrConflict)
	}

	// 4. Persist. A brand-new movie goes in the same transaction as
	// the review.
	if newMovie != nil {
		err = s.repo.Review.CreateWithMovie(ctx, newMovie, review)
	} else {
		err = s.repo.Review.Create(ctx, review)
	}
	if err != nil {
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("movie_id", review.MovieID.String()),
		)
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("movie_id", review.MovieID.String()),
		zap.Bool("movie_created", newMovie != nil),
	)

	resp := s.toResponse(ctx, review)
	return &resp, nil
}

// validOrderings lists the accepted values of the ordering parameter.
var validOrderings = map[string]bool{
	"":             true,
	"rating":       true,
	"-rating":      true,
	"review_date":  true,
	"-review_date": true,
}

func (s *reviewService) GetReviews(ctx context.Context, req *request.ReviewListRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	if !validOrderings[req.Ordering] {
		return nil, fmt.Errorf("%w: unknown ordering %q", ErrValidation, req.Ordering)
	}
	if req.Pagination.Page < 1 {
		req.Pagination.Page = 1
	}
	req.Pagination.PerPage = utils.ClampPerPage(req.Pagination.PerPage,
		s.config.Pagination.DefaultPerPage, s.config.Pagination.MaxPerPage)

	filter := repository.ReviewFilter{
		Rating:     req.Rating,
		RatingMin:  req.RatingMin,
		RatingMax:  req.RatingMax,
		MovieTitle: req.MovieTitle,
		Search:     req.Search,
		Ordering:   req.Ordering,
	}

	reviews, err := s.repo.Review.FindAll(ctx, filter, req.Pagination.PerPage, req.Pagination.Offset())
	if err != nil {
		s.log.Error("Failed to get reviews", zap.Error(err))
		return nil, fmt.Errorf("get reviews: %w", err)
	}

	total, err := s.repo.Review.CountFiltered(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count reviews", zap.Error(err))
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	return response.NewPaginatedResponse(
		s.toResponses(ctx, reviews),
		req.Pagination.Page, req.Pagination.PerPage, total), nil
}

func (s *reviewService) GetReviewByID(ctx context.Context, reviewID string) (*response.ReviewResponse, error) {
	review, err := s.findReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	resp := s.toResponse(ctx, review)
	return &resp, nil
}

func (s *reviewService) GetMovieReviews(ctx context.Context, movieID string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
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

	if page.Page < 1 {
		page.Page = 1
	}
	page.PerPage = utils.ClampPerPage(page.PerPage,
		s.config.Pagination.DefaultPerPage, s.config.Pagination.MaxPerPage)

	reviews, err := s.repo.Review.FindByMovieID(ctx, id, page.PerPage, page.Offset())
	if err != nil {
		s.log.Error("Failed to get movie reviews", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("get movie reviews: %w", err)
	}

	total, err := s.repo.Review.CountByMovieID(ctx, id)
	if err != nil {
		s.log.Error("Failed to count movie reviews", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("count movie reviews: %w", err)
	}

	return response.NewPaginatedResponse(
		s.toResponses(ctx, reviews), page.Page, page.PerPage, total), nil
}

func (s *reviewService) GetUserReviews(ctx context.Context, userID uuid.UUID, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	if page.Page < 1 {
		page.Page = 1
	}
	page.PerPage = utils.ClampPerPage(page.PerPage,
		s.config.Pagination.DefaultPerPage, s.config.Pagination.MaxPerPage)

	reviews, err := s.repo.Review.FindByUserID(ctx, userID, page.PerPage, page.Offset())
	if err != nil {
		s.log.Error("Failed to get user reviews", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("get user reviews: %w", err)
	}

	total, err := s.repo.Review.CountByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to count user reviews", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("count user reviews: %w", err)
	}

	return response.NewPaginatedResponse(
		s.toResponses(ctx, reviews), page.Page, page.PerPage, total), nil
}

func (s *reviewService) UpdateReview(ctx context.Context, userID uuid.UUID, role entity.UserRole, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	review, err := s.findReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	if !CanModify(userID, role, review.UserID) {
		s.log.Warn("User tried to update another user's review",
			zap.String("user_id", userID.String()),
			zap.String("review_id", reviewID),
		)
		return nil, fmt.Errorf("%w: you can only modify your own reviews", ErrForbidden)
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.ReviewText != nil {
		review.ReviewText = *req.ReviewText
	}
	review.UpdatedAt = time.Now()

	if err := s.repo.Review.Update(ctx, review); err != nil {
		s.log.Error("Failed to update review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("update review: %w", err)
	}

	s.log.Info("Review updated",
		zap.String("review_id", review.ID.String()),
		zap.String("user_id", userID.String()))

	resp := s.toResponse(ctx, review)
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, userID uuid.UUID, role entity.UserRole, reviewID string) error {
	review, err := s.findReview(ctx, reviewID)
	if err != nil {
		return err
	}

	if !CanModify(userID, role, review.UserID) {
		s.log.Warn("User tried to delete another user's review",
			zap.String("user_id", userID.String()),
			zap.String("review_id", reviewID),
		)
		return fmt.Errorf("%w: you can only delete your own reviews", ErrForbidden)
	}

	if err := s.repo.Review.Delete(ctx, review.ID); err != nil {
		s.log.Error("Failed to delete review", zap.Error(err), zap.String("review_id", reviewID))
		return fmt.Errorf("delete review: %w", err)
	}

	s.log.Info("Review deleted",
		zap.String("review_id", review.ID.String()),
		zap.String("user_id", userID.String()))
	return nil
}

func (s *reviewService) LikeReview(ctx context.Context, userID uuid.UUID, reviewID string) (*response.LikeResponse, error) {
	review, err := s.findReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	like := &entity.Like{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:   userID,
		ReviewID: review.ID,
	}

	inserted, err := s.repo.Like.Create(ctx, like)
	if err != nil {
		s.log.Error("Failed to like review",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("review_id", reviewID),
		)
		return nil, fmt.Errorf("like review: %w", err)
	}

	if inserted {
		s.log.Info("Review liked",
			zap.String("review_id", review.ID.String()),
			zap.String("user_id", userID.String()))
	}

	return s.likeResponse(ctx, review.ID, true)
}

func (s *reviewService) UnlikeReview(ctx context.Context, userID uuid.UUID, reviewID string) (*response.LikeResponse, error) {
	review, err := s.findReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	removed, err := s.repo.Like.Delete(ctx, userID, review.ID)
	if err != nil {
		s.log.Error("Failed to unlike review",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("review_id", reviewID),
		)
		return nil, fmt.Errorf("unlike review: %w", err)
	}

	if removed {
		s.log.Info("Review unliked",
			zap.String("review_id", review.ID.String()),
			zap.String("user_id", userID.String()))
	}

	return s.likeResponse(ctx, review.ID, false)
}

// ==================== HELPER METHODS ====================

func (s *reviewService) findReview(ctx context.Context, reviewID string) (*entity.Review, error) {
	id, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid review ID", ErrValidation)
	}

	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil {
		return nil, fmt.Errorf("%w: review not found", ErrNotFound)
	}

	return review, nil
}

func (s *reviewService) likeResponse(ctx context.Context, reviewID uuid.UUID, liked bool) (*response.LikeResponse, error) {
	count, err := s.repo.Like.CountByReviewID(ctx, reviewID)
	if err != nil {
		s.log.Warn("Failed to count likes", zap.Error(err), zap.String("review_id", reviewID.String()))
	}

	return &response.LikeResponse{
		ReviewID:  reviewID.String(),
		Liked:     liked,
		LikeCount: count,
	}, nil
}

// toResponse enriches a review with its username, movie title and
// counts. Enrichment failures are logged and leave the field empty
// rather than failing the request.
func (s *reviewService) toResponse(ctx context.Context, review *entity.Review) response.ReviewResponse {
	var username, movieTitle string

	user, err := s.repo.User.FindByID(ctx, review.UserID)
	if err != nil {
		s.log.Warn("Failed to resolve review author", zap.Error(err),
			zap.String("user_id", review.UserID.String()))
	} else if user != nil {
		username = user.Username
	}

	movie, err := s.repo.Movie.FindByID(ctx, review.MovieID)
	if err != nil {
		s.log.Warn("Failed to resolve review movie", zap.Error(err),
			zap.String("movie_id", review.MovieID.String()))
	} else if movie != nil {
		movieTitle = movie.Title
	}

	likeCount, err := s.repo.Like.CountByReviewID(ctx, review.ID)
	if err != nil {
		s.log.Warn("Failed to count likes", zap.Error(err),
			zap.String("review_id", review.ID.String()))
	}

	commentCount, err := s.repo.Comment.CountByReviewID(ctx, review.ID)
	if err != nil {
		s.log.Warn("Failed to count comments", zap.Error(err),
			zap.String("review_id", review.ID.String()))
	}

	return response.ReviewToResponse(review, username, movieTitle, likeCount, commentCount)
}

func (s *reviewService) toResponses(ctx context.Context, reviews []*entity.Review) []response.ReviewResponse {
	responses := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		responses[i] = s.toResponse(ctx, review)
	}
	return responses
}
