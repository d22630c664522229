package usecase

import (
	"context"
	"fmt"
	"time"

	"movie-reviews/internal/data/entity"
	"movie-reviews/internal/data/repository"
	"movie-reviews/internal/dto/request"
	"movie-reviews/internal/dto/response"
	"movie-reviews/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CommentService interface {
	CreateComment(ctx context.Context, userID uuid.UUID, reviewID string, req *request.CreateCommentRequest) (*response.CommentResponse, error)
	GetReviewComments(ctx context.Context, reviewID string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error)
	UpdateComment(ctx context.Context, userID uuid.UUID, role entity.UserRole, commentID string, req *request.UpdateCommentRequest) (*response.CommentResponse, error)
	DeleteComment(ctx context.Context, userID uuid.UUID, role entity.UserRole, commentID string) error
}

type commentService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewCommentService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) CommentService {
	return &commentService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "comment")),
	}
}

func (s *commentService) CreateComment(ctx context.Context, userID uuid.UUID, reviewID string, req *request.CreateCommentRequest) (*response.CommentResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create comment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	// 2. Review must exist
	id, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid review ID", ErrValidation)
	}
	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find review for comment", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil {
		return nil, fmt.Errorf("%w: review not found", ErrNotFound)
	}

	// 3. Persist
	comment := &entity.Comment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:   userID,
		ReviewID: review.ID,
		Content:  req.Content,
	}

	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		s.log.Error("Failed to create comment",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("review_id", reviewID),
		)
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("review_id", review.ID.String()),
		zap.String("user_id", userID.String()))

	resp := s.toResponse(ctx, comment)
	return &resp, nil
}

func (s *commentService) GetReviewComments(ctx context.Context, reviewID string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error) {
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

	if page.Page < 1 {
		page.Page = 1
	}
	page.PerPage = utils.ClampPerPage(page.PerPage,
		s.config.Pagination.DefaultPerPage, s.config.Pagination.MaxPerPage)

	comments, err := s.repo.Comment.FindByReviewID(ctx, id, page.PerPage, page.Offset())
	if err != nil {
		s.log.Error("Failed to get comments", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("get comments: %w", err)
	}

	total, err := s.repo.Comment.CountByReviewID(ctx, id)
	if err != nil {
		s.log.Error("Failed to count comments", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("count comments: %w", err)
	}

	commentResponses := make([]response.CommentResponse, len(comments))
	for i, comment := range comments {
		commentResponses[i] = s.toResponse(ctx, comment)
	}

	return response.NewPaginatedResponse(commentResponses, page.Page, page.PerPage, total), nil
}

func (s *commentService) UpdateComment(ctx context.Context, userID uuid.UUID, role entity.UserRole, commentID string, req *request.UpdateCommentRequest) (*response.CommentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update comment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	comment, err := s.findComment(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if !CanModify(userID, role, comment.UserID) {
		s.log.Warn("User tried to update another user's comment",
			zap.String("user_id", userID.String()),
			zap.String("comment_id", commentID),
		)
		return nil, fmt.Errorf("%w: you can only modify your own comments", ErrForbidden)
	}

	comment.Content = req.Content

	if err := s.repo.Comment.Update(ctx, comment); err != nil {
		s.log.Error("Failed to update comment", zap.Error(err), zap.String("comment_id", commentID))
		return nil, fmt.Errorf("update comment: %w", err)
	}

	resp := s.toResponse(ctx, comment)
	return &resp, nil
}

func (s *commentService) DeleteComment(ctx context.Context, userID uuid.UUID, role entity.UserRole, commentID string) error {
	comment, err := s.findComment(ctx, commentID)
	if err != nil {
		return err
	}

	if !CanModify(userID, role, comment.UserID) {
		s.log.Warn("User tried to delete another user's comment",
			zap.String("user_id", userID.String()),
			zap.String("comment_id", commentID),
		)
		return fmt.Errorf("%w: you can only delete your own comments", ErrForbidden)
	}

	if err := s.repo.Comment.Delete(ctx, comment.ID); err != nil {
		s.log.Error("Failed to delete comment", zap.Error(err), zap.String("comment_id", commentID))
		return fmt.Errorf("delete comment: %w", err)
	}

	s.log.Info("Comment deleted",
		zap.String("comment_id", comment.ID.String()),
		zap.String("user_id", userID.String()))
	return nil
}

func (s *commentService) findComment(ctx context.Context, commentID string) (*entity.Comment, error) {
	id, err := uuid.Parse(commentID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid comment ID", ErrValidation)
	}

	comment, err := s.repo.Comment.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find comment", zap.Error(err), zap.String("comment_id", commentID))
		return nil, fmt.Errorf("find comment: %w", err)
	}
	if comment == nil {
		return nil, fmt.Errorf("%w: comment not found", ErrNotFound)
	}

	return comment, nil
}

func (s *commentService) toResponse(ctx context.Context, comment *entity.Comment) response.CommentResponse {
	var username string

	user, err := s.repo.User.FindByID(ctx, comment.UserID)
	if err != nil {
		s.log.Warn("Failed to resolve comment author", zap.Error(err),
			zap.String("user_id", comment.UserID.String()))
	} else if user != nil {
		username = user.Username
	}

	return response.CommentToResponse(comment, username)
}
