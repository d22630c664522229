package usecase

import (
	"movie-reviews/internal/data/repository"
	"movie-reviews/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Movie   MovieService
	Review  ReviewService
	Comment CommentService
}

func NewService(repo *repository.Repository, lookup MovieLookup, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		User:    NewUserService(repo, config, log),
		Movie:   NewMovieService(repo, lookup, config, log),
		Review:  NewReviewService(repo, lookup, config, log),
		Comment: NewCommentService(repo, config, log),
	}
}
