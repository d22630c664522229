package usecase

import (
	"context"
	"sort"
	"strings"

	"movie-reviews/internal/data/entity"
	"movie-reviews/internal/data/repository"
	"movie-reviews/internal/omdb"
	"movie-reviews/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory repository fakes backing the service tests.

func testConfig() *utils.Config {
	return &utils.Config{
		Pagination: utils.PaginationConfig{
			DefaultPerPage: 10,
			MaxPerPage:     100,
		},
		Session: utils.SessionConfig{
			ExpiryHours: 24,
		},
	}
}

func testRepo() *repository.Repository {
	movies := &fakeMovieRepo{movies: map[uuid.UUID]*entity.Movie{}}
	return &repository.Repository{
		User:    &fakeUserRepo{users: map[uuid.UUID]*entity.User{}},
		Session: &fakeSessionRepo{sessions: map[string]*entity.Session{}},
		Movie:   movies,
		Review:  &fakeReviewRepo{reviews: map[uuid.UUID]*entity.Review{}, movies: movies},
		Comment: &fakeCommentRepo{comments: map[uuid.UUID]*entity.Comment{}},
		Like:    &fakeLikeRepo{likes: map[uuid.UUID]*entity.Like{}},
	}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

// ---------- users ----------

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.User, error) {
	all := make([]*entity.User, 0, len(f.users))
	for _, u := range f.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID.String() < all[j].ID.String() })
	return paginate(all, limit, offset), nil
}

func (f *fakeUserRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

// ---------- sessions ----------

type fakeSessionRepo struct {
	sessions map[string]*entity.Session
}

func (f *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	f.sessions[session.Token.String()] = session
	return nil
}

func (f *fakeSessionRepo) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	s := f.sessions[token]
	if s == nil || s.RevokedAt != nil {
		return nil, nil
	}
	return s, nil
}

func (f *fakeSessionRepo) Revoke(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

func (f *fakeSessionRepo) RevokeAllUserSessions(_ context.Context, userID uuid.UUID) error {
	for token, s := range f.sessions {
		if s.UserID == userID {
			delete(f.sessions, token)
		}
	}
	return nil
}

// ---------- movies ----------

type fakeMovieRepo struct {
	movies map[uuid.UUID]*entity.Movie
}

func (f *fakeMovieRepo) Create(_ context.Context, movie *entity.Movie) error {
	f.movies[movie.ID] = movie
	return nil
}

func (f *fakeMovieRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	return f.movies[id], nil
}

func (f *fakeMovieRepo) FindByTitle(_ context.Context, title string) (*entity.Movie, error) {
	for _, m := range f.movies {
		if strings.EqualFold(m.Title, title) {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMovieRepo) FindByImdbID(_ context.Context, imdbID string) (*entity.Movie, error) {
	for _, m := range f.movies {
		if m.ImdbID != nil && *m.ImdbID == imdbID {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMovieRepo) FindAll(_ context.Context, limit, offset int, search *string) ([]*entity.Movie, error) {
	var all []*entity.Movie
	for _, m := range f.movies {
		if search != nil && !strings.Contains(strings.ToLower(m.Title), strings.ToLower(*search)) {
			continue
		}
		all = append(all, m)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Title < all[j].Title })
	return paginate(all, limit, offset), nil
}

func (f *fakeMovieRepo) CountAll(_ context.Context, search *string) (int64, error) {
	all, _ := f.FindAll(context.Background(), len(f.movies), 0, search)
	return int64(len(all)), nil
}

func (f *fakeMovieRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.movies, id)
	return nil
}

// ---------- reviews ----------

type fakeReviewRepo struct {
	reviews map[uuid.UUID]*entity.Review
	movies  *fakeMovieRepo
}

func (f *fakeReviewRepo) Create(_ context.Context, review *entity.Review) error {
	f.reviews[review.ID] = review
	return nil
}

func (f *fakeReviewRepo) CreateWithMovie(ctx context.Context, movie *entity.Movie, review *entity.Review) error {
	if f.movies != nil {
		f.movies.Create(ctx, movie)
	}
	f.reviews[review.ID] = review
	return nil
}

func (f *fakeReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	return f.reviews[id], nil
}

func (f *fakeReviewRepo) movieTitle(movieID uuid.UUID) string {
	if f.movies == nil {
		return ""
	}
	if m := f.movies.movies[movieID]; m != nil {
		return m.Title
	}
	return ""
}

func (f *fakeReviewRepo) FindAll(_ context.Context, filter repository.ReviewFilter, limit, offset int) ([]*entity.Review, error) {
	var all []*entity.Review
	for _, r := range f.reviews {
		if filter.Rating != nil && r.Rating != *filter.Rating {
			continue
		}
		if filter.RatingMin != nil && r.Rating < *filter.RatingMin {
			continue
		}
		if filter.RatingMax != nil && r.Rating > *filter.RatingMax {
			continue
		}
		title := f.movieTitle(r.MovieID)
		if filter.MovieTitle != nil && *filter.MovieTitle != "" &&
			!strings.EqualFold(title, *filter.MovieTitle) {
			continue
		}
		if filter.Search != nil && *filter.Search != "" {
			needle := strings.ToLower(*filter.Search)
			if !strings.Contains(strings.ToLower(title), needle) &&
				!strings.Contains(strings.ToLower(r.ReviewText), needle) {
				continue
			}
		}
		all = append(all, r)
	}

	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		switch filter.Ordering {
		case "rating":
			if a.Rating != b.Rating {
				return a.Rating < b.Rating
			}
		case "-rating":
			if a.Rating != b.Rating {
				return a.Rating > b.Rating
			}
		case "review_date":
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		}
		return a.ID.String() < b.ID.String()
	})

	return paginate(all, limit, offset), nil
}

func (f *fakeReviewRepo) CountFiltered(ctx context.Context, filter repository.ReviewFilter) (int64, error) {
	all, _ := f.FindAll(ctx, filter, len(f.reviews), 0)
	return int64(len(all)), nil
}

func (f *fakeReviewRepo) FindByMovieID(_ context.Context, movieID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	var all []*entity.Review
	for _, r := range f.reviews {
		if r.MovieID == movieID {
			all = append(all, r)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID.String() < all[j].ID.String() })
	return paginate(all, limit, offset), nil
}

func (f *fakeReviewRepo) CountByMovieID(_ context.Context, movieID uuid.UUID) (int64, error) {
	var n int64
	for _, r := range f.reviews {
		if r.MovieID == movieID {
			n++
		}
	}
	return n, nil
}

func (f *fakeReviewRepo) FindByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	var all []*entity.Review
	for _, r := range f.reviews {
		if r.UserID == userID {
			all = append(all, r)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID.String() < all[j].ID.String() })
	return paginate(all, limit, offset), nil
}

func (f *fakeReviewRepo) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, r := range f.reviews {
		if r.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeReviewRepo) FindByUserAndMovie(_ context.Context, userID, movieID uuid.UUID) (*entity.Review, error) {
	for _, r := range f.reviews {
		if r.UserID == userID && r.MovieID == movieID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) Update(_ context.Context, review *entity.Review) error {
	f.reviews[review.ID] = review
	return nil
}

func (f *fakeReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.reviews, id)
	return nil
}

func (f *fakeReviewRepo) GetMovieReviewStats(_ context.Context, movieID uuid.UUID) (float64, int64, error) {
	var sum float64
	var n int64
	for _, r := range f.reviews {
		if r.MovieID == movieID {
			sum += r.Rating
			n++
		}
	}
	if n == 0 {
		return 0, 0, nil
	}
	return sum / float64(n), n, nil
}

// ---------- comments ----------

type fakeCommentRepo struct {
	comments map[uuid.UUID]*entity.Comment
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *entity.Comment) error {
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Comment, error) {
	return f.comments[id], nil
}

func (f *fakeCommentRepo) FindByReviewID(_ context.Context, reviewID uuid.UUID, limit, offset int) ([]*entity.Comment, error) {
	var all []*entity.Comment
	for _, c := range f.comments {
		if c.ReviewID == reviewID {
			all = append(all, c)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return all[i].ID.String() < all[j].ID.String()
	})
	return paginate(all, limit, offset), nil
}

func (f *fakeCommentRepo) CountByReviewID(_ context.Context, reviewID uuid.UUID) (int64, error) {
	var n int64
	for _, c := range f.comments {
		if c.ReviewID == reviewID {
			n++
		}
	}
	return n, nil
}

func (f *fakeCommentRepo) Update(_ context.Context, comment *entity.Comment) error {
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.comments, id)
	return nil
}

// ---------- likes ----------

type fakeLikeRepo struct {
	likes map[uuid.UUID]*entity.Like
}

func (f *fakeLikeRepo) Create(_ context.Context, like *entity.Like) (bool, error) {
	for _, l := range f.likes {
		if l.UserID == like.UserID && l.ReviewID == like.ReviewID {
			return false, nil
		}
	}
	f.likes[like.ID] = like
	return true, nil
}

func (f *fakeLikeRepo) Delete(_ context.Context, userID, reviewID uuid.UUID) (bool, error) {
	for id, l := range f.likes {
		if l.UserID == userID && l.ReviewID == reviewID {
			delete(f.likes, id)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLikeRepo) CountByReviewID(_ context.Context, reviewID uuid.UUID) (int64, error) {
	var n int64
	for _, l := range f.likes {
		if l.ReviewID == reviewID {
			n++
		}
	}
	return n, nil
}

// ---------- catalog lookup ----------

type fakeLookup struct {
	movies map[string]*omdb.Movie // keyed by lowercase title
	err    error
	calls  int
}

func (f *fakeLookup) FetchByTitle(_ context.Context, title string) (*omdb.Movie, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if m, ok := f.movies[strings.ToLower(title)]; ok {
		return m, nil
	}
	return nil, omdb.ErrNotFound
}

func paginate[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}
