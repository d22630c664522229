package usecase

import (
	"context"
	"errors"
	"testing"

	"movie-reviews/internal/data/entity"
	"movie-reviews/internal/dto/request"

	"github.com/google/uuid"
)

func TestCreateComment(t *testing.T) {
	repo := testRepo()
	svc := NewCommentService(repo, testConfig(), testLogger())

	author := seedUser(t, repo, "alice")
	commenter := seedUser(t, repo, "bob")
	movie := seedMovie(t, repo, "The Matrix")
	review := seedReview(t, repo, author.ID, movie.ID, 4)

	resp, err := svc.CreateComment(context.Background(), commenter.ID, review.ID.String(),
		&request.CreateCommentRequest{Content: "Totally agree"})
	if err != nil {
		t.Fatalf("CreateComment returned error: %v", err)
	}

	if resp.Content != "Totally agree" {
		t.Errorf("Content = %q, want %q", resp.Content, "Totally agree")
	}
	if resp.Username != "bob" {
		t.Errorf("Username = %q, want bob", resp.Username)
	}
}

func TestCreateCommentUnknownReview(t *testing.T) {
	repo := testRepo()
	svc := NewCommentService(repo, testConfig(), testLogger())

	user := seedUser(t, repo, "alice")

	_, err := svc.CreateComment(context.Background(), user.ID, uuid.New().String(),
		&request.CreateCommentRequest{Content: "hello"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestGetReviewCommentsOrdered(t *testing.T) {
	repo := testRepo()
	svc := NewCommentService(repo, testConfig(), testLogger())

	author := seedUser(t, repo, "alice")
	movie := seedMovie(t, repo, "The Matrix")
	review := seedReview(t, repo, author.ID, movie.ID, 4)

	for _, content := range []string{"first", "second", "third"} {
		if _, err := svc.CreateComment(context.Background(), author.ID, review.ID.String(),
			&request.CreateCommentRequest{Content: content}); err != nil {
			t.Fatalf("CreateComment returned error: %v", err)
		}
	}

	page, err := svc.GetReviewComments(context.Background(), review.ID.String(),
		&request.PaginatedRequest{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("GetReviewComments returned error: %v", err)
	}

	if page.Pagination.Total != 3 {
		t.Fatalf("Total = %d, want 3", page.Pagination.Total)
	}
	if page.Data[0].Content != "first" || page.Data[2].Content != "third" {
		t.Errorf("comments not in creation order: %q, %q, %q",
			page.Data[0].Content, page.Data[1].Content, page.Data[2].Content)
	}
}

func TestUpdateCommentOwnerOnly(t *testing.T) {
	repo := testRepo()
	svc := NewCommentService(repo, testConfig(), testLogger())

	author := seedUser(t, repo, "alice")
	other := seedUser(t, repo, "bob")
	movie := seedMovie(t, repo, "The Matrix")
	review := seedReview(t, repo, author.ID, movie.ID, 4)

	comment, err := svc.CreateComment(context.Background(), author.ID, review.ID.String(),
		&request.CreateCommentRequest{Content: "original"})
	if err != nil {
		t.Fatalf("CreateComment returned error: %v", err)
	}

	_, err = svc.UpdateComment(context.Background(), other.ID, entity.RoleUser, comment.ID,
		&request.UpdateCommentRequest{Content: "hijacked"})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("other user: error = %v, want ErrForbidden", err)
	}

	updated, err := svc.UpdateComment(context.Background(), author.ID, entity.RoleUser, comment.ID,
		&request.UpdateCommentRequest{Content: "edited"})
	if err != nil {
		t.Fatalf("owner update returned error: %v", err)
	}
	if updated.Content != "edited" {
		t.Errorf("Content = %q, want edited", updated.Content)
	}
}

func TestDeleteCommentAdminOverride(t *testing.T) {
	repo := testRepo()
	svc := NewCommentService(repo, testConfig(), testLogger())

	author := seedUser(t, repo, "alice")
	admin := seedUser(t, repo, "root")
	movie := seedMovie(t, repo, "The Matrix")
	review := seedReview(t, repo, author.ID, movie.ID, 4)

	comment, err := svc.CreateComment(context.Background(), author.ID, review.ID.String(),
		&request.CreateCommentRequest{Content: "spam"})
	if err != nil {
		t.Fatalf("CreateComment returned error: %v", err)
	}

	if err := svc.DeleteComment(context.Background(), admin.ID, entity.RoleAdmin, comment.ID); err != nil {
		t.Fatalf("admin delete returned error: %v", err)
	}

	_, err = svc.UpdateComment(context.Background(), author.ID, entity.RoleUser, comment.ID,
		&request.UpdateCommentRequest{Content: "still here?"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("after delete: error = %v, want ErrNotFound", err)
	}
}
