package usecase

import (
	"context"
	"errors"
	"testing"

	"movie-reviews/internal/dto/request"
)

func TestGetProfile(t *testing.T) {
	repo := testRepo()
	svc := NewUserService(repo, testConfig(), testLogger())

	user := seedUser(t, repo, "alice")

	resp, err := svc.GetProfile(context.Background(), user.ID.String())
	if err != nil {
		t.Fatalf("GetProfile returned error: %v", err)
	}
	if resp.Username != "alice" {
		t.Errorf("Username = %q, want alice", resp.Username)
	}
}

func TestGetProfileUnknownUser(t *testing.T) {
	repo := testRepo()
	svc := NewUserService(repo, testConfig(), testLogger())

	_, err := svc.GetProfile(context.Background(), "not-a-uuid")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
}

func TestGetAllUsersClampsPerPage(t *testing.T) {
	repo := testRepo()
	svc := NewUserService(repo, testConfig(), testLogger())

	seedUser(t, repo, "alice")
	seedUser(t, repo, "bob")

	resp, err := svc.GetAllUsers(context.Background(), &request.PaginatedRequest{Page: 1, PerPage: 5000})
	if err != nil {
		t.Fatalf("GetAllUsers returned error: %v", err)
	}
	if resp.Pagination.PerPage != 100 {
		t.Errorf("PerPage = %d, want clamped to 100", resp.Pagination.PerPage)
	}
	if resp.Pagination.Total != 2 {
		t.Errorf("Total = %d, want 2", resp.Pagination.Total)
	}
}

func TestDeleteUserRevokesSessions(t *testing.T) {
	repo := testRepo()
	userSvc := NewUserService(repo, testConfig(), testLogger())
	authSvc := NewAuthService(repo, testConfig(), testLogger())

	auth, err := authSvc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if err := userSvc.DeleteUser(context.Background(), auth.UserID); err != nil {
		t.Fatalf("DeleteUser returned error: %v", err)
	}

	session, _ := repo.Session.FindValidSession(context.Background(), auth.Token)
	if session != nil {
		t.Error("session should be revoked when the user is deleted")
	}

	_, err = userSvc.GetProfile(context.Background(), auth.UserID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("after delete: error = %v, want ErrNotFound", err)
	}
}

func TestRegisterReusesDeletedAccountIdentity(t *testing.T) {
	repo := testRepo()
	userSvc := NewUserService(repo, testConfig(), testLogger())
	authSvc := NewAuthService(repo, testConfig(), testLogger())

	req := &request.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	}
	auth, err := authSvc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if err := userSvc.DeleteUser(context.Background(), auth.UserID); err != nil {
		t.Fatalf("DeleteUser returned error: %v", err)
	}

	// The username and email belong to nobody once the account is
	// deleted, so a fresh registration must not hit a conflict.
	again, err := authSvc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("Register after delete returned error: %v", err)
	}
	if again.UserID == auth.UserID {
		t.Error("re-registration reused the deleted account id")
	}
}
