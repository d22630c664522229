package usecase

import (
	"context"
	"errors"
	"testing"

	"movie-reviews/internal/dto/request"
)

func TestRegisterAndLogin(t *testing.T) {
	repo := testRepo()
	svc := NewAuthService(repo, testConfig(), testLogger())

	resp, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if resp.Username != "alice" {
		t.Errorf("Username = %q, want alice", resp.Username)
	}
	if resp.Token == "" {
		t.Error("Register should auto-login with a session token")
	}

	login, err := svc.Login(context.Background(), &request.LoginRequest{
		Username: "alice@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Login by email returned error: %v", err)
	}
	if login.UserID != resp.UserID {
		t.Errorf("UserID = %q, want %q", login.UserID, resp.UserID)
	}

	if _, err := svc.Login(context.Background(), &request.LoginRequest{
		Username: "alice",
		Password: "secret123",
	}); err != nil {
		t.Fatalf("Login by username returned error: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := testRepo()
	svc := NewAuthService(repo, testConfig(), testLogger())

	if _, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice2", Email: "alice@example.com", Password: "secret123",
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("error = %v, want ErrConflict", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := testRepo()
	svc := NewAuthService(repo, testConfig(), testLogger())

	if _, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice", Email: "other@example.com", Password: "secret123",
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("error = %v, want ErrConflict", err)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	repo := testRepo()
	svc := NewAuthService(repo, testConfig(), testLogger())

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "short",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	repo := testRepo()
	svc := NewAuthService(repo, testConfig(), testLogger())

	if _, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	// Unknown user and wrong password come back indistinguishable
	_, err := svc.Login(context.Background(), &request.LoginRequest{
		Username: "nobody", Password: "secret123",
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("unknown user: error = %v, want ErrUnauthorized", err)
	}

	_, err = svc.Login(context.Background(), &request.LoginRequest{
		Username: "alice", Password: "wrongpass",
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("wrong password: error = %v, want ErrUnauthorized", err)
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	repo := testRepo()
	svc := NewAuthService(repo, testConfig(), testLogger())

	if _, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	user, _ := repo.User.FindByUsername(context.Background(), "alice")
	user.IsActive = false

	_, err := svc.Login(context.Background(), &request.LoginRequest{
		Username: "alice", Password: "secret123",
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("error = %v, want ErrForbidden", err)
	}
}

func TestLogoutInvalidToken(t *testing.T) {
	repo := testRepo()
	svc := NewAuthService(repo, testConfig(), testLogger())

	err := svc.Logout(context.Background(), "not-a-uuid")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("error = %v, want ErrUnauthorized", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	repo := testRepo()
	svc := NewAuthService(repo, testConfig(), testLogger())

	resp, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if err := svc.Logout(context.Background(), resp.Token); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}

	session, _ := repo.Session.FindValidSession(context.Background(), resp.Token)
	if session != nil {
		t.Error("session should be revoked after logout")
	}
}
