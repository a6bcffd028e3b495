package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/skycater/gsc/internal/gsc/repository"
	"github.com/skycater/gsc/internal/gsc/service"
)

func TestAuthRegisterAndLogin(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()

	user, err := svc.Auth.Register(ctx, &service.RegisterRequest{
		Username: "jdupont",
		Email:    "j.dupont@example.com",
		Name:     "Jean Dupont",
		Password: "motdepasse123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != "agent" {
		t.Errorf("default role must be agent, got %s", user.Role)
	}
	if user.PasswordHash == "motdepasse123" {
		t.Fatal("password must never be stored in clear")
	}

	logged, token, err := svc.Auth.Login(ctx, &service.LoginRequest{
		Username: "jdupont",
		Password: "motdepasse123",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.ID != user.ID {
		t.Errorf("expected user %s, got %s", user.ID, logged.ID)
	}
	if token.AccessToken == "" {
		t.Error("login must return a signed token")
	}

	if _, _, err := svc.Auth.Login(ctx, &service.LoginRequest{
		Username: "jdupont",
		Password: "wrong",
	}); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("wrong password must fail with ErrInvalidCredentials, got %v", err)
	}

	// Unknown users get the same error as wrong passwords.
	if _, _, err := svc.Auth.Login(ctx, &service.LoginRequest{
		Username: "nobody",
		Password: "whatever",
	}); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("unknown user must fail with ErrInvalidCredentials, got %v", err)
	}

	// Duplicate usernames are refused.
	if _, err := svc.Auth.Register(ctx, &service.RegisterRequest{
		Username: "jdupont",
		Email:    "other@example.com",
		Password: "motdepasse456",
	}); !errors.Is(err, repository.ErrDuplicate) {
		t.Errorf("duplicate username must fail with ErrDuplicate, got %v", err)
	}
}

func TestAuthChangePassword(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()

	user, err := svc.Auth.Register(ctx, &service.RegisterRequest{
		Username: "mmartin",
		Email:    "m.martin@example.com",
		Password: "ancienpass1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.Auth.ChangePassword(ctx, user.ID, "mauvais", "nouveaupass1"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("wrong old password must fail with ErrInvalidCredentials, got %v", err)
	}

	if err := svc.Auth.ChangePassword(ctx, user.ID, "ancienpass1", "nouveaupass1"); err != nil {
		t.Fatalf("change password: %v", err)
	}

	if _, _, err := svc.Auth.Login(ctx, &service.LoginRequest{Username: "mmartin", Password: "ancienpass1"}); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("old password must stop working, got %v", err)
	}
	if _, _, err := svc.Auth.Login(ctx, &service.LoginRequest{Username: "mmartin", Password: "nouveaupass1"}); err != nil {
		t.Errorf("new password must work: %v", err)
	}
}
