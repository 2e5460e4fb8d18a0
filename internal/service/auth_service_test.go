package service

import (
	"context"
	"errors"
	"testing"

	"anoa.com/rhythmrank/internal/repository"
	"anoa.com/rhythmrank/pkg/apperror"
	"golang.org/x/crypto/bcrypt"
)

func TestSafeName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Cookiezi", "cookiezi"},
		{"White Cat", "white_cat"},
		{"  Spaced  Out ", "spaced__out"},
	}
	for _, c := range cases {
		if got := SafeName(c.in); got != c.want {
			t.Errorf("SafeName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRegisterHashesPasswordAndNormalizesName(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), "test-secret")
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterInput{
		Name:     "White Cat",
		Email:    "WhiteCat@Example.com",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if res.Token == "" {
		t.Error("no token issued on register")
	}
	if res.User.NameSafe != "white_cat" {
		t.Errorf("got safe name %q", res.User.NameSafe)
	}
	if res.User.Email != "whitecat@example.com" {
		t.Errorf("email not lowercased: %q", res.User.Email)
	}
	if res.User.Password == "hunter2hunter2" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(res.User.Password), []byte("hunter2hunter2")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestRegisterDuplicateName(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), "test-secret")
	ctx := context.Background()

	input := RegisterInput{Name: "peppy", Email: "peppy@example.com", Password: "hunter2hunter2"}
	if _, err := svc.Register(ctx, input); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	input.Email = "other@example.com"
	_, err := svc.Register(ctx, input)
	if !errors.Is(err, apperror.ErrDuplicate) {
		t.Fatalf("got %v, want apperror.ErrDuplicate", err)
	}
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), "test-secret")
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{
		Name:     "White Cat",
		Email:    "whitecat@example.com",
		Password: "hunter2hunter2",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Login resolves through the safe name, so the display spelling works.
	res, err := svc.Login(ctx, LoginInput{Name: "white cat", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token == "" {
		t.Error("no token issued on login")
	}

	_, err = svc.Login(ctx, LoginInput{Name: "white cat", Password: "wrong"})
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("wrong password: got %v, want apperror.ErrUnauthorized", err)
	}

	_, err = svc.Login(ctx, LoginInput{Name: "nobody", Password: "hunter2hunter2"})
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("unknown user: got %v, want apperror.ErrUnauthorized", err)
	}
}
