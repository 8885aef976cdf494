package service

import (
	"errors"
	"testing"
	"time"

	"quizmaster_backend/internal/config"
	"quizmaster_backend/internal/model"
	"quizmaster_backend/internal/repository"
	"quizmaster_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestRegisterForcesLearnerRole(t *testing.T) {
	db := openTestDB(t)
	auth := newAuthService(db)

	user := &model.User{
		Email:    "eve@example.com",
		Password: "secret123",
		FullName: "Eve",
		Role:     model.Admin, // ignored
	}
	if err := auth.Register(user); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != model.Learner {
		t.Fatalf("role = %s, want learner regardless of the request", user.Role)
	}
	if user.Password == "secret123" {
		t.Fatalf("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	auth := newAuthService(db)

	first := &model.User{Email: "dup@example.com", Password: "secret123", FullName: "First"}
	if err := auth.Register(first); err != nil {
		t.Fatalf("Register: %v", err)
	}

	second := &model.User{Email: "dup@example.com", Password: "other456", FullName: "Second"}
	if err := auth.Register(second); !errors.Is(err, util.ErrEmailRegistered) {
		t.Fatalf("err = %v, want ErrEmailRegistered", err)
	}
}

func TestLoginRoundTrip(t *testing.T) {
	db := openTestDB(t)
	auth := newAuthService(db)

	user := &model.User{Email: "li@example.com", Password: "secret123", FullName: "Li"}
	if err := auth.Register(user); err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, got, err := auth.Login("li@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" || got.ID != user.ID {
		t.Fatalf("token = %q, user = %+v", token, got)
	}

	claims, err := util.ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != model.Learner {
		t.Fatalf("claims = %+v", claims)
	}

	if _, _, err := auth.Login("li@example.com", "wrong"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := auth.Login("nobody@example.com", "secret123"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
}

func TestAdminLoginRejectsLearners(t *testing.T) {
	db := openTestDB(t)
	auth := newAuthService(db)

	learner := &model.User{Email: "lu@example.com", Password: "secret123", FullName: "Lu"}
	if err := auth.Register(learner); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Valid learner credentials still read as invalid on the admin door.
	if _, _, err := auth.AdminLogin("lu@example.com", "secret123"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("learner admin-login err = %v, want ErrInvalidCredentials", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("adminpass"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	admin := &model.User{Email: "root@example.com", Password: string(hash), FullName: "Root", Role: model.Admin}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	token, got, err := auth.AdminLogin("root@example.com", "adminpass")
	if err != nil {
		t.Fatalf("AdminLogin: %v", err)
	}
	if token == "" || got.Role != model.Admin {
		t.Fatalf("token = %q, role = %s", token, got.Role)
	}
}
