package service

import (
	"testing"
	"time"

	"quizmaster_backend/internal/model"
	"quizmaster_backend/internal/repository"

	"gorm.io/gorm"
)

func newUserService(db *gorm.DB) *UserService {
	quizRepo := repository.NewQuizRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	scoreRepo := repository.NewScoreRepository(db)
	attempts := NewAttemptService(quizRepo, questionRepo, scoreRepo, nil)
	return NewUserService(
		repository.NewUserRepository(db),
		repository.NewSubjectRepository(db),
		scoreRepo,
		quizRepo,
		attempts,
	)
}

func TestListLearnersPaging(t *testing.T) {
	db := openTestDB(t)
	svc := newUserService(db)

	base := time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		user := model.User{
			Email:    []string{"a@example.com", "b@example.com", "c@example.com"}[i],
			Password: "hash",
			FullName: "Learner",
			Role:     model.Learner,
		}
		user.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		if err := db.Create(&user).Error; err != nil {
			t.Fatalf("seed learner %d: %v", i, err)
		}
	}
	admin := model.User{Email: "root@example.com", Password: "hash", FullName: "Root", Role: model.Admin}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	first, total, err := svc.ListLearners(1, 2)
	if err != nil {
		t.Fatalf("ListLearners page 1: %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3 (admins excluded)", total)
	}
	if len(first) != 2 {
		t.Fatalf("page 1 size = %d, want 2", len(first))
	}
	// Newest first.
	if first[0].Email != "c@example.com" || first[1].Email != "b@example.com" {
		t.Fatalf("page 1 = [%s, %s], want [c, b]", first[0].Email, first[1].Email)
	}

	second, total, err := svc.ListLearners(2, 2)
	if err != nil {
		t.Fatalf("ListLearners page 2: %v", err)
	}
	if total != 3 || len(second) != 1 || second[0].Email != "a@example.com" {
		t.Fatalf("page 2 = %d users (total %d), want the single oldest learner", len(second), total)
	}

	// Degenerate paging arguments fall back to sane defaults.
	all, total, err := svc.ListLearners(0, -5)
	if err != nil {
		t.Fatalf("ListLearners defaults: %v", err)
	}
	if total != 3 || len(all) != 3 {
		t.Fatalf("defaulted page = %d users (total %d), want all 3", len(all), total)
	}
}
