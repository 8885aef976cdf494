package repository

import (
	"quizmaster_backend/internal/model"

	"gorm.io/gorm"
)

type ScoreRepository struct {
	DB *gorm.DB
}

func NewScoreRepository(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{DB: db}
}

func (r *ScoreRepository) Create(score *model.Score) error {
	return r.DB.Create(score).Error
}

func (r *ScoreRepository) FindByID(id uint) (*model.Score, error) {
	var score model.Score
	err := r.DB.First(&score, id).Error
	return &score, err
}

// ListByUserAsc returns the user's attempts oldest first, capped at limit.
// This is the learner-facing trend query: with more than limit attempts it
// keeps the oldest ones, which matches the results page as shipped.
func (r *ScoreRepository) ListByUserAsc(userID uint, limit int) ([]model.Score, error) {
	var scores []model.Score
	q := r.DB.Where("user_id = ?", userID).Order("created_at asc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&scores).Error
	return scores, err
}

// ListByUserDesc returns the user's attempts newest first, capped at limit.
// Callers wanting a chronological series reverse the slice afterwards.
func (r *ScoreRepository) ListByUserDesc(userID uint, limit int) ([]model.Score, error) {
	var scores []model.Score
	q := r.DB.Where("user_id = ?", userID).Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&scores).Error
	return scores, err
}

func (r *ScoreRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Score{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
