package repository

import (
	"quizmaster_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, id).Error
	return &q, err
}

func (r *QuestionRepository) Update(question *model.Question) error {
	return r.DB.Save(question).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}

func (r *QuestionRepository) ListByQuiz(quizID uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("quiz_id = ?", quizID).Order("id asc").Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) CountByQuiz(quizID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return count, err
}
