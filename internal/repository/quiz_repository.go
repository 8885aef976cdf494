package repository

import (
	"quizmaster_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.First(&quiz, id).Error
	return &quiz, err
}

func (r *QuizRepository) FindAll() ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Order("date_of_quiz desc").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) FindByChapter(chapterID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Where("chapter_id = ?", chapterID).Order("date_of_quiz desc").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

func (r *QuizRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Quiz{}).Count(&count).Error
	return count, err
}

// DeleteWithDependents removes the quiz's questions, then its attempts,
// then the quiz itself. Ordering is enforced here rather than left to
// database cascades.
func (r *QuizRepository) DeleteWithDependents(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&model.Score{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Quiz{}, id).Error
	})
}
