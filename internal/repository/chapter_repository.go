package repository

import (
	"quizmaster_backend/internal/model"

	"gorm.io/gorm"
)

type ChapterRepository struct {
	DB *gorm.DB
}

func NewChapterRepository(db *gorm.DB) *ChapterRepository {
	return &ChapterRepository{DB: db}
}

func (r *ChapterRepository) Create(chapter *model.Chapter) error {
	return r.DB.Create(chapter).Error
}

func (r *ChapterRepository) FindByID(id uint) (*model.Chapter, error) {
	var chapter model.Chapter
	err := r.DB.First(&chapter, id).Error
	return &chapter, err
}

func (r *ChapterRepository) FindAll() ([]model.Chapter, error) {
	var chapters []model.Chapter
	err := r.DB.Order("subject_id asc, name asc").Find(&chapters).Error
	return chapters, err
}

func (r *ChapterRepository) FindBySubject(subjectID uint) ([]model.Chapter, error) {
	var chapters []model.Chapter
	err := r.DB.Where("subject_id = ?", subjectID).Order("name asc").Find(&chapters).Error
	return chapters, err
}

func (r *ChapterRepository) Update(chapter *model.Chapter) error {
	return r.DB.Save(chapter).Error
}

func (r *ChapterRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Chapter{}, id).Error
}

func (r *ChapterRepository) CountQuizzes(chapterID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Quiz{}).Where("chapter_id = ?", chapterID).Count(&count).Error
	return count, err
}
