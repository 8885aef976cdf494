package repository

import (
	"quizmaster_backend/internal/model"

	"gorm.io/gorm"
)

type SubjectRepository struct {
	DB *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) *SubjectRepository {
	return &SubjectRepository{DB: db}
}

func (r *SubjectRepository) Create(subject *model.Subject) error {
	return r.DB.Create(subject).Error
}

func (r *SubjectRepository) FindByID(id uint) (*model.Subject, error) {
	var subject model.Subject
	err := r.DB.First(&subject, id).Error
	return &subject, err
}

func (r *SubjectRepository) FindAll() ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.DB.Order("name asc").Find(&subjects).Error
	return subjects, err
}

// FindAllWithChapters loads the full subject tree for dashboards.
func (r *SubjectRepository) FindAllWithChapters() ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.DB.Preload("Chapters.Quizzes").Preload("Chapters").Order("name asc").Find(&subjects).Error
	return subjects, err
}

func (r *SubjectRepository) Update(subject *model.Subject) error {
	return r.DB.Save(subject).Error
}

func (r *SubjectRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Subject{}, id).Error
}

func (r *SubjectRepository) CountChapters(subjectID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Chapter{}).Where("subject_id = ?", subjectID).Count(&count).Error
	return count, err
}
