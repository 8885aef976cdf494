package service

import (
	"quizmaster_backend/internal/model"
	"quizmaster_backend/internal/repository"
	"quizmaster_backend/internal/util"

	"gorm.io/gorm"
)

type SubjectService struct {
	Repo *repository.SubjectRepository
}

func NewSubjectService(repo *repository.SubjectRepository) *SubjectService {
	return &SubjectService{Repo: repo}
}

type SubjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (s *SubjectService) Create(req SubjectRequest) (*model.Subject, error) {
	subject := &model.Subject{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.Repo.Create(subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *SubjectService) List() ([]model.Subject, error) {
	return s.Repo.FindAll()
}

func (s *SubjectService) Get(id uint) (*model.Subject, error) {
	subject, err := s.Repo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrSubjectNotFound
	}
	return subject, err
}

func (s *SubjectService) Update(id uint, req SubjectRequest) (*model.Subject, error) {
	subject, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	subject.Name = req.Name
	subject.Description = req.Description
	if err := s.Repo.Update(subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// Delete refuses while chapters still reference the subject; dependents
// go first, never cascaded.
func (s *SubjectService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	count, err := s.Repo.CountChapters(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return util.ErrSubjectHasChapters
	}
	return s.Repo.Delete(id)
}
