package service

import (
	"quizmaster_backend/internal/model"
	"quizmaster_backend/internal/repository"
	"quizmaster_backend/internal/util"

	"gorm.io/gorm"
)

type ChapterService struct {
	Repo        *repository.ChapterRepository
	SubjectRepo *repository.SubjectRepository
}

func NewChapterService(repo *repository.ChapterRepository, subjectRepo *repository.SubjectRepository) *ChapterService {
	return &ChapterService{Repo: repo, SubjectRepo: subjectRepo}
}

type ChapterRequest struct {
	SubjectID   uint   `json:"subjectId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (s *ChapterService) Create(req ChapterRequest) (*model.Chapter, error) {
	if _, err := s.SubjectRepo.FindByID(req.SubjectID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrSubjectNotFound
		}
		return nil, err
	}

	chapter := &model.Chapter{
		SubjectID:   req.SubjectID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.Repo.Create(chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

func (s *ChapterService) List() ([]model.Chapter, error) {
	return s.Repo.FindAll()
}

func (s *ChapterService) Get(id uint) (*model.Chapter, error) {
	chapter, err := s.Repo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrChapterNotFound
	}
	return chapter, err
}

func (s *ChapterService) Update(id uint, req ChapterRequest) (*model.Chapter, error) {
	chapter, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	chapter.SubjectID = req.SubjectID
	chapter.Name = req.Name
	chapter.Description = req.Description
	if err := s.Repo.Update(chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

func (s *ChapterService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	count, err := s.Repo.CountQuizzes(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return util.ErrChapterHasQuizzes
	}
	return s.Repo.Delete(id)
}
