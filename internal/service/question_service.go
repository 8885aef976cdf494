package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"quizmaster_backend/internal/model"
	"quizmaster_backend/internal/repository"
	"quizmaster_backend/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestionService struct {
	Repo     *repository.QuestionRepository
	QuizRepo *repository.QuizRepository
	Storage  *StorageService
}

func NewQuestionService(repo *repository.QuestionRepository, quizRepo *repository.QuizRepository, storage *StorageService) *QuestionService {
	return &QuestionService{Repo: repo, QuizRepo: quizRepo, Storage: storage}
}

type QuestionRequest struct {
	QuestionStatement string `form:"questionStatement" json:"questionStatement" binding:"required"`
	Option1           string `form:"option1" json:"option1" binding:"required"`
	Option2           string `form:"option2" json:"option2" binding:"required"`
	Option3           string `form:"option3" json:"option3" binding:"required"`
	Option4           string `form:"option4" json:"option4"`
	CorrectOption     int    `form:"correctOption" json:"correctOption" binding:"required,min=1,max=4"`
}

func (s *QuestionService) normalize(req *QuestionRequest) {
	req.QuestionStatement = strings.TrimSpace(req.QuestionStatement)
	req.Option1 = strings.TrimSpace(req.Option1)
	req.Option2 = strings.TrimSpace(req.Option2)
	req.Option3 = strings.TrimSpace(req.Option3)
	req.Option4 = strings.TrimSpace(req.Option4)
	if req.Option4 == "" || strings.EqualFold(req.Option4, "none") {
		req.Option4 = model.Option4Placeholder
	}
}

func (s *QuestionService) Create(quizID uint, req QuestionRequest) (*model.Question, error) {
	if _, err := s.QuizRepo.FindByID(quizID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	s.normalize(&req)

	question := &model.Question{
		QuizID:            quizID,
		QuestionStatement: req.QuestionStatement,
		Option1:           req.Option1,
		Option2:           req.Option2,
		Option3:           req.Option3,
		Option4:           req.Option4,
		CorrectOption:     req.CorrectOption,
	}
	if err := s.Repo.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) ListByQuiz(quizID uint) ([]model.Question, error) {
	if _, err := s.QuizRepo.FindByID(quizID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return s.Repo.ListByQuiz(quizID)
}

func (s *QuestionService) Get(id uint) (*model.Question, error) {
	q, err := s.Repo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrQuestionNotFound
	}
	return q, err
}

func (s *QuestionService) Update(id uint, req QuestionRequest) (*model.Question, error) {
	question, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	s.normalize(&req)

	question.QuestionStatement = req.QuestionStatement
	question.Option1 = req.Option1
	question.Option2 = req.Option2
	question.Option3 = req.Option3
	question.Option4 = req.Option4
	question.CorrectOption = req.CorrectOption
	if err := s.Repo.Update(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}

// AttachImage stores an uploaded image for the question and records its
// URL. The stored name is randomized to avoid collisions between quizzes.
func (s *QuestionService) AttachImage(ctx context.Context, id uint, originalName string, reader io.Reader, size int64, contentType string) (*model.Question, error) {
	question, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	ext := filepath.Ext(originalName)
	filename := fmt.Sprintf("questions/quiz_%d/%s%s", question.QuizID, uuid.New().String(), ext)

	url, err := s.Storage.Upload(ctx, filename, reader, size, contentType)
	if err != nil {
		return nil, err
	}

	question.QuestionImage = url
	if err := s.Repo.Update(question); err != nil {
		return nil, err
	}
	return question, nil
}
