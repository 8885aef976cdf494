package service

import (
	"time"

	"quizmaster_backend/internal/model"
	"quizmaster_backend/internal/repository"
	"quizmaster_backend/internal/util"

	"gorm.io/gorm"
)

type QuizService struct {
	Repo         *repository.QuizRepository
	ChapterRepo  *repository.ChapterRepository
	QuestionRepo *repository.QuestionRepository
}

func NewQuizService(repo *repository.QuizRepository, chapterRepo *repository.ChapterRepository, questionRepo *repository.QuestionRepository) *QuizService {
	return &QuizService{Repo: repo, ChapterRepo: chapterRepo, QuestionRepo: questionRepo}
}

type QuizRequest struct {
	ChapterID    uint      `json:"chapterId" binding:"required"`
	DateOfQuiz   time.Time `json:"dateOfQuiz" binding:"required"`
	TimeDuration int       `json:"timeDuration" binding:"required,min=1"`
	Remarks      string    `json:"remarks"`
}

func (s *QuizService) Create(req QuizRequest) (*model.Quiz, error) {
	if _, err := s.ChapterRepo.FindByID(req.ChapterID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrChapterNotFound
		}
		return nil, err
	}

	quiz := &model.Quiz{
		ChapterID:    req.ChapterID,
		DateOfQuiz:   req.DateOfQuiz,
		TimeDuration: req.TimeDuration,
		Remarks:      req.Remarks,
	}
	if err := s.Repo.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) List() ([]model.Quiz, error) {
	return s.Repo.FindAll()
}

func (s *QuizService) Get(id uint) (*model.Quiz, error) {
	quiz, err := s.Repo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrQuizNotFound
	}
	return quiz, err
}

func (s *QuizService) Update(id uint, req QuizRequest) (*model.Quiz, error) {
	quiz, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	quiz.ChapterID = req.ChapterID
	quiz.DateOfQuiz = req.DateOfQuiz
	quiz.TimeDuration = req.TimeDuration
	quiz.Remarks = req.Remarks
	if err := s.Repo.Update(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// Delete removes questions, then attempts, then the quiz, in one
// transaction.
func (s *QuizService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Repo.DeleteWithDependents(id)
}

// LearnerQuestion is a question as shown while taking a quiz: the correct
// option never leaves the server.
type LearnerQuestion struct {
	ID                uint   `json:"id"`
	QuestionStatement string `json:"questionStatement"`
	QuestionImage     string `json:"questionImage,omitempty"`
	Option1           string `json:"option1"`
	Option2           string `json:"option2"`
	Option3           string `json:"option3"`
	Option4           string `json:"option4"`
}

type QuizForAttempt struct {
	Quiz      *model.Quiz       `json:"quiz"`
	Questions []LearnerQuestion `json:"questions"`
}

func (s *QuizService) GetForAttempt(id uint) (*QuizForAttempt, error) {
	quiz, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	questions, err := s.QuestionRepo.ListByQuiz(id)
	if err != nil {
		return nil, err
	}

	res := make([]LearnerQuestion, len(questions))
	for i, q := range questions {
		res[i] = LearnerQuestion{
			ID:                q.ID,
			QuestionStatement: q.QuestionStatement,
			QuestionImage:     q.QuestionImage,
			Option1:           q.Option1,
			Option2:           q.Option2,
			Option3:           q.Option3,
			Option4:           q.Option4,
		}
	}

	return &QuizForAttempt{Quiz: quiz, Questions: res}, nil
}
