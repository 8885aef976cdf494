package service

import (
	"quizmaster_backend/internal/model"
	"quizmaster_backend/internal/repository"
	"quizmaster_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	Repo        *repository.UserRepository
	SubjectRepo *repository.SubjectRepository
	ScoreRepo   *repository.ScoreRepository
	QuizRepo    *repository.QuizRepository
	Attempts    *AttemptService
}

func NewUserService(
	repo *repository.UserRepository,
	subjectRepo *repository.SubjectRepository,
	scoreRepo *repository.ScoreRepository,
	quizRepo *repository.QuizRepository,
	attempts *AttemptService,
) *UserService {
	return &UserService{
		Repo:        repo,
		SubjectRepo: subjectRepo,
		ScoreRepo:   scoreRepo,
		QuizRepo:    quizRepo,
		Attempts:    attempts,
	}
}

func (s *UserService) Get(id uint) (*model.User, error) {
	user, err := s.Repo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

type ProfileRequest struct {
	FullName      string `json:"fullName" binding:"required"`
	Qualification string `json:"qualification"`
}

func (s *UserService) UpdateProfile(id uint, req ProfileRequest) (*model.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	user.FullName = req.FullName
	user.Qualification = req.Qualification
	if err := s.Repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// LearnerDashboard is the learner landing view: the curriculum tree, the
// five most recent attempts and the progression series.
type LearnerDashboard struct {
	Subjects     []model.Subject `json:"subjects"`
	RecentScores []model.Score   `json:"recentScores"`
	Trend        TrendSeries     `json:"trend"`
}

func (s *UserService) GetLearnerDashboard(userID uint) (*LearnerDashboard, error) {
	subjects, err := s.SubjectRepo.FindAllWithChapters()
	if err != nil {
		return nil, err
	}

	recent, err := s.ScoreRepo.ListByUserDesc(userID, 5)
	if err != nil {
		return nil, err
	}

	// The progression chart wants oldest-to-newest of the same attempts.
	chart := make([]model.Score, len(recent))
	copy(chart, recent)
	for i, j := 0, len(chart)-1; i < j; i, j = i+1, j-1 {
		chart[i], chart[j] = chart[j], chart[i]
	}

	return &LearnerDashboard{
		Subjects:     subjects,
		RecentScores: recent,
		Trend:        trendFromScores(chart),
	}, nil
}

// AdminDashboard summarizes the platform for the admin landing page.
type AdminDashboard struct {
	Subjects     []model.Subject `json:"subjects"`
	Users        []model.User    `json:"users"`
	TotalQuizzes int64           `json:"totalQuizzes"`
}

func (s *UserService) GetAdminDashboard() (*AdminDashboard, error) {
	subjects, err := s.SubjectRepo.FindAll()
	if err != nil {
		return nil, err
	}

	users, err := s.Repo.FindAllByRole(model.Learner)
	if err != nil {
		return nil, err
	}

	total, err := s.QuizRepo.Count()
	if err != nil {
		return nil, err
	}

	return &AdminDashboard{Subjects: subjects, Users: users, TotalQuizzes: total}, nil
}

func (s *UserService) ListLearners(page, limit int) ([]model.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.Repo.FindPageByRole(model.Learner, page, limit)
}

// UserDetail is the admin's per-learner drilldown: every attempt plus
// aggregate stats and the recent-attempts trend.
type UserDetail struct {
	User          *model.User   `json:"user"`
	Scores        []model.Score `json:"scores"`
	TotalAttempts int           `json:"totalAttempts"`
	AverageScore  float64       `json:"averageScore"`
	HighestScore  int           `json:"highestScore"`
	LowestScore   int           `json:"lowestScore"`
	Trend         TrendSeries   `json:"trend"`
}

func (s *UserService) GetUserDetail(userID uint) (*UserDetail, error) {
	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	scores, err := s.ScoreRepo.ListByUserDesc(userID, 0)
	if err != nil {
		return nil, err
	}

	detail := &UserDetail{
		User:          user,
		Scores:        scores,
		TotalAttempts: len(scores),
	}

	if len(scores) > 0 {
		sum := 0
		highest := scores[0].TotalScored
		lowest := scores[0].TotalScored
		for _, sc := range scores {
			sum += sc.TotalScored
			if sc.TotalScored > highest {
				highest = sc.TotalScored
			}
			if sc.TotalScored < lowest {
				lowest = sc.TotalScored
			}
		}
		detail.AverageScore = float64(sum) / float64(len(scores))
		detail.HighestScore = highest
		detail.LowestScore = lowest
	}

	trend, err := s.Attempts.AdminUserTrend(userID)
	if err != nil {
		return nil, err
	}
	detail.Trend = trend

	return detail, nil
}

// DeleteUser removes a learner and their attempts, scores first.
func (s *UserService) DeleteUser(userID uint) error {
	user, err := s.Get(userID)
	if err != nil {
		return err
	}
	if user.Role == model.Admin {
		return util.ErrPermissionDenied
	}
	return s.Repo.DeleteWithScores(userID)
}
