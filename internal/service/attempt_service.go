package service

import (
	"math"

	"quizmaster_backend/internal/model"
	"quizmaster_backend/internal/repository"
	"quizmaster_backend/internal/util"
	"quizmaster_backend/pkg/logger"
	"quizmaster_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const trendLimit = 10

const trendDateFormat = "02/01/2006"

// AttemptService records quiz submissions and reconstructs attempt reviews.
type AttemptService struct {
	QuizRepo     *repository.QuizRepository
	QuestionRepo *repository.QuestionRepository
	ScoreRepo    *repository.ScoreRepository
	Snapshots    *repository.AnswerSnapshotRepository
}

func NewAttemptService(
	quizRepo *repository.QuizRepository,
	questionRepo *repository.QuestionRepository,
	scoreRepo *repository.ScoreRepository,
	snapshots *repository.AnswerSnapshotRepository,
) *AttemptService {
	return &AttemptService{
		QuizRepo:     quizRepo,
		QuestionRepo: questionRepo,
		ScoreRepo:    scoreRepo,
		Snapshots:    snapshots,
	}
}

type SubmissionRequest struct {
	// Answers maps question ID to the selected option (1..4). Entries are
	// optional per question; anything unanswered counts as not attempted.
	Answers map[uint]int `json:"answers" binding:"required"`
}

// AttemptStats is the derived breakdown of one attempt. TotalScored is a
// percentage over every question in the quiz; Accuracy is a percentage
// over answered questions only. The two denominators are intentionally
// different and must not be unified.
type AttemptStats struct {
	TotalQuestions int `json:"totalQuestions"`
	Correct        int `json:"correct"`
	Wrong          int `json:"wrong"`
	NotAttempted   int `json:"notAttempted"`
	TotalScored    int `json:"totalScored"`
	Accuracy       int `json:"accuracy"`
}

// TrendSeries is a chronological progression of attempt scores, as parallel
// arrays ready for charting.
type TrendSeries struct {
	Labels []string `json:"labels"` // dd/mm/yyyy
	Data   []int    `json:"data"`   // total_scored per attempt
}

type AttemptResult struct {
	Score *model.Score `json:"score"`
	Stats AttemptStats `json:"stats"`
	Trend TrendSeries  `json:"trend"`
}

// QuestionReviewStatus classifies one question within a reviewed attempt.
type QuestionReviewStatus string

const (
	ReviewCorrect      QuestionReviewStatus = "correct"
	ReviewWrong        QuestionReviewStatus = "wrong"
	ReviewNotAttempted QuestionReviewStatus = "not_attempted"
)

type QuestionReview struct {
	Question       model.Question       `json:"question"`
	SelectedOption int                  `json:"selectedOption,omitempty"` // 0 when not attempted
	SelectedAnswer string               `json:"selectedAnswer,omitempty"` // text of the chosen option
	Status         QuestionReviewStatus `json:"status"`
}

type AttemptReview struct {
	Score           *model.Score     `json:"score"`
	Quiz            *model.Quiz      `json:"quiz"`
	Questions       []QuestionReview `json:"questions"`
	Stats           AttemptStats     `json:"stats"`
	SnapshotPresent bool             `json:"snapshotPresent"`
}

// SubmitQuiz scores a submission, persists the attempt, and snapshots the
// raw answers for later review.
func (s *AttemptService) SubmitQuiz(userID, quizID uint, req SubmissionRequest) (*AttemptResult, error) {
	if _, err := s.QuizRepo.FindByID(quizID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	questions, err := s.QuestionRepo.ListByQuiz(quizID)
	if err != nil {
		return nil, err
	}

	// Walk the quiz's questions, not the submission: answers for unknown
	// questions or out-of-range options are dropped silently.
	answers := make(map[uint]int, len(req.Answers))
	correct := 0
	for _, q := range questions {
		selected, ok := req.Answers[q.ID]
		if !ok || selected < 1 || selected > 4 {
			continue
		}
		answers[q.ID] = selected
		if selected == q.CorrectOption {
			correct++
		}
	}

	stats := computeStats(len(questions), len(answers), correct)

	score := &model.Score{
		QuizID:      quizID,
		UserID:      userID,
		TotalScored: stats.TotalScored,
	}
	if err := s.ScoreRepo.Create(score); err != nil {
		return nil, err
	}
	monitoring.QuizSubmissions.Inc()

	// The snapshot write sits outside the attempt's transaction. If it
	// fails the attempt still stands and review degrades to "not
	// attempted" across the board, so log and move on.
	if err := s.Snapshots.Save(score.ID, answers); err != nil {
		logger.Log.Warn("answer snapshot write failed",
			zap.Uint("scoreId", score.ID), zap.Error(err))
	}

	trend, err := s.learnerTrend(userID)
	if err != nil {
		return nil, err
	}

	return &AttemptResult{Score: score, Stats: stats, Trend: trend}, nil
}

// GetScoreDetail rebuilds the results view for one attempt: breakdown
// recomputed from the snapshot plus the learner's progression series.
// Only the attempt's owner may see it.
func (s *AttemptService) GetScoreDetail(userID, scoreID uint) (*AttemptResult, error) {
	score, err := s.authorizeScore(userID, scoreID)
	if err != nil {
		return nil, err
	}

	questions, err := s.QuestionRepo.ListByQuiz(score.QuizID)
	if err != nil {
		return nil, err
	}

	answers, _, err := s.Snapshots.Get(scoreID)
	if err != nil {
		return nil, err
	}

	// Counts come from the snapshot; the stored percentage stands on its
	// own and is never re-derived from it.
	stats := statsFromSnapshot(questions, answers)
	stats.TotalScored = score.TotalScored

	trend, err := s.learnerTrend(userID)
	if err != nil {
		return nil, err
	}

	return &AttemptResult{Score: score, Stats: stats, Trend: trend}, nil
}

// ReviewAttempt reconstructs the per-question breakdown of an attempt from
// its snapshot. A missing or expired snapshot is a degraded-but-valid
// state: every question reads as not attempted.
func (s *AttemptService) ReviewAttempt(userID, scoreID uint) (*AttemptReview, error) {
	score, err := s.authorizeScore(userID, scoreID)
	if err != nil {
		return nil, err
	}

	quiz, err := s.QuizRepo.FindByID(score.QuizID)
	if err != nil {
		return nil, err
	}

	questions, err := s.QuestionRepo.ListByQuiz(score.QuizID)
	if err != nil {
		return nil, err
	}

	answers, present, err := s.Snapshots.Get(scoreID)
	if err != nil {
		return nil, err
	}

	reviews := make([]QuestionReview, 0, len(questions))
	for _, q := range questions {
		review := QuestionReview{Question: q, Status: ReviewNotAttempted}
		if selected, ok := answers[q.ID]; ok {
			review.SelectedOption = selected
			review.SelectedAnswer = q.Option(selected)
			if selected == q.CorrectOption {
				review.Status = ReviewCorrect
			} else {
				review.Status = ReviewWrong
			}
		}
		reviews = append(reviews, review)
	}

	stats := statsFromSnapshot(questions, answers)
	stats.TotalScored = score.TotalScored

	return &AttemptReview{
		Score:           score,
		Quiz:            quiz,
		Questions:       reviews,
		Stats:           stats,
		SnapshotPresent: present,
	}, nil
}

// authorizeScore loads the attempt and rejects non-owners before anything
// else is fetched or computed.
func (s *AttemptService) authorizeScore(userID, scoreID uint) (*model.Score, error) {
	score, err := s.ScoreRepo.FindByID(scoreID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	if score.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return score, nil
}

// learnerTrend is the learner-facing progression: oldest first, capped at
// ten from the oldest end.
func (s *AttemptService) learnerTrend(userID uint) (TrendSeries, error) {
	scores, err := s.ScoreRepo.ListByUserAsc(userID, trendLimit)
	if err != nil {
		return TrendSeries{}, err
	}
	return trendFromScores(scores), nil
}

// AdminUserTrend is the admin-facing progression for one user: the ten most
// recent attempts, reversed into chronological order.
func (s *AttemptService) AdminUserTrend(userID uint) (TrendSeries, error) {
	scores, err := s.ScoreRepo.ListByUserDesc(userID, trendLimit)
	if err != nil {
		return TrendSeries{}, err
	}
	for i, j := 0, len(scores)-1; i < j; i, j = i+1, j-1 {
		scores[i], scores[j] = scores[j], scores[i]
	}
	return trendFromScores(scores), nil
}

func trendFromScores(scores []model.Score) TrendSeries {
	trend := TrendSeries{
		Labels: make([]string, 0, len(scores)),
		Data:   make([]int, 0, len(scores)),
	}
	for _, sc := range scores {
		trend.Labels = append(trend.Labels, sc.CreatedAt.Format(trendDateFormat))
		trend.Data = append(trend.Data, sc.TotalScored)
	}
	return trend
}

func statsFromSnapshot(questions []model.Question, answers map[uint]int) AttemptStats {
	correct := 0
	answered := 0
	for _, q := range questions {
		selected, ok := answers[q.ID]
		if !ok {
			continue
		}
		answered++
		if selected == q.CorrectOption {
			correct++
		}
	}
	return computeStats(len(questions), answered, correct)
}

func computeStats(total, answered, correct int) AttemptStats {
	stats := AttemptStats{
		TotalQuestions: total,
		Correct:        correct,
		Wrong:          answered - correct,
		NotAttempted:   total - answered,
	}
	if total > 0 {
		stats.TotalScored = roundPercent(correct, total)
	}
	if answered > 0 {
		stats.Accuracy = roundPercent(correct, answered)
	}
	return stats
}

func roundPercent(part, whole int) int {
	return int(math.Round(float64(part) / float64(whole) * 100))
}
