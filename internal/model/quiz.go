package model

import "time"

// swagger:model Quiz
type Quiz struct {
	BaseModel
	ChapterID    uint      `gorm:"index;not null" json:"chapterId"`
	DateOfQuiz   time.Time `json:"dateOfQuiz"`
	TimeDuration int       `gorm:"not null" json:"timeDuration"` // minutes
	Remarks      string    `gorm:"type:text" json:"remarks"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// Option4Placeholder is stored in place of a blank or "none" fourth option.
const Option4Placeholder = "Not applicable"

// swagger:model Question
type Question struct {
	BaseModel
	QuizID            uint   `gorm:"index;not null" json:"quizId"`
	QuestionStatement string `gorm:"type:text;not null" json:"questionStatement"`
	QuestionImage     string `gorm:"size:255" json:"questionImage,omitempty"`
	Option1           string `gorm:"size:255;not null" json:"option1"`
	Option2           string `gorm:"size:255;not null" json:"option2"`
	Option3           string `gorm:"size:255;not null" json:"option3"`
	Option4           string `gorm:"size:255;not null" json:"option4"`
	CorrectOption     int    `gorm:"not null" json:"correctOption"` // 1..4
}

func (Question) TableName() string {
	return "questions"
}

// Option returns the text of option n (1..4), or "" for anything else.
func (q *Question) Option(n int) string {
	switch n {
	case 1:
		return q.Option1
	case 2:
		return q.Option2
	case 3:
		return q.Option3
	case 4:
		return q.Option4
	}
	return ""
}
