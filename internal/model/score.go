package model

// Score is one completed attempt of a quiz by a user. It stores only the
// summary percentage; which option was picked per question lives in the
// ephemeral answer snapshot keyed by this record's ID.
//
// swagger:model Score
type Score struct {
	BaseModel
	QuizID      uint `gorm:"index;not null" json:"quizId"`
	UserID      uint `gorm:"index;not null" json:"userId"`
	TotalScored int  `gorm:"not null" json:"totalScored"` // 0..100
}

func (Score) TableName() string {
	return "scores"
}
