package model

import "time"

type UserRole string

const (
	Learner UserRole = "learner"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Email         string    `gorm:"size:100;unique;not null" json:"email"`
	Password      string    `gorm:"size:100;not null" json:"-"`
	FullName      string    `gorm:"size:100;not null" json:"fullName"`
	Qualification string    `gorm:"size:100" json:"qualification"`
	DOB           time.Time `json:"dob"`
	Role          UserRole  `gorm:"size:20;default:'learner'" json:"role"`
}

func (User) TableName() string {
	return "users"
}
