package repository

import (
	"quizmaster_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) FindAllByRole(role model.UserRole) ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("role = ?", role).Order("created_at desc").Find(&users).Error
	return users, err
}

// FindPageByRole returns one page of users with the role, newest first,
// along with the unpaged total.
func (r *UserRepository) FindPageByRole(role model.UserRole, page, limit int) ([]model.User, int64, error) {
	var total int64
	if err := r.DB.Model(&model.User{}).Where("role = ?", role).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := r.DB.Where("role = ?", role).
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	return users, total, err
}

// DeleteWithScores removes the user's attempts first, then the user,
// in one transaction.
func (r *UserRepository) DeleteWithScores(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.Score{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, id).Error
	})
}
