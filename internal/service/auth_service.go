package service

import (
	"quizmaster_backend/internal/config"
	"quizmaster_backend/internal/model"
	"quizmaster_backend/internal/repository"
	"quizmaster_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

func (s *AuthService) Register(user *model.User) error {
	_, err := s.UserRepo.FindByEmail(user.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	user.Role = model.Learner
	return s.UserRepo.Create(user)
}

// Login authenticates any principal and issues a token carrying its role.
func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// AdminLogin is Login restricted to administrator accounts. A learner's
// valid credentials still read as invalid here, so the endpoint leaks
// nothing about which accounts exist.
func (s *AuthService) AdminLogin(email, password string) (string, *model.User, error) {
	token, user, err := s.Login(email, password)
	if err != nil {
		return "", nil, err
	}
	if user.Role != model.Admin {
		return "", nil, util.ErrInvalidCredentials
	}
	return token, user, nil
}
