package controller

import (
	"errors"
	"time"

	"quizmaster_backend/internal/model"
	"quizmaster_backend/internal/service"
	"quizmaster_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth  *service.AuthService
	Users *service.UserService
}

func NewAuthController(auth *service.AuthService, users *service.UserService) *AuthController {
	return &AuthController{Auth: auth, Users: users}
}

type RegisterRequest struct {
	Email         string    `json:"email" binding:"required,email"`
	Password      string    `json:"password" binding:"required,min=6"`
	FullName      string    `json:"fullName" binding:"required"`
	Qualification string    `json:"qualification"`
	DOB           time.Time `json:"dob"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// @Summary Register a learner account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "registration"
// @Success 201 {object} util.Response
// @Router /register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := &model.User{
		Email:         req.Email,
		Password:      req.Password,
		FullName:      req.FullName,
		Qualification: req.Qualification,
		DOB:           req.DOB,
	}

	if err := c.Auth.Register(user); err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Conflict(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"id": user.ID, "email": user.Email})
}

// @Summary Learner login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "credentials"
// @Success 200 {object} util.Response
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.Auth.Login(req.Email, req.Password)
	if err != nil {
		util.Error(ctx, 401, "Invalid email or password")
		return
	}

	util.Success(ctx, gin.H{"token": token, "role": user.Role, "fullName": user.FullName})
}

// @Summary Administrator login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "credentials"
// @Success 200 {object} util.Response
// @Router /admin/login [post]
func (c *AuthController) AdminLogin(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.Auth.AdminLogin(req.Email, req.Password)
	if err != nil {
		util.Error(ctx, 401, "Invalid admin credentials")
		return
	}

	util.Success(ctx, gin.H{"token": token, "role": user.Role, "fullName": user.FullName})
}

// @Summary Current user's profile
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	claims, ok := util.GetUserFromContext(ctx)
	if !ok {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.Users.Get(claims.UserID)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, user)
}

// @Summary Update current user's profile
// @Tags auth
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ProfileRequest true "profile"
// @Success 200 {object} util.Response
// @Router /profile [put]
func (c *AuthController) UpdateProfile(ctx *gin.Context) {
	claims, ok := util.GetUserFromContext(ctx)
	if !ok {
		util.Unauthorized(ctx)
		return
	}

	var req service.ProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.Users.UpdateProfile(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, user)
}
