package controller

import (
	"errors"

	"quizmaster_backend/internal/service"
	"quizmaster_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Service *service.QuizService
}

func NewQuizController(svc *service.QuizService) *QuizController {
	return &QuizController{Service: svc}
}

// @Summary Create a quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuizRequest true "quiz"
// @Success 201 {object} util.Response
// @Router /admin/quizzes [post]
func (c *QuizController) Create(ctx *gin.Context) {
	var req service.QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.Service.Create(req)
	if err != nil {
		if errors.Is(err, util.ErrChapterNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, quiz)
}

// @Summary List quizzes
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /admin/quizzes [get]
func (c *QuizController) List(ctx *gin.Context) {
	quizzes, err := c.Service.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, quizzes)
}

// @Summary Update a quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "quiz ID"
// @Param body body service.QuizRequest true "quiz"
// @Success 200 {object} util.Response
// @Router /admin/quizzes/{id} [put]
func (c *QuizController) Update(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req service.QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.Service.Update(id, req)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, quiz)
}

// @Summary Delete a quiz with its questions and attempts
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "quiz ID"
// @Success 200 {object} util.Response
// @Router /admin/quizzes/{id} [delete]
func (c *QuizController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	if err := c.Service.Delete(id); err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": id})
}

// @Summary Fetch a quiz for taking, answers withheld
// @Tags attempts
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "quiz ID"
// @Success 200 {object} util.Response
// @Router /quizzes/{id} [get]
func (c *QuizController) GetForAttempt(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	quiz, err := c.Service.GetForAttempt(id)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, quiz)
}
