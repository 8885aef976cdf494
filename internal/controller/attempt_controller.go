package controller

import (
	"errors"

	"quizmaster_backend/internal/service"
	"quizmaster_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	Service *service.AttemptService
}

func NewAttemptController(svc *service.AttemptService) *AttemptController {
	return &AttemptController{Service: svc}
}

// @Summary Submit answers for a quiz
// @Description Scores the submission, records the attempt, and returns the
// @Description breakdown together with the learner's score trend.
// @Tags attempts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "quiz ID"
// @Param body body service.SubmissionRequest true "answers keyed by question ID"
// @Success 201 {object} util.Response
// @Router /quizzes/{id}/submit [post]
func (c *AttemptController) Submit(ctx *gin.Context) {
	claims, ok := util.GetUserFromContext(ctx)
	if !ok {
		util.Unauthorized(ctx)
		return
	}
	quizID := util.MustParseUint(ctx.Param("id"))

	var req service.SubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.SubmitQuiz(claims.UserID, quizID, req)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, result)
}

// @Summary Get an attempt's score breakdown
// @Tags attempts
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "score ID"
// @Success 200 {object} util.Response
// @Router /scores/{id} [get]
func (c *AttemptController) GetScoreDetail(ctx *gin.Context) {
	claims, ok := util.GetUserFromContext(ctx)
	if !ok {
		util.Unauthorized(ctx)
		return
	}
	scoreID := util.MustParseUint(ctx.Param("id"))

	result, err := c.Service.GetScoreDetail(claims.UserID, scoreID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAttemptNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// @Summary Review a past attempt question by question
// @Description Per-question selections come from the answer snapshot; if the
// @Description snapshot has expired every question reads as not attempted while
// @Description the stored score is still reported.
// @Tags attempts
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "score ID"
// @Success 200 {object} util.Response
// @Router /scores/{id}/review [get]
func (c *AttemptController) Review(ctx *gin.Context) {
	claims, ok := util.GetUserFromContext(ctx)
	if !ok {
		util.Unauthorized(ctx)
		return
	}
	scoreID := util.MustParseUint(ctx.Param("id"))

	review, err := c.Service.ReviewAttempt(claims.UserID, scoreID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAttemptNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, review)
}
