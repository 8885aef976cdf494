package controller

import (
	"errors"

	"quizmaster_backend/internal/service"
	"quizmaster_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Service *service.UserService
}

func NewUserController(svc *service.UserService) *UserController {
	return &UserController{Service: svc}
}

// @Summary Learner dashboard
// @Description Curriculum tree, five most recent attempts and the score trend.
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /dashboard [get]
func (c *UserController) LearnerDashboard(ctx *gin.Context) {
	claims, ok := util.GetUserFromContext(ctx)
	if !ok {
		util.Unauthorized(ctx)
		return
	}

	dashboard, err := c.Service.GetLearnerDashboard(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, dashboard)
}

// @Summary Admin dashboard
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /admin/dashboard [get]
func (c *UserController) AdminDashboard(ctx *gin.Context) {
	dashboard, err := c.Service.GetAdminDashboard()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, dashboard)
}

// @Summary List learner accounts
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page number, 1-based"
// @Param limit query int false "page size, default 20"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /admin/users [get]
func (c *UserController) List(ctx *gin.Context) {
	page := int(util.MustParseUint(ctx.DefaultQuery("page", "1")))
	limit := int(util.MustParseUint(ctx.DefaultQuery("limit", "20")))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := c.Service.ListLearners(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: users, Total: total, Page: page, Limit: limit})
}

// @Summary Learner detail with attempt history
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "user ID"
// @Success 200 {object} util.Response
// @Router /admin/users/{id} [get]
func (c *UserController) Detail(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	detail, err := c.Service.GetUserDetail(id)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, detail)
}

// @Summary Delete a learner account and its attempts
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "user ID"
// @Success 200 {object} util.Response
// @Router /admin/users/{id} [delete]
func (c *UserController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	if err := c.Service.DeleteUser(id); err != nil {
		switch {
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"deleted": id})
}
