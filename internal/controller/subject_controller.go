package controller

import (
	"errors"

	"quizmaster_backend/internal/service"
	"quizmaster_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubjectController struct {
	Service *service.SubjectService
}

func NewSubjectController(svc *service.SubjectService) *SubjectController {
	return &SubjectController{Service: svc}
}

// @Summary Create a subject
// @Tags subjects
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SubjectRequest true "subject"
// @Success 201 {object} util.Response
// @Router /admin/subjects [post]
func (c *SubjectController) Create(ctx *gin.Context) {
	var req service.SubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	subject, err := c.Service.Create(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, subject)
}

// @Summary List subjects
// @Tags subjects
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /admin/subjects [get]
func (c *SubjectController) List(ctx *gin.Context) {
	subjects, err := c.Service.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, subjects)
}

// @Summary Update a subject
// @Tags subjects
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "subject ID"
// @Param body body service.SubjectRequest true "subject"
// @Success 200 {object} util.Response
// @Router /admin/subjects/{id} [put]
func (c *SubjectController) Update(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req service.SubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	subject, err := c.Service.Update(id, req)
	if err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, subject)
}

// @Summary Delete a subject
// @Tags subjects
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "subject ID"
// @Success 200 {object} util.Response
// @Router /admin/subjects/{id} [delete]
func (c *SubjectController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	if err := c.Service.Delete(id); err != nil {
		switch {
		case errors.Is(err, util.ErrSubjectNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrSubjectHasChapters):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"deleted": id})
}
