package controller

import (
	"errors"

	"quizmaster_backend/internal/service"
	"quizmaster_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChapterController struct {
	Service *service.ChapterService
}

func NewChapterController(svc *service.ChapterService) *ChapterController {
	return &ChapterController{Service: svc}
}

// @Summary Create a chapter
// @Tags chapters
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ChapterRequest true "chapter"
// @Success 201 {object} util.Response
// @Router /admin/chapters [post]
func (c *ChapterController) Create(ctx *gin.Context) {
	var req service.ChapterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	chapter, err := c.Service.Create(req)
	if err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, chapter)
}

// @Summary List chapters
// @Tags chapters
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /admin/chapters [get]
func (c *ChapterController) List(ctx *gin.Context) {
	chapters, err := c.Service.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, chapters)
}

// @Summary Update a chapter
// @Tags chapters
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "chapter ID"
// @Param body body service.ChapterRequest true "chapter"
// @Success 200 {object} util.Response
// @Router /admin/chapters/{id} [put]
func (c *ChapterController) Update(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req service.ChapterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	chapter, err := c.Service.Update(id, req)
	if err != nil {
		if errors.Is(err, util.ErrChapterNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, chapter)
}

// @Summary Delete a chapter
// @Tags chapters
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "chapter ID"
// @Success 200 {object} util.Response
// @Router /admin/chapters/{id} [delete]
func (c *ChapterController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	if err := c.Service.Delete(id); err != nil {
		switch {
		case errors.Is(err, util.ErrChapterNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrChapterHasQuizzes):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"deleted": id})
}
