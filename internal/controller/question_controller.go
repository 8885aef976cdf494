package controller

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"quizmaster_backend/internal/service"
	"quizmaster_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type QuestionController struct {
	Service  *service.QuestionService
	Importer *service.QuestionImportService
}

func NewQuestionController(svc *service.QuestionService, importer *service.QuestionImportService) *QuestionController {
	return &QuestionController{Service: svc, Importer: importer}
}

// @Summary List a quiz's questions
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param quizId path int true "quiz ID"
// @Success 200 {object} util.Response
// @Router /admin/quizzes/{quizId}/questions [get]
func (c *QuestionController) List(ctx *gin.Context) {
	quizID := util.MustParseUint(ctx.Param("quizId"))

	questions, err := c.Service.ListByQuiz(quizID)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, questions)
}

// @Summary Add a question to a quiz
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param quizId path int true "quiz ID"
// @Param body body service.QuestionRequest true "question"
// @Success 201 {object} util.Response
// @Router /admin/quizzes/{quizId}/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	quizID := util.MustParseUint(ctx.Param("quizId"))

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Service.Create(quizID, req)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, question)
}

// @Summary Update a question
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question ID"
// @Param body body service.QuestionRequest true "question"
// @Success 200 {object} util.Response
// @Router /admin/questions/{id} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Service.Update(id, req)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, question)
}

// @Summary Delete a question
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question ID"
// @Success 200 {object} util.Response
// @Router /admin/questions/{id} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	if err := c.Service.Delete(id); err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": id})
}

// @Summary Attach an image to a question
// @Tags questions
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question ID"
// @Param file formData file true "image file"
// @Success 200 {object} util.Response
// @Router /admin/questions/{id}/image [post]
func (c *QuestionController) UploadImage(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "image file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	mimeType, err := util.ValidateMimeType(file, []string{"image/"})
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if _, err := file.Seek(0, 0); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	question, err := c.Service.AttachImage(ctx.Request.Context(), id, fileHeader.Filename, file, fileHeader.Size, mimeType)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, question)
}

// @Summary Bulk import questions from a CSV or XLSX file
// @Description All rows commit or none do; the first invalid row aborts
// @Description the import and is identified in the error message.
// @Tags questions
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param quizId path int true "quiz ID"
// @Param file formData file true "tabular file"
// @Success 200 {object} util.Response
// @Router /admin/quizzes/{quizId}/questions/import [post]
func (c *QuestionController) Import(ctx *gin.Context) {
	quizID := util.MustParseUint(ctx.Param("quizId"))

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "import file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".csv" && ext != ".xlsx" {
		util.BadRequest(ctx, "only .csv and .xlsx files are supported")
		return
	}

	// Spool the upload to a temp file; the importer removes it when done.
	tmpPath := filepath.Join(os.TempDir(), uuid.New().String()+ext)
	if err := ctx.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	result, err := c.Importer.ImportFile(quizID, tmpPath)
	if err != nil {
		var missing *service.MissingColumnsError
		var rowErr *service.RowError
		switch {
		case errors.As(err, &missing), errors.As(err, &rowErr):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}
