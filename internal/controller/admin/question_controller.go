package admin

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/imarb51/Vetro-Quiz/internal/controller"
	"github.com/imarb51/Vetro-Quiz/internal/dto"
	"github.com/imarb51/Vetro-Quiz/internal/service"
	"github.com/rs/zerolog/log"
)

type QuestionController struct {
	questionService service.QuestionService
}

func NewQuestionController(questionService service.QuestionService) *QuestionController {
	return &QuestionController{questionService: questionService}
}

// List godoc
// @Summary (Admin) List all questions including correct answers
// @Tags Admin - Questions
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.AdminQuestionDTO
// @Failure 403 {object} dto.ErrorResponse
// @Router /admin/questions [get]
func (ctrl *QuestionController) List(c *gin.Context) {
	questions, err := ctrl.questionService.ListWithAnswers()
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// Create godoc
// @Summary (Admin) Create a question
// @Tags Admin - Questions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.QuestionCreateRequest true "Question fields"
// @Success 201 {object} dto.AdminQuestionDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/questions [post]
func (ctrl *QuestionController) Create(c *gin.Context) {
	var req dto.QuestionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(c, err)
		return
	}

	question, err := ctrl.questionService.Create(req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

// Update godoc
// @Summary (Admin) Update a question
// @Tags Admin - Questions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Question ID"
// @Param body body dto.QuestionUpdateRequest true "Question fields"
// @Success 200 {object} dto.AdminQuestionDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/questions/{id} [put]
func (ctrl *QuestionController) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid question ID format"})
		return
	}

	var req dto.QuestionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(c, err)
		return
	}

	question, err := ctrl.questionService.Update(uint(id), req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// Delete godoc
// @Summary (Admin) Delete a question
// @Tags Admin - Questions
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/questions/{id} [delete]
func (ctrl *QuestionController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid question ID format"})
		return
	}

	if err := ctrl.questionService.Delete(uint(id)); err != nil {
		controller.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadPDF godoc
// @Summary (Admin) Bulk-import questions from a PDF file
// @Tags Admin - Questions
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF with Qn./A)-D)/Answer blocks"
// @Success 200 {object} dto.ImportResultDTO
// @Failure 400 {object} dto.ErrorResponse "Unreadable or empty PDF"
// @Router /admin/questions/upload-pdf [post]
func (ctrl *QuestionController) UploadPDF(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "A PDF file is required", Details: []string{err.Error()}})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		controller.RespondError(c, err)
		return
	}

	result, err := ctrl.questionService.ImportPDF(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		controller.RespondError(c, err)
		return
	}

	log.Info().Str("filename", fileHeader.Filename).Int("count", result.Count).Msg("PDF import completed")
	c.JSON(http.StatusOK, result)
}
