package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imarb51/Vetro-Quiz/internal/controller"
	"github.com/imarb51/Vetro-Quiz/internal/dto"
	"github.com/imarb51/Vetro-Quiz/internal/middleware"
	"github.com/imarb51/Vetro-Quiz/internal/service"
	"github.com/rs/zerolog/log"
)

type QuizController struct {
	quizService    service.QuizService
	historyService service.HistoryService
}

func NewQuizController(quizService service.QuizService, historyService service.HistoryService) *QuizController {
	return &QuizController{quizService: quizService, historyService: historyService}
}

// GetQuestions godoc
// @Summary List quiz questions without correct answers
// @Tags Quiz
// @Produce json
// @Success 200 {array} dto.PublicQuestionDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /questions [get]
func (ctrl *QuizController) GetQuestions(c *gin.Context) {
	questions, err := ctrl.quizService.ListQuestions()
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// Submit godoc
// @Summary Score an anonymous quiz submission
// @Description Scores the submitted answer map against the current question bank. Nothing is persisted.
// @Tags Quiz
// @Accept json
// @Produce json
// @Param body body dto.SubmitRequest true "Answer map keyed by question id"
// @Success 200 {object} dto.QuizResultDTO
// @Failure 400 {object} dto.ErrorResponse "Malformed body"
// @Failure 409 {object} dto.ErrorResponse "Question bank is empty"
// @Router /submit [post]
func (ctrl *QuizController) Submit(c *gin.Context) {
	var req dto.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(c, err)
		return
	}

	result, err := ctrl.quizService.Submit(req.Answers)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SubmitAuthenticated godoc
// @Summary Score a submission and record it in the caller's history
// @Tags Quiz
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.SubmitRequest true "Answer map keyed by question id"
// @Success 200 {object} dto.TrackedQuizResultDTO
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Question bank is empty"
// @Router /submit-authenticated [post]
func (ctrl *QuizController) SubmitAuthenticated(c *gin.Context) {
	var req dto.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)
	result, err := ctrl.quizService.SubmitTracked(user.ID, req.Answers)
	if err != nil {
		controller.RespondError(c, err)
		return
	}

	log.Info().Str("user_id", user.ID).Int("score", result.Score).Msg("Authenticated submission scored")
	c.JSON(http.StatusOK, result)
}

// GetHistory godoc
// @Summary List the caller's recorded attempts, most recent first
// @Tags Quiz
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.AttemptSummaryDTO
// @Failure 401 {object} dto.ErrorResponse
// @Router /user/quiz-history [get]
func (ctrl *QuizController) GetHistory(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	attempts, err := ctrl.historyService.ListFor(user.ID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempts)
}

// GetHistorySummary godoc
// @Summary Aggregate the caller's attempt history
// @Tags Quiz
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.HistoryAggregateDTO
// @Failure 401 {object} dto.ErrorResponse
// @Router /user/quiz-history/summary [get]
func (ctrl *QuizController) GetHistorySummary(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	summary, err := ctrl.historyService.Aggregate(user.ID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
