package teacher

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BlueAI-edu/blueai-backend/internal/controller"
	"github.com/BlueAI-edu/blueai-backend/internal/dto"
	"github.com/BlueAI-edu/blueai-backend/internal/middleware"
	"github.com/BlueAI-edu/blueai-backend/internal/service"
)

type AssessmentController struct {
	assessmentSvc service.AssessmentService
	questionSvc   service.QuestionService
}

func NewAssessmentController(aSvc service.AssessmentService, qSvc service.QuestionService) *AssessmentController {
	return &AssessmentController{assessmentSvc: aSvc, questionSvc: qSvc}
}

// CreateAssessment godoc
// @Summary (Teacher) Create an assessment in draft
// @Tags Teacher - Assessments
// @Accept json
// @Produce json
// @Param assessment body dto.CreateAssessmentRequest true "Assessment settings"
// @Success 201 {object} dto.AssessmentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Security ApiKeyAuth
// @Router /teacher/assessments [post]
func (ctrl *AssessmentController) CreateAssessment(c *gin.Context) {
	var req dto.CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind CreateAssessmentRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.assessmentSvc.Create(middleware.TeacherID(c), req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// StartAssessment godoc
// @Summary (Teacher) Start a draft assessment and issue its join code
// @Tags Teacher - Assessments
// @Produce json
// @Param assessment_id path string true "Assessment ID"
// @Success 200 {object} dto.AssessmentResponse
// @Failure 409 {object} dto.ErrorResponse "Not in draft"
// @Security ApiKeyAuth
// @Router /teacher/assessments/{assessment_id}/start [post]
func (ctrl *AssessmentController) StartAssessment(c *gin.Context) {
	resp, err := ctrl.assessmentSvc.Start(c.Param("assessment_id"), middleware.TeacherID(c))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CloseAssessment godoc
// @Summary (Teacher) Close a started assessment
// @Description No new attempts are accepted after closing; in-progress attempts still finalize.
// @Tags Teacher - Assessments
// @Produce json
// @Param assessment_id path string true "Assessment ID"
// @Success 200 {object} dto.AssessmentResponse
// @Failure 409 {object} dto.ErrorResponse "Not started"
// @Security ApiKeyAuth
// @Router /teacher/assessments/{assessment_id}/close [post]
func (ctrl *AssessmentController) CloseAssessment(c *gin.Context) {
	resp, err := ctrl.assessmentSvc.Close(c.Param("assessment_id"), middleware.TeacherID(c))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListAssessments godoc
// @Summary (Teacher) List own assessments
// @Tags Teacher - Assessments
// @Produce json
// @Success 200 {array} dto.AssessmentResponse
// @Security ApiKeyAuth
// @Router /teacher/assessments [get]
func (ctrl *AssessmentController) ListAssessments(c *gin.Context) {
	resp, err := ctrl.assessmentSvc.ListByOwner(middleware.TeacherID(c))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetAssessment godoc
// @Summary (Teacher) Get one assessment
// @Tags Teacher - Assessments
// @Produce json
// @Param assessment_id path string true "Assessment ID"
// @Success 200 {object} dto.AssessmentResponse
// @Security ApiKeyAuth
// @Router /teacher/assessments/{assessment_id} [get]
func (ctrl *AssessmentController) GetAssessment(c *gin.Context) {
	resp, err := ctrl.assessmentSvc.Get(c.Param("assessment_id"), middleware.TeacherID(c))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListSubmissions godoc
// @Summary (Teacher) List all attempts under an assessment
// @Tags Teacher - Assessments
// @Produce json
// @Param assessment_id path string true "Assessment ID"
// @Success 200 {array} dto.AttemptResponse
// @Security ApiKeyAuth
// @Router /teacher/assessments/{assessment_id}/submissions [get]
func (ctrl *AssessmentController) ListSubmissions(c *gin.Context) {
	resp, err := ctrl.assessmentSvc.ListAttempts(c.Param("assessment_id"), middleware.TeacherID(c))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateQuestion godoc
// @Summary (Teacher) Create a question with its mark scheme
// @Tags Teacher - Questions
// @Accept json
// @Produce json
// @Param question body dto.CreateQuestionRequest true "Question data"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security ApiKeyAuth
// @Router /teacher/questions [post]
func (ctrl *AssessmentController) CreateQuestion(c *gin.Context) {
	var req dto.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind CreateQuestionRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.questionSvc.Create(middleware.TeacherID(c), req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListQuestions godoc
// @Summary (Teacher) List own questions
// @Tags Teacher - Questions
// @Produce json
// @Success 200 {array} dto.QuestionResponse
// @Security ApiKeyAuth
// @Router /teacher/questions [get]
func (ctrl *AssessmentController) ListQuestions(c *gin.Context) {
	resp, err := ctrl.questionSvc.ListByOwner(middleware.TeacherID(c))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetQuestion godoc
// @Summary (Teacher) Get one question
// @Tags Teacher - Questions
// @Produce json
// @Param question_id path string true "Question ID"
// @Success 200 {object} dto.QuestionResponse
// @Security ApiKeyAuth
// @Router /teacher/questions/{question_id} [get]
func (ctrl *AssessmentController) GetQuestion(c *gin.Context) {
	resp, err := ctrl.questionSvc.Get(c.Param("question_id"), middleware.TeacherID(c))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteQuestion godoc
// @Summary (Teacher) Delete a question
// @Tags Teacher - Questions
// @Produce json
// @Param question_id path string true "Question ID"
// @Success 204 {string} string ""
// @Security ApiKeyAuth
// @Router /teacher/questions/{question_id} [delete]
func (ctrl *AssessmentController) DeleteQuestion(c *gin.Context) {
	if err := ctrl.questionSvc.Delete(c.Param("question_id"), middleware.TeacherID(c)); err != nil {
		controller.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
