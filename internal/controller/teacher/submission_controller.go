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

type SubmissionController struct {
	feedbackSvc service.FeedbackService
	securitySvc service.SecurityEventService
	pipeline    *service.MarkingPipeline
}

func NewSubmissionController(
	feedbackSvc service.FeedbackService,
	securitySvc service.SecurityEventService,
	pipeline *service.MarkingPipeline,
) *SubmissionController {
	return &SubmissionController{
		feedbackSvc: feedbackSvc,
		securitySvc: securitySvc,
		pipeline:    pipeline,
	}
}

// GetSubmission godoc
// @Summary (Teacher) Inspect one attempt including unreleased feedback
// @Tags Teacher - Submissions
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security ApiKeyAuth
// @Router /teacher/submissions/{attempt_id} [get]
func (ctrl *SubmissionController) GetSubmission(c *gin.Context) {
	resp, err := ctrl.feedbackSvc.TeacherView(c.Param("attempt_id"), middleware.TeacherID(c))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReleaseFeedback godoc
// @Summary (Teacher) Release one marked attempt's feedback to the student
// @Tags Teacher - Submissions
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptResponse
// @Failure 409 {object} dto.ErrorResponse "Attempt not marked yet"
// @Security ApiKeyAuth
// @Router /teacher/submissions/{attempt_id}/release [post]
func (ctrl *SubmissionController) ReleaseFeedback(c *gin.Context) {
	attemptID := c.Param("attempt_id")
	teacherID := middleware.TeacherID(c)
	if err := ctrl.feedbackSvc.Release(attemptID, teacherID); err != nil {
		controller.WriteError(c, err)
		return
	}
	resp, err := ctrl.feedbackSvc.TeacherView(attemptID, teacherID)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReleaseAllFeedback godoc
// @Summary (Teacher) Release feedback for every marked attempt of an assessment
// @Tags Teacher - Submissions
// @Produce json
// @Param assessment_id path string true "Assessment ID"
// @Success 200 {object} dto.ReleaseAllResponse
// @Security ApiKeyAuth
// @Router /teacher/assessments/{assessment_id}/release-all [post]
func (ctrl *SubmissionController) ReleaseAllFeedback(c *gin.Context) {
	resp, err := ctrl.feedbackSvc.ReleaseAll(c.Param("assessment_id"), middleware.TeacherID(c))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ModerateFeedback godoc
// @Summary (Teacher) Edit AI feedback on a marked attempt before release
// @Tags Teacher - Submissions
// @Accept json
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Param feedback body dto.ModerateFeedbackRequest true "Fields to overwrite"
// @Success 200 {object} dto.AttemptResponse
// @Failure 409 {object} dto.ErrorResponse "Attempt not marked"
// @Security ApiKeyAuth
// @Router /teacher/submissions/{attempt_id}/moderate [put]
func (ctrl *SubmissionController) ModerateFeedback(c *gin.Context) {
	var req dto.ModerateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind ModerateFeedbackRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.feedbackSvc.Moderate(c.Param("attempt_id"), middleware.TeacherID(c), req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RetryMarking godoc
// @Summary (Teacher) Requeue marking for a failed attempt
// @Tags Teacher - Submissions
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Success 202 {object} map[string]string
// @Failure 409 {object} dto.ErrorResponse "Attempt not in error state"
// @Security ApiKeyAuth
// @Router /teacher/submissions/{attempt_id}/retry-marking [post]
func (ctrl *SubmissionController) RetryMarking(c *gin.Context) {
	if err := ctrl.pipeline.RetryMarking(c.Param("attempt_id"), middleware.TeacherID(c)); err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "requeued"})
}

// SecurityReport godoc
// @Summary (Teacher) Get the proctoring event log of an attempt
// @Tags Teacher - Submissions
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} dto.SecurityReportResponse
// @Security ApiKeyAuth
// @Router /teacher/submissions/{attempt_id}/security-report [get]
func (ctrl *SubmissionController) SecurityReport(c *gin.Context) {
	resp, err := ctrl.securitySvc.Report(c.Param("attempt_id"), middleware.TeacherID(c))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
