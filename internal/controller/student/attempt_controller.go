package student

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BlueAI-edu/blueai-backend/internal/controller"
	"github.com/BlueAI-edu/blueai-backend/internal/dto"
	"github.com/BlueAI-edu/blueai-backend/internal/service"
)

// AttemptController serves the unauthenticated student surface. Students are
// identified only by their attempt ID, handed out at join time.
type AttemptController struct {
	attemptSvc  service.AttemptService
	feedbackSvc service.FeedbackService
	securitySvc service.SecurityEventService
}

func NewAttemptController(
	attemptSvc service.AttemptService,
	feedbackSvc service.FeedbackService,
	securitySvc service.SecurityEventService,
) *AttemptController {
	return &AttemptController{
		attemptSvc:  attemptSvc,
		feedbackSvc: feedbackSvc,
		securitySvc: securitySvc,
	}
}

// Join godoc
// @Summary (Student) Join a started assessment by code
// @Tags Student
// @Accept json
// @Produce json
// @Param join body dto.JoinRequest true "Join code and student identity"
// @Success 201 {object} dto.JoinResponse
// @Failure 404 {object} dto.ErrorResponse "No started assessment with this code"
// @Failure 409 {object} dto.ErrorResponse "Deadline already passed"
// @Router /student/attempts [post]
func (ctrl *AttemptController) Join(c *gin.Context) {
	var req dto.JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind JoinRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.attemptSvc.Join(req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetAttempt godoc
// @Summary (Student) Get own attempt; feedback appears only once released
// @Tags Student
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} dto.StudentAttemptResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /student/attempts/{attempt_id} [get]
func (ctrl *AttemptController) GetAttempt(c *gin.Context) {
	resp, err := ctrl.feedbackSvc.StudentView(c.Param("attempt_id"))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Autosave godoc
// @Summary (Student) Save answer draft
// @Description Stale sequences are ignored; saves after finalization are reported as already_finalized, not errors.
// @Tags Student
// @Accept json
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Param draft body dto.AutosaveRequest true "Draft text and client sequence"
// @Success 200 {object} dto.AutosaveResponse
// @Router /student/attempts/{attempt_id}/autosave [put]
func (ctrl *AttemptController) Autosave(c *gin.Context) {
	var req dto.AutosaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind AutosaveRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.attemptSvc.Autosave(c.Param("attempt_id"), req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Submit godoc
// @Summary (Student) Submit the attempt for marking
// @Description Idempotent; a second submit returns the current attempt state.
// @Tags Student
// @Accept json
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Param submission body dto.SubmitRequest true "Final answer and finalize reason"
// @Success 200 {object} dto.StudentAttemptResponse
// @Router /student/attempts/{attempt_id}/submit [post]
func (ctrl *AttemptController) Submit(c *gin.Context) {
	var req dto.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind SubmitRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.attemptSvc.Submit(c.Param("attempt_id"), req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RecordSecurityEvent godoc
// @Summary (Student) Report a proctoring event
// @Description Best effort; always returns 202 so a flaky client cannot distinguish logged from dropped.
// @Tags Student
// @Accept json
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Param event body dto.SecurityEventRequest true "Event kind"
// @Success 202 {object} map[string]string
// @Router /student/attempts/{attempt_id}/security-events [post]
func (ctrl *AttemptController) RecordSecurityEvent(c *gin.Context) {
	var req dto.SecurityEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctrl.securitySvc.Record(c.Param("attempt_id"), req.Kind)
	c.JSON(http.StatusAccepted, gin.H{"status": "recorded"})
}

// EligibleStudents godoc
// @Summary (Student) List roster names selectable for a join code
// @Tags Student
// @Produce json
// @Param join_code path string true "Join code"
// @Success 200 {array} dto.StudentSummary
// @Failure 404 {object} dto.ErrorResponse
// @Router /student/assessments/{join_code}/students [get]
func (ctrl *AttemptController) EligibleStudents(c *gin.Context) {
	resp, err := ctrl.attemptSvc.EligibleStudents(c.Param("join_code"))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
