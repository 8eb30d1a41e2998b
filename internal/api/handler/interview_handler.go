package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/workhive/marketplace-be/internal/api/dto"
	"github.com/workhive/marketplace-be/internal/api/service"
)

// InterviewHandler handles interview scheduling and result endpoints.
type InterviewHandler struct {
	logger     *slog.Logger
	interviews *service.InterviewService
}

// NewInterviewHandler creates a new InterviewHandler instance
func NewInterviewHandler(deps *Dependencies) *InterviewHandler {
	svc := newServices(deps)
	return &InterviewHandler{
		logger:     deps.Logger,
		interviews: svc.interviews,
	}
}

// ScheduleInterview handles POST /api/v1/interviews
// A second schedule for a worker with an active interview reschedules
// it in place instead of creating another row.
func (h *InterviewHandler) ScheduleInterview(c *gin.Context) {
	var req dto.ScheduleInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	res, err := h.interviews.Schedule(c.Request.Context(), service.ScheduleRequest{
		WorkerID:      req.WorkerID,
		EmployerID:    req.EmployerID,
		ScheduledDate: req.ScheduledDate,
		Mode:          req.Mode,
		MeetingLink:   req.MeetingLink,
		Location:      req.Location,
		Notes:         req.Notes,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	response := dto.ScheduleInterviewResponse{
		Interview:   dto.FromInterview(res.Interview, time.Now()),
		Rescheduled: res.Rescheduled,
	}
	if res.Transition != nil {
		response.WorkerStatus = string(res.Transition.To)
	}

	status := http.StatusCreated
	if res.Rescheduled {
		status = http.StatusOK
	}

	c.JSON(status, response)
}

// ListInterviews handles GET /api/v1/workers/:user_id/interviews
func (h *InterviewHandler) ListInterviews(c *gin.Context) {
	rows, err := h.interviews.ListForWorker(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	now := time.Now()
	interviews := make([]dto.InterviewDTO, len(rows))
	for i := range rows {
		interviews[i] = dto.FromInterview(&rows[i], now)
	}

	c.JSON(http.StatusOK, gin.H{"interviews": interviews})
}

// RecordResult handles POST /api/v1/interviews/:interview_id/result
func (h *InterviewHandler) RecordResult(c *gin.Context) {
	var req dto.InterviewResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	out, err := h.interviews.RecordResult(c.Request.Context(), c.Param("interview_id"), req.Result, req.Feedback, req.Actor)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	response := dto.InterviewResultResponse{
		Interview: dto.FromInterview(out.Interview, time.Now()),
	}
	if out.Transition != nil {
		response.WorkerStatus = string(out.Transition.To)
	}

	c.JSON(http.StatusOK, response)
}
