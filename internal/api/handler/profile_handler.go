package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/workhive/marketplace-be/internal/api/dto"
	"github.com/workhive/marketplace-be/internal/api/service"
)

// ProfileHandler handles profile registration and the worker roster,
// summary, rejection and audit endpoints.
type ProfileHandler struct {
	logger    *slog.Logger
	profiles  *service.ProfileService
	status    *service.StatusService
	summaries *service.SummaryService
}

// NewProfileHandler creates a new ProfileHandler instance
func NewProfileHandler(deps *Dependencies) *ProfileHandler {
	svc := newServices(deps)
	return &ProfileHandler{
		logger:    deps.Logger,
		profiles:  svc.profiles,
		status:    svc.status,
		summaries: svc.summaries,
	}
}

// Register handles POST /api/v1/profiles
func (h *ProfileHandler) Register(c *gin.Context) {
	var req dto.RegisterProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	profile, err := h.profiles.Register(c.Request.Context(), service.RegisterRequest{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     req.Role,
		Category: req.Category,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromProfile(profile))
}

// GetProfile handles GET /api/v1/profiles/:user_id
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profiles.Get(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromProfile(profile))
}

// UpdateBankDetails handles PUT /api/v1/profiles/:user_id/bank-details
func (h *ProfileHandler) UpdateBankDetails(c *gin.Context) {
	var req dto.UpdateBankDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	userID := c.Param("user_id")
	err := h.profiles.UpdateBankDetails(c.Request.Context(), userID, req.BankAccountHolder, req.BankAccountNumber, req.BankIFSC)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": userID, "status": "updated"})
}

// ListWorkers handles GET /api/v1/workers
// Returns the roster with verification counters from one batched query.
func (h *ProfileHandler) ListWorkers(c *gin.Context) {
	rows, err := h.profiles.ListWorkers(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	workers := make([]dto.WorkerVerificationDTO, len(rows))
	for i, row := range rows {
		workers[i] = dto.FromWorkerVerification(row)
	}

	c.JSON(http.StatusOK, gin.H{"workers": workers})
}

// GetWorkerSummary handles GET /api/v1/workers/:user_id/summary
func (h *ProfileHandler) GetWorkerSummary(c *gin.Context) {
	summary, err := h.summaries.GetWorkerSummary(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// RejectWorker handles POST /api/v1/workers/:user_id/reject
func (h *ProfileHandler) RejectWorker(c *gin.Context) {
	var req struct {
		Actor string `json:"actor" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	workerID := c.Param("user_id")
	tr, err := h.status.Reject(c.Request.Context(), workerID, req.Actor)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"worker_id":     workerID,
		"worker_status": string(tr.To),
	})
}

// VerifyEmployer handles POST /api/v1/employers/:user_id/verify
func (h *ProfileHandler) VerifyEmployer(c *gin.Context) {
	var req struct {
		Actor string `json:"actor" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	employerID := c.Param("user_id")
	tr, err := h.status.VerifyEmployer(c.Request.Context(), employerID, req.Actor)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":       employerID,
		"worker_status": string(tr.To),
	})
}

// StatusHistory handles GET /api/v1/workers/:user_id/status-history
func (h *ProfileHandler) StatusHistory(c *gin.Context) {
	audit, err := h.status.History(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	history := make([]dto.StatusAuditDTO, len(audit))
	for i, a := range audit {
		history[i] = dto.FromStatusAudit(a)
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}
