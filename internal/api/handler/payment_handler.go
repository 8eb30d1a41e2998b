package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/workhive/marketplace-be/internal/api/dto"
	"github.com/workhive/marketplace-be/internal/api/service"
)

// PaymentHandler handles the manual bank-transfer payment endpoints.
type PaymentHandler struct {
	logger   *slog.Logger
	payments *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler instance
func NewPaymentHandler(deps *Dependencies) *PaymentHandler {
	svc := newServices(deps)
	return &PaymentHandler{
		logger:   deps.Logger,
		payments: svc.payments,
	}
}

// InitiatePayment handles POST /api/v1/payments
// Re-initiating for the same triple returns the processing record
// already on file instead of creating a duplicate.
func (h *PaymentHandler) InitiatePayment(c *gin.Context) {
	var req dto.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	rec, reused, err := h.payments.Initiate(c.Request.Context(), req.TaskID, req.WorkerID, req.EmployerID, req.Amount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	status := http.StatusCreated
	if reused {
		status = http.StatusOK
	}

	c.JSON(status, dto.InitiatePaymentResponse{
		Payment: dto.FromPayment(rec),
		Reused:  reused,
	})
}

// AttachProof handles POST /api/v1/payments/:payment_id/proof
func (h *PaymentHandler) AttachProof(c *gin.Context) {
	var req dto.AttachProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	proof, err := h.payments.AttachProof(c.Request.Context(), c.Param("payment_id"), req.FilePath, req.ClaimedReference)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromProof(proof))
}

// CompletePayment handles POST /api/v1/payments/:payment_id/complete
func (h *PaymentHandler) CompletePayment(c *gin.Context) {
	rec, err := h.payments.Complete(c.Request.Context(), c.Param("payment_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromPayment(rec))
}

// ListPayments handles GET /api/v1/tasks/:task_id/payments
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	recs, err := h.payments.ListForTask(c.Request.Context(), c.Param("task_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	payments := make([]dto.PaymentDTO, len(recs))
	for i := range recs {
		payments[i] = dto.FromPayment(&recs[i])
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments})
}
