package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/workhive/marketplace-be/internal/api/dto"
	"github.com/workhive/marketplace-be/internal/api/service"
	"github.com/workhive/marketplace-be/internal/domain"
)

// DocumentHandler handles document upload and verification endpoints.
type DocumentHandler struct {
	logger       *slog.Logger
	verification *service.VerificationService
}

// NewDocumentHandler creates a new DocumentHandler instance
func NewDocumentHandler(deps *Dependencies) *DocumentHandler {
	svc := newServices(deps)
	return &DocumentHandler{
		logger:       deps.Logger,
		verification: svc.verification,
	}
}

// UploadDocument handles POST /api/v1/workers/:user_id/documents
func (h *DocumentHandler) UploadDocument(c *gin.Context) {
	var req dto.UploadDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	workerID := c.Param("user_id")
	res, err := h.verification.UploadDocument(c.Request.Context(), workerID, domain.DocumentType(req.DocumentType), req.FilePath)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	response := gin.H{"document": dto.FromDocument(res.Document)}
	if res.Transition != nil {
		response["worker_status"] = string(res.Transition.To)
	}

	c.JSON(http.StatusCreated, response)
}

// ListDocuments handles GET /api/v1/workers/:user_id/documents
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	docs, err := h.verification.ListDocuments(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	documents := make([]dto.DocumentDTO, len(docs))
	for i := range docs {
		documents[i] = dto.FromDocument(&docs[i])
	}

	c.JSON(http.StatusOK, gin.H{"documents": documents})
}

// DecideDocument handles POST /api/v1/documents/:document_id/decision
func (h *DocumentHandler) DecideDocument(c *gin.Context) {
	var req dto.DocumentDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	res, err := h.verification.RecordDecision(c.Request.Context(), c.Param("document_id"), req.Decision, req.VerifierID, req.Notes)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	response := dto.DocumentDecisionResponse{
		Document:      dto.FromDocument(res.Document),
		FullyApproved: res.FullyApproved,
	}
	if res.Transition != nil {
		response.WorkerStatus = string(res.Transition.To)
	}

	c.JSON(http.StatusOK, response)
}
