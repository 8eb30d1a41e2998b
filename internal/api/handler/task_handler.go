package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/workhive/marketplace-be/internal/api/dto"
	"github.com/workhive/marketplace-be/internal/api/service"
	"github.com/workhive/marketplace-be/internal/api/storage"
)

// TaskHandler handles task, assignment, submission and review endpoints.
type TaskHandler struct {
	logger  *slog.Logger
	tasks   *service.TaskService
	reviews *service.ReviewService
}

// NewTaskHandler creates a new TaskHandler instance
func NewTaskHandler(deps *Dependencies) *TaskHandler {
	svc := newServices(deps)
	return &TaskHandler{
		logger:  deps.Logger,
		tasks:   svc.tasks,
		reviews: svc.reviews,
	}
}

// CreateTask handles POST /api/v1/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), service.CreateTaskRequest{
		EmployerID:  req.EmployerID,
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		Slots:       req.Slots,
		Category:    req.Category,
		Countries:   req.Countries,
		AgeMin:      req.AgeMin,
		AgeMax:      req.AgeMax,
		Languages:   req.Languages,
		DeviceTypes: req.DeviceTypes,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromTask(task))
}

// GetTask handles GET /api/v1/tasks/:task_id
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.tasks.Get(c.Request.Context(), c.Param("task_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromTask(task))
}

// ListTasks handles GET /api/v1/tasks
// Lists tasks with optional filtering and keyset pagination
func (h *TaskHandler) ListTasks(c *gin.Context) {
	var req dto.ListTasksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	if req.PageSize > 100 {
		req.PageSize = 100
	}

	cursor, err := DecodeTaskCursor(req.Cursor)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cursor"})
		return
	}

	filter := storage.TaskFilter{
		EmployerID: req.EmployerID,
		Status:     req.Status,
		Category:   req.Category,
		PageSize:   req.PageSize,
		Cursor:     cursor,
	}

	tasks, err := h.tasks.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	hasMore := len(tasks) > req.PageSize
	if hasMore {
		tasks = tasks[:req.PageSize]
	}

	taskResponse := make([]dto.TaskDTO, len(tasks))
	for i := range tasks {
		taskResponse[i] = dto.FromTask(&tasks[i])
	}

	var nextCursor string
	if hasMore {
		lastTask := tasks[len(tasks)-1]
		nextCursor, err = EncodeTaskCursor(&storage.TaskCursor{
			CreatedAt: lastTask.CreatedAt,
			TaskID:    lastTask.TaskID,
		})
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
	}

	c.JSON(http.StatusOK, dto.ListTasksResponse{
		Tasks:      taskResponse,
		NextCursor: nextCursor,
	})
}

// ChangeTaskStatus handles PATCH /api/v1/tasks/:task_id/status
func (h *TaskHandler) ChangeTaskStatus(c *gin.Context) {
	var req dto.ChangeTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	task, err := h.tasks.ChangeStatus(c.Request.Context(), c.Param("task_id"), req.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromTask(task))
}

// AssignWorker handles POST /api/v1/tasks/:task_id/assignments
func (h *TaskHandler) AssignWorker(c *gin.Context) {
	var req dto.AssignWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	a, err := h.tasks.Assign(c.Request.Context(), c.Param("task_id"), req.WorkerID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromAssignment(a))
}

// SubmitProof handles POST /api/v1/tasks/:task_id/submissions
func (h *TaskHandler) SubmitProof(c *gin.Context) {
	var req dto.SubmitProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	sub, err := h.tasks.Submit(c.Request.Context(), c.Param("task_id"), req.WorkerID, req.ProofText, req.ProofFilePath)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromSubmission(sub))
}

// ListSubmissions handles GET /api/v1/tasks/:task_id/submissions
func (h *TaskHandler) ListSubmissions(c *gin.Context) {
	subs, err := h.tasks.ListSubmissions(c.Request.Context(), c.Param("task_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	submissions := make([]dto.SubmissionDTO, len(subs))
	for i := range subs {
		submissions[i] = dto.FromSubmission(&subs[i])
	}

	c.JSON(http.StatusOK, gin.H{"submissions": submissions})
}

// DecideSubmission handles POST /api/v1/submissions/:submission_id/decision
func (h *TaskHandler) DecideSubmission(c *gin.Context) {
	var req dto.SubmissionDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	sub, err := h.reviews.Decide(c.Request.Context(), c.Param("submission_id"), req.Decision, req.ReviewerID, req.Notes)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromSubmission(sub))
}

// RateSubmission handles POST /api/v1/submissions/:submission_id/rating
func (h *TaskHandler) RateSubmission(c *gin.Context) {
	var req dto.RateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	sub, err := h.reviews.Rate(c.Request.Context(), c.Param("submission_id"), req.Rating)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromSubmission(sub))
}
