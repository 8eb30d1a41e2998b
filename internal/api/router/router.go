package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/workhive/marketplace-be/internal/api/handler"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	// Health check endpoint with database ping
	r.GET("/health", func(c *gin.Context) {
		if err := deps.DBClient.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"service": "marketplace-api-service",
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "marketplace-api-service",
		})
	})

	profileHandler := handler.NewProfileHandler(deps)
	documentHandler := handler.NewDocumentHandler(deps)
	interviewHandler := handler.NewInterviewHandler(deps)
	taskHandler := handler.NewTaskHandler(deps)
	paymentHandler := handler.NewPaymentHandler(deps)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		profiles := v1.Group("/profiles")
		{
			profiles.POST("", profileHandler.Register)
			profiles.GET("/:user_id", profileHandler.GetProfile)
			profiles.PUT("/:user_id/bank-details", profileHandler.UpdateBankDetails)
		}

		workers := v1.Group("/workers")
		{
			workers.GET("", profileHandler.ListWorkers)
			workers.GET("/:user_id/summary", profileHandler.GetWorkerSummary)
			workers.GET("/:user_id/status-history", profileHandler.StatusHistory)
			workers.POST("/:user_id/reject", profileHandler.RejectWorker)

			workers.POST("/:user_id/documents", documentHandler.UploadDocument)
			workers.GET("/:user_id/documents", documentHandler.ListDocuments)

			workers.GET("/:user_id/interviews", interviewHandler.ListInterviews)
		}

		employers := v1.Group("/employers")
		{
			employers.POST("/:user_id/verify", profileHandler.VerifyEmployer)
		}

		documents := v1.Group("/documents")
		{
			documents.POST("/:document_id/decision", documentHandler.DecideDocument)
		}

		interviews := v1.Group("/interviews")
		{
			interviews.POST("", interviewHandler.ScheduleInterview)
			interviews.POST("/:interview_id/result", interviewHandler.RecordResult)
		}

		tasks := v1.Group("/tasks")
		{
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/:task_id", taskHandler.GetTask)
			tasks.PATCH("/:task_id/status", taskHandler.ChangeTaskStatus)
			tasks.POST("/:task_id/assignments", taskHandler.AssignWorker)
			tasks.POST("/:task_id/submissions", taskHandler.SubmitProof)
			tasks.GET("/:task_id/submissions", taskHandler.ListSubmissions)
			tasks.GET("/:task_id/payments", paymentHandler.ListPayments)
		}

		submissions := v1.Group("/submissions")
		{
			submissions.POST("/:submission_id/decision", taskHandler.DecideSubmission)
			submissions.POST("/:submission_id/rating", taskHandler.RateSubmission)
		}

		payments := v1.Group("/payments")
		{
			payments.POST("", paymentHandler.InitiatePayment)
			payments.POST("/:payment_id/proof", paymentHandler.AttachProof)
			payments.POST("/:payment_id/complete", paymentHandler.CompletePayment)
		}
	}

	return r
}
