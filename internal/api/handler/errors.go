package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/workhive/marketplace-be/internal/domain"
)

// respondError maps domain errors onto HTTP status codes. Validation
// failures are 400, unknown entities 404, state conflicts 409,
// unavailable dependencies 503 and everything else 500.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	var (
		validationErr *domain.ValidationError
		transitionErr *domain.IllegalTransitionError
		dependencyErr *domain.DependencyError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusConflict, gin.H{"error": transitionErr.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrAlreadyReviewed),
		errors.Is(err, domain.ErrAlreadyRated),
		errors.Is(err, domain.ErrProofRequired):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &dependencyErr):
		logger.Error("Dependency unavailable", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable"})
	default:
		logger.Error("Unhandled request error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
