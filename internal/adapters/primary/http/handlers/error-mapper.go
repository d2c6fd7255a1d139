package handlers

import (
	"errors"
	"net/http"

	"artifact-registry-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

func mapDomainError(c *gin.Context, err error) {
	switch {
	// Not found errors
	case errors.Is(err, domain.ErrArtifactNotFound),
		errors.Is(err, domain.ErrRatingNotFound),
		errors.Is(err, domain.ErrRatingRequired):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	// Conflict errors
	case errors.Is(err, domain.ErrArtifactExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	// Bad request / validation errors
	case errors.Is(err, domain.ErrInvalidArtifactType),
		errors.Is(err, domain.ErrInvalidArtifactID),
		errors.Is(err, domain.ErrInvalidURL),
		errors.Is(err, domain.ErrMetadataMismatch),
		errors.Is(err, domain.ErrEmptyQuery),
		errors.Is(err, domain.ErrMissingRating):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	// Upstream metric computation failures
	case errors.Is(err, domain.ErrMetricComputation):
		c.JSON(http.StatusFailedDependency, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
