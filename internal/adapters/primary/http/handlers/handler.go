package handlers

import (
	"artifact-registry-service/internal/core/ports/output"
	"artifact-registry-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	registrySvc *services.RegistryService
	ratingSvc   *services.RatingService
	scorer      ports.ModelScorer
}

func New(
	registrySvc *services.RegistryService,
	ratingSvc *services.RatingService,
	scorer ports.ModelScorer,
) *Handler {
	return &Handler{
		registrySvc: registrySvc,
		ratingSvc:   ratingSvc,
		scorer:      scorer,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Registration and retrieval
	r.POST("/artifact/:type", h.RegisterArtifact)
	r.GET("/artifacts/:type/:id", h.GetArtifact)
	r.PUT("/artifacts/:type/:id", h.UpdateArtifact)
	r.DELETE("/artifacts/:type/:id", h.DeleteArtifact)

	// Batch query with offset pagination
	r.POST("/artifacts", h.QueryArtifacts)

	// Regex search (intentionally inert)
	r.POST("/artifact/byRegEx", h.RegexSearch)

	// Ratings and cost
	r.GET("/artifact/:type/:id/rate", h.GetModelRating)
	r.GET("/artifact/:type/:id/cost", h.GetArtifactCost)

	// Registry reset
	r.DELETE("/reset", h.ResetRegistry)
}
