package handlers

import (
	"net/http"

	"artifact-registry-service/internal/adapters/primary/http/dto"
	"artifact-registry-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetModelRating(c *gin.Context) {
	t, id, ok := artifactPath(c)
	if !ok {
		return
	}

	if t != domain.ArtifactTypeModel {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrRatingNotFound.Error()})
		return
	}

	rating, err := h.registrySvc.GetRating(c.Request.Context(), id)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, rating)
}

func (h *Handler) GetArtifactCost(c *gin.Context) {
	t, id, ok := artifactPath(c)
	if !ok {
		return
	}

	rec, err := h.registrySvc.Get(c.Request.Context(), t, id)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	entry, err := h.ratingSvc.Cost(rec)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, map[string]dto.CostEntryResponse{
		id: dto.ToCostEntryResponse(entry),
	})
}
