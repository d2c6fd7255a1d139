package handlers

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"artifact-registry-service/internal/adapters/primary/http/dto"
	"artifact-registry-service/internal/core/domain"
	ports "artifact-registry-service/internal/core/ports/output"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

var idPattern = regexp.MustCompile(`^[a-zA-Z0-9\-]+$`)

func (h *Handler) RegisterArtifact(c *gin.Context) {
	t, err := domain.ParseArtifactType(c.Param("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req dto.RegisterArtifactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := req.Name
	if name == "" {
		name = domain.DeriveNameFromURL(req.URL)
	}

	var rating *domain.ModelRating
	var links domain.ModelLinks
	if t == domain.ArtifactTypeModel {
		report, err := h.scorer.Score(c.Request.Context(), req.URL)
		if err != nil {
			log.WithError(err).Error("score model failed")
			mapDomainError(c, err)
			return
		}
		rating, err = h.ratingSvc.Compose(name, report)
		if err != nil {
			mapDomainError(c, err)
			return
		}
		// URL/ID pairs are only ever set by the resolver; the report
		// contributes name hints.
		links = domain.ModelLinks{
			DatasetName: report.DatasetName,
			CodeName:    report.CodeName,
		}
	}

	rec, err := h.registrySvc.Register(c.Request.Context(), t, req.URL, name, "", rating, links)
	if err != nil {
		log.WithError(err).Error("register artifact failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToArtifactResponse(rec.Artifact))
}

func (h *Handler) GetArtifact(c *gin.Context) {
	t, id, ok := artifactPath(c)
	if !ok {
		return
	}

	rec, err := h.registrySvc.Get(c.Request.Context(), t, id)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToArtifactResponse(rec.Artifact))
}

func (h *Handler) UpdateArtifact(c *gin.Context) {
	t, id, ok := artifactPath(c)
	if !ok {
		return
	}

	var payload dto.ArtifactResponse
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if payload.Metadata.ID != id || payload.Metadata.Type != string(t) {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMetadataMismatch.Error()})
		return
	}

	rec := &domain.ArtifactRecord{
		Artifact: domain.Artifact{
			ID:          id,
			Type:        t,
			Name:        payload.Metadata.Name,
			URL:         payload.Data.URL,
			DownloadURL: payload.Data.DownloadURL,
		},
	}

	if t == domain.ArtifactTypeModel {
		report, err := h.scorer.Score(c.Request.Context(), payload.Data.URL)
		if err != nil {
			log.WithError(err).Error("score model failed")
			mapDomainError(c, err)
			return
		}
		rating, err := h.ratingSvc.Compose(payload.Metadata.Name, report)
		if err != nil {
			mapDomainError(c, err)
			return
		}
		rec.Rating = rating
		rec.Links = domain.ModelLinks{
			DatasetName: report.DatasetName,
			CodeName:    report.CodeName,
		}
	}

	updated, err := h.registrySvc.Update(c.Request.Context(), rec)
	if err != nil {
		log.WithError(err).Error("update artifact failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToArtifactResponse(updated.Artifact))
}

func (h *Handler) DeleteArtifact(c *gin.Context) {
	t, id, ok := artifactPath(c)
	if !ok {
		return
	}

	if err := h.registrySvc.Delete(c.Request.Context(), t, id); err != nil {
		log.WithError(err).Error("delete artifact failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) QueryArtifacts(c *gin.Context) {
	var reqs []dto.ArtifactQueryRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset"})
		return
	}

	queries := make([]ports.ArtifactQuery, 0, len(reqs))
	for _, r := range reqs {
		q := ports.ArtifactQuery{Name: r.Name}
		for _, ts := range r.Types {
			t, err := domain.ParseArtifactType(ts)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			q.Types = append(q.Types, t)
		}
		queries = append(queries, q)
	}

	results, err := h.registrySvc.Query(c.Request.Context(), queries)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	// Offset pagination: slice the deduplicated set and report the next
	// offset in the response header.
	if offset >= len(results) {
		c.Header("offset", strconv.Itoa(offset))
		c.JSON(http.StatusOK, []dto.ArtifactMetadata{})
		return
	}

	paginated := results[offset:]
	c.Header("offset", strconv.Itoa(offset+len(paginated)))

	items := make([]dto.ArtifactMetadata, 0, len(paginated))
	for _, a := range paginated {
		items = append(items, dto.ToArtifactMetadata(a))
	}
	c.JSON(http.StatusOK, items)
}

// RegexSearch is deliberately inert: the payload is validated but the pattern
// is never compiled or executed, and every well-formed request reports no
// matches.
func (h *Handler) RegexSearch(c *gin.Context) {
	var req dto.RegexSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Regex) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid regex"})
		return
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "no artifact found under this regex"})
}

func (h *Handler) ResetRegistry(c *gin.Context) {
	if err := h.registrySvc.Reset(c.Request.Context()); err != nil {
		log.WithError(err).Error("reset registry failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

// artifactPath parses and validates the :type/:id pair shared by the
// artifact routes. It writes the 400 response itself on malformed input.
func artifactPath(c *gin.Context) (domain.ArtifactType, string, bool) {
	t, err := domain.ParseArtifactType(c.Param("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", "", false
	}

	id := c.Param("id")
	if !idPattern.MatchString(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidArtifactID.Error()})
		return "", "", false
	}

	return t, id, true
}
