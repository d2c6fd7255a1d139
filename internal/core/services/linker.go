package services

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"artifact-registry-service/internal/core/domain"
	ports "artifact-registry-service/internal/core/ports/output"
)

// LinkResolver maintains the name-based references between models and the
// dataset/code artifacts they claim to depend on. Resolution is lazy,
// best-effort and idempotent: it only fills gaps, never overwrites a resolved
// id, and never touches the name hints. Convergence happens on writes to
// either side; there is no background sweeper.
type LinkResolver struct {
	repo ports.ArtifactRepository
}

func NewLinkResolver(repo ports.ArtifactRepository) *LinkResolver {
	return &LinkResolver{repo: repo}
}

// ResolveModel fills the model's unresolved links from currently registered
// artifacts. The first name match in insertion order wins.
func (r *LinkResolver) ResolveModel(ctx context.Context, rec *domain.ArtifactRecord) error {
	if rec.Artifact.Type != domain.ArtifactTypeModel {
		return nil
	}

	if rec.Links.DatasetID == "" && rec.Links.DatasetName != "" {
		ds, err := r.repo.FindByName(ctx, domain.ArtifactTypeDataset, domain.NormalizeName(rec.Links.DatasetName))
		if err == nil {
			rec.Links.DatasetID = ds.Artifact.ID
			rec.Links.DatasetURL = ds.Artifact.URL
		} else if !errors.Is(err, domain.ErrArtifactNotFound) {
			return err
		}
	}

	if rec.Links.CodeID == "" && rec.Links.CodeName != "" {
		code, err := r.repo.FindByName(ctx, domain.ArtifactTypeCode, domain.NormalizeName(rec.Links.CodeName))
		if err == nil {
			rec.Links.CodeID = code.Artifact.ID
			rec.Links.CodeURL = code.Artifact.URL
		} else if !errors.Is(err, domain.ErrArtifactNotFound) {
			return err
		}
	}

	return nil
}

// RepairModels is the reverse pass: a just-written dataset or code record
// claims every model that names it and is still unlinked on that side.
func (r *LinkResolver) RepairModels(ctx context.Context, rec *domain.ArtifactRecord) error {
	var target domain.LinkTarget
	switch rec.Artifact.Type {
	case domain.ArtifactTypeDataset:
		target = domain.LinkDataset
	case domain.ArtifactTypeCode:
		target = domain.LinkCode
	default:
		return nil
	}

	models, err := r.repo.ListModelsByHint(ctx, target, rec.Artifact.NormalizedName())
	if err != nil {
		return err
	}

	for _, m := range models {
		if target == domain.LinkDataset {
			m.Links.DatasetID = rec.Artifact.ID
			m.Links.DatasetURL = rec.Artifact.URL
		} else {
			m.Links.CodeID = rec.Artifact.ID
			m.Links.CodeURL = rec.Artifact.URL
		}
		if err := r.repo.Save(ctx, m); err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"model_id":    m.Artifact.ID,
			"linked_type": rec.Artifact.Type,
			"linked_id":   rec.Artifact.ID,
		}).Debug("model link repaired")
	}

	return nil
}

// UnlinkModels clears the resolved id/url pair, always together, on every
// model that pointed at the deleted artifact. Name hints persist for future
// re-linking.
func (r *LinkResolver) UnlinkModels(ctx context.Context, t domain.ArtifactType, id string) error {
	var target domain.LinkTarget
	switch t {
	case domain.ArtifactTypeDataset:
		target = domain.LinkDataset
	case domain.ArtifactTypeCode:
		target = domain.LinkCode
	default:
		return nil
	}

	models, err := r.repo.ListModelsByLink(ctx, target, id)
	if err != nil {
		return err
	}

	for _, m := range models {
		if target == domain.LinkDataset {
			m.Links.DatasetID = ""
			m.Links.DatasetURL = ""
		} else {
			m.Links.CodeID = ""
			m.Links.CodeURL = ""
		}
		if err := r.repo.Save(ctx, m); err != nil {
			return err
		}
	}

	return nil
}
