package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"artifact-registry-service/internal/core/domain"
	ports "artifact-registry-service/internal/core/ports/output"
)

// RegistryService is the write and query surface over the artifact store.
// A single mutex serializes writes: link resolution spans two collections,
// so a dataset save must repair model records without racing a model save.
// Reads go straight to the repository, which is itself concurrency-safe.
type RegistryService struct {
	mu     sync.Mutex
	repo   ports.ArtifactRepository
	linker *LinkResolver
}

func NewRegistryService(repo ports.ArtifactRepository) *RegistryService {
	return &RegistryService{
		repo:   repo,
		linker: NewLinkResolver(repo),
	}
}

// Register creates a new artifact. The (type, url) pair must be unused;
// models must arrive with their rating so record and rating persist
// atomically. Link hints are resolved against existing artifacts, and a new
// dataset/code registration repairs any model already naming it.
func (s *RegistryService) Register(ctx context.Context, t domain.ArtifactType, url, name, downloadURL string, rating *domain.ModelRating, links domain.ModelLinks) (*domain.ArtifactRecord, error) {
	if strings.TrimSpace(url) == "" {
		return nil, domain.ErrInvalidURL
	}
	if t == domain.ArtifactTypeModel && rating == nil {
		return nil, domain.ErrMissingRating
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.repo.ExistsByURL(ctx, t, url)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrArtifactExists
	}

	if name == "" {
		name = domain.DeriveNameFromURL(url)
	}

	now := time.Now().UTC()
	rec := &domain.ArtifactRecord{
		Artifact: domain.Artifact{
			ID:          domain.NewArtifactID(),
			Type:        t,
			Name:        name,
			URL:         url,
			DownloadURL: downloadURL,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		Links:  links,
		Rating: rating,
	}

	if err := s.linker.ResolveModel(ctx, rec); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, err
	}
	if err := s.linker.RepairModels(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// Get is a point lookup; kind is part of the key, so an id registered under
// a different kind reports ErrArtifactNotFound.
func (s *RegistryService) Get(ctx context.Context, t domain.ArtifactType, id string) (*domain.ArtifactRecord, error) {
	return s.repo.Get(ctx, t, id)
}

// Update replaces a record in place, keeping id and kind. Non-model kinds
// must already exist. A model update is an upsert that re-resolves links:
// resolved id/url pairs of the existing record are preserved (resolution
// only fills gaps) and incoming name hints win over stored ones.
func (s *RegistryService) Update(ctx context.Context, rec *domain.ArtifactRecord) (*domain.ArtifactRecord, error) {
	if rec.Artifact.ID == "" {
		return nil, domain.ErrInvalidArtifactID
	}
	if strings.TrimSpace(rec.Artifact.URL) == "" {
		return nil, domain.ErrInvalidURL
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.Get(ctx, rec.Artifact.Type, rec.Artifact.ID)
	if rec.Artifact.Type != domain.ArtifactTypeModel {
		if err != nil {
			return nil, err
		}
	} else {
		if rec.Rating == nil {
			return nil, domain.ErrMissingRating
		}
		if err != nil && !errors.Is(err, domain.ErrArtifactNotFound) {
			return nil, err
		}
	}

	now := time.Now().UTC()
	rec.Artifact.UpdatedAt = now
	rec.Artifact.CreatedAt = now
	if existing != nil {
		rec.Artifact.CreatedAt = existing.Artifact.CreatedAt

		if rec.Links.DatasetName == "" {
			rec.Links.DatasetName = existing.Links.DatasetName
		}
		if rec.Links.CodeName == "" {
			rec.Links.CodeName = existing.Links.CodeName
		}
		if existing.Links.DatasetID != "" {
			rec.Links.DatasetID = existing.Links.DatasetID
			rec.Links.DatasetURL = existing.Links.DatasetURL
		}
		if existing.Links.CodeID != "" {
			rec.Links.CodeID = existing.Links.CodeID
			rec.Links.CodeURL = existing.Links.CodeURL
		}
	}

	if err := s.linker.ResolveModel(ctx, rec); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, err
	}
	if err := s.linker.RepairModels(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// Delete removes a record and cascade-unlinks: every model whose resolved
// link pointed at it has the id/url pair cleared together.
func (s *RegistryService) Delete(ctx context.Context, t domain.ArtifactType, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.repo.Get(ctx, t, id); err != nil {
		return err
	}

	if err := s.linker.UnlinkModels(ctx, t, id); err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, t, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrArtifactNotFound
	}
	return nil
}

// Query evaluates a batch of name-match requests with OR semantics,
// deduplicated by (kind, id), insertion-stable. "*" matches everything of
// the selected kinds; any other pattern matches names case-insensitively and
// exactly.
func (s *RegistryService) Query(ctx context.Context, queries []ports.ArtifactQuery) ([]domain.Artifact, error) {
	if len(queries) == 0 {
		return nil, domain.ErrEmptyQuery
	}

	seen := make(map[string]struct{})
	results := make([]domain.Artifact, 0)

	for _, q := range queries {
		types := q.Types
		if len(types) == 0 {
			types = domain.AllArtifactTypes
		}
		for _, t := range types {
			recs, err := s.repo.List(ctx, t)
			if err != nil {
				return nil, err
			}
			for _, rec := range recs {
				if q.Name != "*" && !strings.EqualFold(q.Name, rec.Artifact.Name) {
					continue
				}
				key := string(rec.Artifact.Type) + ":" + rec.Artifact.ID
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}
				results = append(results, rec.Artifact)
			}
		}
	}

	return results, nil
}

// GetRating returns a model's stored rating. A missing artifact and a model
// without a rating both surface as ErrRatingNotFound.
func (s *RegistryService) GetRating(ctx context.Context, id string) (*domain.ModelRating, error) {
	rec, err := s.repo.Get(ctx, domain.ArtifactTypeModel, id)
	if err != nil {
		if errors.Is(err, domain.ErrArtifactNotFound) {
			return nil, domain.ErrRatingNotFound
		}
		return nil, err
	}
	if rec.Rating == nil {
		return nil, domain.ErrRatingNotFound
	}
	return rec.Rating, nil
}

// Reset empties all three collections.
func (s *RegistryService) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Reset(ctx)
}
