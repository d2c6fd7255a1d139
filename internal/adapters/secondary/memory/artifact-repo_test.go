package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"artifact-registry-service/internal/core/domain"
)

func record(t domain.ArtifactType, id, name, url string) *domain.ArtifactRecord {
	now := time.Now().UTC()
	return &domain.ArtifactRecord{
		Artifact: domain.Artifact{
			ID: id, Type: t, Name: name, URL: url,
			CreatedAt: now, UpdatedAt: now,
		},
	}
}

func TestArtifactRepo_SaveAndGet(t *testing.T) {
	repo := NewArtifactRepository()
	ctx := context.Background()

	rec := record(domain.ArtifactTypeDataset, "d1", "squad", "https://example.com/d1")
	assert.NoError(t, repo.Save(ctx, rec))

	got, err := repo.Get(ctx, domain.ArtifactTypeDataset, "d1")
	assert.NoError(t, err)
	assert.Equal(t, "squad", got.Artifact.Name)

	// Kind is part of the key.
	_, err = repo.Get(ctx, domain.ArtifactTypeCode, "d1")
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}

func TestArtifactRepo_CloneIsolation(t *testing.T) {
	repo := NewArtifactRepository()
	ctx := context.Background()

	rec := record(domain.ArtifactTypeDataset, "d1", "squad", "https://example.com/d1")
	assert.NoError(t, repo.Save(ctx, rec))

	// Mutating the caller's record after save must not leak into the store.
	rec.Artifact.Name = "mutated"

	got, err := repo.Get(ctx, domain.ArtifactTypeDataset, "d1")
	assert.NoError(t, err)
	assert.Equal(t, "squad", got.Artifact.Name)

	// Nor must mutating a returned record.
	got.Artifact.Name = "mutated-again"
	again, err := repo.Get(ctx, domain.ArtifactTypeDataset, "d1")
	assert.NoError(t, err)
	assert.Equal(t, "squad", again.Artifact.Name)
}

func TestArtifactRepo_Delete(t *testing.T) {
	repo := NewArtifactRepository()
	ctx := context.Background()

	assert.NoError(t, repo.Save(ctx, record(domain.ArtifactTypeCode, "c1", "tx", "https://example.com/c1")))

	deleted, err := repo.Delete(ctx, domain.ArtifactTypeCode, "c1")
	assert.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, domain.ArtifactTypeCode, "c1")
	assert.NoError(t, err)
	assert.False(t, deleted)

	// The url index is released with the record.
	exists, err := repo.ExistsByURL(ctx, domain.ArtifactTypeCode, "https://example.com/c1")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestArtifactRepo_ExistsByURL(t *testing.T) {
	repo := NewArtifactRepository()
	ctx := context.Background()

	assert.NoError(t, repo.Save(ctx, record(domain.ArtifactTypeDataset, "d1", "squad", "https://example.com/d1")))

	exists, err := repo.ExistsByURL(ctx, domain.ArtifactTypeDataset, "https://example.com/d1")
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByURL(ctx, domain.ArtifactTypeModel, "https://example.com/d1")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestArtifactRepo_List_InsertionOrder(t *testing.T) {
	repo := NewArtifactRepository()
	ctx := context.Background()

	assert.NoError(t, repo.Save(ctx, record(domain.ArtifactTypeDataset, "d1", "a", "https://example.com/1")))
	assert.NoError(t, repo.Save(ctx, record(domain.ArtifactTypeDataset, "d2", "b", "https://example.com/2")))
	assert.NoError(t, repo.Save(ctx, record(domain.ArtifactTypeDataset, "d3", "c", "https://example.com/3")))

	// Overwriting keeps the original position.
	assert.NoError(t, repo.Save(ctx, record(domain.ArtifactTypeDataset, "d2", "b2", "https://example.com/2")))

	recs, err := repo.List(ctx, domain.ArtifactTypeDataset)
	assert.NoError(t, err)
	assert.Len(t, recs, 3)
	assert.Equal(t, "d1", recs[0].Artifact.ID)
	assert.Equal(t, "d2", recs[1].Artifact.ID)
	assert.Equal(t, "d3", recs[2].Artifact.ID)
}

func TestArtifactRepo_FindByName(t *testing.T) {
	repo := NewArtifactRepository()
	ctx := context.Background()

	assert.NoError(t, repo.Save(ctx, record(domain.ArtifactTypeDataset, "d1", "SQuAD", "https://example.com/1")))
	assert.NoError(t, repo.Save(ctx, record(domain.ArtifactTypeDataset, "d2", "squad", "https://example.com/2")))

	got, err := repo.FindByName(ctx, domain.ArtifactTypeDataset, "squad")
	assert.NoError(t, err)
	assert.Equal(t, "d1", got.Artifact.ID)

	// First insertion wins even after the earliest is removed.
	_, err = repo.Delete(ctx, domain.ArtifactTypeDataset, "d1")
	assert.NoError(t, err)
	got, err = repo.FindByName(ctx, domain.ArtifactTypeDataset, "squad")
	assert.NoError(t, err)
	assert.Equal(t, "d2", got.Artifact.ID)

	_, err = repo.FindByName(ctx, domain.ArtifactTypeDataset, "missing")
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}

func TestArtifactRepo_HintIndex(t *testing.T) {
	repo := NewArtifactRepository()
	ctx := context.Background()

	unresolved := record(domain.ArtifactTypeModel, "m1", "bert", "https://example.com/m1")
	unresolved.Links.DatasetName = "SQuAD"
	assert.NoError(t, repo.Save(ctx, unresolved))

	resolved := record(domain.ArtifactTypeModel, "m2", "gpt", "https://example.com/m2")
	resolved.Links.DatasetName = "squad"
	resolved.Links.DatasetID = "d1"
	resolved.Links.DatasetURL = "https://example.com/d1"
	assert.NoError(t, repo.Save(ctx, resolved))

	// Only models still unresolved on that side show up under the hint.
	models, err := repo.ListModelsByHint(ctx, domain.LinkDataset, "squad")
	assert.NoError(t, err)
	assert.Len(t, models, 1)
	assert.Equal(t, "m1", models[0].Artifact.ID)

	// Resolving moves the model from the hint index to the link index.
	unresolved.Links.DatasetID = "d1"
	unresolved.Links.DatasetURL = "https://example.com/d1"
	assert.NoError(t, repo.Save(ctx, unresolved))

	models, err = repo.ListModelsByHint(ctx, domain.LinkDataset, "squad")
	assert.NoError(t, err)
	assert.Empty(t, models)

	models, err = repo.ListModelsByLink(ctx, domain.LinkDataset, "d1")
	assert.NoError(t, err)
	assert.Len(t, models, 2)
}

func TestArtifactRepo_Reset(t *testing.T) {
	repo := NewArtifactRepository()
	ctx := context.Background()

	assert.NoError(t, repo.Save(ctx, record(domain.ArtifactTypeDataset, "d1", "squad", "https://example.com/1")))
	assert.NoError(t, repo.Reset(ctx))

	recs, err := repo.List(ctx, domain.ArtifactTypeDataset)
	assert.NoError(t, err)
	assert.Empty(t, recs)

	exists, err := repo.ExistsByURL(ctx, domain.ArtifactTypeDataset, "https://example.com/1")
	assert.NoError(t, err)
	assert.False(t, exists)
}
