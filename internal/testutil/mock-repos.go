package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"artifact-registry-service/internal/core/domain"
	ports "artifact-registry-service/internal/core/ports/output"
)

// MockArtifactRepo is a mock of ArtifactRepository.
type MockArtifactRepo struct {
	mock.Mock
}

func (m *MockArtifactRepo) Save(ctx context.Context, rec *domain.ArtifactRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockArtifactRepo) Get(ctx context.Context, t domain.ArtifactType, id string) (*domain.ArtifactRecord, error) {
	args := m.Called(ctx, t, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ArtifactRecord), args.Error(1)
}

func (m *MockArtifactRepo) Delete(ctx context.Context, t domain.ArtifactType, id string) (bool, error) {
	args := m.Called(ctx, t, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockArtifactRepo) ExistsByURL(ctx context.Context, t domain.ArtifactType, url string) (bool, error) {
	args := m.Called(ctx, t, url)
	return args.Bool(0), args.Error(1)
}

func (m *MockArtifactRepo) List(ctx context.Context, t domain.ArtifactType) ([]*domain.ArtifactRecord, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ArtifactRecord), args.Error(1)
}

func (m *MockArtifactRepo) FindByName(ctx context.Context, t domain.ArtifactType, normalized string) (*domain.ArtifactRecord, error) {
	args := m.Called(ctx, t, normalized)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ArtifactRecord), args.Error(1)
}

func (m *MockArtifactRepo) ListModelsByHint(ctx context.Context, target domain.LinkTarget, normalized string) ([]*domain.ArtifactRecord, error) {
	args := m.Called(ctx, target, normalized)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ArtifactRecord), args.Error(1)
}

func (m *MockArtifactRepo) ListModelsByLink(ctx context.Context, target domain.LinkTarget, id string) ([]*domain.ArtifactRecord, error) {
	args := m.Called(ctx, target, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ArtifactRecord), args.Error(1)
}

func (m *MockArtifactRepo) Reset(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockModelScorer is a mock of ModelScorer.
type MockModelScorer struct {
	mock.Mock
}

func (m *MockModelScorer) Score(ctx context.Context, modelURL string) (*ports.ScoreReport, error) {
	args := m.Called(ctx, modelURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.ScoreReport), args.Error(1)
}

func (m *MockModelScorer) IsAvailable() bool {
	args := m.Called()
	return args.Bool(0)
}
