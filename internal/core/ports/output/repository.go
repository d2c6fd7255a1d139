package ports

import (
	"context"

	"artifact-registry-service/internal/core/domain"
)

// ArtifactQuery is one name-match request of a batch query. An empty Types
// list selects all three kinds; a Name of "*" matches every record.
type ArtifactQuery struct {
	Name  string
	Types []domain.ArtifactType
}

// ArtifactRepository is the storage port. Implementations must be safe for
// concurrent use and must resolve name lookups in insertion order, so that
// first-match link resolution is deterministic across backends.
type ArtifactRepository interface {
	// Save inserts or overwrites by id within the record's kind.
	Save(ctx context.Context, rec *domain.ArtifactRecord) error

	// Get returns the record under exactly this kind and id. An id stored
	// under a different kind reports ErrArtifactNotFound.
	Get(ctx context.Context, t domain.ArtifactType, id string) (*domain.ArtifactRecord, error)

	// Delete removes the record if present under this kind and reports
	// whether a removal occurred.
	Delete(ctx context.Context, t domain.ArtifactType, id string) (bool, error)

	// ExistsByURL reports whether a record of this kind already claims the
	// canonical url.
	ExistsByURL(ctx context.Context, t domain.ArtifactType, url string) (bool, error)

	// List enumerates one kind's collection in insertion order.
	List(ctx context.Context, t domain.ArtifactType) ([]*domain.ArtifactRecord, error)

	// FindByName returns the first record of the kind, in insertion order,
	// whose normalized name equals the given normalized name.
	FindByName(ctx context.Context, t domain.ArtifactType, normalized string) (*domain.ArtifactRecord, error)

	// ListModelsByHint returns models whose hint for the link target matches
	// the normalized name and whose corresponding link id is still unresolved.
	ListModelsByHint(ctx context.Context, target domain.LinkTarget, normalized string) ([]*domain.ArtifactRecord, error)

	// ListModelsByLink returns models whose resolved link id for the target
	// equals the given artifact id.
	ListModelsByLink(ctx context.Context, target domain.LinkTarget, id string) ([]*domain.ArtifactRecord, error)

	// Reset empties every kind's collection.
	Reset(ctx context.Context) error
}
