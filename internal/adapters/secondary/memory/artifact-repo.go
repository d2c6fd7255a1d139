package memory

import (
	"context"
	"sync"

	"artifact-registry-service/internal/core/domain"
	ports "artifact-registry-service/internal/core/ports/output"
)

// artifactRepo is the in-process implementation of the storage port. Primary
// state is one record map per kind plus an insertion-order slice; secondary
// indices (url, normalized name, model hints, resolved links) are rebuilt
// transactionally on every save/delete so lookups are O(matches) instead of
// full scans.
type artifactRepo struct {
	mu sync.RWMutex

	records map[domain.ArtifactType]map[string]*domain.ArtifactRecord
	order   map[domain.ArtifactType][]string

	byURL  map[domain.ArtifactType]map[string]string
	byName map[domain.ArtifactType]map[string][]string

	hints map[domain.LinkTarget]map[string][]string
	links map[domain.LinkTarget]map[string][]string
}

func NewArtifactRepository() ports.ArtifactRepository {
	r := &artifactRepo{}
	r.init()
	return r
}

func (r *artifactRepo) init() {
	r.records = make(map[domain.ArtifactType]map[string]*domain.ArtifactRecord)
	r.order = make(map[domain.ArtifactType][]string)
	r.byURL = make(map[domain.ArtifactType]map[string]string)
	r.byName = make(map[domain.ArtifactType]map[string][]string)
	for _, t := range domain.AllArtifactTypes {
		r.records[t] = make(map[string]*domain.ArtifactRecord)
		r.order[t] = nil
		r.byURL[t] = make(map[string]string)
		r.byName[t] = make(map[string][]string)
	}
	r.hints = map[domain.LinkTarget]map[string][]string{
		domain.LinkDataset: make(map[string][]string),
		domain.LinkCode:    make(map[string][]string),
	}
	r.links = map[domain.LinkTarget]map[string][]string{
		domain.LinkDataset: make(map[string][]string),
		domain.LinkCode:    make(map[string][]string),
	}
}

func (r *artifactRepo) Save(_ context.Context, rec *domain.ArtifactRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := rec.Artifact.Type
	id := rec.Artifact.ID

	if old, ok := r.records[t][id]; ok {
		r.dropIndexes(old)
	} else {
		r.order[t] = append(r.order[t], id)
	}

	stored := rec.Clone()
	r.records[t][id] = stored
	r.addIndexes(stored)
	return nil
}

func (r *artifactRepo) Get(_ context.Context, t domain.ArtifactType, id string) (*domain.ArtifactRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[t][id]
	if !ok {
		return nil, domain.ErrArtifactNotFound
	}
	return rec.Clone(), nil
}

func (r *artifactRepo) Delete(_ context.Context, t domain.ArtifactType, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[t][id]
	if !ok {
		return false, nil
	}

	r.dropIndexes(rec)
	delete(r.records[t], id)
	r.order[t] = removeID(r.order[t], id)
	return true, nil
}

func (r *artifactRepo) ExistsByURL(_ context.Context, t domain.ArtifactType, url string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byURL[t][url]
	return ok, nil
}

func (r *artifactRepo) List(_ context.Context, t domain.ArtifactType) ([]*domain.ArtifactRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.ArtifactRecord, 0, len(r.order[t]))
	for _, id := range r.order[t] {
		out = append(out, r.records[t][id].Clone())
	}
	return out, nil
}

func (r *artifactRepo) FindByName(_ context.Context, t domain.ArtifactType, normalized string) (*domain.ArtifactRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byName[t][normalized]
	if len(ids) == 0 {
		return nil, domain.ErrArtifactNotFound
	}
	// Ties resolve to the earliest insertion.
	return r.records[t][ids[0]].Clone(), nil
}

func (r *artifactRepo) ListModelsByHint(_ context.Context, target domain.LinkTarget, normalized string) ([]*domain.ArtifactRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collectModels(r.hints[target][normalized]), nil
}

func (r *artifactRepo) ListModelsByLink(_ context.Context, target domain.LinkTarget, id string) ([]*domain.ArtifactRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collectModels(r.links[target][id]), nil
}

// Reset swaps in fresh state under the write lock, so no reader observes a
// mix of pre- and post-reset data.
func (r *artifactRepo) Reset(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.init()
	return nil
}

func (r *artifactRepo) collectModels(ids []string) []*domain.ArtifactRecord {
	out := make([]*domain.ArtifactRecord, 0, len(ids))
	for _, id := range ids {
		if rec, ok := r.records[domain.ArtifactTypeModel][id]; ok {
			out = append(out, rec.Clone())
		}
	}
	return out
}

func (r *artifactRepo) addIndexes(rec *domain.ArtifactRecord) {
	t := rec.Artifact.Type
	id := rec.Artifact.ID

	r.byURL[t][rec.Artifact.URL] = id
	name := rec.Artifact.NormalizedName()
	r.byName[t][name] = append(r.byName[t][name], id)

	if t != domain.ArtifactTypeModel {
		return
	}
	if rec.Links.DatasetID != "" {
		r.links[domain.LinkDataset][rec.Links.DatasetID] = append(r.links[domain.LinkDataset][rec.Links.DatasetID], id)
	} else if rec.Links.DatasetName != "" {
		hint := domain.NormalizeName(rec.Links.DatasetName)
		r.hints[domain.LinkDataset][hint] = append(r.hints[domain.LinkDataset][hint], id)
	}
	if rec.Links.CodeID != "" {
		r.links[domain.LinkCode][rec.Links.CodeID] = append(r.links[domain.LinkCode][rec.Links.CodeID], id)
	} else if rec.Links.CodeName != "" {
		hint := domain.NormalizeName(rec.Links.CodeName)
		r.hints[domain.LinkCode][hint] = append(r.hints[domain.LinkCode][hint], id)
	}
}

func (r *artifactRepo) dropIndexes(rec *domain.ArtifactRecord) {
	t := rec.Artifact.Type
	id := rec.Artifact.ID

	delete(r.byURL[t], rec.Artifact.URL)
	name := rec.Artifact.NormalizedName()
	r.byName[t][name] = removeID(r.byName[t][name], id)
	if len(r.byName[t][name]) == 0 {
		delete(r.byName[t], name)
	}

	if t != domain.ArtifactTypeModel {
		return
	}
	for _, target := range []domain.LinkTarget{domain.LinkDataset, domain.LinkCode} {
		var hint, linkID string
		if target == domain.LinkDataset {
			hint, linkID = rec.Links.DatasetName, rec.Links.DatasetID
		} else {
			hint, linkID = rec.Links.CodeName, rec.Links.CodeID
		}
		if linkID != "" {
			r.links[target][linkID] = removeID(r.links[target][linkID], id)
			if len(r.links[target][linkID]) == 0 {
				delete(r.links[target], linkID)
			}
		} else if hint != "" {
			key := domain.NormalizeName(hint)
			r.hints[target][key] = removeID(r.hints[target][key], id)
			if len(r.hints[target][key]) == 0 {
				delete(r.hints[target], key)
			}
		}
	}
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
