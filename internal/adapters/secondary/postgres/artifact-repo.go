package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"artifact-registry-service/internal/core/domain"
	ports "artifact-registry-service/internal/core/ports/output"
)

// artifactRepo persists one row per artifact (see schema.sql). The rating is
// serialized as JSONB; link hints and resolved link ids are plain columns so
// the resolver's lookups stay indexed. Insertion order for first-match name
// resolution is created_at ASC with id as tie-break.
type artifactRepo struct {
	pool *pgxpool.Pool
}

func NewArtifactRepository(pool *pgxpool.Pool) ports.ArtifactRepository {
	return &artifactRepo{pool: pool}
}

const artifactColumns = `
	id, artifact_type, name, url,
	COALESCE(download_url, ''),
	created_at, updated_at,
	COALESCE(dataset_name, ''), COALESCE(dataset_url, ''), COALESCE(dataset_id, ''),
	COALESCE(code_name, ''), COALESCE(code_url, ''), COALESCE(code_id, ''),
	rating
`

func (r *artifactRepo) Save(ctx context.Context, rec *domain.ArtifactRecord) error {
	var ratingJSON []byte
	if rec.Rating != nil {
		var err error
		ratingJSON, err = json.Marshal(rec.Rating)
		if err != nil {
			return fmt.Errorf("marshal rating: %w", err)
		}
	}

	query := `
		INSERT INTO artifact
			(id, artifact_type, name, name_normalized, url, download_url,
			 created_at, updated_at,
			 dataset_name, dataset_url, dataset_id,
			 code_name, code_url, code_id, rating)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			name_normalized = EXCLUDED.name_normalized,
			url = EXCLUDED.url,
			download_url = EXCLUDED.download_url,
			updated_at = EXCLUDED.updated_at,
			dataset_name = EXCLUDED.dataset_name,
			dataset_url = EXCLUDED.dataset_url,
			dataset_id = EXCLUDED.dataset_id,
			code_name = EXCLUDED.code_name,
			code_url = EXCLUDED.code_url,
			code_id = EXCLUDED.code_id,
			rating = EXCLUDED.rating
	`
	_, err := r.pool.Exec(ctx, query,
		rec.Artifact.ID, string(rec.Artifact.Type),
		rec.Artifact.Name, rec.Artifact.NormalizedName(),
		rec.Artifact.URL, rec.Artifact.DownloadURL,
		rec.Artifact.CreatedAt, rec.Artifact.UpdatedAt,
		rec.Links.DatasetName, rec.Links.DatasetURL, rec.Links.DatasetID,
		rec.Links.CodeName, rec.Links.CodeURL, rec.Links.CodeID,
		ratingJSON,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrArtifactExists
		}
		return fmt.Errorf("save artifact: %w", err)
	}
	return nil
}

func (r *artifactRepo) Get(ctx context.Context, t domain.ArtifactType, id string) (*domain.ArtifactRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM artifact WHERE id = $1 AND artifact_type = $2`, artifactColumns)
	rec, err := scanArtifact(r.pool.QueryRow(ctx, query, id, string(t)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrArtifactNotFound
		}
		return nil, fmt.Errorf("get artifact: %w", err)
	}
	return rec, nil
}

func (r *artifactRepo) Delete(ctx context.Context, t domain.ArtifactType, id string) (bool, error) {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM artifact WHERE id = $1 AND artifact_type = $2`, id, string(t))
	if err != nil {
		return false, fmt.Errorf("delete artifact: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func (r *artifactRepo) ExistsByURL(ctx context.Context, t domain.ArtifactType, url string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM artifact WHERE artifact_type = $1 AND url = $2)`,
		string(t), url).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check artifact url: %w", err)
	}
	return exists, nil
}

func (r *artifactRepo) List(ctx context.Context, t domain.ArtifactType) ([]*domain.ArtifactRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM artifact
		WHERE artifact_type = $1
		ORDER BY created_at ASC, id ASC
	`, artifactColumns)

	rows, err := r.pool.Query(ctx, query, string(t))
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}
	defer rows.Close()

	return collectArtifacts(rows)
}

func (r *artifactRepo) FindByName(ctx context.Context, t domain.ArtifactType, normalized string) (*domain.ArtifactRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM artifact
		WHERE artifact_type = $1 AND name_normalized = $2
		ORDER BY created_at ASC, id ASC
		LIMIT 1
	`, artifactColumns)

	rec, err := scanArtifact(r.pool.QueryRow(ctx, query, string(t), normalized))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrArtifactNotFound
		}
		return nil, fmt.Errorf("find artifact by name: %w", err)
	}
	return rec, nil
}

func (r *artifactRepo) ListModelsByHint(ctx context.Context, target domain.LinkTarget, normalized string) ([]*domain.ArtifactRecord, error) {
	hintCol, idCol := linkColumns(target)
	query := fmt.Sprintf(`
		SELECT %s FROM artifact
		WHERE artifact_type = 'model'
			AND COALESCE(%s, '') = ''
			AND lower(btrim(COALESCE(%s, ''))) = $1
			AND COALESCE(%s, '') <> ''
		ORDER BY created_at ASC, id ASC
	`, artifactColumns, idCol, hintCol, hintCol)

	rows, err := r.pool.Query(ctx, query, normalized)
	if err != nil {
		return nil, fmt.Errorf("list models by hint: %w", err)
	}
	defer rows.Close()

	return collectArtifacts(rows)
}

func (r *artifactRepo) ListModelsByLink(ctx context.Context, target domain.LinkTarget, id string) ([]*domain.ArtifactRecord, error) {
	_, idCol := linkColumns(target)
	query := fmt.Sprintf(`
		SELECT %s FROM artifact
		WHERE artifact_type = 'model' AND %s = $1
		ORDER BY created_at ASC, id ASC
	`, artifactColumns, idCol)

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("list models by link: %w", err)
	}
	defer rows.Close()

	return collectArtifacts(rows)
}

func (r *artifactRepo) Reset(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `TRUNCATE artifact`); err != nil {
		return fmt.Errorf("reset artifacts: %w", err)
	}
	return nil
}

func linkColumns(target domain.LinkTarget) (hintCol, idCol string) {
	if target == domain.LinkCode {
		return "code_name", "code_id"
	}
	return "dataset_name", "dataset_id"
}

func scanArtifact(row pgx.Row) (*domain.ArtifactRecord, error) {
	rec := &domain.ArtifactRecord{}
	var artifactType string
	var ratingJSON []byte

	err := row.Scan(
		&rec.Artifact.ID, &artifactType, &rec.Artifact.Name, &rec.Artifact.URL,
		&rec.Artifact.DownloadURL,
		&rec.Artifact.CreatedAt, &rec.Artifact.UpdatedAt,
		&rec.Links.DatasetName, &rec.Links.DatasetURL, &rec.Links.DatasetID,
		&rec.Links.CodeName, &rec.Links.CodeURL, &rec.Links.CodeID,
		&ratingJSON,
	)
	if err != nil {
		return nil, err
	}

	rec.Artifact.Type = domain.ArtifactType(artifactType)
	if len(ratingJSON) > 0 {
		rec.Rating = &domain.ModelRating{}
		if err := json.Unmarshal(ratingJSON, rec.Rating); err != nil {
			return nil, fmt.Errorf("unmarshal rating: %w", err)
		}
	}
	return rec, nil
}

func collectArtifacts(rows pgx.Rows) ([]*domain.ArtifactRecord, error) {
	var recs []*domain.ArtifactRecord
	for rows.Next() {
		rec, err := scanArtifact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan artifact row: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artifact rows: %w", err)
	}
	return recs, nil
}
