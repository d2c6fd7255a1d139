package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type ArtifactType string

const (
	ArtifactTypeModel   ArtifactType = "model"
	ArtifactTypeDataset ArtifactType = "dataset"
	ArtifactTypeCode    ArtifactType = "code"
)

// AllArtifactTypes is the default kind set for queries that do not restrict kinds.
var AllArtifactTypes = []ArtifactType{ArtifactTypeModel, ArtifactTypeDataset, ArtifactTypeCode}

func ParseArtifactType(s string) (ArtifactType, error) {
	switch ArtifactType(strings.ToLower(s)) {
	case ArtifactTypeModel:
		return ArtifactTypeModel, nil
	case ArtifactTypeDataset:
		return ArtifactTypeDataset, nil
	case ArtifactTypeCode:
		return ArtifactTypeCode, nil
	default:
		return "", ErrInvalidArtifactType
	}
}

// NewArtifactID returns a globally unique opaque identifier, safe to embed in
// URL paths. IDs are drawn from one generator regardless of artifact kind.
func NewArtifactID() string {
	return uuid.New().String()
}

// NormalizeName trims leading/trailing whitespace and lowercases. Internal
// whitespace and punctuation are preserved, so names differing only inside
// the string stay distinct.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DeriveNameFromURL falls back to the last path segment of the source URL
// when a registration carries no display name.
func DeriveNameFromURL(url string) string {
	stripped := strings.TrimRight(strings.TrimSpace(url), "/")
	if stripped == "" {
		return "artifact"
	}
	parts := strings.Split(stripped, "/")
	return parts[len(parts)-1]
}

type Artifact struct {
	ID          string       `json:"id"`
	Type        ArtifactType `json:"type"`
	Name        string       `json:"name"`
	URL         string       `json:"url"`
	DownloadURL string       `json:"download_url,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (a Artifact) NormalizedName() string {
	return NormalizeName(a.Name)
}

// ModelLinks carries a model's references to its dataset and code. The Name
// fields are unconfirmed hints from the model card; the ID/URL pairs are
// resolved links to registered artifacts and are always set or cleared
// together. Empty string means absent.
type ModelLinks struct {
	DatasetName string `json:"dataset_name,omitempty"`
	DatasetURL  string `json:"dataset_url,omitempty"`
	DatasetID   string `json:"dataset_id,omitempty"`
	CodeName    string `json:"code_name,omitempty"`
	CodeURL     string `json:"code_url,omitempty"`
	CodeID      string `json:"code_id,omitempty"`
}

// LinkTarget selects which side of a model's links an operation touches.
type LinkTarget string

const (
	LinkDataset LinkTarget = "dataset"
	LinkCode    LinkTarget = "code"
)

// ArtifactKindFor maps a link target to the artifact kind it references.
func (t LinkTarget) ArtifactKind() ArtifactType {
	if t == LinkCode {
		return ArtifactTypeCode
	}
	return ArtifactTypeDataset
}

// ArtifactRecord is the stored unit: the artifact itself plus, for models,
// link state and the computed rating.
type ArtifactRecord struct {
	Artifact Artifact     `json:"artifact"`
	Links    ModelLinks   `json:"links,omitempty"`
	Rating   *ModelRating `json:"rating,omitempty"`
}

// Clone returns a deep copy so stored records never alias caller memory.
func (r *ArtifactRecord) Clone() *ArtifactRecord {
	if r == nil {
		return nil
	}
	out := *r
	if r.Rating != nil {
		rating := *r.Rating
		out.Rating = &rating
	}
	return &out
}
