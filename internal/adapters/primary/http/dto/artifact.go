package dto

import (
	"artifact-registry-service/internal/core/domain"
)

// RegisterArtifactRequest is the registration payload: the canonical source
// url plus an optional display name override.
type RegisterArtifactRequest struct {
	URL  string `json:"url" binding:"required"`
	Name string `json:"name"`
}

// ArtifactMetadata is the wire identity of an artifact.
type ArtifactMetadata struct {
	Name string `json:"name"`
	ID   string `json:"id"`
	Type string `json:"type"`
}

// ArtifactData carries the artifact's source locations.
type ArtifactData struct {
	URL         string `json:"url"`
	DownloadURL string `json:"download_url,omitempty"`
}

// ArtifactResponse is the metadata/data envelope returned by fetch, register
// and update, and accepted as the full replacement payload on update.
type ArtifactResponse struct {
	Metadata ArtifactMetadata `json:"metadata"`
	Data     ArtifactData     `json:"data"`
}

// ArtifactQueryRequest is one name-match request of a batch query.
type ArtifactQueryRequest struct {
	Name  string   `json:"name" binding:"required"`
	Types []string `json:"types"`
}

// RegexSearchRequest is the payload of the regex search endpoint.
type RegexSearchRequest struct {
	Regex string `json:"regex"`
}

type CostEntryResponse struct {
	StandaloneCost float64 `json:"standalone_cost"`
	TotalCost      float64 `json:"total_cost"`
}

func ToArtifactResponse(a domain.Artifact) ArtifactResponse {
	return ArtifactResponse{
		Metadata: ArtifactMetadata{
			Name: a.Name,
			ID:   a.ID,
			Type: string(a.Type),
		},
		Data: ArtifactData{
			URL:         a.URL,
			DownloadURL: a.DownloadURL,
		},
	}
}

func ToArtifactMetadata(a domain.Artifact) ArtifactMetadata {
	return ArtifactMetadata{
		Name: a.Name,
		ID:   a.ID,
		Type: string(a.Type),
	}
}

func ToCostEntryResponse(e domain.CostEntry) CostEntryResponse {
	return CostEntryResponse{
		StandaloneCost: e.StandaloneCost,
		TotalCost:      e.TotalCost,
	}
}
