package ports

import (
	"context"

	"artifact-registry-service/internal/core/domain"
)

// Metric indices into ScoreReport.Metrics. The upstream scorer emits the
// eleven sub-scores in this fixed order.
const (
	MetricSize = iota
	MetricLicense
	MetricRampUp
	MetricBusFactor
	MetricDatasetAndCode
	MetricDatasetQuality
	MetricCodeQuality
	MetricPerformanceClaims
	MetricReproducibility
	MetricReviewedness
	MetricTree

	MetricCount = 11
)

// ScoreReport is what the scoring collaborator returns for a model URL:
// the ordered sub-scores, optional per-metric latencies (same order), the
// size breakdown, and dataset/code hints extracted from the model card.
type ScoreReport struct {
	Metrics          []float64        `json:"metrics"`
	Latencies        []float64        `json:"latencies,omitempty"`
	SizeScore        domain.SizeScore `json:"size_score"`
	SizeScoreLatency float64          `json:"size_score_latency"`

	DatasetName string `json:"dataset_name,omitempty"`
	DatasetURL  string `json:"dataset_url,omitempty"`
	CodeName    string `json:"code_name,omitempty"`
	CodeURL     string `json:"code_url,omitempty"`
}

// ModelScorer is the output port to the metadata/metric collaborator. The
// core never performs this I/O itself; the HTTP layer calls the scorer before
// invoking a model write.
type ModelScorer interface {
	Score(ctx context.Context, modelURL string) (*ScoreReport, error)
	IsAvailable() bool
}
