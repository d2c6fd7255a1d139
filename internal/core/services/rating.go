package services

import (
	"math"

	"artifact-registry-service/internal/core/domain"
	ports "artifact-registry-service/internal/core/ports/output"
)

// Fixed net-score weights. They sum to 1.00.
const (
	weightLicense           = 0.09
	weightRampUp            = 0.10
	weightSize              = 0.11
	weightDatasetQuality    = 0.13
	weightBusFactor         = 0.10
	weightDatasetAndCode    = 0.13
	weightCodeQuality       = 0.10
	weightPerformanceClaims = 0.09
	weightReproducibility   = 0.05
	weightReviewedness      = 0.05
	weightTree              = 0.05
)

// costScale converts raspberry-pi unsuitability into a monetary-style figure.
const costScale = 1000.0

type RatingService struct{}

func NewRatingService() *RatingService {
	return &RatingService{}
}

// NetScore aggregates the eleven sub-scores under the fixed weights, rounded
// to two decimals. Anything but exactly eleven values is a dependency
// failure: the upstream metric computation did not complete.
func (s *RatingService) NetScore(metrics []float64) (float64, error) {
	if len(metrics) != ports.MetricCount {
		return 0, domain.ErrMetricComputation
	}

	sum := weightLicense*metrics[ports.MetricLicense] +
		weightRampUp*metrics[ports.MetricRampUp] +
		weightSize*metrics[ports.MetricSize] +
		weightDatasetQuality*metrics[ports.MetricDatasetQuality] +
		weightBusFactor*metrics[ports.MetricBusFactor] +
		weightDatasetAndCode*metrics[ports.MetricDatasetAndCode] +
		weightCodeQuality*metrics[ports.MetricCodeQuality] +
		weightPerformanceClaims*metrics[ports.MetricPerformanceClaims] +
		weightReproducibility*metrics[ports.MetricReproducibility] +
		weightReviewedness*metrics[ports.MetricReviewedness] +
		weightTree*metrics[ports.MetricTree]

	return round2(sum), nil
}

// Compose builds the stored rating for a model from a scorer report. No
// partial rating is ever produced: an invalid report fails before anything
// is persisted.
func (s *RatingService) Compose(name string, report *ports.ScoreReport) (*domain.ModelRating, error) {
	if report == nil {
		return nil, domain.ErrMetricComputation
	}

	net, err := s.NetScore(report.Metrics)
	if err != nil {
		return nil, err
	}

	lat := func(i int) float64 {
		if i < len(report.Latencies) {
			return report.Latencies[i]
		}
		return 0
	}

	m := report.Metrics
	return &domain.ModelRating{
		Name:     name,
		Category: "MODEL",

		NetScore: net,

		License:                  m[ports.MetricLicense],
		LicenseLatency:           lat(ports.MetricLicense),
		RampUpTime:               m[ports.MetricRampUp],
		RampUpTimeLatency:        lat(ports.MetricRampUp),
		BusFactor:                m[ports.MetricBusFactor],
		BusFactorLatency:         lat(ports.MetricBusFactor),
		DatasetAndCodeScore:      m[ports.MetricDatasetAndCode],
		DatasetAndCodeLatency:    lat(ports.MetricDatasetAndCode),
		DatasetQuality:           m[ports.MetricDatasetQuality],
		DatasetQualityLatency:    lat(ports.MetricDatasetQuality),
		CodeQuality:              m[ports.MetricCodeQuality],
		CodeQualityLatency:       lat(ports.MetricCodeQuality),
		PerformanceClaims:        m[ports.MetricPerformanceClaims],
		PerformanceClaimsLatency: lat(ports.MetricPerformanceClaims),
		Reproducibility:          m[ports.MetricReproducibility],
		ReproducibilityLatency:   lat(ports.MetricReproducibility),
		Reviewedness:             m[ports.MetricReviewedness],
		ReviewednessLatency:      lat(ports.MetricReviewedness),
		TreeScore:                m[ports.MetricTree],
		TreeScoreLatency:         lat(ports.MetricTree),

		SizeScore:        report.SizeScore,
		SizeScoreLatency: report.SizeScoreLatency,
	}, nil
}

// Cost derives the deployment cost entry for a record. Raspberry-pi
// suitability is treated as inversely proportional to cost on constrained
// hardware; non-model artifacts cost a flat zero.
func (s *RatingService) Cost(rec *domain.ArtifactRecord) (domain.CostEntry, error) {
	if rec.Artifact.Type != domain.ArtifactTypeModel {
		return domain.CostEntry{}, nil
	}
	if rec.Rating == nil {
		return domain.CostEntry{}, domain.ErrRatingRequired
	}

	cost := round1((1.0 - rec.Rating.SizeScore.RaspberryPi) * costScale)
	if cost < 0 {
		cost = 0
	}
	return domain.CostEntry{StandaloneCost: cost, TotalCost: cost}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
