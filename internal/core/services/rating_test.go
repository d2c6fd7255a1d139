package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"artifact-registry-service/internal/core/domain"
	ports "artifact-registry-service/internal/core/ports/output"
)

func allMetrics(v float64) []float64 {
	m := make([]float64, ports.MetricCount)
	for i := range m {
		m[i] = v
	}
	return m
}

func TestRatingService_NetScore_AllOnes(t *testing.T) {
	svc := NewRatingService()

	net, err := svc.NetScore(allMetrics(1.0))
	assert.NoError(t, err)
	assert.Equal(t, 1.0, net)
}

func TestRatingService_NetScore_AllZeros(t *testing.T) {
	svc := NewRatingService()

	net, err := svc.NetScore(allMetrics(0.0))
	assert.NoError(t, err)
	assert.Equal(t, 0.0, net)
}

func TestRatingService_NetScore_SingleMetric(t *testing.T) {
	svc := NewRatingService()

	m := allMetrics(0.0)
	m[ports.MetricLicense] = 1.0
	net, err := svc.NetScore(m)
	assert.NoError(t, err)
	assert.Equal(t, 0.09, net)
}

func TestRatingService_NetScore_WrongCount(t *testing.T) {
	svc := NewRatingService()

	_, err := svc.NetScore(make([]float64, 10))
	assert.ErrorIs(t, err, domain.ErrMetricComputation)

	_, err = svc.NetScore(make([]float64, 12))
	assert.ErrorIs(t, err, domain.ErrMetricComputation)

	_, err = svc.NetScore(nil)
	assert.ErrorIs(t, err, domain.ErrMetricComputation)
}

func TestRatingService_Compose(t *testing.T) {
	svc := NewRatingService()

	m := allMetrics(0.0)
	m[ports.MetricLicense] = 1.0
	m[ports.MetricRampUp] = 0.5
	report := &ports.ScoreReport{
		Metrics:   m,
		Latencies: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
		SizeScore: domain.SizeScore{RaspberryPi: 0.25, JetsonNano: 0.5, DesktopPC: 0.75, AWSServer: 1.0},
	}

	rating, err := svc.Compose("bert-base", report)
	assert.NoError(t, err)
	assert.Equal(t, "bert-base", rating.Name)
	assert.Equal(t, "MODEL", rating.Category)
	assert.Equal(t, 1.0, rating.License)
	assert.Equal(t, 0.5, rating.RampUpTime)
	assert.Equal(t, 0.14, rating.NetScore)
	assert.Equal(t, 2.0, rating.LicenseLatency)
	assert.Equal(t, 0.25, rating.SizeScore.RaspberryPi)
}

func TestRatingService_Compose_NoLatencies(t *testing.T) {
	svc := NewRatingService()

	rating, err := svc.Compose("m", &ports.ScoreReport{Metrics: allMetrics(1.0)})
	assert.NoError(t, err)
	assert.Equal(t, 0.0, rating.LicenseLatency)
	assert.Equal(t, 0.0, rating.TreeScoreLatency)
}

func TestRatingService_Compose_NilReport(t *testing.T) {
	svc := NewRatingService()

	_, err := svc.Compose("m", nil)
	assert.ErrorIs(t, err, domain.ErrMetricComputation)
}

func TestRatingService_Cost_Model(t *testing.T) {
	svc := NewRatingService()

	rec := &domain.ArtifactRecord{
		Artifact: domain.Artifact{Type: domain.ArtifactTypeModel},
		Rating:   &domain.ModelRating{SizeScore: domain.SizeScore{RaspberryPi: 0.5}},
	}

	entry, err := svc.Cost(rec)
	assert.NoError(t, err)
	assert.Equal(t, 500.0, entry.StandaloneCost)
	assert.Equal(t, 500.0, entry.TotalCost)
}

func TestRatingService_Cost_PerfectFit(t *testing.T) {
	svc := NewRatingService()

	rec := &domain.ArtifactRecord{
		Artifact: domain.Artifact{Type: domain.ArtifactTypeModel},
		Rating:   &domain.ModelRating{SizeScore: domain.SizeScore{RaspberryPi: 1.0}},
	}

	entry, err := svc.Cost(rec)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, entry.StandaloneCost)
}

func TestRatingService_Cost_NonModel(t *testing.T) {
	svc := NewRatingService()

	entry, err := svc.Cost(&domain.ArtifactRecord{
		Artifact: domain.Artifact{Type: domain.ArtifactTypeDataset},
	})
	assert.NoError(t, err)
	assert.Equal(t, 0.0, entry.StandaloneCost)
	assert.Equal(t, 0.0, entry.TotalCost)
}

func TestRatingService_Cost_UnratedModel(t *testing.T) {
	svc := NewRatingService()

	_, err := svc.Cost(&domain.ArtifactRecord{
		Artifact: domain.Artifact{Type: domain.ArtifactTypeModel},
	})
	assert.ErrorIs(t, err, domain.ErrRatingRequired)
}
