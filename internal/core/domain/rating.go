package domain

// SizeScore breaks model size suitability down by deployment target.
type SizeScore struct {
	RaspberryPi float64 `json:"raspberry_pi"`
	JetsonNano  float64 `json:"jetson_nano"`
	DesktopPC   float64 `json:"desktop_pc"`
	AWSServer   float64 `json:"aws_server"`
}

// ModelRating holds the eleven quality sub-scores with their measured
// latencies and the weighted net score. Latencies are informational only;
// NetScore is always recomputed from the sub-scores, never set directly.
type ModelRating struct {
	Name     string `json:"name"`
	Category string `json:"category"`

	NetScore        float64 `json:"net_score"`
	NetScoreLatency float64 `json:"net_score_latency"`

	RampUpTime               float64 `json:"ramp_up_time"`
	RampUpTimeLatency        float64 `json:"ramp_up_time_latency"`
	BusFactor                float64 `json:"bus_factor"`
	BusFactorLatency         float64 `json:"bus_factor_latency"`
	PerformanceClaims        float64 `json:"performance_claims"`
	PerformanceClaimsLatency float64 `json:"performance_claims_latency"`
	License                  float64 `json:"license"`
	LicenseLatency           float64 `json:"license_latency"`
	DatasetAndCodeScore      float64 `json:"dataset_and_code_score"`
	DatasetAndCodeLatency    float64 `json:"dataset_and_code_score_latency"`
	DatasetQuality           float64 `json:"dataset_quality"`
	DatasetQualityLatency    float64 `json:"dataset_quality_latency"`
	CodeQuality              float64 `json:"code_quality"`
	CodeQualityLatency       float64 `json:"code_quality_latency"`
	Reproducibility          float64 `json:"reproducibility"`
	ReproducibilityLatency   float64 `json:"reproducibility_latency"`
	Reviewedness             float64 `json:"reviewedness"`
	ReviewednessLatency      float64 `json:"reviewedness_latency"`
	TreeScore                float64 `json:"tree_score"`
	TreeScoreLatency         float64 `json:"tree_score_latency"`

	SizeScore        SizeScore `json:"size_score"`
	SizeScoreLatency float64   `json:"size_score_latency"`
}

// CostEntry is the derived deployment cost of one artifact.
type CostEntry struct {
	StandaloneCost float64 `json:"standalone_cost"`
	TotalCost      float64 `json:"total_cost"`
}

// ArtifactCost maps artifact id to its cost entry.
type ArtifactCost map[string]CostEntry
