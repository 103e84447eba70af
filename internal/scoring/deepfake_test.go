package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func allLivenessSignals(v bool) *LivenessIndicators {
	return &LivenessIndicators{
		NaturalLighting: v,
		DepthCues:       v,
		SkinTexture:     v,
		EyeReflection:   v,
	}
}

func TestAssessDeepfakeRiskClean(t *testing.T) {
	analysis := AssessDeepfakeRisk(100, allLivenessSignals(true), nil)

	assert.Empty(t, analysis.Indicators)
	assert.Equal(t, 0, analysis.DeepfakeConfidence)
	assert.False(t, analysis.IsLikelyDeepfake)
	assert.Equal(t, RecommendationSafe, analysis.Recommendation)
}

func TestAssessDeepfakeRiskWorstCase(t *testing.T) {
	analysis := AssessDeepfakeRisk(50, allLivenessSignals(false), []string{"possible deepfake detected"})

	// Four failed signals, the low-score indicator and the AI alert.
	assert.GreaterOrEqual(t, len(analysis.Indicators), 5)
	assert.Equal(t, 100, analysis.DeepfakeConfidence)
	assert.True(t, analysis.IsLikelyDeepfake)
	assert.Equal(t, RecommendationReject, analysis.Recommendation)
}

func TestAssessDeepfakeRiskSignalSeverities(t *testing.T) {
	analysis := AssessDeepfakeRisk(100, allLivenessSignals(false), nil)

	assert.Len(t, analysis.Indicators, 4)
	assert.Equal(t, SeverityMedium, analysis.Indicators[0].Severity) // lighting
	assert.Equal(t, SeverityHigh, analysis.Indicators[1].Severity)   // depth cues
	assert.Equal(t, SeverityHigh, analysis.Indicators[2].Severity)   // skin texture
	assert.Equal(t, SeverityMedium, analysis.Indicators[3].Severity) // eye reflection
}

func TestAssessDeepfakeRiskLivenessThresholds(t *testing.T) {
	analysis := AssessDeepfakeRisk(59, nil, nil)
	assert.Len(t, analysis.Indicators, 1)
	assert.Equal(t, "Low Liveness Score", analysis.Indicators[0].Type)
	assert.Equal(t, SeverityHigh, analysis.Indicators[0].Severity)

	analysis = AssessDeepfakeRisk(70, nil, nil)
	assert.Len(t, analysis.Indicators, 1)
	assert.Equal(t, "Moderate Liveness Concern", analysis.Indicators[0].Type)
	assert.Equal(t, SeverityMedium, analysis.Indicators[0].Severity)

	analysis = AssessDeepfakeRisk(75, nil, nil)
	assert.Empty(t, analysis.Indicators)
}

func TestAssessDeepfakeRiskConcernClassification(t *testing.T) {
	analysis := AssessDeepfakeRisk(100, nil, []string{
		"Synthetic texture around the jawline",
		"image quality is poor",
		"subject is wearing glasses",
	})

	assert.Len(t, analysis.Indicators, 2)
	assert.Equal(t, "AI Detection Alert", analysis.Indicators[0].Type)
	assert.Equal(t, SeverityHigh, analysis.Indicators[0].Severity)
	assert.Equal(t, "Synthetic texture around the jawline", analysis.Indicators[0].Description)
	assert.Equal(t, "Image Quality Issue", analysis.Indicators[1].Type)
	assert.Equal(t, SeverityLow, analysis.Indicators[1].Severity)
}

func TestAssessDeepfakeRiskConfidenceArithmetic(t *testing.T) {
	// Moderate concern at liveness 70: one medium indicator, so
	// 15 + (100 - 70) = 45. Above the review line, below likely-deepfake.
	analysis := AssessDeepfakeRisk(70, nil, nil)

	assert.Equal(t, 45, analysis.DeepfakeConfidence)
	assert.False(t, analysis.IsLikelyDeepfake)
	assert.Equal(t, RecommendationReview, analysis.Recommendation)
}

func TestAssessDeepfakeRiskRoundsFractionalConfidence(t *testing.T) {
	// Liveness 70.5: one medium indicator, 15 + 29.5 = 44.5, which rounds
	// to 45 rather than truncating to 44.
	analysis := AssessDeepfakeRisk(70.5, nil, nil)

	assert.Equal(t, 45, analysis.DeepfakeConfidence)
	assert.Equal(t, RecommendationReview, analysis.Recommendation)
}

func TestAssessDeepfakeRiskLowSeverityDoesNotScore(t *testing.T) {
	analysis := AssessDeepfakeRisk(100, nil, []string{"slight blur at the edges"})

	assert.Len(t, analysis.Indicators, 1)
	assert.Equal(t, 0, analysis.DeepfakeConfidence)
	assert.Equal(t, RecommendationSafe, analysis.Recommendation)
}
