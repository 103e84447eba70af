package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestComputeRiskNoDocument(t *testing.T) {
	assessment := ComputeRisk(nil, nil, nil)

	assert.Equal(t, 50, assessment.RiskScore)
	assert.Equal(t, VerdictFlagged, assessment.Verdict)
	assert.Len(t, assessment.Factors, 1)
	assert.Equal(t, "OCR Data", assessment.Factors[0].Name)
	assert.Equal(t, float64(100), assessment.Factors[0].Impact)
	assert.Equal(t, FactorBad, assessment.Factors[0].Status)
}

func TestComputeRiskPerfectInputs(t *testing.T) {
	doc := cleanDocument()
	doc.Confidence = 1.0

	assessment := ComputeRisk(doc, floatPtr(100), floatPtr(100))

	assert.Equal(t, 0, assessment.RiskScore)
	assert.Equal(t, VerdictVerified, assessment.Verdict)

	names := make([]string, len(assessment.Factors))
	for i, f := range assessment.Factors {
		names[i] = f.Name
		assert.Equal(t, FactorGood, f.Status)
	}
	assert.Equal(t, []string{
		"OCR Confidence",
		"Security Elements",
		"Data Completeness",
		"Biometric Match",
		"Liveness Check",
	}, names)
}

func TestComputeRiskOptionalFactorsOmitted(t *testing.T) {
	doc := cleanDocument()
	doc.Confidence = 1.0

	assessment := ComputeRisk(doc, nil, nil)
	assert.Len(t, assessment.Factors, 3)

	assessment = ComputeRisk(doc, floatPtr(80), nil)
	assert.Len(t, assessment.Factors, 4)
	assert.Equal(t, "Biometric Match", assessment.Factors[3].Name)
}

func TestVerdictBoundaries(t *testing.T) {
	assert.Equal(t, VerdictVerified, verdictForScore(25))
	assert.Equal(t, VerdictFlagged, verdictForScore(26))
	assert.Equal(t, VerdictFlagged, verdictForScore(55))
	assert.Equal(t, VerdictRejected, verdictForScore(56))
}

func TestComputeRiskWorstCaseWithoutOptionalScores(t *testing.T) {
	// Confidence 0, no markers, no structured data. Every deduction fires
	// (30+15+10+5+10+5+5+20), so the validation score is 0 and the weighted
	// sum is 100*0.30 + 60*0.25 + 100*0.20 = 65. Missing biometric and
	// liveness weights are not redistributed, which caps the achievable risk.
	doc := &ExtractedDocument{Confidence: 0}

	assessment := ComputeRisk(doc, nil, nil)
	assert.Equal(t, 65, assessment.RiskScore)
	assert.Equal(t, VerdictRejected, assessment.Verdict)
}

func TestComputeRiskWithRenormalization(t *testing.T) {
	doc := &ExtractedDocument{Confidence: 0}

	weights := DefaultRiskWeights()
	weights.Renormalize = true

	// Same inputs as the worst case above, rescaled over the 0.75 weight
	// actually in play: 65 / 0.75 = 86.67 -> 87.
	assessment := ComputeRiskWith(weights, doc, nil, nil)
	assert.Equal(t, 87, assessment.RiskScore)
	assert.Equal(t, VerdictRejected, assessment.Verdict)
}

func TestComputeRiskDeterministic(t *testing.T) {
	doc := cleanDocument()
	doc.Confidence = 0.8

	first := ComputeRisk(doc, floatPtr(72), floatPtr(65))
	second := ComputeRisk(doc, floatPtr(72), floatPtr(65))

	assert.Equal(t, first, second)
}

func TestComputeRiskFactorStatuses(t *testing.T) {
	doc := cleanDocument()
	doc.Confidence = 0.75 // raw risk 25 -> warning

	assessment := ComputeRisk(doc, floatPtr(55), nil) // biometric risk 45 -> bad

	assert.Equal(t, FactorWarning, assessment.Factors[0].Status)
	assert.Equal(t, FactorGood, assessment.Factors[1].Status)
	assert.Equal(t, FactorBad, assessment.Factors[3].Status)
}

func TestDefaultRiskWeightsSumToOne(t *testing.T) {
	w := DefaultRiskWeights()
	sum := w.OCRConfidence + w.SecurityElements + w.DataCompleteness + w.BiometricMatch + w.LivenessCheck
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.False(t, w.Renormalize)
}
