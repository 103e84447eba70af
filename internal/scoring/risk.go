package scoring

import "math"

// RiskWeights is the factor weighting table for the risk engine. The five
// weights sum to 1.0, but the biometric and liveness terms only contribute
// when their inputs are supplied. With Renormalize false (the default and
// the observed behaviour of the production scorer), absent optional factors
// simply drop their weight, which structurally caps the achievable total
// risk. Set Renormalize to true to rescale the weighted sum over the
// factors actually present.
type RiskWeights struct {
	OCRConfidence    float64
	SecurityElements float64
	DataCompleteness float64
	BiometricMatch   float64
	LivenessCheck    float64
	Renormalize      bool
}

// DefaultRiskWeights returns the production weighting table.
func DefaultRiskWeights() RiskWeights {
	return RiskWeights{
		OCRConfidence:    0.30,
		SecurityElements: 0.25,
		DataCompleteness: 0.20,
		BiometricMatch:   0.15,
		LivenessCheck:    0.10,
	}
}

// Risk contributed per missing security marker.
const missingMarkerRisk = 15

// Verdict thresholds on the final rounded risk score.
const (
	verifiedMaxScore = 25
	flaggedMaxScore  = 55
)

// ComputeRisk scores a document with the default weights. biometricScore
// and livenessScore are optional [0,100] inputs; pass nil when the
// corresponding collaborator did not run.
func ComputeRisk(doc *ExtractedDocument, biometricScore, livenessScore *float64) RiskAssessment {
	return ComputeRiskWith(DefaultRiskWeights(), doc, biometricScore, livenessScore)
}

// ComputeRiskWith runs the weighted risk accumulation with an explicit
// weighting table. The function is pure: identical inputs always yield an
// identical assessment.
func ComputeRiskWith(weights RiskWeights, doc *ExtractedDocument, biometricScore, livenessScore *float64) RiskAssessment {
	factors := []RiskFactor{}

	var baseRisk, weightedRisk, usedWeight float64

	if doc == nil {
		// No extracted data at all: flat contribution, single factor.
		baseRisk = 50
		factors = append(factors, RiskFactor{
			Name:   "OCR Data",
			Impact: 100,
			Status: FactorBad,
		})
	} else {
		ocrRisk := 100 - doc.Confidence*100
		weightedRisk += ocrRisk * weights.OCRConfidence
		usedWeight += weights.OCRConfidence
		factors = append(factors, RiskFactor{
			Name:   "OCR Confidence",
			Impact: ocrRisk,
			Status: statusForRisk(ocrRisk),
		})

		security := ValidateSecurityElements(doc.VerificationElements)
		securityRisk := float64(len(security.Missing) * missingMarkerRisk)
		weightedRisk += securityRisk * weights.SecurityElements
		usedWeight += weights.SecurityElements
		factors = append(factors, RiskFactor{
			Name:   "Security Elements",
			Impact: securityRisk,
			Status: statusForRisk(securityRisk),
		})

		validation := ValidateDocument(doc)
		dataRisk := float64(100 - validation.Score)
		weightedRisk += dataRisk * weights.DataCompleteness
		usedWeight += weights.DataCompleteness
		factors = append(factors, RiskFactor{
			Name:   "Data Completeness",
			Impact: dataRisk,
			Status: statusForRisk(dataRisk),
		})
	}

	if biometricScore != nil {
		biometricRisk := 100 - *biometricScore
		weightedRisk += biometricRisk * weights.BiometricMatch
		usedWeight += weights.BiometricMatch
		factors = append(factors, RiskFactor{
			Name:   "Biometric Match",
			Impact: biometricRisk,
			Status: statusForRisk(biometricRisk),
		})
	}

	if livenessScore != nil {
		livenessRisk := 100 - *livenessScore
		weightedRisk += livenessRisk * weights.LivenessCheck
		usedWeight += weights.LivenessCheck
		factors = append(factors, RiskFactor{
			Name:   "Liveness Check",
			Impact: livenessRisk,
			Status: statusForRisk(livenessRisk),
		})
	}

	if weights.Renormalize && usedWeight > 0 {
		weightedRisk /= usedWeight
	}

	totalRisk := baseRisk + weightedRisk
	if totalRisk < 0 {
		totalRisk = 0
	}
	if totalRisk > 100 {
		totalRisk = 100
	}
	riskScore := int(math.Round(totalRisk))

	return RiskAssessment{
		RiskScore: riskScore,
		Verdict:   verdictForScore(riskScore),
		Factors:   factors,
	}
}

func statusForRisk(risk float64) FactorStatus {
	switch {
	case risk < 20:
		return FactorGood
	case risk < 40:
		return FactorWarning
	default:
		return FactorBad
	}
}

func verdictForScore(score int) Verdict {
	switch {
	case score <= verifiedMaxScore:
		return VerdictVerified
	case score <= flaggedMaxScore:
		return VerdictFlagged
	default:
		return VerdictRejected
	}
}
