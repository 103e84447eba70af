package scoring

import (
	"fmt"
	"math"
	"strings"
)

// Liveness score thresholds for the deepfake heuristic.
const (
	livenessLowThreshold      = 60
	livenessModerateThreshold = 75
)

// Deepfake confidence contribution per indicator severity.
const (
	highSeverityWeight   = 30
	mediumSeverityWeight = 15
)

// AssessDeepfakeRisk evaluates liveness signals and collaborator-stated
// concerns into a deepfake probability and a recommendation. indicators
// and concerns are optional; the function is pure and never fails.
func AssessDeepfakeRisk(livenessScore float64, indicators *LivenessIndicators, concerns []string) DeepfakeAnalysis {
	found := []DeepfakeIndicator{}

	if indicators != nil {
		if !indicators.NaturalLighting {
			found = append(found, DeepfakeIndicator{
				Type:        "Unnatural Lighting",
				Severity:    SeverityMedium,
				Description: "Lighting on the face is inconsistent with a natural capture environment",
			})
		}
		if !indicators.DepthCues {
			found = append(found, DeepfakeIndicator{
				Type:        "Missing Depth Cues",
				Severity:    SeverityHigh,
				Description: "Image lacks the depth variation expected of a live three-dimensional face",
			})
		}
		if !indicators.SkinTexture {
			found = append(found, DeepfakeIndicator{
				Type:        "Flat Skin Texture",
				Severity:    SeverityHigh,
				Description: "Skin surface is unnaturally smooth, a common artifact of generated faces",
			})
		}
		if !indicators.EyeReflection {
			found = append(found, DeepfakeIndicator{
				Type:        "Absent Eye Reflection",
				Severity:    SeverityMedium,
				Description: "Eyes show no corneal reflection consistent with the scene lighting",
			})
		}
	}

	if livenessScore < livenessLowThreshold {
		found = append(found, DeepfakeIndicator{
			Type:        "Low Liveness Score",
			Severity:    SeverityHigh,
			Description: fmt.Sprintf("Liveness confidence %.0f is below the acceptable threshold", livenessScore),
		})
	} else if livenessScore < livenessModerateThreshold {
		found = append(found, DeepfakeIndicator{
			Type:        "Moderate Liveness Concern",
			Severity:    SeverityMedium,
			Description: fmt.Sprintf("Liveness confidence %.0f is below the optimal threshold", livenessScore),
		})
	}

	for _, concern := range concerns {
		lower := strings.ToLower(concern)
		switch {
		case strings.Contains(lower, "deepfake") || strings.Contains(lower, "synthetic"):
			found = append(found, DeepfakeIndicator{
				Type:        "AI Detection Alert",
				Severity:    SeverityHigh,
				Description: concern,
			})
		case strings.Contains(lower, "quality") || strings.Contains(lower, "blur"):
			found = append(found, DeepfakeIndicator{
				Type:        "Image Quality Issue",
				Severity:    SeverityLow,
				Description: concern,
			})
		}
	}

	var highCount, mediumCount int
	for _, indicator := range found {
		switch indicator.Severity {
		case SeverityHigh:
			highCount++
		case SeverityMedium:
			mediumCount++
		}
	}

	confidence := float64(highCount*highSeverityWeight+mediumCount*mediumSeverityWeight) + (100 - livenessScore)
	if confidence > 100 {
		confidence = 100
	}
	if confidence < 0 {
		confidence = 0
	}
	score := int(math.Round(confidence))

	return DeepfakeAnalysis{
		DeepfakeConfidence: score,
		IsLikelyDeepfake:   score > 50,
		Indicators:         found,
		Recommendation:     recommendationForConfidence(score),
	}
}

func recommendationForConfidence(confidence int) Recommendation {
	switch {
	case confidence > 70:
		return RecommendationReject
	case confidence > 40:
		return RecommendationReview
	default:
		return RecommendationSafe
	}
}
