package scoring

import (
	"fmt"
	"strings"
)

// Confidence thresholds and score deductions for document validation.
// Deductions are independent and additive; the check order fixes message
// ordering so output is reproducible.
const (
	confidenceErrorThreshold   = 0.5
	confidenceWarningThreshold = 0.7
)

const errNoData = "No extracted data available for validation"

// ValidateDocument aggregates OCR confidence, structured-data checks and
// security-element checks into a single quality report. It is pure and
// total: a nil doc yields an invalid result with score 0, never an error.
func ValidateDocument(doc *ExtractedDocument) ValidationResult {
	result := ValidationResult{
		Errors:   []string{},
		Warnings: []string{},
	}

	if doc == nil {
		result.Errors = append(result.Errors, errNoData)
		return result
	}

	score := 100

	if doc.Confidence < confidenceErrorThreshold {
		result.Errors = append(result.Errors, "OCR confidence too low to trust extracted data")
		score -= 30
	} else if doc.Confidence < confidenceWarningThreshold {
		result.Warnings = append(result.Warnings, "OCR confidence below optimal threshold")
		score -= 15
	}

	student := ValidateStudentSection(doc.Structured)
	if !student.NameValid {
		result.Errors = append(result.Errors, "Student name is missing or too short")
		score -= 15
	}
	if !student.IndexNumberValid {
		result.Errors = append(result.Errors, "Index number format is not recognised")
		score -= 10
	}
	if !student.DOBValid {
		result.Warnings = append(result.Warnings, "Date of birth is missing or implausible")
		score -= 5
	}

	academic := ValidateAcademicSection(doc.Structured)
	if !academic.MeanGradeValid {
		result.Warnings = append(result.Warnings, "Mean grade is not a recognised KCSE grade")
		score -= 10
	}
	if !academic.SubjectsComplete {
		result.Warnings = append(result.Warnings, "Subject list is incomplete or missing core subjects")
		score -= 5
	}
	if !academic.PointsValid {
		result.Warnings = append(result.Warnings, "Subject points do not add up to the stated total")
		score -= 5
	}

	security := ValidateSecurityElements(doc.VerificationElements)
	if !security.HasSecurityFeatures {
		result.Errors = append(result.Errors, fmt.Sprintf(
			"Insufficient security features detected; missing: %s",
			strings.Join(security.Missing, ", ")))
		score -= 20
	} else if len(security.Missing) > 2 {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"Several security features not detected: %s",
			strings.Join(security.Missing, ", ")))
		score -= 10
	}

	if score < 0 {
		score = 0
	}
	result.Score = score
	result.IsValid = len(result.Errors) == 0
	return result
}
