package scoring

// SubjectGrade is one graded subject line from a certificate.
type SubjectGrade struct {
	Name   string `json:"name"`
	Grade  string `json:"grade"`
	Points *int   `json:"points,omitempty"`
}

// StructuredFields holds the structured data the extraction collaborator
// pulled out of a certificate. A nil *StructuredFields means extraction
// produced no structured data at all.
type StructuredFields struct {
	StudentName       string         `json:"student_name"`
	IndexNumber       string         `json:"index_number"`
	DateOfBirth       string         `json:"date_of_birth"`
	Gender            string         `json:"gender"`
	SchoolName        string         `json:"school_name"`
	SchoolCode        string         `json:"school_code"`
	County            string         `json:"county"`
	YearOfExam        string         `json:"year_of_exam"`
	CertificateNumber string         `json:"certificate_number"`
	Subjects          []SubjectGrade `json:"subjects"`
	MeanGrade         string         `json:"mean_grade"`
	MeanPoints        *float64       `json:"mean_points,omitempty"`
	TotalPoints       *int           `json:"total_points,omitempty"`
}

// SecurityMarkers reports which anti-fraud features the extraction
// collaborator detected on the document image.
type SecurityMarkers struct {
	HasWatermark     bool   `json:"has_watermark"`
	HasQRCode        bool   `json:"has_qr_code"`
	HasOfficialStamp bool   `json:"has_official_stamp"`
	HasSignature     bool   `json:"has_signature"`
	StampText        string `json:"stamp_text,omitempty"`
}

// ExtractedDocument is the full output of the OCR collaborator.
// Confidence is always present and in [0,1]; Structured and
// VerificationElements may be nil when extraction partially failed.
type ExtractedDocument struct {
	RawText              string            `json:"raw_text"`
	Structured           *StructuredFields `json:"structured,omitempty"`
	VerificationElements *SecurityMarkers  `json:"verification_elements,omitempty"`
	Confidence           float64           `json:"confidence"`
	Notes                string            `json:"notes,omitempty"`
}

// MatchVerdict is the face-comparison outcome reported by the biometric
// collaborator.
type MatchVerdict string

const (
	MatchVerdictMatch        MatchVerdict = "MATCH"
	MatchVerdictPartialMatch MatchVerdict = "PARTIAL_MATCH"
	MatchVerdictNoMatch      MatchVerdict = "NO_MATCH"
	MatchVerdictInconclusive MatchVerdict = "INCONCLUSIVE"
)

// LivenessIndicators are the per-signal liveness booleans reported by the
// biometric collaborator. A false value is an explicit negative finding.
type LivenessIndicators struct {
	NaturalLighting bool `json:"natural_lighting"`
	DepthCues       bool `json:"depth_cues"`
	SkinTexture     bool `json:"skin_texture"`
	EyeReflection   bool `json:"eye_reflection"`
}

// BiometricResult is the full output of the biometric collaborator.
type BiometricResult struct {
	MatchScore         int                 `json:"match_score"`
	MatchVerdict       MatchVerdict        `json:"match_verdict"`
	MatchingFeatures   []string            `json:"matching_features"`
	DifferingFeatures  []string            `json:"differing_features"`
	LivenessConfidence int                 `json:"liveness_confidence"`
	LivenessIndicators *LivenessIndicators `json:"liveness_indicators,omitempty"`
	Concerns           []string            `json:"concerns"`
	Recommendation     string              `json:"recommendation"`
}

// ValidationResult is the document-quality report produced by
// ValidateDocument. It is computed fresh on every call and never persisted.
type ValidationResult struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Score    int      `json:"score"`
}

// Verdict is the three-way outcome of a risk assessment. The storage layer
// additionally knows a "pending" verdict set by collaborators before scoring
// runs; the engine itself never emits it.
type Verdict string

const (
	VerdictVerified Verdict = "verified"
	VerdictFlagged  Verdict = "flagged"
	VerdictRejected Verdict = "rejected"
)

// FactorStatus classifies how much a single factor contributed to risk.
type FactorStatus string

const (
	FactorGood    FactorStatus = "good"
	FactorWarning FactorStatus = "warning"
	FactorBad     FactorStatus = "bad"
)

// RiskFactor is one named, weighted contributor to the overall risk score.
// Impact is the factor's raw (unweighted) risk in [0,100].
type RiskFactor struct {
	Name   string       `json:"name"`
	Impact float64      `json:"impact"`
	Status FactorStatus `json:"status"`
}

// RiskAssessment is the final output of the risk engine.
type RiskAssessment struct {
	RiskScore int          `json:"risk_score"`
	Verdict   Verdict      `json:"verdict"`
	Factors   []RiskFactor `json:"factors"`
}

// DeepfakeSeverity grades a single deepfake indicator.
type DeepfakeSeverity string

const (
	SeverityLow    DeepfakeSeverity = "low"
	SeverityMedium DeepfakeSeverity = "medium"
	SeverityHigh   DeepfakeSeverity = "high"
)

// DeepfakeIndicator is one suspicious finding from the liveness heuristic.
type DeepfakeIndicator struct {
	Type        string           `json:"type"`
	Severity    DeepfakeSeverity `json:"severity"`
	Description string           `json:"description"`
}

// Recommendation is the deepfake heuristic's advice to the caller.
type Recommendation string

const (
	RecommendationSafe   Recommendation = "safe"
	RecommendationReview Recommendation = "review"
	RecommendationReject Recommendation = "reject"
)

// DeepfakeAnalysis is the output of AssessDeepfakeRisk.
type DeepfakeAnalysis struct {
	DeepfakeConfidence int                 `json:"deepfake_confidence"`
	IsLikelyDeepfake   bool                `json:"is_likely_deepfake"`
	Indicators         []DeepfakeIndicator `json:"indicators"`
	Recommendation     Recommendation      `json:"recommendation"`
}
