package verification

import (
	"time"

	"github.com/google/uuid"

	"uhakiki/verification-portal/verification-backend/internal/scoring"
)

// VerdictPending is the storage-layer verdict written before scoring has
// run. The scoring engine itself never emits it.
const VerdictPending = scoring.Verdict("pending")

// DocumentType classifies the kind of document a scan claims to be.
type DocumentType string

const (
	TypeKCSECertificate DocumentType = "KCSE_CERTIFICATE"
	TypeNationalID      DocumentType = "NATIONAL_ID"
	TypeDiploma         DocumentType = "DIPLOMA"
)

// VerificationRecord is the persisted outcome of one completed scan. It is
// written once and never mutated afterwards; updated_at is bumped by a
// database trigger, not by application code.
type VerificationRecord struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	CompanyID        uuid.UUID       `json:"company_id" db:"company_id"`
	DocumentName     string          `json:"document_name" db:"document_name"`
	DocumentType     DocumentType    `json:"document_type" db:"document_type"`
	StudentName      *string         `json:"student_name,omitempty" db:"student_name"`
	IndexNumber      *string         `json:"index_number,omitempty" db:"index_number"`
	Institution      *string         `json:"institution,omitempty" db:"institution"`
	Verdict          scoring.Verdict `json:"verdict" db:"verdict"`
	RiskScore        int             `json:"risk_score" db:"risk_score"`
	FraudType        *string         `json:"fraud_type,omitempty" db:"fraud_type"`
	BiometricScore   *int            `json:"biometric_score,omitempty" db:"biometric_score"`
	OCRConfidence    float64         `json:"ocr_confidence" db:"ocr_confidence"`
	ValidationPassed bool            `json:"validation_passed" db:"validation_passed"`
	ImageKey         string          `json:"image_key" db:"image_key"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

// RecordFilter narrows record listings.
type RecordFilter struct {
	CompanyID *uuid.UUID
	Verdict   *scoring.Verdict
	From      *time.Time
	To        *time.Time
	Limit     int
}
