package verification

import (
	"bytes"
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"uhakiki/verification-portal/verification-backend/internal/scoring"
	"uhakiki/verification-portal/verification-backend/pkg/storage"
)

// Extractor is the OCR collaborator boundary.
type Extractor interface {
	ExtractDocument(ctx context.Context, image []byte, mimeType string) (*scoring.ExtractedDocument, error)
}

// FaceMatcher is the biometric collaborator boundary.
type FaceMatcher interface {
	CompareFaces(ctx context.Context, docImage, selfie []byte, studentName string) (*scoring.BiometricResult, error)
}

// UsageLogger records one usage row per completed scan.
type UsageLogger interface {
	LogUsage(ctx context.Context, companyID uuid.UUID, endpoint string, verdict scoring.Verdict, riskScore int) error
}

type Service interface {
	VerifyDocument(ctx context.Context, req VerifyRequest) (*VerifyResponse, error)
	GetRecord(ctx context.Context, id uuid.UUID) (*VerificationRecord, error)
	ListRecords(ctx context.Context, filter RecordFilter) ([]VerificationRecord, error)
	SearchRecords(ctx context.Context, companyID uuid.UUID, query string) ([]VerificationRecord, error)
}

type VerifyRequest struct {
	CompanyID    uuid.UUID
	DocumentName string
	DocumentType DocumentType
	MimeType     string
	Document     []byte
	Selfie       []byte // optional
}

type VerifyResponse struct {
	Record     *VerificationRecord       `json:"record"`
	Validation scoring.ValidationResult  `json:"validation"`
	Risk       scoring.RiskAssessment    `json:"risk"`
	Biometric  *scoring.BiometricResult  `json:"biometric,omitempty"`
	Deepfake   *scoring.DeepfakeAnalysis `json:"deepfake,omitempty"`
}

type verificationService struct {
	repo      Repository
	store     storage.ObjectStore
	extractor Extractor
	matcher   FaceMatcher
	usage     UsageLogger
	bucket    string
	logger    *zap.Logger
}

func NewService(repo Repository, store storage.ObjectStore, extractor Extractor, matcher FaceMatcher, usage UsageLogger, bucket string, logger *zap.Logger) Service {
	return &verificationService{
		repo:      repo,
		store:     store,
		extractor: extractor,
		matcher:   matcher,
		usage:     usage,
		bucket:    bucket,
		logger:    logger,
	}
}

// VerifyDocument runs the sequential scan pipeline: store the image, call
// the OCR collaborator, optionally call the biometric collaborator, score,
// then persist one immutable record. Collaborator failures degrade to
// absent inputs rather than aborting the scan.
func (s *verificationService) VerifyDocument(ctx context.Context, req VerifyRequest) (*VerifyResponse, error) {
	scanID := uuid.New()
	imageKey := storage.ScanKey(req.CompanyID.String(), scanID.String(), req.DocumentName)

	if err := s.store.Put(ctx, s.bucket, imageKey, bytes.NewReader(req.Document)); err != nil {
		return nil, err
	}

	doc, err := s.extractor.ExtractDocument(ctx, req.Document, req.MimeType)
	if err != nil {
		s.logger.Warn("extraction failed, scoring without document data",
			zap.String("scan_id", scanID.String()), zap.Error(err))
		doc = nil
	}

	var biometric *scoring.BiometricResult
	if len(req.Selfie) > 0 && doc != nil {
		studentName := ""
		if doc.Structured != nil {
			studentName = doc.Structured.StudentName
		}
		biometric, err = s.matcher.CompareFaces(ctx, req.Document, req.Selfie, studentName)
		if err != nil {
			s.logger.Warn("face comparison failed, scoring without biometric data",
				zap.String("scan_id", scanID.String()), zap.Error(err))
			biometric = nil
		}
	}

	validation := scoring.ValidateDocument(doc)

	var biometricScore, livenessScore *float64
	if biometric != nil {
		match := float64(biometric.MatchScore)
		liveness := float64(biometric.LivenessConfidence)
		biometricScore = &match
		livenessScore = &liveness
	}
	risk := scoring.ComputeRisk(doc, biometricScore, livenessScore)

	var deepfake *scoring.DeepfakeAnalysis
	if biometric != nil {
		analysis := scoring.AssessDeepfakeRisk(
			float64(biometric.LivenessConfidence),
			biometric.LivenessIndicators,
			biometric.Concerns,
		)
		deepfake = &analysis
	}

	record := s.buildRecord(scanID, req, doc, biometric, validation, risk, deepfake, imageKey)
	if err := s.repo.CreateRecord(ctx, record); err != nil {
		return nil, err
	}

	if err := s.usage.LogUsage(ctx, req.CompanyID, "/api/v1/verify", risk.Verdict, risk.RiskScore); err != nil {
		// Usage accounting must not fail a completed scan.
		s.logger.Error("failed to log usage", zap.String("scan_id", scanID.String()), zap.Error(err))
	}

	return &VerifyResponse{
		Record:     record,
		Validation: validation,
		Risk:       risk,
		Biometric:  biometric,
		Deepfake:   deepfake,
	}, nil
}

func (s *verificationService) buildRecord(
	scanID uuid.UUID,
	req VerifyRequest,
	doc *scoring.ExtractedDocument,
	biometric *scoring.BiometricResult,
	validation scoring.ValidationResult,
	risk scoring.RiskAssessment,
	deepfake *scoring.DeepfakeAnalysis,
	imageKey string,
) *VerificationRecord {
	record := &VerificationRecord{
		ID:               scanID,
		CompanyID:        req.CompanyID,
		DocumentName:     req.DocumentName,
		DocumentType:     req.DocumentType,
		Verdict:          risk.Verdict,
		RiskScore:        risk.RiskScore,
		ValidationPassed: validation.IsValid,
		ImageKey:         imageKey,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if doc != nil {
		record.OCRConfidence = doc.Confidence
		if doc.Structured != nil {
			if name := doc.Structured.StudentName; name != "" {
				record.StudentName = &name
			}
			if index := doc.Structured.IndexNumber; index != "" {
				record.IndexNumber = &index
			}
			if school := doc.Structured.SchoolName; school != "" {
				record.Institution = &school
			}
		}
	}

	if biometric != nil {
		score := biometric.MatchScore
		record.BiometricScore = &score
	}

	if risk.Verdict == scoring.VerdictRejected {
		fraudType := classifyFraud(biometric, validation, deepfake)
		record.FraudType = &fraudType
	}

	return record
}

// classifyFraud names the dominant reason a scan was rejected.
func classifyFraud(biometric *scoring.BiometricResult, validation scoring.ValidationResult, deepfake *scoring.DeepfakeAnalysis) string {
	if deepfake != nil && deepfake.IsLikelyDeepfake {
		return "synthetic_identity"
	}
	if biometric != nil && biometric.MatchVerdict == scoring.MatchVerdictNoMatch {
		return "biometric_mismatch"
	}
	if !validation.IsValid {
		return "document_forgery"
	}
	return "unclassified"
}

func (s *verificationService) GetRecord(ctx context.Context, id uuid.UUID) (*VerificationRecord, error) {
	return s.repo.GetRecordByID(ctx, id)
}

func (s *verificationService) ListRecords(ctx context.Context, filter RecordFilter) ([]VerificationRecord, error) {
	return s.repo.ListRecords(ctx, filter)
}

func (s *verificationService) SearchRecords(ctx context.Context, companyID uuid.UUID, query string) ([]VerificationRecord, error) {
	return s.repo.SearchRecords(ctx, companyID, query)
}
