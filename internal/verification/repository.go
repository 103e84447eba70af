package verification

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository interface {
	CreateRecord(ctx context.Context, record *VerificationRecord) error
	GetRecordByID(ctx context.Context, id uuid.UUID) (*VerificationRecord, error)
	ListRecords(ctx context.Context, filter RecordFilter) ([]VerificationRecord, error)
	SearchRecords(ctx context.Context, companyID uuid.UUID, query string) ([]VerificationRecord, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateRecord(ctx context.Context, record *VerificationRecord) error {
	query := `
		INSERT INTO verification_records (
			id, company_id, document_name, document_type, student_name,
			index_number, institution, verdict, risk_score, fraud_type,
			biometric_score, ocr_confidence, validation_passed, image_key
		) VALUES (
			:id, :company_id, :document_name, :document_type, :student_name,
			:index_number, :institution, :verdict, :risk_score, :fraud_type,
			:biometric_score, :ocr_confidence, :validation_passed, :image_key
		)`
	_, err := r.db.NamedExecContext(ctx, query, record)
	return err
}

func (r *postgresRepository) GetRecordByID(ctx context.Context, id uuid.UUID) (*VerificationRecord, error) {
	var record VerificationRecord
	err := r.db.GetContext(ctx, &record, "SELECT * FROM verification_records WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &record, err
}

func (r *postgresRepository) ListRecords(ctx context.Context, filter RecordFilter) ([]VerificationRecord, error) {
	var records []VerificationRecord
	query := "SELECT * FROM verification_records WHERE 1=1"
	var args []interface{}
	argCount := 1

	if filter.CompanyID != nil {
		query += fmt.Sprintf(" AND company_id = $%d", argCount)
		args = append(args, *filter.CompanyID)
		argCount++
	}
	if filter.Verdict != nil {
		query += fmt.Sprintf(" AND verdict = $%d", argCount)
		args = append(args, *filter.Verdict)
		argCount++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argCount)
		args = append(args, *filter.From)
		argCount++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND created_at < $%d", argCount)
		args = append(args, *filter.To)
		argCount++
	}

	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argCount)
		args = append(args, filter.Limit)
	}

	err := r.db.SelectContext(ctx, &records, query, args...)
	return records, err
}

func (r *postgresRepository) SearchRecords(ctx context.Context, companyID uuid.UUID, search string) ([]VerificationRecord, error) {
	var records []VerificationRecord
	query := `
		SELECT * FROM verification_records
		WHERE company_id = $1
		  AND (student_name ILIKE $2 OR index_number ILIKE $2 OR institution ILIKE $2)
		ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &records, query, companyID, "%"+search+"%")
	return records, err
}
