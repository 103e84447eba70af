package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository interface {
	InsertUsage(ctx context.Context, entry *UsageLog) error
	GetSummary(ctx context.Context, companyID uuid.UUID, from, to time.Time) (*UsageSummary, error)
	UpsertDailyUsage(ctx context.Context, day time.Time) (int64, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) InsertUsage(ctx context.Context, entry *UsageLog) error {
	query := `
		INSERT INTO usage_logs (id, company_id, endpoint, verdict, risk_score, created_at)
		VALUES (:id, :company_id, :endpoint, :verdict, :risk_score, :created_at)`

	_, err := r.db.NamedExecContext(ctx, query, entry)
	if err != nil {
		return fmt.Errorf("failed to insert usage log: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetSummary(ctx context.Context, companyID uuid.UUID, from, to time.Time) (*UsageSummary, error) {
	query := `
		SELECT
			COUNT(*) AS total_scans,
			COUNT(*) FILTER (WHERE verdict = 'verified') AS verified,
			COUNT(*) FILTER (WHERE verdict = 'flagged') AS flagged,
			COUNT(*) FILTER (WHERE verdict = 'rejected') AS rejected,
			COALESCE(AVG(risk_score), 0) AS average_risk_score
		FROM usage_logs
		WHERE company_id = $1 AND created_at >= $2 AND created_at < $3`

	var summary UsageSummary
	err := r.db.GetContext(ctx, &summary, query, companyID, from, to)
	if err != nil {
		if err == sql.ErrNoRows {
			return &UsageSummary{}, nil
		}
		return nil, fmt.Errorf("failed to get usage summary: %w", err)
	}
	return &summary, nil
}

// UpsertDailyUsage rolls the raw usage rows for one calendar day into
// daily_usage. Re-running for the same day overwrites the previous rollup.
func (r *postgresRepository) UpsertDailyUsage(ctx context.Context, day time.Time) (int64, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	query := `
		INSERT INTO daily_usage (company_id, day, total_scans, verified, flagged, rejected, average_risk_score)
		SELECT
			company_id,
			$1::date,
			COUNT(*),
			COUNT(*) FILTER (WHERE verdict = 'verified'),
			COUNT(*) FILTER (WHERE verdict = 'flagged'),
			COUNT(*) FILTER (WHERE verdict = 'rejected'),
			COALESCE(AVG(risk_score), 0)
		FROM usage_logs
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY company_id
		ON CONFLICT (company_id, day) DO UPDATE SET
			total_scans = EXCLUDED.total_scans,
			verified = EXCLUDED.verified,
			flagged = EXCLUDED.flagged,
			rejected = EXCLUDED.rejected,
			average_risk_score = EXCLUDED.average_risk_score`

	res, err := r.db.ExecContext(ctx, query, dayStart, dayEnd)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert daily usage: %w", err)
	}
	rows, _ := res.RowsAffected()
	return rows, nil
}
