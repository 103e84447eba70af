package analytics

import (
	"time"

	"github.com/google/uuid"

	"uhakiki/verification-portal/verification-backend/internal/scoring"
)

// UsageLog is one metered API call, written per completed scan.
type UsageLog struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	CompanyID uuid.UUID       `json:"company_id" db:"company_id"`
	Endpoint  string          `json:"endpoint" db:"endpoint"`
	Verdict   scoring.Verdict `json:"verdict" db:"verdict"`
	RiskScore int             `json:"risk_score" db:"risk_score"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// UsageSummary aggregates a company's scans over a date range.
type UsageSummary struct {
	TotalScans       int     `json:"total_scans" db:"total_scans"`
	Verified         int     `json:"verified" db:"verified"`
	Flagged          int     `json:"flagged" db:"flagged"`
	Rejected         int     `json:"rejected" db:"rejected"`
	AverageRiskScore float64 `json:"average_risk_score" db:"average_risk_score"`
}

// DailyUsage is one row of the rolled-up aggregate table maintained by the
// usage worker.
type DailyUsage struct {
	CompanyID        uuid.UUID `json:"company_id" db:"company_id"`
	Day              time.Time `json:"day" db:"day"`
	TotalScans       int       `json:"total_scans" db:"total_scans"`
	Verified         int       `json:"verified" db:"verified"`
	Flagged          int       `json:"flagged" db:"flagged"`
	Rejected         int       `json:"rejected" db:"rejected"`
	AverageRiskScore float64   `json:"average_risk_score" db:"average_risk_score"`
}
