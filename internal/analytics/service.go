package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"uhakiki/verification-portal/verification-backend/internal/scoring"
)

type Service interface {
	LogUsage(ctx context.Context, companyID uuid.UUID, endpoint string, verdict scoring.Verdict, riskScore int) error
	Summary(ctx context.Context, companyID uuid.UUID, from, to time.Time) (*UsageSummary, error)
	RollupDay(ctx context.Context, day time.Time) (int64, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) LogUsage(ctx context.Context, companyID uuid.UUID, endpoint string, verdict scoring.Verdict, riskScore int) error {
	entry := &UsageLog{
		ID:        uuid.New(),
		CompanyID: companyID,
		Endpoint:  endpoint,
		Verdict:   verdict,
		RiskScore: riskScore,
		CreatedAt: time.Now().UTC(),
	}
	return s.repo.InsertUsage(ctx, entry)
}

func (s *service) Summary(ctx context.Context, companyID uuid.UUID, from, to time.Time) (*UsageSummary, error) {
	return s.repo.GetSummary(ctx, companyID, from, to)
}

func (s *service) RollupDay(ctx context.Context, day time.Time) (int64, error) {
	rows, err := s.repo.UpsertDailyUsage(ctx, day)
	if err != nil {
		return 0, err
	}
	s.logger.Info("daily usage rollup complete",
		zap.Time("day", day),
		zap.Int64("companies", rows))
	return rows, nil
}
