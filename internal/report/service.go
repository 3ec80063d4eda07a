package report

import (
	"context"
	"log/slog"

	"feedback-service/internal/metrics"
)

type Service interface {
	ListAllFeedback(ctx context.Context) ([]Row, error)
}

type service struct {
	repo    Repository
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewService(repo Repository, m *metrics.Metrics, logger *slog.Logger) Service {
	return &service{
		repo:    repo,
		metrics: m,
		logger:  logger,
	}
}

// ListAllFeedback never returns a nil slice on success.
func (s *service) ListAllFeedback(ctx context.Context) ([]Row, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []Row{}
	}

	s.metrics.RecordReportViewed(ctx)
	s.logger.DebugContext(ctx, "feedback report generated", "rows", len(rows))
	return rows, nil
}
