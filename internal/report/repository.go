package report

import (
	"context"
	"fmt"
	"time"

	"feedback-service/common/metrics"
	"feedback-service/internal/dberrors"
	"feedback-service/internal/feedback"

	"github.com/uptrace/bun"
)

type Repository interface {
	ListAll(ctx context.Context) ([]Row, error)
}

type repository struct {
	db      bun.IDB
	metrics *metrics.Metrics
}

func NewRepository(db bun.IDB, m *metrics.Metrics) Repository {
	return &repository{db: db, metrics: m}
}

// ListAll returns every feedback entry, newest first. Ties on created_at fall back to feedback_id.
func (r *repository) ListAll(ctx context.Context) ([]Row, error) {
	start := time.Now()
	rows := make([]Row, 0)

	err := r.db.NewSelect().
		Model((*feedback.Feedback)(nil)).
		ColumnExpr("f.feedback_id, f.student_id, s.name AS student_name, s.email").
		ColumnExpr("f.course_id, c.course_name, c.faculty_name").
		ColumnExpr("f.rating, COALESCE(f.comments, '') AS comments, f.created_at").
		Join("JOIN students AS s ON s.student_id = f.student_id").
		Join("JOIN courses AS c ON c.course_id = f.course_id").
		OrderExpr("f.created_at DESC, f.feedback_id DESC").
		Scan(ctx, &rows)

	r.metrics.Database.RecordQuery(ctx, "select", "feedback_report", time.Since(start), err)

	if err != nil {
		return nil, dberrors.Classify(fmt.Errorf("select feedback report: %w", err))
	}
	return rows, nil
}
