package course

import (
	"context"
	"fmt"
	"time"

	"feedback-service/common/metrics"
	"feedback-service/internal/dberrors"

	"github.com/uptrace/bun"
)

type Repository interface {
	Create(ctx context.Context, course *Course) (*Course, error)
	List(ctx context.Context) ([]Course, error)
}

type repository struct {
	db      bun.IDB
	metrics *metrics.Metrics
}

func NewRepository(db bun.IDB, m *metrics.Metrics) Repository {
	return &repository{db: db, metrics: m}
}

func (r *repository) Create(ctx context.Context, course *Course) (*Course, error) {
	start := time.Now()
	_, err := r.db.NewInsert().Model(course).Returning("*").Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "insert", "courses", time.Since(start), err)

	if err != nil {
		return nil, dberrors.Classify(fmt.Errorf("insert course: %w", err))
	}
	return course, nil
}

func (r *repository) List(ctx context.Context) ([]Course, error) {
	start := time.Now()
	courses := make([]Course, 0)
	err := r.db.NewSelect().Model(&courses).OrderExpr("course_name ASC, course_id ASC").Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "courses", time.Since(start), err)

	if err != nil {
		return nil, dberrors.Classify(fmt.Errorf("select courses: %w", err))
	}
	return courses, nil
}
