package student

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"feedback-service/common/metrics"
	"feedback-service/internal/apperrors"
	"feedback-service/internal/dberrors"

	"github.com/uptrace/bun"
)

type Repository interface {
	Create(ctx context.Context, student *Student) (*Student, error)
	FindByEmail(ctx context.Context, email string) (*Student, bool, error)
	FindByID(ctx context.Context, id int64) (*Student, bool, error)
}

type repository struct {
	db      bun.IDB
	metrics *metrics.Metrics
}

func NewRepository(db bun.IDB, m *metrics.Metrics) Repository {
	return &repository{
		db:      db,
		metrics: m,
	}
}

// Create inserts the student; an already registered email yields ErrDuplicateIdentity.
func (r *repository) Create(ctx context.Context, student *Student) (*Student, error) {
	start := time.Now()
	student.Email = NormalizeEmail(student.Email)
	_, err := r.db.NewInsert().Model(student).Returning("*").Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "insert", "students", time.Since(start), err)

	if err != nil {
		if dberrors.IsUniqueViolation(err, "") {
			return nil, apperrors.Wrap(apperrors.ErrDuplicateIdentity,
				"An account with this email already exists.", err)
		}
		return nil, dberrors.Classify(fmt.Errorf("insert student: %w", err))
	}
	return student, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Student, bool, error) {
	return r.findOne(ctx, "email = ?", NormalizeEmail(email))
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Student, bool, error) {
	return r.findOne(ctx, "student_id = ?", id)
}

func (r *repository) findOne(ctx context.Context, where string, arg interface{}) (*Student, bool, error) {
	start := time.Now()
	student := new(Student)
	err := r.db.NewSelect().Model(student).Where(where, arg).Limit(1).Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		r.metrics.Database.RecordQuery(ctx, "select", "students", time.Since(start), nil)
		return nil, false, nil
	}
	r.metrics.Database.RecordQuery(ctx, "select", "students", time.Since(start), err)

	if err != nil {
		return nil, false, dberrors.Classify(fmt.Errorf("select student: %w", err))
	}
	return student, true, nil
}
