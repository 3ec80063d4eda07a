package feedback

import (
	"context"
	"errors"
	"fmt"
	"time"

	"feedback-service/common/metrics"
	"feedback-service/internal/apperrors"
	"feedback-service/internal/dberrors"

	"github.com/uptrace/bun"
)

const msgDuplicate = "You have already submitted feedback for this course."

var errAlreadySubmitted = errors.New("feedback exists for student and course")

type Repository interface {
	// Insert stores f unless the student already rated the course.
	Insert(ctx context.Context, f *Feedback) (*Feedback, error)
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

// Insert runs the existence check and the insert in one transaction.
// Two racing inserts both pass the check; the unique constraint rejects the later one.
func (r *repository) Insert(ctx context.Context, f *Feedback) (*Feedback, error) {
	start := time.Now()
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := existsQuery(tx, f.StudentID, f.CourseID).Exists(ctx)
		if err != nil {
			return fmt.Errorf("check existing feedback: %w", err)
		}
		if exists {
			return errAlreadySubmitted
		}

		if _, err := tx.NewInsert().Model(f).Returning("feedback_id, created_at").Exec(ctx); err != nil {
			return fmt.Errorf("insert feedback: %w", err)
		}
		return nil
	})

	duplicate := errors.Is(err, errAlreadySubmitted) || dberrors.IsUniqueViolation(err, uniqueStudentCourse)
	if duplicate {
		r.metrics.Database.RecordQuery(ctx, "insert", "feedback", time.Since(start), nil)
		return nil, apperrors.Wrap(apperrors.ErrDuplicateFeedback, msgDuplicate, err)
	}
	r.metrics.Database.RecordQuery(ctx, "insert", "feedback", time.Since(start), err)

	switch {
	case err == nil:
		return f, nil
	case dberrors.IsForeignKeyViolation(err):
		return nil, apperrors.Wrap(apperrors.ErrValidation, "Unknown course.", err)
	default:
		return nil, dberrors.Classify(err)
	}
}

func existsQuery(db bun.IDB, studentID, courseID int64) *bun.SelectQuery {
	return db.NewSelect().
		Model((*Feedback)(nil)).
		Where("student_id = ?", studentID).
		Where("course_id = ?", courseID)
}
