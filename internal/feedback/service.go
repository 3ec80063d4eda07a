package feedback

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"feedback-service/internal/apperrors"
	"feedback-service/internal/metrics"
	"feedback-service/internal/validation"

	"github.com/go-playground/validator/v10"
)

// Publisher sends FeedbackSubmitted events (NATS or Kafka producer).
type Publisher interface {
	SendMessage(ctx context.Context, key string, value interface{}) error
}

type Service interface {
	SubmitFeedback(ctx context.Context, req SubmitRequest) (int64, error)
}

type service struct {
	repo      Repository
	publisher Publisher
	validate  *validator.Validate
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func NewService(repo Repository, publisher Publisher, m *metrics.Metrics, logger *slog.Logger) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
		validate:  validation.New(),
		metrics:   m,
		logger:    logger,
	}
}

// SubmitFeedback stores a student's rating of a course and returns the new feedback_id.
// A second submission for the same course fails with ErrDuplicateFeedback.
func (s *service) SubmitFeedback(ctx context.Context, req SubmitRequest) (int64, error) {
	req.Comments = strings.TrimSpace(req.Comments)
	if err := s.validate.Struct(req); err != nil {
		return 0, apperrors.Wrap(apperrors.ErrValidation, validationMessage(err), err)
	}

	f, err := s.repo.Insert(ctx, &Feedback{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		Rating:    req.Rating,
		Comments:  req.Comments,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateFeedback) {
			s.metrics.RecordDuplicateRejected(ctx)
			s.logger.WarnContext(ctx, "duplicate feedback rejected",
				"student_id", req.StudentID, "course_id", req.CourseID)
		}
		return 0, err
	}

	s.metrics.RecordFeedbackSubmitted(ctx)
	s.logger.InfoContext(ctx, "feedback submitted",
		"feedback_id", f.ID, "student_id", f.StudentID, "course_id", f.CourseID, "rating", f.Rating)

	s.publish(ctx, f)
	return f.ID, nil
}

// publish is best effort; the entry is already committed.
func (s *service) publish(ctx context.Context, f *Feedback) {
	if s.publisher == nil {
		return
	}
	event := SubmittedEvent{
		FeedbackID: f.ID,
		StudentID:  f.StudentID,
		CourseID:   f.CourseID,
		Rating:     f.Rating,
		CreatedAt:  f.CreatedAt,
	}
	if err := s.publisher.SendMessage(ctx, strconv.FormatInt(f.StudentID, 10), event); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish feedback event", "feedback_id", f.ID, "error", err)
	}
}

func validationMessage(err error) string {
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) || len(fields) == 0 {
		return "Invalid feedback."
	}
	switch fields[0].Field() {
	case "Rating":
		return "Rating must be a whole number from 1 to 5."
	case "Comments":
		if fields[0].Tag() == validation.StoredTextTag {
			return "Comments contain characters that cannot be stored."
		}
		return "Comments must be at most 2000 characters."
	case "CourseID":
		return "Please choose a course."
	default:
		return "Invalid feedback."
	}
}
