package feedback_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"feedback-service/common/logger"
	commonmetrics "feedback-service/common/metrics"
	"feedback-service/internal/admin"
	"feedback-service/internal/apperrors"
	"feedback-service/internal/auth"
	"feedback-service/internal/course"
	"feedback-service/internal/feedback"
	"feedback-service/internal/metrics"
	"feedback-service/internal/student"
	"feedback-service/testing/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestFeedbackLedger_Shared(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}

	pgContainer := testdb.SetupSharedPostgres(t)
	defer pgContainer.Cleanup(t)

	pgContainer.RunMigrations(t,
		(*student.Student)(nil),
		(*admin.Admin)(nil),
		(*course.Course)(nil),
		(*feedback.Feedback)(nil),
	)

	ctx := context.Background()
	log := logger.Discard()
	mockMetrics := commonmetrics.NewMock()

	hasher, err := auth.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	studentRepo := student.NewRepository(pgContainer.DB, mockMetrics)
	courseRepo := course.NewRepository(pgContainer.DB, mockMetrics)
	feedbackRepo := feedback.NewRepository(pgContainer.DB, mockMetrics)
	authService := auth.NewService(studentRepo, admin.NewRepository(pgContainer.DB, mockMetrics), hasher, metrics.NewMock(), log)
	feedbackService := feedback.NewService(feedbackRepo, nil, metrics.NewMock(), log)

	reset := func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "feedback", "students", "courses")
	}

	seed := func(t *testing.T) (studentID, courseID int64) {
		t.Helper()
		s, err := authService.RegisterStudent(ctx, auth.RegisterRequest{Name: "Asha", Email: "asha@x.com", Password: "pw123"})
		require.NoError(t, err)
		c, err := courseRepo.Create(ctx, &course.Course{Name: "Algorithms", FacultyName: "Computing"})
		require.NoError(t, err)
		return s.ID, c.ID
	}

	countRows := func(t *testing.T, studentID, courseID int64) int {
		t.Helper()
		n, err := pgContainer.DB.NewSelect().
			Model((*feedback.Feedback)(nil)).
			Where("student_id = ? AND course_id = ?", studentID, courseID).
			Count(ctx)
		require.NoError(t, err)
		return n
	}

	t.Run("AshaScenario", func(t *testing.T) {
		reset(t)
		_, courseID := seed(t)
		require.Equal(t, int64(1), courseID)

		id, err := authService.AuthenticateStudent(ctx, "asha@x.com", "pw123")
		require.NoError(t, err)

		feedbackID, err := feedbackService.SubmitFeedback(ctx, feedback.SubmitRequest{
			StudentID: id.ID, CourseID: 1, Rating: 4, Comments: "Great",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), feedbackID)

		_, err = feedbackService.SubmitFeedback(ctx, feedback.SubmitRequest{
			StudentID: id.ID, CourseID: 1, Rating: 4, Comments: "Great",
		})
		assert.ErrorIs(t, err, apperrors.ErrDuplicateFeedback)
		assert.Equal(t, 1, countRows(t, id.ID, 1))
	})

	t.Run("StoresAllFields", func(t *testing.T) {
		reset(t)
		studentID, courseID := seed(t)

		stored, err := feedbackRepo.Insert(ctx, &feedback.Feedback{StudentID: studentID, CourseID: courseID, Rating: 5})
		require.NoError(t, err)
		assert.NotZero(t, stored.ID)
		assert.False(t, stored.CreatedAt.IsZero(), "created_at should come back from the database")

		var got feedback.Feedback
		require.NoError(t, pgContainer.DB.NewSelect().Model(&got).Where("feedback_id = ?", stored.ID).Scan(ctx))
		assert.Equal(t, 5, got.Rating)
		assert.Equal(t, "", got.Comments)

		count, err := pgContainer.DB.NewSelect().Model((*feedback.Feedback)(nil)).
			Where("student_id = ?", studentID).Where("course_id = ?", courseID).Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("UnknownCourse", func(t *testing.T) {
		reset(t)
		studentID, _ := seed(t)

		_, err := feedbackService.SubmitFeedback(ctx, feedback.SubmitRequest{StudentID: studentID, CourseID: 999, Rating: 3})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("NulInCommentsIsValidation", func(t *testing.T) {
		reset(t)
		studentID, courseID := seed(t)

		_, err := feedbackService.SubmitFeedback(ctx, feedback.SubmitRequest{
			StudentID: studentID, CourseID: courseID, Rating: 3, Comments: "fine\x00",
		})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("UniqueConstraintBacksCheck", func(t *testing.T) {
		reset(t)
		studentID, courseID := seed(t)

		_, err := pgContainer.DB.NewInsert().
			Model(&feedback.Feedback{StudentID: studentID, CourseID: courseID, Rating: 3}).
			Exec(ctx)
		require.NoError(t, err)

		_, err = pgContainer.DB.NewInsert().
			Model(&feedback.Feedback{StudentID: studentID, CourseID: courseID, Rating: 4}).
			Exec(ctx)
		require.Error(t, err, "the database must reject a second row for the same pair")
	})

	t.Run("ConcurrentSubmissions", func(t *testing.T) {
		reset(t)
		studentID, courseID := seed(t)

		const attempts = 8
		var (
			wg         sync.WaitGroup
			mu         sync.Mutex
			successes  int
			duplicates int
			others     []error
		)
		start := make(chan struct{})

		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(rating int) {
				defer wg.Done()
				<-start
				_, err := feedbackService.SubmitFeedback(ctx, feedback.SubmitRequest{
					StudentID: studentID, CourseID: courseID, Rating: rating,
				})

				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					successes++
				case errors.Is(err, apperrors.ErrDuplicateFeedback):
					duplicates++
				default:
					others = append(others, err)
				}
			}(i%5 + 1)
		}
		close(start)
		wg.Wait()

		assert.Empty(t, others)
		assert.Equal(t, 1, successes)
		assert.Equal(t, attempts-1, duplicates)
		assert.Equal(t, 1, countRows(t, studentID, courseID))
	})
}
