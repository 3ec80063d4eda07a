package student_test

import (
	"context"
	"testing"

	"feedback-service/common/metrics"
	"feedback-service/internal/apperrors"
	"feedback-service/internal/student"
	"feedback-service/testing/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentRepository_Shared(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}

	pgContainer := testdb.SetupSharedPostgres(t)
	defer pgContainer.Cleanup(t)

	pgContainer.RunMigrations(t, (*student.Student)(nil))

	ctx := context.Background()
	repo := student.NewRepository(pgContainer.DB, metrics.NewMock())

	t.Run("Create", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "students")

		created, err := repo.Create(ctx, &student.Student{Name: "Asha", Email: " Asha@X.com", Password: "hash"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
		assert.Equal(t, "asha@x.com", created.Email)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "students")

		_, err := repo.Create(ctx, &student.Student{Name: "Asha", Email: "asha@x.com", Password: "hash"})
		require.NoError(t, err)

		_, err = repo.Create(ctx, &student.Student{Name: "Impostor", Email: "ASHA@x.com", Password: "hash"})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrDuplicateIdentity)

		count, err := pgContainer.DB.NewSelect().Model((*student.Student)(nil)).Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("FindByEmail", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "students")

		created, err := repo.Create(ctx, &student.Student{Name: "Asha", Email: "asha@x.com", Password: "hash"})
		require.NoError(t, err)

		found, ok, err := repo.FindByEmail(ctx, "ASHA@x.com ")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "hash", found.Password)

		missing, ok, err := repo.FindByEmail(ctx, "nobody@x.com")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, missing)
	})

	t.Run("FindByID", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "students")

		created, err := repo.Create(ctx, &student.Student{Name: "Asha", Email: "asha@x.com", Password: "hash"})
		require.NoError(t, err)

		found, ok, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Asha", found.Name)

		_, ok, err = repo.FindByID(ctx, 999)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
