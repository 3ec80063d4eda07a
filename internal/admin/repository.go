package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"feedback-service/common/metrics"
	"feedback-service/internal/dberrors"

	"github.com/uptrace/bun"
)

type Repository interface {
	FindByUsername(ctx context.Context, username string) (*Admin, bool, error)
	Upsert(ctx context.Context, admin *Admin) (*Admin, error)
}

type repository struct {
	db      bun.IDB
	metrics *metrics.Metrics
}

func NewRepository(db bun.IDB, m *metrics.Metrics) Repository {
	return &repository{db: db, metrics: m}
}

func (r *repository) FindByUsername(ctx context.Context, username string) (*Admin, bool, error) {
	start := time.Now()
	admin := new(Admin)
	err := r.db.NewSelect().
		Model(admin).
		Where("username = ?", strings.TrimSpace(username)).
		Limit(1).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		r.metrics.Database.RecordQuery(ctx, "select", "admins", time.Since(start), nil)
		return nil, false, nil
	}
	r.metrics.Database.RecordQuery(ctx, "select", "admins", time.Since(start), err)

	if err != nil {
		return nil, false, dberrors.Classify(fmt.Errorf("select admin: %w", err))
	}
	return admin, true, nil
}

// Upsert creates the admin or replaces the password hash of an existing username.
func (r *repository) Upsert(ctx context.Context, admin *Admin) (*Admin, error) {
	start := time.Now()
	admin.Username = strings.TrimSpace(admin.Username)
	_, err := r.db.NewInsert().
		Model(admin).
		On("CONFLICT (username) DO UPDATE").
		Set("password = EXCLUDED.password").
		Returning("*").
		Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "upsert", "admins", time.Since(start), err)

	if err != nil {
		return nil, dberrors.Classify(fmt.Errorf("upsert admin: %w", err))
	}
	return admin, nil
}
