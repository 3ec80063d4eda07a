package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"feedback-service/internal/config"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

func DSN(cfg config.DatabaseConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		sslMode,
	)
}

func New(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*bun.DB, error) {
	db, err := NewWithDSN(ctx, DSN(cfg), logger)
	if err != nil {
		return nil, err
	}
	configurePool(db, cfg, logger)
	return db, nil
}

// NewWithDSN creates a new database connection with a custom DSN (useful for testing)
func NewWithDSN(ctx context.Context, dsn string, logger *slog.Logger) (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connected successfully")
	return db, nil
}

func configurePool(db *bun.DB, cfg config.DatabaseConfig, logger *slog.Logger) {
	sqlDB := db.DB

	maxOpen := cfg.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = 25
	}
	sqlDB.SetMaxOpenConns(maxOpen)

	maxIdle := cfg.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = 10
	}
	sqlDB.SetMaxIdleConns(maxIdle)

	connMaxLifetime := cfg.ConnMaxLifetime
	if connMaxLifetime == 0 {
		connMaxLifetime = 300
	}
	sqlDB.SetConnMaxLifetime(time.Duration(connMaxLifetime) * time.Second)

	connMaxIdleTime := cfg.ConnMaxIdleTime
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 60
	}
	sqlDB.SetConnMaxIdleTime(time.Duration(connMaxIdleTime) * time.Second)

	logger.Info("database pool configured",
		"max_open_conns", maxOpen,
		"max_idle_conns", maxIdle,
		"conn_max_lifetime_seconds", connMaxLifetime,
		"conn_max_idle_time_seconds", connMaxIdleTime,
	)
}

func Close(db *bun.DB) {
	if db != nil {
		db.Close()
	}
}

// ForeignKeyer is implemented by models whose table references other tables.
// Each entry is the clause that follows FOREIGN KEY, e.g.
// `("student_id") REFERENCES "students" ("student_id")`.
type ForeignKeyer interface {
	ForeignKeys() []string
}

// RunMigrations creates the tables of models in order; referenced tables must come first.
func RunMigrations(ctx context.Context, db bun.IDB, logger *slog.Logger, models ...interface{}) error {
	for _, model := range models {
		q := db.NewCreateTable().
			Model(model).
			IfNotExists()

		if fk, ok := model.(ForeignKeyer); ok {
			for _, clause := range fk.ForeignKeys() {
				q = q.ForeignKey(clause)
			}
		}

		if _, err := q.Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for model %T: %w", model, err)
		}
	}
	logger.Info("database migrations completed successfully", "tables", len(models))
	return nil
}
