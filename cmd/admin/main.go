package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"feedback-service/common/logger"
	"feedback-service/common/metrics"
	"feedback-service/internal/admin"
	"feedback-service/internal/app"
	"feedback-service/internal/auth"
	"feedback-service/internal/config"
	"feedback-service/internal/course"
	"feedback-service/internal/db"
	domainmetrics "feedback-service/internal/metrics"
	"feedback-service/internal/student"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if err := run(context.Background(), os.Args); err != nil {
		if !errors.Is(err, errHelp) {
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.NewWithServiceContext("feedback-admin", app.Version, logger.Options{
		Env:   cfg.Env,
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
	})

	database, err := db.New(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close(database)

	hasher, err := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}

	m := metrics.NewMock()
	authService := auth.NewService(student.NewRepository(database, m), admin.NewRepository(database, m), hasher, domainmetrics.NewMock(), log)

	cli := commandLine{
		admins:  authService,
		courses: course.NewService(course.NewRepository(database, m)),
		migrate: func(ctx context.Context) error {
			return db.RunMigrations(ctx, database, log, app.Models()...)
		},
		out: os.Stdout,
	}
	return cli.run(ctx, args)
}
