package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/patientfirst/crm-backend/internal/auth"
	"github.com/patientfirst/crm-backend/internal/config"
	"github.com/patientfirst/crm-backend/internal/observability"
	"github.com/patientfirst/crm-backend/internal/persistence"
)

// Seeds the reference tables and the bootstrap admin account. Safe to
// run repeatedly; every statement is an upsert.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	postgres, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("postgres connection failed", zap.Error(err))
	}
	defer postgres.Close()

	if err := persistence.RunMigrations(ctx, postgres.Pool, logger); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	roles := []struct {
		id   int64
		name string
		desc string
	}{
		{1, "SuperAdmin", "Full administrative access"},
		{2, "Manager", "Operational oversight, unrestricted lead visibility"},
		{3, "Agent", "Lead intake, edits own leads while New"},
		{4, "LicenseAgent", "Works leads handed off by QA approval"},
		{5, "QAReviewer", "Reviews New and QA Review leads"},
		{6, "QAManager", "QA oversight over New and QA Review leads"},
	}
	for _, r := range roles {
		_, err := postgres.Pool.Exec(ctx, `
            INSERT INTO roles (id, role, description, status)
            VALUES ($1, $2, $3, 'Active')
            ON CONFLICT (id) DO UPDATE SET role = EXCLUDED.role, description = EXCLUDED.description`,
			r.id, r.name, r.desc)
		if err != nil {
			logger.Fatal("role seed failed", zap.String("role", r.name), zap.Error(err))
		}
	}

	statuses := []struct {
		name string
		desc string
		sort int
	}{
		{"New", "Freshly captured lead awaiting review", 1},
		{"QA Review", "Under quality assurance review", 2},
		{"QA Manager Review", "Escalated to QA management", 3},
		{"Pending", "Awaiting external information", 4},
		{"License Agent", "Handed off to license agents", 5},
		{"Approved", "Application approved", 6},
		{"Rejected", "Rejected during QA review", 7},
		{"Final Rejected", "Rejected with no further review", 8},
	}
	for _, s := range statuses {
		_, err := postgres.Pool.Exec(ctx, `
            INSERT INTO leads_statuses (status_name, description, sort_order)
            VALUES ($1, $2, $3)
            ON CONFLICT (status_name) DO UPDATE SET description = EXCLUDED.description, sort_order = EXCLUDED.sort_order`,
			s.name, s.desc, s.sort)
		if err != nil {
			logger.Fatal("status seed failed", zap.String("status", s.name), zap.Error(err))
		}
	}

	adminPassword := "changeme"
	hash, err := auth.HashPassword(adminPassword, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("password hash failed", zap.Error(err))
	}
	_, err = postgres.Pool.Exec(ctx, `
        INSERT INTO users (id, name, username, email, password, status, role_id)
        VALUES (1, 'Administrator', 'admin', 'admin@example.com', $1, 'Active', 1)
        ON CONFLICT (id) DO NOTHING`, hash)
	if err != nil {
		logger.Fatal("admin seed failed", zap.Error(err))
	}

	logger.Info("seed complete")
}
