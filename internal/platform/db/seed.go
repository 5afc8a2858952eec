package db

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"payrollhq/internal/auth"
	"payrollhq/internal/platform/config"
)

// Seed creates the bootstrap admin account on an empty database. The admin
// gets a placeholder salaried contract so it participates in payroll like
// any other employee.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		slog.Info("seed skipped, no admin credentials configured")
		return nil
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM employees").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}

	now := time.Now()
	var contractID int64
	err = pool.QueryRow(ctx, `
    INSERT INTO contracts (contract_type, name, position, base_salary, start_date, end_date, bonus)
    VALUES ('salaried', 'Administration', 'manager', 2000, $1, $2, 0)
    RETURNING id
  `, now, now.AddDate(1, 0, 0)).Scan(&contractID)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO employees (first_name, last_name, email, password_hash, date_of_birth, gender, role, contract_id)
    VALUES ('System', 'Admin', $1, $2, '1990-01-01', 'FEMALE', 'ADMIN', $3)
  `, cfg.SeedAdminEmail, hash, contractID)
	if err != nil {
		return err
	}

	slog.Info("seeded admin account", "email", cfg.SeedAdminEmail)
	return nil
}
