package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"payrollhq/internal/domain/audit"
	"payrollhq/internal/domain/employee"
	"payrollhq/internal/domain/notifications"
	"payrollhq/internal/domain/payroll"
	"payrollhq/internal/platform/config"
	"payrollhq/internal/platform/db"
	"payrollhq/internal/platform/email"
	audithandler "payrollhq/internal/transport/http/handlers/audit"
	authhandler "payrollhq/internal/transport/http/handlers/auth"
	contractshandler "payrollhq/internal/transport/http/handlers/contracts"
	employeeshandler "payrollhq/internal/transport/http/handlers/employees"
	payrollhandler "payrollhq/internal/transport/http/handlers/payroll"
	"payrollhq/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	DB     *pgxpool.Pool
	Router http.Handler
}

// New connects to the database, applies migrations and seed data, and wires
// the full service. Tests build an App the same way main does.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			pool.Close()
			return nil, err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, err
		}
	}

	payroll.SetTaxRules(payroll.TaxRules{
		MinimalSalary: decimal.NewFromFloat(cfg.MinimalSalary),
		TaxThreshold:  decimal.NewFromFloat(cfg.TaxThreshold),
		LowerRate:     decimal.NewFromFloat(cfg.LowerTaxRate),
		HigherRate:    decimal.NewFromFloat(cfg.HigherTaxRate),
	})

	employeeStore := employee.NewStore(pool)
	historyStore := payroll.NewHistoryStore(pool)
	auditStore := audit.NewStore(pool)

	mailer := email.New(cfg)
	notifier := notifications.New(mailer, cfg.RelayTable, cfg.EmailFrom, slog.Default())

	coordinator := &payroll.Coordinator{
		Source:   employeeStore,
		Saver:    historyStore,
		Notifier: notifier,
		Logger:   slog.Default(),
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(employeeStore, cfg.JWTSecret, cfg.TokenTTL)
		r.Post("/auth/login", authHandler.HandleLogin)

		employeeshandler.NewHandler(employeeStore, auditStore).RegisterRoutes(r)
		contractshandler.NewHandler(employeeStore, auditStore).RegisterRoutes(r)
		payrollhandler.NewHandler(coordinator, historyStore).RegisterRoutes(r)
		audithandler.NewHandler(auditStore).RegisterRoutes(r)
	})

	return &App{Config: cfg, DB: pool, Router: router}, nil
}

func (a *App) Close() {
	a.DB.Close()
}
