package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "filmrental-backend/internal/api/http"
	"filmrental-backend/internal/config"
	"filmrental-backend/internal/domain"
	"filmrental-backend/internal/jobs"
	"filmrental-backend/internal/logger"
	"filmrental-backend/internal/repository"
	"filmrental-backend/internal/repository/memory"
	"filmrental-backend/internal/repository/postgres"
	"filmrental-backend/internal/scheduler"
	"filmrental-backend/internal/security"
	"filmrental-backend/internal/service"

	_ "github.com/lib/pq"
)

// repos is the repository set both storage drivers provide.
type repos struct {
	repository.FilmRepository
	repository.InventoryRepository
	repository.RentalRepository
	repository.PaymentRepository
	repository.CustomerRepository
	repository.StaffRepository
	repository.StoreRepository
}

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting film rental backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())

	// Initialize Repositories
	var store repos
	switch cfg.Database.Driver {
	case config.DriverMemory:
		mem := memory.NewStore()
		if cfg.Database.SeedFile != "" {
			if err := mem.LoadSeed(cfg.Database.SeedFile); err != nil {
				logger.Error("Failed to load seed data", "file", cfg.Database.SeedFile, "error", err)
				log.Fatalf("Failed to load seed data: %v", err)
			}
			logger.Info("Seed data loaded", "file", cfg.Database.SeedFile)
		}
		store = repos{mem.FilmRepository, mem.InventoryRepository, mem.RentalRepository, mem.PaymentRepository,
			mem.CustomerRepository, mem.StaffRepository, mem.StoreRepository}
		logger.Info("Using in-memory storage")
	default:
		logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			logger.Error("Failed to ping database", "error", err)
			log.Fatalf("Failed to ping database: %v", err)
		}
		logger.Info("Database connection established")

		pg := postgres.NewStore(db)
		store = repos{pg.FilmRepository, pg.InventoryRepository, pg.RentalRepository, pg.PaymentRepository,
			pg.CustomerRepository, pg.StaffRepository, pg.StoreRepository}
	}

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)
	clock := service.SystemClock()

	// Initialize Services
	rentalSvc := service.NewRentalService(
		store.RentalRepository,
		store.InventoryRepository,
		store.FilmRepository,
		store.CustomerRepository,
		store.StaffRepository,
		store.PaymentRepository,
		clock,
	)
	paymentSvc := service.NewPaymentService(
		store.PaymentRepository,
		store.RentalRepository,
		store.InventoryRepository,
		store.FilmRepository,
		store.CustomerRepository,
		store.StaffRepository,
		clock,
	)
	customerSvc := service.NewCustomerService(store.CustomerRepository, store.StoreRepository, store.RentalRepository, store.PaymentRepository, clock)
	staffSvc := service.NewStaffService(store.StaffRepository, store.StoreRepository, security.NewBcryptHasher())

	if b := cfg.Bootstrap; b.Username != "" {
		st, created, err := staffSvc.EnsureStaff(context.Background(), &domain.Staff{
			FirstName: b.FirstName,
			LastName:  b.LastName,
			Email:     b.Email,
			Username:  b.Username,
		}, b.Password)
		if err != nil {
			logger.Error("Failed to bootstrap staff account", "username", b.Username, "error", err)
			log.Fatalf("Failed to bootstrap staff account: %v", err)
		}
		logger.Info("Bootstrap staff account ready", "staffID", st.ID, "username", st.Username, "created", created)
	}

	router := httpapi.NewRouter(httpapi.Services{
		Rentals:   rentalSvc,
		Payments:  paymentSvc,
		Customers: customerSvc,
		Staff:     staffSvc,
	}, tokenManager)

	// The in-memory store is invisible to a separate cronjob process, so
	// the nightly jobs run in-process instead.
	if cfg.Database.Driver == config.DriverMemory {
		cronScheduler, err := scheduler.NewScheduler(jobs.NewJobRunner(&jobs.Services{Rental: rentalSvc}, cfg))
		if err != nil {
			log.Fatalf("Failed to create scheduler: %v", err)
		}
		cronScheduler.Start()
		defer cronScheduler.Stop()
	}

	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	logger.Info("HTTP server stopped")
}
