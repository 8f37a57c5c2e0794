package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	httpapi "jeffika-cabs-backend/internal/api/http"
	"jeffika-cabs-backend/internal/config"
	"jeffika-cabs-backend/internal/logger"
	"jeffika-cabs-backend/internal/mpesa"
	"jeffika-cabs-backend/internal/repository/postgres"
	"jeffika-cabs-backend/internal/security"
	"jeffika-cabs-backend/internal/service"
)

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
	logger.Info("Starting Jeffika Cabs Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Initialize Payment Gateway
	gateway := mpesa.NewClient(mpesa.Config{
		BaseURL:        cfg.Mpesa.BaseURL,
		ConsumerKey:    cfg.Mpesa.ConsumerKey,
		ConsumerSecret: cfg.Mpesa.ConsumerSecret,
		ShortCode:      cfg.Mpesa.ShortCode,
		Passkey:        cfg.Mpesa.Passkey,
		CallbackURL:    cfg.Mpesa.CallbackURL,
		Timeout:        cfg.Mpesa.Timeout,
	})

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Sendgrid.APIKey, cfg.Sendgrid.FromEmail, cfg.Sendgrid.FromName)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	carSvc := service.NewCarService(store.CarRepository)
	cartSvc := service.NewCartService(store.CartRepository, store.CarRepository)
	hireSvc := service.NewHireService(
		store.HireRepository,
		store.CarRepository,
		store.CartRepository,
		store.UserRepository,
		gateway,
	)
	paymentSvc := service.NewPaymentService(store.HireRepository, store.CarRepository)
	receiptSvc := service.NewReceiptService(store.HireRepository, store.UserRepository, emailSvc, cfg.Sendgrid.AdminEmail)

	// Build route table
	router := httpapi.NewRouter(httpapi.RouterDeps{
		Auth:     authSvc,
		Cars:     carSvc,
		Carts:    cartSvc,
		Hires:    hireSvc,
		Payments: paymentSvc,
		Receipts: receiptSvc,
		Tokens:   tokenManager,
	})

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
