package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	httpapi "hess-portal-backend/internal/api/http"
	"hess-portal-backend/internal/config"
	"hess-portal-backend/internal/logger"
	"hess-portal-backend/internal/repository/postgres"
	"hess-portal-backend/internal/security"
	"hess-portal-backend/internal/service"

	_ "github.com/lib/pq"
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
	logger.Info("Starting HESS Portal Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
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

	// Initialize Firebase identity provider
	ctx := context.Background()
	var opts []option.ClientOption
	if cfg.Firebase.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, opts...)
	if err != nil {
		logger.Error("Failed to initialize Firebase app", "error", err)
		log.Fatalf("Failed to initialize Firebase app: %v", err)
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		logger.Error("Failed to initialize Firebase auth client", "error", err)
		log.Fatalf("Failed to initialize Firebase auth client: %v", err)
	}
	identitySvc := service.NewFirebaseIdentityService(authClient)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Email Service
	sender := service.NewSendGridSender(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	emailSvc := service.NewEmailService(sender, store.EmailLogRepository)

	// Initialize Services
	approvalSvc := service.NewApprovalService(
		store.UpdateRequestRepository,
		store.OrganizationRepository,
		store.ProfileRepository,
		store.AuditLogRepository,
		emailSvc,
		store,
	)
	unapproveSvc := service.NewUnapproveService(
		store.OrganizationRepository,
		store.ProfileRepository,
		store.PendingRegistrationRepository,
		store.InvoiceRepository,
		store.InvitationRepository,
		store.MemberRequestRepository,
		store.AuditLogRepository,
		identitySvc,
		emailSvc,
	)
	registrationSvc := service.NewRegistrationService(
		store.UpdateRequestRepository,
		store.PendingRegistrationRepository,
		store.OrganizationRepository,
		store.ProfileRepository,
		store.AuditLogRepository,
		identitySvc,
		emailSvc,
	)

	// Initialize HTTP handlers
	registrationHandler := httpapi.NewRegistrationHandler(registrationSvc)
	authHandler := httpapi.NewAuthHandler(identitySvc, tokenManager)
	adminHandler := httpapi.NewAdminHandler(approvalSvc, unapproveSvc, registrationSvc, emailSvc, store.AuditLogRepository)
	authMiddleware := httpapi.NewAuthMiddleware(tokenManager)

	router := httpapi.NewRouter(registrationHandler, authHandler, adminHandler, authMiddleware)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
