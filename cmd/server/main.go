package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "claimdesk/docs"
	noopcache "claimdesk/internal/cache/noop"
	rediscache "claimdesk/internal/cache/redis"
	"claimdesk/internal/config"
	"claimdesk/internal/email/noop"
	"claimdesk/internal/email/ses"
	"claimdesk/internal/handler"
	"claimdesk/internal/logger"
	"claimdesk/internal/port"
	"claimdesk/internal/repository/postgres"
	"claimdesk/internal/router"
	"claimdesk/internal/service"
	s3storage "claimdesk/internal/storage/s3"
	"claimdesk/internal/validation"
)

const shutdownTimeout = 30 * time.Second

// @title Claimdesk API
// @version 1.0
// @description Multi-tenant insurance claims portal.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zlog := logger.New(cfg.Log)
	defer func() { _ = zlog.Sync() }()
	zap.ReplaceGlobals(zlog)

	if err := validation.RegisterGinValidators(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	tenantRepo := postgres.NewTenantRepo(db)
	userRepo := postgres.NewUserRepo(db)
	groupRepo := postgres.NewGroupRepo(db)
	claimRepo := postgres.NewClaimRepo(db)
	claimDocRepo := postgres.NewClaimDocumentRepo(db)
	commentRepo := postgres.NewDocumentCommentRepo(db)
	trashRepo := postgres.NewTrashRepo(db)
	statsRepo := postgres.NewStatsRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	emailSender, err := newEmailSender(&cfg.Email, zlog)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}

	brandingCache := port.BrandingCache(noopcache.NewBrandingCache())
	if cfg.Redis.Addr != "" {
		redisClient, err := rediscache.NewClient(ctx, &cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer func() { _ = redisClient.Close() }()
		brandingCache = rediscache.NewBrandingCache(redisClient, cfg.Redis.BrandingTTL, zlog)
	} else {
		zlog.Info("redis not configured, branding cache disabled")
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, tenantRepo, cfg.JWT)
	resetSvc := service.NewPasswordResetService(tenantRepo, userRepo, emailSender, cfg.JWT, zlog)
	tenantSvc := service.NewTenantService(tenantRepo, brandingCache, s3Client, &cfg.S3, zlog)
	userSvc := service.NewUserService(userRepo, groupRepo, s3Client, &cfg.S3, zlog)
	groupSvc := service.NewGroupService(groupRepo, userRepo, zlog)
	claimSvc := service.NewClaimService(claimRepo, claimDocRepo, userRepo, zlog)
	reviewSvc := service.NewReviewService(claimRepo, claimDocRepo, commentRepo, userRepo, tenantRepo, s3Client, emailSender, &cfg.S3, zlog)
	trashSvc := service.NewTrashService(trashRepo, s3Client, &cfg.S3, cfg.Trash, zlog)
	statsSvc := service.NewStatsService(statsRepo, trashRepo)

	// Background trash purge
	purgeWorker := service.NewTrashPurgeWorker(trashSvc, cfg.Trash.PurgeInterval, zlog)
	purgeDone := make(chan struct{})
	go func() {
		defer close(purgeDone)
		purgeWorker.Start(ctx)
	}()

	// Initialize handlers and router
	r := router.Setup(authSvc, router.Handlers{
		Auth:     handler.NewAuthHandler(authSvc, resetSvc, userSvc),
		Tenant:   handler.NewTenantHandler(tenantSvc),
		User:     handler.NewUserHandler(userSvc),
		Group:    handler.NewGroupHandler(groupSvc),
		Claim:    handler.NewClaimHandler(claimSvc),
		Document: handler.NewDocumentHandler(reviewSvc),
		Trash:    handler.NewTrashHandler(trashSvc),
		Stats:    handler.NewStatsHandler(statsSvc),
		Health:   handler.NewHealthHandler(db),
	}, cfg.CORS.AllowedOrigins, zlog)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		zlog.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("environment", cfg.Server.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			stop()
			<-purgeDone
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	zlog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	<-purgeDone

	zlog.Info("server exited gracefully")
	return nil
}

func newEmailSender(cfg *config.EmailConfig, log *zap.Logger) (port.EmailSender, error) {
	if cfg.Provider == "ses" {
		return ses.NewSESSender(cfg.Region, cfg.FromAddress, cfg.FromName, cfg.FrontendURL)
	}
	log.Info("email provider is noop, messages will be logged only")
	return noop.NewNoopSender(cfg.FrontendURL, log), nil
}
