// internal/app/server.go
package app

import (
	"context"
	"fmt"

	"motomarket-service/internal/config"
	"motomarket-service/internal/db"
	adminHandler "motomarket-service/internal/handlers/admin"
	listingHandler "motomarket-service/internal/handlers/listing"
	profileHandler "motomarket-service/internal/handlers/profile"
	searchHandler "motomarket-service/internal/handlers/search"
	sessionHandler "motomarket-service/internal/handlers/session"
	wsHandler "motomarket-service/internal/handlers/ws"
	"motomarket-service/internal/mailer"
	"motomarket-service/internal/middleware"
	"motomarket-service/internal/pkg/guard"
	"motomarket-service/internal/pkg/jwt"
	"motomarket-service/internal/repository/postgres"
	"motomarket-service/internal/service/catalog"
	"motomarket-service/internal/service/moderation"
	"motomarket-service/internal/service/submission"
	"motomarket-service/internal/storage"
	"motomarket-service/internal/ws"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() (*Server, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return &Server{cfg: cfg, engine: gin.New()}, nil
}

func (s *Server) Start(ctx context.Context) error {
	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer pool.Close()

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	defer redisClient.Close()

	// ----- JWT Verifier -----
	verifier, err := jwt.Load(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to load JWT verifier: %w", err)
	}

	// ----- MinIO -----
	imageStore, err := storage.NewImageStore(ctx, storage.Config{
		Endpoint:  s.cfg.MinIOEndpoint,
		AccessKey: s.cfg.MinIOAccessKey,
		SecretKey: s.cfg.MinIOSecretKey,
		Bucket:    s.cfg.MinIOBucket,
		UseSSL:    s.cfg.MinIOUseSSL,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to init image store: %w", err)
	}

	// ----- Mailer -----
	sellerMail := mailer.New(mailer.Config{
		Host:     s.cfg.SMTPHost,
		Port:     s.cfg.SMTPPort,
		Email:    s.cfg.SMTPUser,
		Password: s.cfg.SMTPPass,
	}, logger)

	// ----- Repositories -----
	listingRepo := postgres.NewListingRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	errorLogRepo := postgres.NewErrorLogRepository(pool)

	// ----- Guard flags -----
	guards := guard.NewFactory(redisClient, s.cfg.FlagTTL, s.cfg.ReloadCooldown, s.cfg.ReloadDebounce, logger)

	// ----- WebSocket Hub -----
	hub := ws.NewHub(logger)
	go hub.Run(ctx)

	// ----- In-memory mirrors -----
	catalogStore := catalog.NewStore()
	adminStore := catalog.NewStore()
	rowCache := catalog.NewRowCache(redisClient, s.cfg.CacheTTL)

	// ----- Services -----
	catalogService := catalog.NewService(listingRepo, catalogStore, rowCache, s.cfg.PageSize, logger)
	submissionService := submission.NewService(listingRepo, profileRepo, imageStore, guards, errorLogRepo, logger)
	moderationService := moderation.NewService(listingRepo, adminStore, catalogService, hub, sellerMail, logger)

	// Warm the public catalog; a failure is retryable through the API.
	if err := catalogService.Load(ctx); err != nil {
		logger.Warn("initial catalog load failed", zap.Error(err))
	}

	// ----- Handlers -----
	handlers := &Handlers{
		Search:         searchHandler.NewSearchHandler(catalogService),
		Listing:        listingHandler.NewListingHandler(submissionService, catalogService, logger),
		Admin:          adminHandler.NewAdminHandler(moderationService, logger),
		Profile:        profileHandler.NewProfileHandler(profileRepo),
		Session:        sessionHandler.NewSessionHandler(guards),
		WS:             wsHandler.NewWSHandler(hub, logger),
		AuthMiddleware: middleware.NewAuthMiddleware(verifier),
	}

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	SetupRouter(s.engine, handlers)

	logger.Info("server running", zap.String("addr", s.cfg.HTTPAddr))
	return s.engine.Run(s.cfg.HTTPAddr)
}
