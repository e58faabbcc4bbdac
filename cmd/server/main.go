package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	billingapp "github.com/rently/backend/internal/application/billing"
	bulletinapp "github.com/rently/backend/internal/application/bulletin"
	"github.com/rently/backend/internal/application/coordinator"
	identityapp "github.com/rently/backend/internal/application/identity"
	maintenanceapp "github.com/rently/backend/internal/application/maintenance"
	tenancyapp "github.com/rently/backend/internal/application/tenancy"
	"github.com/rently/backend/internal/infrastructure/auth"
	"github.com/rently/backend/internal/infrastructure/config"
	"github.com/rently/backend/internal/infrastructure/logger"
	"github.com/rently/backend/internal/infrastructure/persistence"
	"github.com/rently/backend/internal/interfaces/http/handler"
	"github.com/rently/backend/internal/interfaces/http/middleware"
	"github.com/rently/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//	@title			Rently Backend API
//	@version		1.0
//	@description	Rental property administration API: tenants, rooms, bills and payments, maintenance requests, announcements.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Rently Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Background liveness probe (if enabled)
	if cfg.Probe.Enabled {
		probe := persistence.NewLivenessProbe(db, persistence.ProbeConfig{
			Interval: cfg.Probe.Interval,
			Timeout:  cfg.Probe.Timeout,
		}, log)
		if err := probe.Start(context.Background()); err != nil {
			log.Fatal("Failed to start liveness probe", zap.Error(err))
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := probe.Stop(stopCtx); err != nil {
				log.Error("Error stopping liveness probe", zap.Error(err))
			}
		}()
		log.Info("Liveness probe started", zap.Duration("interval", cfg.Probe.Interval))
	}

	// Initialize repositories
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	roomRepo := persistence.NewGormRoomRepository(db.DB)
	billRepo := persistence.NewGormBillRepository(db.DB)
	paymentRecordRepo := persistence.NewGormPaymentRecordRepository(db.DB)
	maintenanceRepo := persistence.NewGormMaintenanceRepository(db.DB)
	announcementRepo := persistence.NewGormAnnouncementRepository(db.DB)

	// Coordinator: cross-aggregate mutations (room claims, bill settlement)
	// run in one transaction against transaction-scoped repositories
	coord := coordinator.New(db.DB, func(tx *gorm.DB) coordinator.Scope {
		return coordinator.Scope{
			Rooms:    persistence.NewGormRoomRepository(tx),
			Tenants:  persistence.NewGormTenantRepository(tx),
			Bills:    persistence.NewGormBillRepository(tx),
			Payments: persistence.NewGormPaymentRecordRepository(tx),
		}
	})

	// Token blacklist: Redis when configured, in-memory otherwise
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Enabled {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		blacklist = redisBlacklist
		log.Info("Token blacklist backed by Redis",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port),
		)
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Info("Token blacklist in-memory; tokens survive only this process")
	}

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(tenantRepo, jwtService, blacklist)
	tenantService := tenancyapp.NewTenantService(tenantRepo, roomRepo, coord)
	roomService := tenancyapp.NewRoomService(roomRepo, tenantRepo)
	billService := billingapp.NewBillService(billRepo, paymentRecordRepo, tenantRepo, roomRepo, coord, cfg.Billing)
	maintenanceService := maintenanceapp.NewService(maintenanceRepo, tenantRepo)
	announcementService := bulletinapp.NewService(announcementRepo)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	tenantHandler := handler.NewTenantHandler(tenantService, billService)
	roomHandler := handler.NewRoomHandler(roomService, billService)
	billHandler := handler.NewBillHandler(billService)
	maintenanceHandler := handler.NewMaintenanceHandler(maintenanceService)
	announcementHandler := handler.NewAnnouncementHandler(announcementService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, outermost first
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint outside API versioning, for load balancers
	engine.GET("/health", healthHandler(db))

	// Route-level middleware: JWT auth, admin gate, and a tighter limiter
	// on login to slow credential guessing
	authMW := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	})
	adminMW := middleware.RequireAdmin()
	loginLimiter := middleware.RateLimit(middleware.NewRateLimiter(10, time.Minute))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.RegisterFunc(func(rg *gin.RouterGroup) { authHandler.RegisterRoutes(rg, authMW, loginLimiter) })
	r.RegisterFunc(func(rg *gin.RouterGroup) { tenantHandler.RegisterRoutes(rg, authMW, adminMW) })
	r.RegisterFunc(func(rg *gin.RouterGroup) { roomHandler.RegisterRoutes(rg, authMW, adminMW) })
	r.RegisterFunc(func(rg *gin.RouterGroup) { billHandler.RegisterRoutes(rg, authMW, adminMW) })
	r.RegisterFunc(func(rg *gin.RouterGroup) { maintenanceHandler.RegisterRoutes(rg, authMW, adminMW) })
	r.RegisterFunc(func(rg *gin.RouterGroup) { announcementHandler.RegisterRoutes(rg, authMW, adminMW) })
	r.RegisterFunc(systemHandler.RegisterRoutes)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for the load balancer health endpoint
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
