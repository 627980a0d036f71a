package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/campusops/tpo-api/api/swagger"
	"github.com/campusops/tpo-api/internal/handler"
	"github.com/campusops/tpo-api/internal/middleware"
	"github.com/campusops/tpo-api/internal/models"
	"github.com/campusops/tpo-api/internal/repository"
	"github.com/campusops/tpo-api/internal/service"
	"github.com/campusops/tpo-api/pkg/cache"
	"github.com/campusops/tpo-api/pkg/config"
	"github.com/campusops/tpo-api/pkg/database"
	"github.com/campusops/tpo-api/pkg/export"
	"github.com/campusops/tpo-api/pkg/logger"
	corsmiddleware "github.com/campusops/tpo-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campusops/tpo-api/pkg/middleware/requestid"
)

// Server assembles the HTTP API and its dependencies.
type Server struct {
	cfg           *config.Config
	logger        *zap.Logger
	db            *sqlx.DB
	cache         *repository.CacheRepository
	router        *gin.Engine
	http          *http.Server
	notifications *service.NotificationService
}

// New wires repositories, services and handlers into a ready-to-run server.
func New(cfg *config.Config, logr *zap.Logger) (*Server, error) {
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	var cacheRepo *repository.CacheRepository
	if client, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
	} else {
		cacheRepo = repository.NewCacheRepository(client, logr)
	}

	validate := validator.New()

	profileRepo := repository.NewProfileRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	jobRepo := repository.NewJobRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Analytics.CacheTTL, logr, cacheRepo != nil)

	auditSvc := service.NewAuditService(auditRepo, logr)
	notificationSvc := service.NewNotificationService(notificationRepo, validate, logr, service.NotificationQueueConfig{
		Workers:    cfg.Notifications.Workers,
		BufferSize: cfg.Notifications.BufferSize,
		MaxRetries: cfg.Notifications.MaxRetries,
	})

	authSvc := service.NewAuthService(profileRepo, auditSvc, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "tpo-api",
	})
	facultySvc := service.NewFacultyService(facultyRepo, studentRepo, logr)
	approvalSvc := service.NewApprovalService(studentRepo, facultySvc, auditSvc, notificationSvc, logr)
	analyticsSvc := service.NewAnalyticsService(analyticsRepo, cacheSvc, cfg.Analytics.CacheTTL, logr)
	exportSvc := service.NewExportService(analyticsSvc, nil, nil, logr)
	dashboardSvc := service.NewDashboardService(profileRepo, companyRepo, jobRepo, applicationRepo, logr)
	jobSvc := service.NewJobService(jobRepo, companyRepo, auditSvc, validate, logr)
	applicationSvc := service.NewApplicationService(applicationRepo, studentRepo, validate, logr)
	offerSvc := service.NewOfferService(offerRepo, export.NewPDFExporter(), auditSvc, logr)
	userSvc := service.NewUserService(profileRepo, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsSvc, exportSvc, metricsSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	jobHandler := handler.NewJobHandler(jobSvc)
	studentHandler := handler.NewStudentHandler(applicationSvc, offerSvc)
	facultyHandler := handler.NewFacultyHandler(facultySvc, approvalSvc)
	notificationHandler := handler.NewNotificationHandler(notificationSvc)
	userHandler := handler.NewUserHandler(userSvc)
	auditHandler := handler.NewAuditHandler(auditSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(reqidmiddleware.Middleware())
	router.Use(logger.GinMiddleware(logr))
	router.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	router.Use(middleware.Metrics(metricsSvc))
	router.Use(middleware.WithResponseMeta())

	router.GET("/health", metricsHandler.Health)
	router.GET("/ready", metricsHandler.Ready)
	router.GET("/metrics", metricsHandler.Prometheus)
	if cfg.Env != config.EnvProduction {
		router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authRequired := middleware.JWT(authSvc)

	api := router.Group(cfg.APIPrefix)
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", authRequired, authHandler.Logout)
			auth.GET("/me", authRequired, authHandler.Me)
		}

		admin := api.Group("", authRequired, middleware.RequireRoles(models.RoleAdmin))
		{
			admin.GET("/analytics", analyticsHandler.Counts)
			admin.GET("/analytics/placements/export",
				middleware.Audit(auditSvc, models.AuditActionReportExport, "analytics"),
				analyticsHandler.PlacementExport)
			admin.GET("/analytics/system", analyticsHandler.System)
			admin.GET("/users", userHandler.List)
			admin.GET("/audit", auditHandler.List)
		}

		companies := api.Group("/companies", authRequired, middleware.RequireRoles(models.RoleCompany))
		{
			companies.GET("/dashboard", dashboardHandler.Company)
			companies.POST("/jobs", jobHandler.Create)
			companies.GET("/jobs", jobHandler.ListMine)
		}

		api.GET("/jobs", authRequired, middleware.RequireRoles(models.RoleStudent, models.RoleAdmin), jobHandler.ListOpen)

		students := api.Group("/students", authRequired, middleware.RequireRoles(models.RoleStudent))
		{
			students.POST("/applications", studentHandler.Apply)
			students.GET("/applications", studentHandler.ListApplications)
			students.PATCH("/offers/:id", studentHandler.RespondOffer)
			students.GET("/offers/:id/letter", studentHandler.OfferLetter)
		}

		// Application lookup stays public only when explicitly configured.
		// Claims are still attached when a valid token is sent.
		if cfg.Applications.PublicLookup {
			api.GET("/students/applications/:id", middleware.OptionalJWT(authSvc), studentHandler.ApplicationDetail)
		} else {
			api.GET("/students/applications/:id", authRequired, studentHandler.ApplicationDetail)
		}

		faculty := api.Group("/faculty", authRequired, middleware.RequireRoles(models.RoleFaculty, models.RoleAdmin))
		{
			faculty.GET("/students", facultyHandler.Students)
			faculty.PUT("/approvals/:id", facultyHandler.Approve)
		}

		notifications := api.Group("/notifications", authRequired)
		{
			notifications.GET("", notificationHandler.List)
			notifications.PUT("/:id", notificationHandler.Update)
		}
	}

	return &Server{
		cfg:           cfg,
		logger:        logr,
		db:            db,
		cache:         cacheRepo,
		router:        router,
		notifications: notificationSvc,
	}, nil
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP listener and the background workers, blocking until the
// context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.notifications.Start(ctx)

	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Sugar().Infow("server starting", "addr", s.http.Addr, "env", s.cfg.Env)
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return s.Shutdown()
	}
}

// Shutdown drains in-flight requests and stops the background workers.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var err error
	if s.http != nil {
		err = s.http.Shutdown(ctx)
	}

	s.notifications.Stop()

	if s.cache != nil {
		if cerr := s.cache.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if s.db != nil {
		if cerr := s.db.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
