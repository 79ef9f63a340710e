package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	auditapp "github.com/propertyops/backend/internal/application/audit"
	billingapp "github.com/propertyops/backend/internal/application/billing"
	complianceapp "github.com/propertyops/backend/internal/application/compliance"
	ledgerapp "github.com/propertyops/backend/internal/application/ledger"
	opsapp "github.com/propertyops/backend/internal/application/ops"
	portfolioapp "github.com/propertyops/backend/internal/application/portfolio"
	reportapp "github.com/propertyops/backend/internal/application/report"
	"github.com/propertyops/backend/internal/domain/shared"
	"github.com/propertyops/backend/internal/infrastructure/auth"
	"github.com/propertyops/backend/internal/infrastructure/config"
	"github.com/propertyops/backend/internal/infrastructure/logger"
	"github.com/propertyops/backend/internal/infrastructure/persistence"
	"github.com/propertyops/backend/internal/interfaces/http/handler"
	"github.com/propertyops/backend/internal/interfaces/http/middleware"
	"github.com/propertyops/backend/internal/interfaces/http/router"
)

//	@title			PropertyOps Backend API
//	@version		1.0
//	@description	Back office for single-family rental portfolio management

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

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

	log.Info("Starting PropertyOps backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	ownerRepo := persistence.NewGormOwnerRepository(db.DB)
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	leaseRepo := persistence.NewGormLeaseRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	billRepo := persistence.NewGormPmBillRepository(db.DB)
	taskRepo := persistence.NewGormPmTaskRepository(db.DB)
	rehabRepo := persistence.NewGormRehabProjectRepository(db.DB)
	noticeRepo := persistence.NewGormCityNoticeRepository(db.DB)
	taxRepo := persistence.NewGormPropertyTaxRepository(db.DB)
	policyRepo := persistence.NewGormInsurancePolicyRepository(db.DB)
	activityLogRepo := persistence.NewGormActivityLogRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)
	txManager := persistence.NewGormTxManager(db.DB)

	clock := shared.SystemClock{}
	recorder := auditapp.NewRecorder(activityLogRepo, clock, log)

	// Application services
	ownerService := portfolioapp.NewOwnerService(ownerRepo, propertyRepo, recorder)
	propertyService := portfolioapp.NewPropertyService(propertyRepo, ownerRepo, leaseRepo, recorder, clock)
	tenantService := portfolioapp.NewTenantService(tenantRepo, leaseRepo, recorder)
	leaseService := portfolioapp.NewLeaseService(leaseRepo, propertyRepo, tenantRepo, txManager, recorder, clock)
	paymentService := ledgerapp.NewPaymentService(paymentRepo, expenseRepo, propertyRepo, ownerRepo, txManager, recorder, clock)
	expenseService := ledgerapp.NewExpenseService(expenseRepo, propertyRepo, recorder, clock)
	billService := billingapp.NewBillService(billRepo, expenseRepo, propertyRepo, txManager, recorder, clock)
	taskService := opsapp.NewTaskService(taskRepo, propertyRepo, recorder, clock)
	rehabService := opsapp.NewRehabService(rehabRepo, propertyRepo, txManager, recorder, clock)
	noticeService := complianceapp.NewNoticeService(noticeRepo, propertyRepo, recorder, clock)
	taxService := complianceapp.NewTaxService(taxRepo, propertyRepo, recorder, clock)
	insuranceService := complianceapp.NewInsuranceService(policyRepo, propertyRepo, recorder, clock)
	reportService := reportapp.NewReportService(reportRepo, taskRepo, clock)
	activityQuery := auditapp.NewQueryService(activityLogRepo)

	// Handlers
	ownerHandler := handler.NewOwnerHandler(ownerService)
	propertyHandler := handler.NewPropertyHandler(propertyService)
	tenantHandler := handler.NewTenantHandler(tenantService)
	leaseHandler := handler.NewLeaseHandler(leaseService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	billHandler := handler.NewBillHandler(billService)
	taskHandler := handler.NewTaskHandler(taskService)
	rehabHandler := handler.NewRehabHandler(rehabService)
	noticeHandler := handler.NewNoticeHandler(noticeService)
	taxHandler := handler.NewTaxHandler(taxService)
	insuranceHandler := handler.NewInsuranceHandler(insuranceService)
	reportHandler := handler.NewReportHandler(reportService)
	activityHandler := handler.NewActivityLogHandler(activityQuery)
	systemHandler := handler.NewSystemHandler(db)

	// HTTP engine and middleware chain
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxy configuration", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/health", healthHandler(db))

	verifier := auth.NewVerifier(cfg.JWT)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.AuthWithConfig(middleware.AuthConfig{
		Verifier: verifier,
		SkipPaths: []string{
			"/api/v1/system/health",
		},
		Logger: log,
	}))

	// Portfolio domain (owners, properties, tenants, leases)
	portfolioRoutes := router.NewDomainGroup("portfolio", "")
	portfolioRoutes.POST("/owners", ownerHandler.Create)
	portfolioRoutes.GET("/owners", ownerHandler.List)
	portfolioRoutes.GET("/owners/:id", ownerHandler.Get)
	portfolioRoutes.PUT("/owners/:id", ownerHandler.Update)
	portfolioRoutes.DELETE("/owners/:id", ownerHandler.Delete)
	portfolioRoutes.POST("/owners/:id/bank-accounts", ownerHandler.AddBankAccount)
	portfolioRoutes.DELETE("/owners/:id/bank-accounts/:accountId", ownerHandler.RemoveBankAccount)
	portfolioRoutes.PUT("/owners/:id/bank-accounts/:accountId/default", ownerHandler.SetDefaultBankAccount)

	portfolioRoutes.POST("/properties", propertyHandler.Create)
	portfolioRoutes.GET("/properties", propertyHandler.List)
	portfolioRoutes.GET("/properties/:id", propertyHandler.Get)
	portfolioRoutes.PUT("/properties/:id", propertyHandler.Update)
	portfolioRoutes.PATCH("/properties/:id/status", propertyHandler.ChangeStatus)
	portfolioRoutes.DELETE("/properties/:id", propertyHandler.Delete)

	portfolioRoutes.POST("/tenants", tenantHandler.Create)
	portfolioRoutes.GET("/tenants", tenantHandler.List)
	portfolioRoutes.GET("/tenants/:id", tenantHandler.Get)
	portfolioRoutes.PUT("/tenants/:id", tenantHandler.Update)
	portfolioRoutes.DELETE("/tenants/:id", tenantHandler.Delete)

	portfolioRoutes.POST("/leases", leaseHandler.Create)
	portfolioRoutes.GET("/leases", leaseHandler.List)
	portfolioRoutes.GET("/leases/:id", leaseHandler.Get)
	portfolioRoutes.POST("/leases/:id/terminate", leaseHandler.Terminate)

	// Ledger domain (payments, expenses)
	ledgerRoutes := router.NewDomainGroup("ledger", "")
	ledgerRoutes.POST("/payments", paymentHandler.Record)
	ledgerRoutes.GET("/payments", paymentHandler.List)
	ledgerRoutes.GET("/payments/:id", paymentHandler.Get)
	ledgerRoutes.DELETE("/payments/:id", paymentHandler.Delete)

	ledgerRoutes.POST("/expenses", expenseHandler.Create)
	ledgerRoutes.GET("/expenses", expenseHandler.List)
	ledgerRoutes.GET("/expenses/:id", expenseHandler.Get)
	ledgerRoutes.PUT("/expenses/:id", expenseHandler.Update)
	ledgerRoutes.DELETE("/expenses/:id", expenseHandler.Delete)

	// Billing domain (PM bills and message threads)
	billingRoutes := router.NewDomainGroup("billing", "")
	billingRoutes.POST("/bills", billHandler.Create)
	billingRoutes.GET("/bills", billHandler.List)
	billingRoutes.POST("/bills/bulk-approve", billHandler.BulkApprove)
	billingRoutes.POST("/bills/bulk-pay", billHandler.BulkPay)
	billingRoutes.GET("/bills/:id", billHandler.Get)
	billingRoutes.DELETE("/bills/:id", billHandler.Delete)
	billingRoutes.POST("/bills/:id/review", billHandler.StartReview)
	billingRoutes.POST("/bills/:id/approve", billHandler.Approve)
	billingRoutes.POST("/bills/:id/dispute", billHandler.Dispute)
	billingRoutes.POST("/bills/:id/pay", billHandler.MarkPaid)
	billingRoutes.POST("/bills/:id/messages", billHandler.AddMessage)

	// Ops domain (PM tasks, rehab projects)
	opsRoutes := router.NewDomainGroup("ops", "")
	opsRoutes.POST("/tasks", taskHandler.Create)
	opsRoutes.GET("/tasks", taskHandler.List)
	opsRoutes.GET("/tasks/:id", taskHandler.Get)
	opsRoutes.PUT("/tasks/:id", taskHandler.Update)
	opsRoutes.POST("/tasks/:id/transition", taskHandler.Transition)
	opsRoutes.DELETE("/tasks/:id", taskHandler.Delete)

	opsRoutes.POST("/rehabs", rehabHandler.Create)
	opsRoutes.GET("/rehabs", rehabHandler.List)
	opsRoutes.GET("/rehabs/:id", rehabHandler.Get)
	opsRoutes.PUT("/rehabs/:id", rehabHandler.Update)
	opsRoutes.PATCH("/rehabs/:id/status", rehabHandler.ChangeStatus)
	opsRoutes.POST("/rehabs/:id/milestones", rehabHandler.AddMilestone)
	opsRoutes.POST("/rehabs/:id/milestones/:milestoneId/complete", rehabHandler.CompleteMilestone)
	opsRoutes.DELETE("/rehabs/:id", rehabHandler.Delete)

	// Compliance domain (notices, taxes, insurance)
	complianceRoutes := router.NewDomainGroup("compliance", "")
	complianceRoutes.POST("/notices", noticeHandler.Create)
	complianceRoutes.GET("/notices", noticeHandler.List)
	complianceRoutes.GET("/notices/:id", noticeHandler.Get)
	complianceRoutes.POST("/notices/:id/transition", noticeHandler.Transition)
	complianceRoutes.DELETE("/notices/:id", noticeHandler.Delete)

	complianceRoutes.POST("/taxes", taxHandler.Create)
	complianceRoutes.GET("/taxes", taxHandler.List)
	complianceRoutes.GET("/taxes/:id", taxHandler.Get)
	complianceRoutes.PUT("/taxes/:id", taxHandler.Update)
	complianceRoutes.POST("/taxes/:id/pay", taxHandler.MarkPaid)
	complianceRoutes.DELETE("/taxes/:id", taxHandler.Delete)

	complianceRoutes.POST("/insurance-policies", insuranceHandler.Create)
	complianceRoutes.GET("/insurance-policies", insuranceHandler.List)
	complianceRoutes.GET("/insurance-policies/:id", insuranceHandler.Get)
	complianceRoutes.POST("/insurance-policies/:id/renew", insuranceHandler.Renew)
	complianceRoutes.DELETE("/insurance-policies/:id", insuranceHandler.Delete)

	// Reports and activity log
	reportRoutes := router.NewDomainGroup("reports", "/reports")
	reportRoutes.GET("/rent-roll", reportHandler.RentRoll)
	reportRoutes.GET("/vacancy", reportHandler.Vacancy)
	reportRoutes.GET("/pnl", reportHandler.PortfolioPnL)
	reportRoutes.GET("/owner-pnl", reportHandler.OwnerPnL)
	reportRoutes.GET("/tax-summary", reportHandler.TaxSummary)
	reportRoutes.GET("/notices", reportHandler.OutstandingNotices)
	reportRoutes.GET("/pm-performance", reportHandler.PmPerformance)
	reportRoutes.GET("/dashboard", reportHandler.Dashboard)

	activityRoutes := router.NewDomainGroup("activity", "/activity")
	activityRoutes.GET("", activityHandler.List)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/health", systemHandler.Health)

	r.Register(portfolioRoutes).
		Register(ledgerRoutes).
		Register(billingRoutes).
		Register(opsRoutes).
		Register(complianceRoutes).
		Register(reportRoutes).
		Register(activityRoutes).
		Register(systemRoutes)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

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

// healthHandler serves the unauthenticated liveness endpoint
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
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
