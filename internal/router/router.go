package router

import (
	"time"

	"hackpay/config"
	"hackpay/internal/handler"
	"hackpay/internal/middleware"
	"hackpay/internal/reconcile"
	"hackpay/internal/repository"
	"hackpay/internal/service"
	"hackpay/pkg/logger"
	"hackpay/pkg/razorpay"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, rzp razorpay.Client) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	log := logger.Get()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	hackathonRepo := repository.NewHackathonRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	txnRepo := repository.NewTransactionRepository(db)
	payoutRepo := repository.NewPayoutRepository(db)
	bankRepo := repository.NewBankDetailRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	failureRepo := repository.NewReconciliationRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)

	// Engine and services
	engine := reconcile.NewEngine(ledgerRepo, log.With().Str("component", "reconcile").Logger())
	paymentSvc := service.NewPaymentService(userRepo, hackathonRepo, txnRepo, failureRepo, engine, rzp,
		cfg.Razorpay.KeySecret, log.With().Str("component", "payments").Logger())
	payoutSvc := service.NewPayoutService(hackathonRepo, teamRepo, userRepo, bankRepo, payoutRepo, failureRepo, rzp,
		log.With().Str("component", "payouts").Logger())

	// Handlers
	paymentHandler := handler.NewPaymentHandler(paymentSvc)
	payoutHandler := handler.NewPayoutHandler(payoutSvc, payoutRepo)
	webhookHandler := handler.NewWebhookHandler(engine, auditRepo, cfg, log.With().Str("component", "webhooks").Logger())
	bankHandler := handler.NewBankDetailHandler(bankRepo)
	txnHandler := handler.NewTransactionHandler(txnRepo)

	authMw := middleware.AuthRequired(&cfg.JWT)
	adminMw := middleware.RequireRole("ADMIN")

	api := r.Group("/api/v1")

	// Webhooks stay outside auth and rate limiting: throttling processor
	// redelivery only causes more redelivery.
	webhooks := api.Group("/webhooks")
	{
		webhooks.POST("/payment", webhookHandler.HandlePayment)
		webhooks.POST("/payout", webhookHandler.HandlePayout)
	}

	authed := api.Group("")
	authed.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)), authMw)
	{
		authed.POST("/payments/orders", paymentHandler.CreateOrder)
		authed.POST("/payments/verify", paymentHandler.Verify)
		authed.GET("/me/transactions", txnHandler.ListMine)
		authed.POST("/me/bank-details", bankHandler.Create)
		authed.GET("/me/bank-details", bankHandler.List)
		authed.PATCH("/me/bank-details/:id/primary", bankHandler.SetPrimary)

		admin := authed.Group("")
		admin.Use(adminMw)
		{
			admin.POST("/payouts", payoutHandler.Create)
			admin.GET("/payouts", payoutHandler.List)
			admin.GET("/payouts/:id", payoutHandler.Get)
			admin.PATCH("/bank-details/:id/verify", bankHandler.Verify)
		}
	}

	return r
}
