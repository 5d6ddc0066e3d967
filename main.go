package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/anthemnandani/projec-traking-system-backend/config"
	"github.com/anthemnandani/projec-traking-system-backend/controllers"
	"github.com/anthemnandani/projec-traking-system-backend/database"
	applogger "github.com/anthemnandani/projec-traking-system-backend/logger"
	"github.com/anthemnandani/projec-traking-system-backend/models"
	"github.com/anthemnandani/projec-traking-system-backend/repository"
	"github.com/anthemnandani/projec-traking-system-backend/routes"
	"github.com/anthemnandani/projec-traking-system-backend/services"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := applogger.Initialize(cfg.Env)
	defer logger.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := models.Migrate(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	paymentRepo := repository.NewGormPaymentRepo(db)
	clientRepo := repository.NewGormClientRepo(db)
	taskRepo := repository.NewGormTaskRepo(db)
	invoiceRepo := repository.NewGormInvoiceRepo(db)
	userRepo := repository.NewGormUserRepo(db)

	var publisher services.EventPublisher
	if cfg.NotifyTopicARN != "" {
		snsPub, err := services.NewSNSPublisher(context.Background(), cfg.NotifyTopicARN)
		if err != nil {
			logger.Fatal("failed to initialize SNS publisher", zap.Error(err))
		}
		publisher = snsPub
	}
	notifier := services.NewNotificationService(publisher, logger)

	var email *services.EmailService
	if cfg.SMTPEmail != "" && cfg.SMTPPassword != "" {
		email = services.NewEmailService(services.EmailConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPEmail,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPEmail,
		})
	} else {
		logger.Warn("SMTP not configured, emails disabled")
	}

	stripeSvc := services.NewStripeService(cfg.StripeSecretKey, cfg.StripeWebhookKey, cfg.FrontendURL)
	paymentSvc := services.NewPaymentService(paymentRepo, stripeSvc, notifier, logger)
	tokenSvc := services.NewTokenService(cfg.JWTSecret)
	passwordSvc := services.NewPasswordService()

	ctrl := routes.Controllers{
		Auth:     controllers.NewAuthController(userRepo, tokenSvc, passwordSvc, email, cfg.FrontendURL, logger),
		Users:    controllers.NewUserController(userRepo, logger),
		Clients:  controllers.NewClientController(clientRepo, userRepo, passwordSvc, email, notifier, cfg.FrontendURL, logger),
		Tasks:    controllers.NewTaskController(taskRepo, notifier, logger),
		Invoices: controllers.NewInvoiceController(invoiceRepo, logger),
		Payments: controllers.NewPaymentController(paymentRepo, paymentSvc, notifier, logger),
		Webhooks: controllers.NewWebhookController(stripeSvc, paymentSvc, logger),
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(applogger.RequestLogger(logger))

	routes.Register(engine, tokenSvc, ctrl)

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := engine.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
