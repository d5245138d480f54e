package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/config"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/database"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/handler"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/logger"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/notification"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/repository"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/server"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/service"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/websocket"

	"github.com/gin-gonic/gin"
)

// @title           Textile ERP API
// @version         1.0
// @description     Products, stock, orders, customers, returns and WhatsApp notifications for a textile business.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.App().WithError(err).Fatal("failed to load config")
	}
	if err := logger.Init(cfg.Log); err != nil {
		logger.App().WithError(err).Fatal("failed to init logger")
	}
	log := logger.App()
	gin.SetMode(cfg.GinMode)
	if cfg.Auth.JWTSecret == "" {
		log.Warn("AUTH_JWT_SECRET is empty, authentication is disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewConnection(cfg.DB)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	log.Info("connected to PostgreSQL")

	wsHub := websocket.NewHub()
	go wsHub.Run()
	defer wsHub.Stop()

	// Repositories
	txManager := repository.NewTransactionManager(db)
	productRepo := repository.NewProductRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	stockRepo := repository.NewStockRepository(db)
	returnRepo := repository.NewReturnRepository(db)
	businessRepo := repository.NewBusinessRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	// WhatsApp delivery
	var sender notification.Sender = notification.DisabledSender{}
	if cfg.Twilio.Enabled() {
		sender = notification.NewTwilioSender(cfg.Twilio, cfg.Notify)
	} else {
		log.Warn("twilio is not configured, whatsapp messages will be recorded as not delivered")
	}
	dispatcher := notification.NewDispatcher(sender, notificationRepo, wsHub, cfg.Notify)

	// Services
	productService := service.NewProductService(productRepo, orderRepo, movementRepo, auditRepo, txManager, dispatcher)
	customerService := service.NewCustomerService(customerRepo, auditRepo, txManager, dispatcher)
	orderService := service.NewOrderService(orderRepo, productRepo, customerRepo, returnRepo, movementRepo, auditRepo, txManager, dispatcher)
	stockService := service.NewStockService(stockRepo, auditRepo, txManager, dispatcher)
	returnService := service.NewReturnService(returnRepo, orderRepo, productRepo, movementRepo, auditRepo, txManager, dispatcher)
	businessService := service.NewBusinessService(businessRepo, auditRepo, txManager)
	notificationService := service.NewNotificationService(notificationRepo, businessRepo, auditRepo, txManager, dispatcher)
	dashboardService := service.NewDashboardService(dashboardRepo)
	agentService := service.NewAgentService(dashboardService)
	auditService := service.NewAuditService(auditRepo)
	userService := service.NewUserService(userRepo)

	if err := notificationService.LoadSettings(ctx); err != nil {
		log.WithError(err).Fatal("failed to load notification settings")
	}

	router, err := server.NewRouter(cfg, wsHub,
		handler.NewProductHandler(productService),
		handler.NewCustomerHandler(customerService, orderService),
		handler.NewOrderHandler(orderService),
		handler.NewStockHandler(stockService),
		handler.NewReturnHandler(returnService),
		handler.NewBusinessHandler(businessService),
		handler.NewNotificationHandler(notificationService),
		handler.NewAgentHandler(agentService),
		handler.NewDashboardHandler(dashboardService),
		handler.NewAuditHandler(auditService),
		handler.NewUserHandler(userService),
	)
	if err != nil {
		log.WithError(err).Fatal("failed to build router")
	}

	if err := server.Start(ctx, cfg, router); err != nil {
		log.WithError(err).Error("server stopped with error")
		os.Exit(1)
	}
	log.Info("server stopped")
}
