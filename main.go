package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"membership/config"
	"membership/cron"
	"membership/database"
	adminRepo "membership/database/repository/admin"
	invoiceRepo "membership/database/repository/invoice"
	memberRepo "membership/database/repository/member"
	"membership/gateway"
	"membership/handlers"
	"membership/middleware"
	"membership/routes"
	"membership/services/invoice"
	"membership/services/member"
	"membership/services/messaging"
	"membership/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeSecretKey

	// repositories.
	invRepo := invoiceRepo.NewMongoInvoiceRepo()
	memRepo := memberRepo.NewMongoMemberRepo()
	admRepo := adminRepo.NewMongoAdminRepo()

	// offline email queue and worker.
	queue := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisEmailQueueDB,
	})
	defer queue.Close()

	messagingService := messaging.NewMessagingService(queue, logger)
	cron.InitEmailWorker(messagingService)

	// services.
	invoiceService := invoice.NewInvoiceService(invRepo, gateway.NewStripeCharger(), logger)
	memberService := member.NewMemberService(memRepo, messagingService, logger)

	// daily renewal reminder job.
	scheduler := cron.NewRenewalScheduler(memRepo, messagingService, logger)
	renewalCron, err := scheduler.Start()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to start renewal scheduler: %v", err)
	}
	defer renewalCron.Stop()

	// handlers.
	memberHandler := handlers.NewMemberHandler(memberService, invoiceService, messagingService, logger)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, logger)
	paypalHandler := handlers.NewPaypalHandler(gateway.NewPaypalIPNVerifier(), invoiceService, logger)
	adminHandler := handlers.NewAdminHandler(memberService, admRepo, logger)

	routes.RegisterRoutes(router, memberHandler, invoiceHandler, paypalHandler, adminHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
