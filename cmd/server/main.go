package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mediawatch/report-tracking-backend/internal/database"
	"github.com/mediawatch/report-tracking-backend/internal/router"
	"github.com/mediawatch/report-tracking-backend/internal/services"
	"github.com/mediawatch/report-tracking-backend/internal/services/auth"
	"github.com/mediawatch/report-tracking-backend/internal/utils"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	// Import Swagger docs
	_ "github.com/mediawatch/report-tracking-backend/docs"
)

// @title Campaign Report Tracking API
// @version 1.0
// @description Backend for tracking media monitoring campaigns, analyst assignments and report workflow

// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter `Bearer ` followed by your JWT token

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	configureLogging()

	utils.InitSentry()

	db, err := database.InitDB()
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}

	authService := auth.NewAuthService(db)

	// Domain events are mirrored to RabbitMQ when a broker is reachable;
	// notifications still work without one
	var publisher services.EventPublisher
	rabbitMQService, err := services.NewRabbitMQService()
	if err != nil {
		logrus.Warnf("Failed to initialize RabbitMQ: %v", err)
	} else {
		logrus.Info("RabbitMQ service initialized")
		defer rabbitMQService.Close()
		publisher = rabbitMQService
	}

	notificationService := services.NewNotificationService(publisher)
	workflowService := services.NewWorkflowService(db, notificationService)

	// Create admin user if not exists
	if err := authService.CreateAdminUser(); err != nil {
		logrus.Warnf("Failed to create admin user: %v", err)
	} else {
		logrus.Info("Admin user check completed")
	}

	tokenCleanupService := auth.NewTokenCleanupService(db)
	tokenCleanupService.Start()
	defer tokenCleanupService.Stop()

	r := router.SetupRouter(db, authService, notificationService, workflowService)

	port := getEnv("PORT", "8080")
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: r,
	}

	go func() {
		logrus.Infof("Server starting on port %s", port)
		logrus.Infof("Swagger UI: http://localhost:%s/swagger/index.html", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited properly")
}

func configureLogging() {
	logLevel := getEnv("LOG_LEVEL", "info")
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
