package router

import (
	"time"

	"github.com/mediawatch/report-tracking-backend/internal/handlers"
	"github.com/mediawatch/report-tracking-backend/internal/middleware"
	"github.com/mediawatch/report-tracking-backend/internal/services"
	"github.com/mediawatch/report-tracking-backend/internal/services/auth"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin router with all API routes
func SetupRouter(db *gorm.DB, authService *auth.AuthService, notifications *services.NotificationService, workflow *services.WorkflowService) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	bearerTokenMiddleware := middleware.NewBearerTokenMiddleware(authService, db)

	authHandler := handlers.NewAuthHandler(authService)
	clientHandler := handlers.NewClientHandler(db)
	stationHandler := handlers.NewStationHandler(db)
	campaignHandler := handlers.NewCampaignHandler(db, notifications)
	periodHandler := handlers.NewMonitoringPeriodHandler(db)
	analystHandler := handlers.NewAnalystHandler(db, authService)
	assignmentHandler := handlers.NewAssignmentHandler(db, workflow)
	notificationHandler := handlers.NewNotificationHandler(db)
	messageHandler := handlers.NewMessageHandler(db, notifications)
	userHandler := handlers.NewUserHandler(db, authService)
	exportHandler := handlers.NewExportHandler(db)
	adminHandler := handlers.NewAdminHandler(db)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Public auth routes
	r.POST("/register", authHandler.Register)
	r.POST("/auth/token/", authHandler.Login)
	r.POST("/auth/refresh", authHandler.Refresh)

	// Protected auth routes
	authProtected := r.Group("/auth")
	authProtected.Use(bearerTokenMiddleware.BearerTokenAuthMiddleware())
	{
		authProtected.POST("/logout", authHandler.Logout)
		authProtected.POST("/change-password", authHandler.ChangePassword)
	}

	api := r.Group("/api")
	api.Use(bearerTokenMiddleware.BearerTokenAuthMiddleware())
	{
		// Reference data: readable by everyone, mutable by admins and managers
		clients := api.Group("/clients")
		clients.Use(middleware.PrivilegedWrites())
		{
			clients.POST("", clientHandler.CreateClient)
			clients.GET("", clientHandler.GetClients)
			clients.GET("/:id", clientHandler.GetClient)
			clients.PUT("/:id", clientHandler.UpdateClient)
			clients.DELETE("/:id", clientHandler.DeleteClient)
		}

		stations := api.Group("/stations")
		stations.Use(middleware.PrivilegedWrites())
		{
			stations.POST("", stationHandler.CreateStation)
			stations.GET("", stationHandler.GetStations)
			stations.GET("/:id", stationHandler.GetStation)
			stations.PUT("/:id", stationHandler.UpdateStation)
			stations.DELETE("/:id", stationHandler.DeleteStation)
		}

		campaigns := api.Group("/campaigns")
		campaigns.Use(middleware.PrivilegedWrites())
		{
			campaigns.POST("", campaignHandler.CreateCampaign)
			campaigns.GET("", campaignHandler.GetCampaigns)
			campaigns.GET("/:id", campaignHandler.GetCampaign)
			campaigns.PATCH("/:id", campaignHandler.UpdateCampaign)
			campaigns.PUT("/:id", campaignHandler.UpdateCampaign)
			campaigns.DELETE("/:id", campaignHandler.DeleteCampaign)
		}

		api.GET("/accountant-campaigns", middleware.RequireAccountant(), campaignHandler.GetAccountantCampaigns)

		periods := api.Group("/monitoring-periods")
		periods.Use(middleware.PrivilegedWrites())
		{
			periods.POST("", periodHandler.CreateMonitoringPeriod)
			periods.GET("", periodHandler.GetMonitoringPeriods)
			periods.GET("/:id", periodHandler.GetMonitoringPeriod)
			periods.PUT("/:id", periodHandler.UpdateMonitoringPeriod)
			periods.DELETE("/:id", periodHandler.DeleteMonitoringPeriod)
		}

		analysts := api.Group("/analysts")
		analysts.Use(middleware.PrivilegedWrites())
		{
			analysts.POST("", analystHandler.CreateAnalyst)
			analysts.GET("", analystHandler.GetAnalysts)
			analysts.GET("/:id", analystHandler.GetAnalyst)
		}

		// Assignments: analysts update their own, ownership checked in the handler
		assignments := api.Group("/assignments")
		{
			assignments.POST("", middleware.RequirePrivileged(), assignmentHandler.CreateAssignment)
			assignments.POST("/bulk_create", middleware.RequirePrivileged(), assignmentHandler.BulkCreateAssignments)
			assignments.GET("", assignmentHandler.GetAssignments)
			assignments.GET("/:id", assignmentHandler.GetAssignment)
			assignments.PATCH("/:id", assignmentHandler.UpdateAssignment)
			assignments.PUT("/:id", assignmentHandler.UpdateAssignment)
			assignments.DELETE("/:id", middleware.RequirePrivileged(), assignmentHandler.DeleteAssignment)
		}

		notifications := api.Group("/notifications")
		{
			notifications.GET("", notificationHandler.GetNotifications)
			notifications.POST("/mark_all_read", notificationHandler.MarkAllRead)
			notifications.POST("/:id/read", notificationHandler.SetRead)
		}

		messages := api.Group("/messages")
		{
			messages.POST("", messageHandler.SendMessage)
			messages.GET("", messageHandler.GetMessages)
			messages.GET("/threads", messageHandler.GetThreads)
		}

		users := api.Group("/users")
		users.Use(middleware.RequireAdmin())
		{
			users.GET("", userHandler.GetUsers)
			users.POST("", userHandler.CreateUser)
			users.POST("/:id/active", userHandler.SetUserActive)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		export := api.Group("/export")
		export.Use(middleware.RequirePrivileged())
		{
			export.GET("/campaign-execution", exportHandler.ExportCampaignExecution)
			export.GET("/:entity", exportHandler.ExportEntity)
		}

		api.POST("/import/:entity", middleware.RequirePrivileged(), exportHandler.ImportEntity)

		admin := api.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.POST("/purge", adminHandler.PurgeDomainData)
		}
	}

	return r
}
