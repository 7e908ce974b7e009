// api/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"launchkit/api/database"
	"launchkit/api/handlers"
	"launchkit/api/middleware"
	"launchkit/api/rewardful"
	"launchkit/api/store"
	"launchkit/api/utils"
)

func main() {
	// Load .env file at the very start
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading .env: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- Initialize PostgreSQL Database (for dashboard users) ---
	dbClient, err := database.NewPostgresDB()
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL database: %v", err)
	}
	defer dbClient.Close()

	// --- Initialize Redis (for the event and click collections) ---
	redisClient, err := database.NewRedisDB()
	if err != nil {
		log.Fatalf("Failed to initialize Redis key-value store: %v", err)
	}
	defer redisClient.Close()

	// --- Initialize Stores ---
	userStore := store.NewUserStore(dbClient.DB)
	kv := store.NewRedisKV(redisClient.Client)
	analyticsStore := store.NewAnalyticsStore(kv)
	affiliateStore := store.NewAffiliateStore(kv)
	rewardfulClient := rewardful.NewClient(os.Getenv("REWARDFUL_API_KEY"))

	log.Printf("Analytics session started: %s", analyticsStore.SessionID())

	// --- Initialize Handlers ---
	authHandlers := handlers.NewAuthHandlers(userStore)
	trackHandlers := handlers.NewTrackHandlers(analyticsStore)
	affiliateHandlers := handlers.NewAffiliateHandlers(affiliateStore, rewardfulClient)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		// Authentication Endpoints (no authentication required)
		api.POST("/signup", authHandlers.Signup)
		api.POST("/login", authHandlers.Login)
		api.POST("/logout", authHandlers.Logout)

		// Tracking endpoints are called by the landing page itself and stay open.
		api.POST("/track", trackHandlers.TrackEvent)
		api.POST("/track/conversion", trackHandlers.TrackConversion)
		api.POST("/track/signup", trackHandlers.TrackEmailSignup)
		api.POST("/track/affiliate-click", trackHandlers.TrackAffiliateClick)
		api.POST("/track/ab-conversion", trackHandlers.TrackABTestConversion)
		api.GET("/variant", trackHandlers.GetVariant)
		api.GET("/affiliate/links", affiliateHandlers.GetAffiliateLinks)
		api.POST("/affiliate/click", affiliateHandlers.TrackClick)

		// Protected Routes (require a valid JWT token)
		protected := api.Group("/")
		protected.Use(middleware.AuthRequired())
		{
			protected.GET("/profile", func(c *gin.Context) {
				userID := c.MustGet("user_id").(int)
				userEmail := c.MustGet("user_email").(string)

				c.JSON(http.StatusOK, gin.H{
					"message":    "Welcome to your profile!",
					"user_id":    userID,
					"user_email": userEmail,
				})
			})

			statsGroup := protected.Group("/stats")
			{
				statsGroup.GET("/metrics", trackHandlers.GetPerformanceMetrics)
				statsGroup.GET("/recommendations", trackHandlers.GetRecommendations)
				statsGroup.GET("/export", trackHandlers.ExportAnalyticsData)
				statsGroup.GET("/affiliate-performance", affiliateHandlers.GetPerformanceAnalytics)
				statsGroup.DELETE("/events", trackHandlers.ClearEvents)
			}

			protected.POST("/affiliate/conversion", affiliateHandlers.TrackConversion)
			protected.POST("/affiliate/onboarding", affiliateHandlers.CreateOnboarding)
		}
	}

	port := utils.EnvOr("PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Printf("Go API server starting on http://localhost:%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Go API server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
