package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging
	"net/http"
	"time"

	"udyog_saarthi/internal/api"        // Custom package for API handlers
	"udyog_saarthi/internal/catalog"    // Custom package for the in-memory catalog
	"udyog_saarthi/internal/config"     // Custom package for configuration
	"udyog_saarthi/internal/db"         // Custom package for database access
	"udyog_saarthi/internal/domain"     // Custom package for domain models
	"udyog_saarthi/internal/identity"   // Custom package for the identity store
	"udyog_saarthi/internal/ledger"     // Custom package for the application service
	"udyog_saarthi/internal/middleware" // Custom package for middleware
	"udyog_saarthi/internal/notify"     // Custom package for outbound email

	"github.com/gin-contrib/cors"  // CORS middleware for the frontend
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the relational store (MySQL, or the SQLite fallback)
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	// Ensure the schema and seed an empty jobs table; neither is fatal, the
	// service degrades to the in-memory catalog
	if err := db.Migrate(gdb); err != nil {
		logrus.Warnf("could not create tables: %v", err)
	} else {
		db.SeedJobs(gdb, catalog.DefaultSeed())
	}

	// Identity store (users.json), created with defaults on first run
	ids, err := identity.NewStore(cfg.UsersFile)
	if err != nil {
		logrus.Fatalf("failed to open identity store: %v", err)
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection; a missing cache only costs cache hits
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Warnf("failed to connect to Redis, caching disabled: %v", err)
	}

	// Outbound email, only when SMTP is configured
	var notifier notify.Notifier
	if cfg.SMTPHost != "" {
		notifier = notify.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	} else {
		logrus.Warn("SMTP not configured, notification emails disabled")
	}

	// In-memory catalog and the application service around it
	cat := catalog.New(catalog.DefaultSeed())
	svc := ledger.NewService(gdb, cat, ids, notifier)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// CORS for the frontend app, Authorization header included
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORSOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Authorization"},
		MaxAge:        10 * time.Minute,
	}))

	// Liveness banner
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Udyog Saarthi Backend is running 🚀"})
	})

	// Auth routes
	authGroup := r.Group("/api/auth")
	authGroup.POST("/register", api.RegisterHandler(ids, notifier)) // Registration endpoint
	authGroup.POST("/login", api.LoginHandler(ids, notifier, cfg.JWTSecret))
	// Profile routes (protected by JWT)
	profileGroup := authGroup.Group("")
	profileGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	profileGroup.GET("/profile", api.ProfileHandler(ids))       // Profile endpoint
	profileGroup.POST("/update", api.UpdateProfileHandler(ids)) // Profile update endpoint

	// Job routes; listing is public, mutations are role-gated
	jobsGroup := r.Group("/api/jobs")
	jobsGroup.GET("/", api.ListJobsHandler(svc, redisClient)) // Catalog snapshot
	protectedJobs := jobsGroup.Group("")
	protectedJobs.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	protectedJobs.POST("/add",
		middleware.RequireRole(domain.RoleEmployer, "Only employers can post jobs"),
		api.AddJobHandler(svc, redisClient)) // Posting endpoint
	protectedJobs.POST("/apply/:jobID",
		middleware.RequireRole(domain.RoleJobseeker, "Only jobseekers can apply"),
		api.ApplyJobHandler(svc, redisClient)) // Application endpoint

	// Coaching routes (static listing)
	r.GET("/api/coaching/", api.ListCoachingHandler())

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
