package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/primeauto/showroom-api/handlers"
	adminhandler "github.com/primeauto/showroom-api/internal/admins/handler"
	adminrepo "github.com/primeauto/showroom-api/internal/admins/repository"
	adminservice "github.com/primeauto/showroom-api/internal/admins/service"
	bookinghandler "github.com/primeauto/showroom-api/internal/bookings/handler"
	bookingrepo "github.com/primeauto/showroom-api/internal/bookings/repository"
	bookingservice "github.com/primeauto/showroom-api/internal/bookings/service"
	carhandler "github.com/primeauto/showroom-api/internal/cars/handler"
	carrepo "github.com/primeauto/showroom-api/internal/cars/repository"
	carservice "github.com/primeauto/showroom-api/internal/cars/service"
	"github.com/primeauto/showroom-api/internal/config"
	"github.com/primeauto/showroom-api/internal/database"
	notifhandler "github.com/primeauto/showroom-api/internal/notifications/handler"
	notifrepo "github.com/primeauto/showroom-api/internal/notifications/repository"
	"github.com/primeauto/showroom-api/internal/storage"
	"github.com/primeauto/showroom-api/pkg/logger"
	"github.com/primeauto/showroom-api/pkg/metrics"
	"github.com/primeauto/showroom-api/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging is controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v minio=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.MinIO.Endpoint != "")

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple; production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// Global middlewares: logging + recovery + request metrics
	r.Use(gin.Logger(), gin.Recovery(), middleware.Metrics())

	// Connect to Redis early so the rate-limiter can use it when configured
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
		} else {
			logger.Infof("connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Optional global rate limiter (per-admin when authenticated, otherwise per-IP)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	ctx := context.Background()

	// Connect to MongoDB with retry/backoff to tolerate startup races
	const maxAttempts = 5
	backoff := time.Second
	var client *mongo.Client
	var errConn error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		client, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if errConn == nil {
			break
		}
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	if errConn != nil {
		logger.Fatalf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
	}
	defer func() { _ = client.Disconnect(ctx) }()
	db := client.Database(cfg.MongoDB.Database)

	// Image store (MinIO). The cars service cannot run without it.
	store, err := storage.NewMinIOStore(cfg.MinIO)
	if err != nil {
		logger.Fatalf("failed to initialize image store: %v", err)
	}

	// Domain wiring: repositories -> services -> handlers
	carSvc := carservice.NewService(carrepo.NewMongoRepo(db.Collection("cars")), store)
	bookingSvc := bookingservice.NewService(bookingrepo.NewMongoRepo(db.Collection("bookings")), carSvc)
	adminSvc := adminservice.NewService(cfg, adminrepo.NewMongoRepo(db.Collection("admins")))

	root := r.Group("/")
	carhandler.NewCarHandler(cfg, carSvc).Register(root)
	bookinghandler.NewBookingHandler(cfg, bookingSvc).Register(root)
	adminhandler.NewAuthHandler(cfg, adminSvc).Register(root)
	notifhandler.NewNotificationHandler(cfg, notifrepo.NewMongoRepo(db.Collection("notifications"))).Register(root)

	handlers.RegisterSwagger(r)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness: 200 only when critical dependencies answer
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		deps["mongodb"] = client.Ping(pingCtx, nil) == nil
		deps["storage"] = store.Ping(pingCtx) == nil
		if !deps["mongodb"] || !deps["storage"] {
			ready = false
		}

		// Redis only gates readiness when the rate limiter depends on it
		if cfg.RateLimit.Enabled && cfg.RateLimit.UseRedis {
			deps["redis"] = redisClient != nil && redisClient.Ping(pingCtx).Err() == nil
			if !deps["redis"] {
				ready = false
			}
		} else {
			deps["redis"] = true
		}

		status := http.StatusOK
		label := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			label = "not_ready"
		}
		c.JSON(status, gin.H{"status": label, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting showroom API on %s (env=%s)", addr, cfg.Server.Environment)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
