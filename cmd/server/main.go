package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"mastoride/internal/booking"
	"mastoride/internal/config"
	"mastoride/internal/geocode"
	"mastoride/internal/handlers"
	"mastoride/internal/history"
	"mastoride/internal/middleware"
	"mastoride/internal/notify"
	"mastoride/internal/payment"
	"mastoride/internal/services"
	"mastoride/internal/store"
	"mastoride/internal/syncer"
	"mastoride/internal/utils"
	"mastoride/pkg/cache"
	"mastoride/pkg/database"
	"mastoride/pkg/logger"
	"mastoride/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: "json",
		Output: "stdout",
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	// MongoDB backs the auth and admin surfaces.
	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	if err := database.NewMigrator(db.Database).Up(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis backs the dashboard store; without it we degrade to
	// process-local memory, which is fine for development.
	var kv store.KV
	if redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	}); err != nil {
		log.WithError(err).Warn("Redis unavailable, using in-memory dashboard store")
		kv = store.NewMemoryKV()
	} else {
		defer redisCache.Close()
		kv = store.NewRedisKV(redisCache)
	}
	st := store.New(kv)

	hub := notify.NewHub()
	go hub.Run()
	notifier := notify.NewNotifier(hub, log)

	var geocoder geocode.Provider
	if cfg.Maps.Provider == "google" && cfg.Maps.GoogleMaps.APIKey != "" {
		googleProvider, err := geocode.NewGoogleProvider(cfg.Maps.GoogleMaps)
		if err != nil {
			log.Fatalf("Failed to initialize Google geocoder: %v", err)
		}
		geocoder = googleProvider
	} else {
		geocoder = geocode.NewNominatimProvider(cfg.Maps.Nominatim)
	}

	bookingSvc := booking.NewService(st, notifier, log)
	historySvc := history.NewService(st, notifier, log)
	simulator := payment.NewSimulator(cfg.Payment.ProcessingDelay, log)
	bookingSync := syncer.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, notifier, log)
	dashboardSvc := services.NewDashboardService(st, bookingSvc, simulator, historySvc, bookingSync, notifier, log)
	authSvc := services.NewAuthService(db, cfg.Security, config.IsDevelopment(), log)
	adminSvc := services.NewAdminService(db, log)

	authHandler := handlers.NewAuthHandler(authSvc, log)
	adminHandler := handlers.NewAdminHandler(adminSvc, log)
	dashboardHandler := handlers.NewDashboardHandler(st, bookingSvc, dashboardSvc, historySvc, notifier, geocoder, cfg.Maps.Debounce, log)
	defer dashboardHandler.Close()
	proxyHandler := handlers.NewProxyHandler(cfg.Upstream, log)
	wsHandler := notify.NewHandler(hub)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))
	router.Use(middleware.RequestIDMiddleware())
	if len(cfg.Security.TrustedProxies) > 0 {
		if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
			log.Fatalf("Failed to set trusted proxies: %v", err)
		}
	}

	api := router.Group("/api")
	{
		routes.SetupAuthRoutes(api, authHandler)
		routes.SetupAdminRoutes(api, adminHandler, cfg.Security.JWTSecret)
		routes.SetupDashboardRoutes(api, dashboardHandler, cfg.Security.JWTSecret)
		routes.SetupWebSocketRoutes(api, wsHandler, cfg.Security.JWTSecret)
	}
	routes.SetupProxyRoutes(router, proxyHandler)

	router.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		mongo := "up"
		if err := db.Ping(); err != nil {
			status = http.StatusServiceUnavailable
			mongo = "down"
		}
		c.JSON(status, gin.H{
			"status":  "healthy",
			"app":     utils.AppName,
			"version": cfg.App.Version,
			"mongo":   mongo,
		})
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	log.Infof("Starting %s on %s", utils.AppName, addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
