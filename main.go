// File: bookvisit/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookvisit/config"
	"bookvisit/handlers"
	"bookvisit/routes"
	"bookvisit/services/booker"
	"bookvisit/services/journey"
	"bookvisit/services/orchestration"
	"bookvisit/services/ratelimit"
	"bookvisit/services/session"
	"bookvisit/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync() //nolint:errcheck

	utils.InitRedis()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if err := utils.RegisterMetrics(reg); err != nil {
		logger.Sugar().Fatalf("main: failed to register metrics: %v", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Rate limiters share one redis database, separated by key prefix.
	rateLimitClient := utils.GetRateLimitCacheClient()
	bookerLimiter := ratelimit.NewRedisRateLimiter(rateLimitClient, "booker", cfg.BookerRateLimitMax,
		time.Duration(cfg.BookerRateLimitWindowSeconds)*time.Second)
	prisonerLimiter := ratelimit.NewRedisRateLimiter(rateLimitClient, "prisoner", cfg.PrisonerRateLimitMax,
		time.Duration(cfg.PrisonerRateLimitWindowSeconds)*time.Second)
	visitorRequestLimiter := ratelimit.NewRedisRateLimiter(rateLimitClient, "visitor-request", cfg.VisitorRequestRateLimitMax,
		time.Duration(cfg.VisitorRequestRateLimitWindowSecs)*time.Second)

	sessionStore := session.NewRedisStore(utils.GetSessionCacheClient(), cfg.SessionTTL())

	orchestrationClient := orchestration.NewClient(
		cfg.OrchestrationAPIURL,
		orchestration.NewTokenHTTPClient(ctx, cfg.HmppsAuthTokenURL, cfg.ClientID, cfg.ClientSecret, cfg.OrchestrationTimeout()),
		logger.Named("orchestration"),
	)

	// services.
	journeyService := &journey.DefaultBookingJourneyService{
		Orchestration: orchestrationClient,
		Logger:        logger.Named("journey"),
		Now:           time.Now,
	}
	bookerService := &booker.DefaultBookerService{
		Orchestration:         orchestrationClient,
		BookerLimiter:         bookerLimiter,
		PrisonerLimiter:       prisonerLimiter,
		VisitorRequestLimiter: visitorRequestLimiter,
		Logger:                logger.Named("booker"),
	}

	// Assemble the handler bundle.
	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewBookerHandler(bookerService, sessionStore),
		handlers.NewBookingJourneyHandler(journeyService, sessionStore),
	)
	handlerBundle.JWTSecret = []byte(cfg.JWTSecret)
	handlerBundle.MaxRequestsPerMin = cfg.MaxRequestsPerMin
	handlerBundle.MetricsEnabled = cfg.MetricsEnabled

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	routes.RegisterRoutes(router, handlerBundle, reg)

	utils.StartHealthMonitor(ctx, []*redis.Client{utils.GetSessionCacheClient(), rateLimitClient}, 30*time.Second)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "3000"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
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
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
