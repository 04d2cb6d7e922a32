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

	"invest-advisor/internal/advisor/config"
	advisorhttp "invest-advisor/internal/advisor/delivery/http"
	advisortelegram "invest-advisor/internal/advisor/delivery/telegram"
	"invest-advisor/internal/advisor/forecast"
	"invest-advisor/internal/advisor/repository"
	"invest-advisor/internal/advisor/service"
	"invest-advisor/pkg/logger"
	"invest-advisor/pkg/postgres"
	"invest-advisor/pkg/redis"
	"invest-advisor/pkg/telegram"
	"invest-advisor/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the investment advisor service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Investment Advisor", zap.String("name", cfg.App.Name))

	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", zap.Error(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Repositories
	priceRepo := repository.NewYahooFinanceRepository(cfg, appLogger, redisClient)
	var newsFallback repository.NewsRepository
	if cfg.GoogleNewsRSS.Enabled {
		newsFallback = repository.NewGoogleNewsRSSRepository(cfg, appLogger)
	}
	newsRepo := repository.NewNewsAPIRepository(cfg, appLogger)
	profileRepo := repository.NewUserProfileRepository(db.DB)
	termRepo := repository.NewInvestmentTermRepository(db.DB)
	recordRepo := repository.NewAnalysisRecordRepository(db.DB)

	// Services
	sentimentSvc := service.NewSentimentService(appLogger, newsRepo, newsFallback)
	forecastSvc := service.NewForecastService(cfg, appLogger, priceRepo, sentimentSvc, forecast.NewDefaultForecaster())
	riskSvc := service.NewRiskService(cfg, appLogger, priceRepo)
	recommendationSvc := service.NewRecommendationService(appLogger, profileRepo, recordRepo)
	advisorSvc := service.NewAdvisorService(cfg, appLogger, priceRepo, forecastSvc, riskSvc, recommendationSvc)
	termSvc := service.NewTermService(appLogger, termRepo)
	historySvc := service.NewHistoryService(cfg, appLogger, priceRepo)

	// Warm the benchmark series cache every weekday morning so the
	// first interactive risk request does not pay the provider latency.
	cronRunner := cron.New()
	_, err = cronRunner.AddFunc("0 6 * * 1-5", func() {
		warmCtx, warmCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer warmCancel()
		start, end := utils.DateRange(cfg.Advisor.RiskPeriodDays)
		if _, err := priceRepo.GetDailySeries(warmCtx, cfg.Advisor.BenchmarkSymbol, start, end); err != nil {
			appLogger.Warn("Benchmark cache warm-up failed", zap.Error(err))
		}
	})
	if err != nil {
		appLogger.Fatal("Failed to schedule cache warm-up", zap.Error(err))
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	// HTTP delivery
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	handler := advisorhttp.NewAdvisorHandler(cfg, appLogger, advisorSvc, forecastSvc, riskSvc)
	handler.RegisterRoutes(e.Group("/v1"))

	utils.GoSafe(func() {
		addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		appLogger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server stopped", zap.Error(err))
		}
	})

	// Telegram delivery
	if cfg.Telegram.BotToken != "" {
		telegramClient, err := telegram.NewClient(cfg.Telegram.BotToken)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram bot", zap.Error(err))
		}
		bot := advisortelegram.NewBot(cfg, appLogger, telegramClient,
			advisorSvc, forecastSvc, riskSvc, historySvc, termSvc, profileRepo)
		utils.GoSafe(func() {
			bot.Run(ctx)
		})
	} else {
		appLogger.Warn("Telegram bot token not configured, running HTTP only")
	}

	<-ctx.Done()
	appLogger.Info("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP shutdown failed", zap.Error(err))
	}
}

func main() {
	rootCmd := &cobra.Command{Use: "advisor"}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-advisor.yaml", "Path to the configuration file")
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing advisor CLI: %s\n", err)
		os.Exit(1)
	}
}
