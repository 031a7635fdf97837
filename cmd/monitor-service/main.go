package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"golang-stock-watchlist/internal/monitor/config"
	"golang-stock-watchlist/internal/monitor/repository"
	"golang-stock-watchlist/internal/monitor/service"
	"golang-stock-watchlist/pkg/logger"
	"golang-stock-watchlist/pkg/postgres"
	"golang-stock-watchlist/pkg/redis"
	"golang-stock-watchlist/pkg/telegram"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the price monitor service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Monitor Service", logger.Field("name", cfg.App.Name))

	db, err := postgres.NewDB(postgres.Config{
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
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	redisClient, err := redis.NewClient(redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	telegramNotifier, err := telegram.NewClient(cfg.Telegram.BotToken)
	if err != nil {
		appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
	}

	// Initialize repositories
	watchRepo := repository.NewWatchRepository(db.DB)
	alertRepo := repository.NewAlertRepository(db.DB)
	runRepo := repository.NewMonitorRunRepository(db.DB)

	var priceRepo repository.PriceRepository
	switch cfg.PriceSource.Provider {
	case "screener":
		priceRepo = repository.NewScreenerRepository(cfg, appLogger)
	case "yahoo_finance", "":
		priceRepo = repository.NewYahooFinanceRepository(cfg, appLogger)
	default:
		appLogger.Fatal("Unknown price source provider", logger.StringField("provider", cfg.PriceSource.Provider))
	}

	gate := service.NewAlertGate(alertRepo, appLogger)
	monitorSvc := service.NewMonitorService(cfg, watchRepo, runRepo, priceRepo, gate, telegramNotifier, redisClient, appLogger)

	if err := monitorSvc.Start(ctx); err != nil {
		appLogger.Fatal("Monitor service failed", logger.ErrorField(err))
	}

	appLogger.Info("Monitor service exiting")
}

func main() {
	rootCmd := &cobra.Command{Use: "monitor-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-monitor.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing monitor-service CLI: %s\n", err)
		os.Exit(1)
	}
}
