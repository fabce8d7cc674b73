package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/stakeworks/poolledger/internal/api"
	"github.com/stakeworks/poolledger/internal/config"
	"github.com/stakeworks/poolledger/internal/models"
	"github.com/stakeworks/poolledger/internal/notify"
	"github.com/stakeworks/poolledger/internal/pool"
	"github.com/stakeworks/poolledger/internal/transfer"
	"github.com/stakeworks/poolledger/internal/utils"
)

func main() {
	logger := utils.GetLogger()

	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatalf("Failed to get database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := db.AutoMigrate(&models.Account{}, &models.RewardEpoch{}, &models.Pool{}); err != nil {
		logger.Fatalf("Failed to migrate database schema: %v", err)
	}
	if err := pool.EnsurePool(db); err != nil {
		logger.Fatalf("Failed to initialize pool: %v", err)
	}

	hub := notify.NewHub(logger)
	custodian := transfer.NewCustodianClient(cfg.CustodianURL)
	ctrl := pool.NewController(db, pool.OperatorPolicy{Operator: cfg.OperatorAddress}, custodian, hub, logger)

	// Periodic conservation audit: total stake must cover every account's
	// stake plus unsettled reward, with only dust left over.
	auditCron := cron.New()
	if _, err := auditCron.AddFunc(cfg.AuditSchedule, func() {
		dust, err := ctrl.Audit()
		if err != nil {
			logger.Printf("AUDIT FAILED: %v", err)
			return
		}
		logger.Printf("audit ok, dust residual %d", dust)
	}); err != nil {
		logger.Fatalf("Failed to register audit job: %v", err)
	}
	auditCron.Start()

	// Channel to listen for termination signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		router := api.NewRouter(ctrl, hub)
		logger.Printf("Starting API server on %s", cfg.ListenAddr)
		if err := router.Run(cfg.ListenAddr); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to run API server: %v", err)
		}
	}()

	<-stop

	logger.Println("Shutting down...")
	auditCron.Stop()
	sqlDB.Close()
}
