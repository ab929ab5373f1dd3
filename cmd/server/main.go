package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/tripdesk/tripdesk/internal/application/service"
	"github.com/tripdesk/tripdesk/internal/config"
	"github.com/tripdesk/tripdesk/internal/domain/derivation"
	"github.com/tripdesk/tripdesk/internal/infrastructure/directory"
	"github.com/tripdesk/tripdesk/internal/infrastructure/persistence/repository"
	"github.com/tripdesk/tripdesk/internal/infrastructure/persistence/sqlite"
	"github.com/tripdesk/tripdesk/internal/infrastructure/storage"
	httpapi "github.com/tripdesk/tripdesk/internal/interfaces/http"
	"github.com/tripdesk/tripdesk/internal/notification"
	"github.com/tripdesk/tripdesk/internal/report"
	"github.com/tripdesk/tripdesk/pkg/database"
	"github.com/tripdesk/tripdesk/pkg/utils"
)

func main() {
	// Local overrides for development; missing .env is fine
	_ = gotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting travel request service",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.Storage.AttachmentDir, 0755); err != nil {
		logger.Fatal("Failed to create attachment directory", zap.Error(err))
	}

	// Persistence
	txManager := sqlite.NewDB(db.DB, logger)
	requestRepo := repository.NewTravelRequestRepository(db.DB, logger)
	cityRepo := repository.NewCityRepository(db.DB, logger)
	vehicleRepo := repository.NewVehicleRepository(db.DB, logger)
	historyRepo := repository.NewHistoryRepository(db.DB, logger)
	notificationRepo := repository.NewNotificationRepository(db.DB, logger)
	sequenceRepo := repository.NewSequenceRepository(db.DB, logger)

	// Supporting infrastructure
	attachmentStore := storage.NewLocalAttachmentStore(cfg.Storage.AttachmentDir, logger)
	employeeDirectory := directory.NewStaticDirectory(cfg.Directory.Managers, logger)

	bundle, err := notification.NewBundle(cfg.Notification.Locale)
	if err != nil {
		logger.Fatal("Failed to load notification locales", zap.Error(err))
	}
	notifier := notification.NewMessenger(bundle, notification.NewLogTransport(logger), notificationRepo, logger)

	// Application services
	sugar := logger.Sugar()
	requestService := service.NewRequestService(
		requestRepo,
		cityRepo,
		vehicleRepo,
		historyRepo,
		txManager,
		sequenceRepo,
		employeeDirectory,
		attachmentStore,
		service.RequestServiceConfig{
			HomeCountry: cfg.Company.HomeCountry,
			Currency:    cfg.Company.Currency,
			Rates: derivation.Rates{
				Domestic:      cfg.Travel.DomesticDailyRate,
				International: cfg.Travel.InternationalDailyRate,
			},
			ReferencePrefix: cfg.Travel.ReferencePrefix,
		},
		sugar,
	)
	workflowService := service.NewWorkflowService(
		requestRepo,
		historyRepo,
		txManager,
		notifier,
		cfg.Notification.FinanceRecipient,
		sugar,
	)
	catalogService := service.NewCatalogService(cityRepo, vehicleRepo, sugar)
	exporter := report.NewExporter(cfg.Company.Name, logger)

	server := httpapi.NewServer(
		httpapi.ServerConfig{
			Host:         cfg.Server.Host,
			Port:         cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		requestService,
		workflowService,
		catalogService,
		exporter,
		sugar,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}
