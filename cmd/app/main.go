package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"shoporder/cmd"
	httpin "shoporder/internal/adapters/in/http"
	"shoporder/internal/adapters/out/postgres/orderrepo"
	"shoporder/internal/adapters/out/postgres/packagerepo"
	"shoporder/internal/adapters/out/postgres/paymentrepo"
	"shoporder/internal/adapters/out/postgres/statusrepo"
	"shoporder/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db := mustConnectDB(configs)

	root, err := cmd.NewCompositionRoot(configs, db, logger)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	if err := root.SeedStatuses(context.Background()); err != nil {
		log.Fatalf("Failed to seed status registry: %v", err)
	}

	jobManager := jobs.NewJobManager(
		root.CreateReconcilePaymentsCommandHandler(),
		root.ReconcileSchedule(),
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	// Missing .env is fine, plain environment variables still apply.
	_ = godotenv.Load(".env")

	return cmd.Config{
		HTTPPort:          envOr("HTTP_PORT", "8080"),
		DBHost:            envOr("DB_HOST", "localhost"),
		DBPort:            envOr("DB_PORT", "5432"),
		DBUser:            envOr("DB_USER", "postgres"),
		DBPassword:        envOr("DB_PASSWORD", "postgres"),
		DBName:            envOr("DB_NAME", "shoporder"),
		DBSslMode:         envOr("DB_SSLMODE", "disable"),
		OrderPageURL:      envOr("ORDER_PAGE_URL", "http://localhost:8080/order"),
		GatewayPageURL:    envOr("GATEWAY_PAGE_URL", "http://localhost:8080/gateway"),
		ReconcileSchedule: envOr("RECONCILE_SCHEDULE", "*/10 * * * *"),
		BankTolerance:     envOr("BANK_TOLERANCE", "0.25"),
		CancelAfterDays:   envIntOr("CANCEL_AFTER_DAYS", 21),
		PingAfterDays:     envIntOr("PING_AFTER_DAYS", 7),
		CompleteAfterDays: envIntOr("COMPLETE_AFTER_DAYS", 14),
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return value
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&statusrepo.StatusDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.HistoryDTO{},
		&paymentrepo.BankPaymentDTO{},
		&paymentrepo.OnlinePaymentDTO{},
		&packagerepo.PackageDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		root.CreateChangeOrderStatusCommandHandler(),
		root.CreateCreatePaymentCommandHandler(),
		root.CreateCheckPaymentStatusCommandHandler(),
		root.CreateCreatePackagesCommandHandler(),
		root.CreateGetOrderSummaryQueryHandler(),
		root.CreateGetAllStatusesQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
