/**
 * @description
 * This is the main entry point for the back-office service. It initializes
 * every component (config, database pool, Redis, the core-banking client,
 * the in-memory account store and its view engine), then starts the HTTP
 * server, the account event consumer and the scheduled refresh job, and
 * implements graceful shutdown.
 *
 * Key features:
 * - Loads application configuration from environment variables.
 * - Establishes and manages a connection pool to PostgreSQL.
 * - Seeds the account store with an initial authoritative fetch from the core.
 * - Starts the message consumer, the cron scheduler and the HTTP server.
 *
 * @dependencies
 * - The service's internal packages for config, app logic, storage and clients.
 * - pgxpool for database connections, go-redis for sessions, godotenv for
 *   local config, and rabbitmq for messaging.
 */
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/atharibank/backoffice-service/internal/api"
	"github.com/atharibank/backoffice-service/internal/app"
	"github.com/atharibank/backoffice-service/internal/config"
	"github.com/atharibank/backoffice-service/internal/repository"
	"github.com/atharibank/backoffice-service/internal/store"
	"github.com/atharibank/backoffice-service/internal/views"
	"github.com/atharibank/backoffice-service/pkg/corebank"
	"github.com/atharibank/backoffice-service/pkg/rabbitmq"
	"github.com/atharibank/backoffice-service/pkg/session"
)

func main() {
	// Load .env file for local development.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Establish database connection pool.
	dbConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to parse database URL: %v\n", err)
	}
	dbConfig.MaxConns = 20
	dbConfig.MaxConnLifetime = 30 * time.Minute
	dbConfig.MaxConnIdleTime = 5 * time.Minute

	dbpool, err := pgxpool.NewWithConfig(context.Background(), dbConfig)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer dbpool.Close()
	log.Println("Database connection established")

	// Redis backs the revocable session store.
	redisOptions, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Unable to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(redisOptions)
	defer redisClient.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		cancelPing()
		log.Fatalf("Unable to connect to Redis: %v", err)
	}
	cancelPing()
	log.Println("Redis connection established")

	// Set up dependencies.
	roleRepo := repository.NewRoleRepository(dbpool)
	adminRepo := repository.NewAdminUserRepository(dbpool)
	feeRepo := repository.NewFeeRepository(dbpool)
	sessionStore := session.NewStore(redisClient)
	coreClient := corebank.NewClient(cfg.CoreBankAPIBaseURL, cfg.CoreBankAPIKey)

	accountStore := store.NewAccountStore()
	viewEngine := views.NewEngine()

	accountService := app.NewAccountService(coreClient, accountStore, logger)
	roleService := app.NewRoleService(roleRepo)
	feeService := app.NewFeeService(feeRepo)
	authService := app.NewAuthService(adminRepo, roleRepo, sessionStore, cfg.JWTSecret,
		time.Duration(cfg.TokenTTLMinutes)*time.Minute, logger)
	eventHandler := app.NewAccountEventHandler(accountService)

	// Seed the store with an initial authoritative fetch. A failure here is
	// non-fatal; the consumer and the refresh job will converge the state.
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	if err := accountService.RefreshAccounts(seedCtx); err != nil {
		log.Printf("Initial account fetch failed: %v", err)
	}
	cancelSeed()

	// Setup RabbitMQ consumers for the core-banking account events.
	consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer consumer.Close()

	go func() {
		log.Printf("Starting consumer for account upsert events...")
		if err := consumer.Consume("corebank_events", "backoffice_account_upserts", app.AccountUpsertRoutingKeys, eventHandler.HandleAccountUpserted); err != nil {
			log.Printf("Consumer error: %v", err)
		}
	}()
	go func() {
		log.Printf("Starting consumer for account.closed events...")
		if err := consumer.Consume("corebank_events", "backoffice_account_closures", []string{app.RoutingKeyAccountClosed}, eventHandler.HandleAccountClosed); err != nil {
			log.Printf("Consumer error: %v", err)
		}
	}()

	// Start the scheduled authoritative refresh.
	jobs := app.NewJobs(accountService, logger)
	scheduler := app.NewScheduler(jobs, logger, cfg.RefreshSchedule)
	scheduler.Start()

	// Setup and start HTTP server.
	router := api.NewRouter(cfg, accountService, viewEngine, roleService, feeService, authService)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not start server: %s\n", err)
		}
	}()

	log.Println("Back-office service is running with API, event consumers and scheduler.")

	// Wait for termination signal for graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down backoffice-service...")

	<-scheduler.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server gracefully stopped")
}
