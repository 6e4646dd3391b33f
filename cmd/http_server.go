package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sparkserves/subscription-checkout/internal"
	"github.com/sparkserves/subscription-checkout/internal/billing"
	billingpg "github.com/sparkserves/subscription-checkout/internal/billing/postgres"
	"github.com/sparkserves/subscription-checkout/internal/checkout"
	"github.com/sparkserves/subscription-checkout/internal/core/events"
	"github.com/sparkserves/subscription-checkout/internal/order"
	"github.com/sparkserves/subscription-checkout/internal/paymentgateway"
	"github.com/sparkserves/subscription-checkout/internal/transport"
	"github.com/sparkserves/subscription-checkout/internal/transport/rest"
	"github.com/sparkserves/subscription-checkout/internal/verification"
	"github.com/sparkserves/subscription-checkout/pkg/logger"
)

// Sessions that saw no activity for this long are dropped; the payment
// widget gives up well before then.
const sessionMaxAge = time.Hour

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle checkout API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config              *internal.Config
	DB                  *sqlx.DB
	Router              *chi.Mux
	Logger              *slog.Logger
	Sessions            *checkout.SessionStore
	OrderHandler        *order.Handler
	VerificationHandler *verification.Handler
	CheckoutHandler     *checkout.Handler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Periodic cleanup of abandoned checkout sessions
	pruneStop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if removed := deps.Sessions.Prune(sessionMaxAge); removed > 0 {
					deps.Logger.Info("pruned stale checkout sessions", "removed", removed)
				}
			case <-pruneStop:
				return
			}
		}
	}()

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down...", "signal", sig)
		close(pruneStop)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func setupRoutes(deps *Dependencies) {
	rest.RegisterAllRoutes(
		deps.Router,
		deps.DB.DB,
		deps.OrderHandler,
		deps.VerificationHandler,
		deps.CheckoutHandler,
		deps.Logger,
	)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Format, config.Observability.Logging.Level)
	appLogger := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	eventBus := events.NewEventBus(appLogger)
	checkout.NewEventHandler(appLogger).RegisterHandlers(eventBus)

	gatewayClient := paymentgateway.NewClient(paymentgateway.Config{
		BaseURL:   config.Razorpay.BaseURL(),
		KeyID:     config.Razorpay.KeyID,
		KeySecret: config.Razorpay.KeySecret,
		Timeout:   config.Razorpay.Timeout,
	}, appLogger)

	verifier := verification.NewVerifier(config.Razorpay.KeySecret)

	billingRepository := billingpg.NewBillingRepository(gormDB, billingpg.SequenceInvoiceNumberGenerator{})
	billingService := billing.NewService(billingRepository, appLogger)

	sessions := checkout.NewSessionStore()
	checkoutService := checkout.NewService(
		sessions,
		gatewayClient,
		verifier,
		billingService,
		eventBus,
		config.Razorpay,
		appLogger,
	)

	orderService := order.NewService(gatewayClient, appLogger)

	baseHandler := transport.NewBaseHandler(appLogger)

	return &Dependencies{
		Config:              config,
		DB:                  db,
		Router:              chi.NewRouter(),
		Logger:              appLogger,
		Sessions:            sessions,
		OrderHandler:        order.NewHandler(baseHandler, orderService, appLogger),
		VerificationHandler: verification.NewHandler(baseHandler, verifier, appLogger),
		CheckoutHandler:     checkout.NewHandler(baseHandler, checkoutService, appLogger),
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm wraps the existing connection pool so gorm and raw SQL share it.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormpostgres.New(gormpostgres.Config{
		Conn: db.DB,
	}), &gorm.Config{})
}
