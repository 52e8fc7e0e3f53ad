package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/payslip-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/payslip-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/payslip-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/payslip-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/payslip-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/payslip-backend-go/internal/repository/postgresql"
	payslipService "github.com/cmlabs-hris/payslip-backend-go/internal/service/payslip"
	"github.com/go-chi/httplog/v3"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payslip-cmlabs"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			return err
		}
	}

	payslipRepo := postgresql.NewPayslipRepository(db)
	inputTypeRepo := postgresql.NewInputTypeRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	entryRepo := postgresql.NewAdHocEntryRepository(db)
	moveRepo := postgresql.NewMoveRepository(db)
	userGroupRepo := postgresql.NewUserGroupRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpirationTime)

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		return fmt.Errorf("failed to initialize email service: %w", err)
	}

	registry, err := payslipService.ResolveRegistry(ctx, inputTypeRepo, emailService, cfg.Payslip)
	if err != nil {
		return fmt.Errorf("failed to resolve payslip registry: %w", err)
	}

	payslipSvc := payslipService.NewPayslipService(
		postgresql.NewTransactor(db),
		payslipRepo,
		employeeRepo,
		entryRepo,
		moveRepo,
		userGroupRepo,
		emailService,
		registry,
		cfg.Payslip,
	)

	payslipHandler := appHTTP.NewPayslipHandler(payslipSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{AllowedOrigins: cfg.App.CORSAllowedOrigins},
		logger,
		JWTService,
		userGroupRepo,
		payslipHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		slog.Info("Shutting down server")
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
