package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/ChaleeCh/support-tickets/internal/application/ticket/usecases"
	"github.com/ChaleeCh/support-tickets/internal/infrastructure/config"
	"github.com/ChaleeCh/support-tickets/internal/infrastructure/store"
	tickethandlers "github.com/ChaleeCh/support-tickets/internal/interfaces/http/handlers/ticket"
	"github.com/ChaleeCh/support-tickets/internal/interfaces/http/routes"
	"github.com/ChaleeCh/support-tickets/internal/shared/authorization"
	"github.com/ChaleeCh/support-tickets/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the ticket desk HTTP server with specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("starting server", "environment", env, "seed", cfg.Seed.Enabled)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	log := logger.NewLogger()

	recordStore := store.NewMemoryStore()
	blobStore := store.NewMemoryBlobStore()
	if cfg.Seed.Enabled {
		if err := store.Preload(recordStore); err != nil {
			return fmt.Errorf("failed to seed ticket table: %w", err)
		}
		logger.Info("ticket table seeded", "rows", recordStore.Count())
	}

	enforcer, err := authorization.NewEnforcer(log)
	if err != nil {
		return fmt.Errorf("failed to build authorization enforcer: %w", err)
	}

	handler := tickethandlers.NewTicketHandler(
		usecases.NewSubmitTicketUseCase(recordStore, blobStore, enforcer, log),
		usecases.NewUploadBatchUseCase(recordStore, enforcer, log),
		usecases.NewReconcileEditsUseCase(recordStore, enforcer, log),
		usecases.NewAddNotesUseCase(recordStore, enforcer, log),
		usecases.NewListTicketsUseCase(recordStore, log),
		usecases.NewGetTicketStatsUseCase(recordStore, log),
		usecases.NewGetAttachmentUseCase(recordStore, blobStore, log),
		cfg.Upload.MaxSizeBytes(),
	)

	engine, err := routes.SetupRouter(&cfg.Server, &routes.TicketRouteConfig{
		TicketHandler: handler,
		Enforcer:      enforcer,
	}, log)
	if err != nil {
		return fmt.Errorf("failed to set up router: %w", err)
	}

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func mapEnvToGinMode(env string) string {
	switch env {
	case "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
