package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/Shivanand-hulikatti/event-planner/internal/config"
	"github.com/Shivanand-hulikatti/event-planner/internal/database"
	"github.com/Shivanand-hulikatti/event-planner/internal/events"
	"github.com/Shivanand-hulikatti/event-planner/internal/export"
	"github.com/Shivanand-hulikatti/event-planner/internal/handler"
	"github.com/Shivanand-hulikatti/event-planner/internal/repository"
	"github.com/Shivanand-hulikatti/event-planner/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	serveCmd.Flags().Bool("migrate", false, "apply pending migrations before serving")
	bindFlag(serveCmd, "http.addr", "addr")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()
	slog.Info("connected to postgres")

	if runMigrations, _ := cmd.Flags().GetBool("migrate"); runMigrations {
		if err := database.Migrate(pool); err != nil {
			return err
		}
	}

	deps := newDeps(pool, cfg)

	var sub events.Subscriber
	if cfg.NATS.URL != "" {
		pub, err := events.NewNATSPublisher(cfg.NATS.URL)
		if err != nil {
			return err
		}
		defer pub.Close()
		deps.Publisher = pub

		s, err := events.NewNATSSubscriber(cfg.NATS.URL)
		if err != nil {
			return err
		}
		defer s.Close()
		sub = s
		slog.Info("events enabled", "nats_url", cfg.NATS.URL)
	} else {
		slog.Info("events disabled (nats.url not set)")
	}

	if cfg.S3.Bucket != "" {
		exp, err := export.NewS3Exporter(ctx, cfg.S3)
		if err != nil {
			return err
		}
		deps.Uploader = exp
		slog.Info("exports enabled", "bucket", cfg.S3.Bucket, "prefix", cfg.S3.Prefix)
	} else {
		slog.Info("exports disabled (s3.bucket not set)")
	}

	svc := service.New(deps)
	defer svc.Close()
	svc.RefreshCatalog(ctx)

	if sub != nil {
		go func() {
			if err := svc.WatchCatalog(ctx, sub); err != nil {
				slog.Error("catalog watch stopped", "error", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      handler.NewRouter(handler.New(svc), cfg.HTTP.AllowedOrigins),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}

// newDeps wires the Postgres repositories. Events and exports stay disabled
// until the caller sets them.
func newDeps(pool *pgxpool.Pool, cfg *config.Config) service.Deps {
	return service.Deps{
		Packages:  repository.NewPackageRepository(pool),
		Bookings:  repository.NewBookingRepository(pool),
		Payments:  repository.NewPaymentRepository(pool),
		Reviews:   repository.NewReviewRepository(pool),
		Inquiries: repository.NewInquiryRepository(pool),
		Listing:   cfg.Listing,
	}
}
