package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"

	"github.com/tejusbharadwaj/sleepchart/internal/api"
	"github.com/tejusbharadwaj/sleepchart/internal/chart"
	"github.com/tejusbharadwaj/sleepchart/internal/config"
	"github.com/tejusbharadwaj/sleepchart/internal/database"
	server "github.com/tejusbharadwaj/sleepchart/internal/grpc"
	"github.com/tejusbharadwaj/sleepchart/internal/httpapi"
	"github.com/tejusbharadwaj/sleepchart/internal/scheduler"
)

const shutdownTimeout = 15 * time.Second

// Command sleepchart serves combined sleep-stage and heart-rate charts.
//
// The service:
//   - pulls sleep sessions, heart rate and resting heart rate from the
//     upstream health API on a cron schedule
//   - stores them in TimescaleDB
//   - serves renderer-ready charts over gRPC and HTTP/JSON
//   - exposes Prometheus metrics and health checks
//
// Usage:
//
//	sleepchart [flags]
//
// The flags are:
//
//	-config string
//	      path to config file (default "config.yaml")
//	-bootstrap
//	      backfill scheduler.bootstrap_days of history at startup (default true)
func main() {
	configPath := flag.String("config", "config.yaml", "Path to config file")
	bootstrap := flag.Bool("bootstrap", true, "Backfill history at startup")
	flag.Parse()

	appConfig, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(appConfig.Logging)
	if err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}

	if err := run(appConfig, *bootstrap, logger); err != nil {
		logger.WithError(err).Fatal("Service error")
	}
}

func run(appConfig *config.Config, bootstrap bool, logger *logrus.Logger) error {
	apiLoc, err := config.Location(appConfig.HealthAPI.Timezone)
	if err != nil {
		return err
	}
	chartLoc, err := config.Location(appConfig.Chart.Timezone)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := database.NewPostgresRepo(appConfig.Database.ConnString(), appConfig.Database.MaxConnections)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	if err := repo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to prepare schema: %w", err)
	}

	fetcher := api.NewHealthFetcher(appConfig.HealthAPI, repo, apiLoc, logger)
	if err := fetcher.CheckAuth(ctx); err != nil {
		logger.WithError(err).Warn("Health API authentication check failed")
	}

	builder := chart.NewBuilder(chart.Options{
		SmoothingWindow:   appConfig.Chart.SmoothingWindow,
		TickInterval:      appConfig.Chart.TickInterval,
		HeartRateFloor:    appConfig.Chart.HeartRateFloor,
		HeartRateHeadroom: appConfig.Chart.HeartRateHeadroom,
		RestingPadding:    appConfig.Chart.RestingPadding,
		Location:          chartLoc,
	}, logger)
	charts := chart.NewService(repo, builder)

	health := server.NewHealthChecker()
	grpcServer, err := server.SetupServer(charts, server.ServerConfig{
		CacheSize:      appConfig.Cache.Size,
		CacheTTL:       appConfig.Cache.TTL,
		RateLimit:      appConfig.RateLimit.RPS,
		RateLimitBurst: appConfig.RateLimit.Burst,
		Logger:         logger,
		Registerer:     prometheus.DefaultRegisterer,
		Health:         health,
	})
	if err != nil {
		return fmt.Errorf("failed to setup server: %w", err)
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", appConfig.Server.Host, appConfig.Server.HTTPPort),
		Handler:           httpapi.NewRouter(charts, health, prometheus.DefaultGatherer, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", appConfig.Server.Host, appConfig.Server.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	errChan := make(chan error, 2)

	var background sync.WaitGroup
	if bootstrap && appConfig.Scheduler.BootstrapDays > 0 {
		startBootstrap(ctx, &background, fetcher, appConfig.Scheduler.BootstrapDays, logger)
	}

	sched := scheduler.NewScheduler(ctx, fetcher, appConfig.Scheduler.Spec, appConfig.Scheduler.Lookback, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("scheduler error: %w", err)
	}

	go func() {
		logger.WithField("port", appConfig.Server.GRPCPort).Info("Starting gRPC server")
		if err := grpcServer.Serve(lis); err != nil {
			errChan <- fmt.Errorf("grpc server error: %w", err)
		}
	}()

	go func() {
		logger.WithField("port", appConfig.Server.HTTPPort).Info("Starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	case runErr = <-errChan:
	}

	stop()
	shutdown(health, sched, grpcServer, httpServer, logger)
	// The repository is closed on return; the backfill must be done with it.
	background.Wait()
	return runErr
}

type bootstrapper interface {
	BootstrapHistoricalData(ctx context.Context, days int) error
}

// startBootstrap backfills history in the background. It stops early when
// ctx is canceled; wg is done once it has returned.
func startBootstrap(ctx context.Context, wg *sync.WaitGroup, b bootstrapper, days int, logger *logrus.Logger) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.WithField("days", days).Info("Bootstrapping historical data")
		if err := b.BootstrapHistoricalData(ctx, days); err != nil {
			logger.WithError(err).Warn("Bootstrap finished with errors")
		}
	}()
}

// shutdown stops accepting work, then drains the servers.
func shutdown(health *server.HealthChecker, sched *scheduler.Scheduler, grpcServer *grpc.Server, httpServer *http.Server, logger *logrus.Logger) {
	health.Shutdown()
	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.WithError(err).Warn("HTTP server shutdown")
	}

	logger.Info("Gracefully stopping gRPC server")
	grpcServer.GracefulStop()
	logger.Info("Server stopped")
}

func newLogger(cfg config.LoggingConfig) (*logrus.Logger, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(level)

	switch cfg.Format {
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger, nil
}
