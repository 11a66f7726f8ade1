package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dkrasnov/workdesk/internal/bootstrap"
	"github.com/dkrasnov/workdesk/internal/config"
	"github.com/dkrasnov/workdesk/internal/observability/logging"
	"github.com/dkrasnov/workdesk/internal/observability/metrics"
)

func main() {
	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger("worker", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics("worker")
	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: workerMetrics.Handler(),
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("worker metrics server error", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	slog.Info("worker subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeDocumentIndexed(ctx, func(handlerCtx context.Context, documentID string, publishedAt time.Time) error {
		enrichCtx, cancel := context.WithTimeout(handlerCtx, 5*time.Minute)
		defer cancel()

		if !publishedAt.IsZero() {
			workerMetrics.ObserveQueueLag("worker", time.Since(publishedAt))
		}
		workerMetrics.StartDocument()
		start := time.Now()
		enrichErr := app.EnrichUC.EnrichByID(enrichCtx, documentID)
		workerMetrics.FinishDocument("worker", time.Since(start), enrichErr)
		return enrichErr
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}
