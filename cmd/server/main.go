package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"restaurant-order-api/internal/catalog"
	"restaurant-order-api/internal/config"
	"restaurant-order-api/internal/handler"
	"restaurant-order-api/internal/metrics"
	"restaurant-order-api/internal/repository"
	"restaurant-order-api/internal/service"
	"restaurant-order-api/internal/worker"
)

const (
	version             = "1.1.0"
	journalDrainTimeout = 5 * time.Second
)

func main() {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("msg=config_load_failed err=%q", err)
	}

	cat := catalog.Default()
	logger.Printf("msg=catalog_loaded categories=%d restaurants=%d", len(cat.Categories()), len(cat.Names()))

	m := metrics.New("restaurant_orders")

	var (
		enq     worker.Enqueuer
		journal *worker.Journal
	)
	if cfg.JournalEnabled() {
		db, err := openJournal(cfg)
		if err != nil {
			logger.Fatalf("msg=journal_open_failed err=%q", err)
		}
		defer db.Close()

		repo := repository.NewPostgresOrderRepository(db, cfg.DBTimeout)
		if err := repo.EnsureSchema(context.Background()); err != nil {
			logger.Fatalf("msg=journal_schema_failed err=%q", err)
		}
		journal = worker.NewJournal(cfg.JournalQueueSize, worker.RecorderFunc(repo.Create), m, cfg.JournalRecordTimeout, logger)
		enq = journal.Enqueuer()
		logger.Printf("msg=journal_enabled queue_size=%d record_timeout=%s", cfg.JournalQueueSize, cfg.JournalRecordTimeout)
	}

	svc := service.NewOrderService(cat, enq, m, logger)
	h := handler.NewOrderHandler(svc, m, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:           h.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	var metricsSrv *http.Server
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("GET /metrics", m.Handler())
		metricsSrv = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	// The group context is only canceled by a listener failure.
	g, gctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		logger.Printf("msg=http_server_start addr=%s version=%s", srv.Addr, version)
		return listen(srv)
	})
	if metricsSrv != nil {
		g.Go(func() error {
			logger.Printf("msg=metrics_server_start addr=%s", metricsSrv.Addr)
			return listen(metricsSrv)
		})
	}

	if journal != nil {
		journal.Start()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Printf("msg=shutdown_signal signal=%s", sig.String())
	case <-gctx.Done():
		logger.Printf("msg=http_server_failed err=%q", context.Cause(gctx))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	httpErr := srv.Shutdown(shutdownCtx)
	if httpErr != nil {
		logger.Printf("msg=http_shutdown_failed err=%q", httpErr)
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Printf("msg=metrics_shutdown_failed err=%q", err)
		}
	}
	if err := g.Wait(); err != nil {
		logger.Printf("msg=listener_exit err=%q", err)
	}

	if journal != nil {
		// Handlers may still be running when Shutdown failed, so the queue
		// is only closed after a clean shutdown.
		if journal.Stop(httpErr == nil, journalDrainTimeout) {
			logger.Printf("msg=worker_drained")
		} else {
			logger.Printf("msg=worker_drain_skipped http_shutdown_clean=%t", httpErr == nil)
		}
	}

	logger.Printf("msg=shutdown_complete")
}

func listen(srv *http.Server) error {
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen addr=%s: %w", srv.Addr, err)
	}
	return nil
}

func openJournal(cfg config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}
