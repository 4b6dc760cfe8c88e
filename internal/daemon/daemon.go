package daemon

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/memoclarity/memoclarity/internal/api"
	"github.com/memoclarity/memoclarity/internal/app/chat"
	"github.com/memoclarity/memoclarity/internal/app/tracker"
	"github.com/memoclarity/memoclarity/internal/health"
	_ "github.com/memoclarity/memoclarity/internal/infra/metrics" // Register Prometheus metrics
	"github.com/memoclarity/memoclarity/internal/infra/sqlite"
)

// Daemon is the core MemoClarity runtime. It wires together all services.
type Daemon struct {
	Config  Config
	DB      *sqlite.DB
	Tracker *tracker.Tracker
	Chat    *chat.Service
	Server  *api.Server
	Health  *health.Checker
	cancel  context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	dataDir := cfg.Store.Dir
	if dataDir == "" {
		dataDir = memoHome()
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sqlite.Open(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	trk := tracker.New(db)
	chatSvc := chat.NewService(db, cfg.Chat.HistoryLimit)

	// Archive any finished months before serving requests.
	if err := trk.Rollover(time.Now()); err != nil {
		db.Close()
		return nil, fmt.Errorf("rollover: %w", err)
	}

	srv := api.NewServer(trk, chatSvc)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}

	hc := health.NewChecker(db, dataDir)
	srv.SetHealth(hc)

	return &Daemon{
		Config:  cfg,
		DB:      db,
		Tracker: trk,
		Chat:    chatSvc,
		Server:  srv,
		Health:  hc,
	}, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	go d.Health.Run(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("MemoClarity serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
