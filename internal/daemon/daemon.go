package daemon

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/questlog/questlog/internal/api"
	"github.com/questlog/questlog/internal/app/engagement"
	"github.com/questlog/questlog/internal/app/parser"
	"github.com/questlog/questlog/internal/app/social"
	"github.com/questlog/questlog/internal/domain"
	"github.com/questlog/questlog/internal/health"
	_ "github.com/questlog/questlog/internal/infra/metrics" // Register Prometheus metrics
	"github.com/questlog/questlog/internal/infra/sqlite"
)

// Daemon is the core QuestLog runtime. It wires together all services.
type Daemon struct {
	Config Config
	DB     *sqlite.DB
	Server *api.Server

	Social  *social.Service
	Badges  *engagement.BadgeEvaluator
	Chests  *engagement.ChestService
	Parser  domain.ActivityParser
	Checker *health.Checker

	cancel context.CancelFunc
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
	dataDir := cfg.Data.Dir
	if dataDir == "" {
		dataDir = questlogHome()
	}
	db, err := sqlite.Open(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	d := &Daemon{
		Config: cfg,
		DB:     db,
		Social: social.NewService(db),
		Badges: engagement.NewBadgeEvaluator(db),
		Chests: engagement.NewChestService(db, cfg.Rewards.ChestCost, rand.New(rand.NewSource(time.Now().UnixNano()))),
		// Rule-based fallback until an external NL parser is plugged in.
		Parser: parser.NewRules(),
	}

	d.Checker = health.NewChecker(db, dataDir)

	d.Server = api.NewServer(db, d.Parser, d.Social, d.Badges, d.Chests)
	d.Server.SetHealthChecker(d.Checker)
	if cfg.Telemetry.Prometheus {
		d.Server.EnableMetrics()
	}

	return d, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	go d.Checker.Run(ctx)
	go d.settleLoop(ctx)

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

	fmt.Printf("QuestLog serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// settleLoop periodically completes challenges whose window has closed, so
// outcomes land even when neither participant comes back to settle.
func (d *Daemon) settleLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := d.Social.SettleExpired(time.Now().UTC()); err != nil {
				fmt.Fprintf(os.Stderr, "settle expired challenges: %v\n", err)
			} else if n > 0 {
				fmt.Printf("settled %d expired challenge(s)\n", n)
			}
		}
	}
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
