package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/matthwyatt/qldb-go/lib/config"
	qldberrors "github.com/matthwyatt/qldb-go/lib/errors"
	"github.com/matthwyatt/qldb-go/lib/metrics"
	"github.com/matthwyatt/qldb-go/lib/pool"
	"github.com/matthwyatt/qldb-go/lib/resilience"
	"github.com/matthwyatt/qldb-go/lib/retry"
	"github.com/matthwyatt/qldb-go/lib/testutil"
	"github.com/matthwyatt/qldb-go/lib/transport"
)

var soakCmd = &cobra.Command{
	Use:   "soak",
	Short: "Run a soak test against a simulated ledger endpoint",
	Long: `soak drives the session pool with concurrent workers against a
simulated ledger transport, optionally decorated with rate limiting and
a circuit breaker, and reports pool statistics at the end.`,
	RunE: runSoak,
}

func init() {
	soakCmd.Flags().Int("workers", 0, "Concurrent workers (overrides config)")
	soakCmd.Flags().Duration("duration", 0, "Soak duration (overrides config)")
	rootCmd.AddCommand(soakCmd)
}

func runSoak(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if n, _ := cmd.Flags().GetInt("workers"); n > 0 {
		cfg.Soak.Workers = n
	}
	if d, _ := cmd.Flags().GetDuration("duration"); d > 0 {
		cfg.Soak.Duration = d
	}

	sim := testutil.NewSimTransport(cfg.Soak.Latency, cfg.Soak.FailureRate)
	var tr transport.Transport = sim
	if cfg.Transport.RateLimit > 0 {
		burst := int(cfg.Transport.RateBurst)
		if burst < 1 {
			burst = 1
		}
		tr = transport.RateLimit(tr, cfg.Transport.RateLimit, burst)
	}
	if cfg.Transport.Breaker {
		tr = transport.WithBreaker("ledger", tr, resilience.DefaultConfig())
	}

	p := pool.NewWithConfig(tr, cfg.Ledger.Name, pool.Config{
		MaxSessions: cfg.Pool.MaxSessions,
		Retry: retry.Policy{
			MaxAttempts: cfg.Retry.MaxAttempts,
			BaseDelay:   cfg.Retry.BaseDelay,
		},
	})
	defer p.Close()

	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		metricsSrv = &http.Server{Addr: cfg.Metrics.Listen, Handler: mux}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				fmt.Fprintf(os.Stderr, "metrics server: %v\n", err)
			}
		}()
		defer metricsSrv.Close()
		fmt.Printf("metrics on http://%s/metrics\n", cfg.Metrics.Listen)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.Soak.Duration)
	defer cancel()

	var checkouts, failures, ceilingBreaches atomic.Uint64

	// Gauge refresh alongside the workers.
	go func() {
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				pool.UpdateMetrics(p.Stats())
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < cfg.Soak.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				s, err := p.Get(ctx)
				if err != nil {
					if errors.Is(err, context.Canceled) ||
						errors.Is(err, context.DeadlineExceeded) ||
						qldberrors.IsPoolClosed(err) {
						return
					}
					failures.Add(1)
					continue
				}
				checkouts.Add(1)
				if sim.Live() > int64(cfg.Pool.MaxSessions) {
					ceilingBreaches.Add(1)
				}
				time.Sleep(cfg.Soak.HoldTime)
				p.GiveBack(s)
			}
		}()
	}

	wg.Wait()
	st := p.Stats()

	fmt.Printf("soak finished after %s\n", cfg.Soak.Duration)
	fmt.Printf("  checkouts:        %d\n", checkouts.Load())
	fmt.Printf("  get failures:     %d\n", failures.Load())
	fmt.Printf("  sessions created: %d\n", st.Created)
	fmt.Printf("  create failures:  %d\n", st.CreateFailures)
	fmt.Printf("  evicted:          %d\n", st.Evicted)
	fmt.Printf("  abandoned closes: %d\n", st.Abandoned)
	fmt.Printf("  live at end:      %d (ceiling %d)\n", sim.Live(), cfg.Pool.MaxSessions)
	if n := ceilingBreaches.Load(); n > 0 {
		return fmt.Errorf("session ceiling breached %d times", n)
	}
	return nil
}
