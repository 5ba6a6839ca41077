package server

import (
	"context"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blueshift-gg/ledger/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind     = "bind"
	flagDebug    = "debug"
	flagMetrics  = "metrics"
	flagLogLevel = "log_level"
)

// parseFlags loads the config file of home and lets command line flags
// override it.
func parseFlags(home string, args []string) (Config, error) {
	cfg, err := LoadConfig(home)
	if err != nil {
		return cfg, err
	}
	startFlags := flag.NewFlagSet("start", flag.ContinueOnError)
	startFlags.StringVar(&cfg.Bind, flagBind, cfg.Bind, "address server listens on")
	startFlags.BoolVar(&cfg.Debug, flagDebug, cfg.Debug, "call stack returned on error")
	startFlags.StringVar(&cfg.MetricsAddr, flagMetrics, cfg.MetricsAddr, "prometheus listen address, empty to disable")
	startFlags.StringVar(&cfg.LogLevel, flagLogLevel, cfg.LogLevel, "debug, info, error or none")
	if err := startFlags.Parse(args); err != nil {
		return cfg, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return cfg, nil
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags.
// Metrics collectors of the application are registered with reg.
type AppGenerator func(cfg Config, home string, logger log.Logger, reg prometheus.Registerer) (abci.Application, error)

// StartCmd initializes the application and serves it until the process
// receives an interrupt.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	cfg, err := parseFlags(home, args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	return Start(ctx, gen, cfg, logger, home)
}

// Start serves the abci application and the metrics endpoint until ctx is
// cancelled.
func Start(ctx context.Context, gen AppGenerator, cfg Config, logger log.Logger, home string) error {
	logger, err := cfg.FilterLogger(logger)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	app, err := gen(cfg, home, logger, reg)
	if err != nil {
		return err
	}

	logger.Info("Starting ABCI app", "bind", cfg.Bind)
	svr, err := server.NewServer(cfg.Bind, "socket", app)
	if err != nil {
		return errors.Wrap(err, "cannot create abci listener")
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrap(err, "cannot start abci server")
	}
	defer svr.Stop()

	if cfg.MetricsAddr != "" {
		ln, err := net.Listen("tcp", cfg.MetricsAddr)
		if err != nil {
			return errors.Wrap(err, "cannot listen for metrics")
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		msrv := &http.Server{Handler: mux}
		logger.Info("Serving metrics", "addr", ln.Addr().String())
		go func() {
			if err := msrv.Serve(ln); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server", "err", err)
			}
		}()
		defer func() {
			sctx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			_ = msrv.Shutdown(sctx)
		}()
	}

	<-ctx.Done()
	logger.Info("Shutting down")
	return nil
}
