package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/devopsnextgenx/mcp-crypto-server/internal/audit"
	"github.com/devopsnextgenx/mcp-crypto-server/internal/config"
	"github.com/devopsnextgenx/mcp-crypto-server/internal/logging"
	"github.com/devopsnextgenx/mcp-crypto-server/internal/resources"
	"github.com/devopsnextgenx/mcp-crypto-server/internal/rest"
	"github.com/devopsnextgenx/mcp-crypto-server/internal/script"
	"github.com/devopsnextgenx/mcp-crypto-server/internal/tools"
)

var version = resources.ServerVersion

func main() {
	configPath := flag.String("config", config.DefaultPath, "Path to the YAML config file")
	mode := flag.String("mode", "", "Transport mode: auto, stdio, http, streamable-http, sse, or rest (overrides config)")
	host := flag.String("host", "", "Bind host (overrides config)")
	port := flag.Int("port", 0, "Bind port (overrides config)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("mcp-crypto-server", version)
		os.Exit(0)
	}

	// .env values feed the MCP_* overrides read during config load.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config load err=%v", err)
	}
	if *mode != "" {
		cfg.Server.Mode = *mode
	}
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config err=%v", err)
	}

	logger, err := logging.Setup(cfg.Logging)
	if err != nil {
		log.Fatalf("logging setup err=%v", err)
	}

	var store *audit.Store
	if cfg.Audit.Enabled {
		store, err = audit.Open(cfg.Audit.Path)
		if err != nil {
			log.Fatalf("audit open err=%v", err)
		}
		defer store.Close()
	}

	exec := script.New(script.Config{
		AllowedModules: cfg.Executor.AllowedModules,
		Timeout:        cfg.Executor.Timeout,
		ContentsDir:    cfg.Executor.ContentsDir,
	}, logger)

	srv := tools.NewServer(tools.Options{
		Executor: exec,
		Audit:    store,
		Logger:   logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting",
		"mode", cfg.Server.Mode,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"version", version,
	)

	switch cfg.Server.Mode {
	case "stdio":
		err = srv.MCPServer().Run(ctx, &mcp.StdioTransport{})
	case "http", "streamable-http", "sse":
		err = serveHTTP(ctx, cfg, srv, logger)
	case "rest":
		err = serveREST(ctx, cfg, srv, exec, logger, cfg.Server.Port)
	case "auto":
		// MCP over HTTP on the configured port, REST beside it.
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return serveHTTP(gctx, cfg, srv, logger) })
		g.Go(func() error { return serveREST(gctx, cfg, srv, exec, logger, cfg.Server.Port+1) })
		err = g.Wait()
	default:
		err = fmt.Errorf("unknown mode %q", cfg.Server.Mode)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

func serveHTTP(ctx context.Context, cfg *config.Config, srv *tools.Server, logger *slog.Logger) error {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	hs := &http.Server{
		Addr:    addr,
		Handler: srv.HTTPHandler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("mcp http listening", "addr", addr)
		errCh <- hs.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = hs.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func serveREST(ctx context.Context, cfg *config.Config, srv *tools.Server, exec *script.Executor, logger *slog.Logger, port int) error {
	rs := rest.New(rest.Options{
		Registry: srv.Registry(),
		Executor: exec,
		Status:   srv.Status(),
		Logger:   logger,
		Metrics:  cfg.Metrics.Enabled,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("rest listening", "host", cfg.Server.Host, "port", port)
		errCh <- rs.Listen(cfg.Server.Host, port)
	}()

	select {
	case <-ctx.Done():
		_ = rs.Shutdown()
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}
