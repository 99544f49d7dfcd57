package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/receipt-points/internal/middleware"
	"github.com/mmynk/receipt-points/internal/server"
	"github.com/mmynk/receipt-points/internal/service"
	"github.com/mmynk/receipt-points/internal/storage"
	"github.com/mmynk/receipt-points/internal/storage/memory"
	"github.com/mmynk/receipt-points/internal/storage/sqlite"
	"github.com/mmynk/receipt-points/pkg/logging"
)

func main() {
	fs := ff.NewFlagSet("receipt-points")
	var (
		port      = fs.IntLong("port", 8080, "HTTP server port")
		storeKind = fs.StringLong("store", "memory", "Storage backend: 'memory' or 'sqlite'")
		dbPath    = fs.StringLong("db", "./data/scores.db", "Database file path (sqlite backend only)")
		logLevel  = fs.StringLong("log-level", "info", "Log level: debug, info, warn, error")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("RECEIPT_POINTS"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logging.Setup(*logLevel)

	store, err := newStore(*storeKind, *dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "store", *storeKind, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "store", *storeKind)

	svc := service.NewReceiptService(store)

	mux := http.NewServeMux()
	mux.Handle("/", server.New(svc))
	mux.Handle("GET /metrics", promhttp.Handler())

	handler := middleware.Logging(middleware.Metrics(middleware.CORS(mux)))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Block until interrupted, then drain in-flight requests.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	slog.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}

// newStore selects the storage backend from config.
func newStore(kind, dbPath string) (storage.Store, error) {
	switch kind {
	case "memory":
		return memory.New()
	case "sqlite":
		return sqlite.New(dbPath)
	default:
		return nil, fmt.Errorf("unknown store %q", kind)
	}
}
