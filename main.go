package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodcart/bot"
	"foodcart/config"
	"foodcart/db"
	"foodcart/logger"
	"foodcart/metrics"
	"foodcart/models"
	"foodcart/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	services.SetLogger(log)
	services.PhoneRegion = cfg.Phone.DefaultRegion

	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	if err := db.Init(cfg.DB); err != nil {
		log.Error("db init failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case "migrate":
		err = db.Migrate(ctx, func(name string) { log.Info("migration applied", "name", name) })
	case "available":
		err = printAvailable(ctx, os.Stdout)
	case "serve":
		err = serve(ctx, cfg, log)
	default:
		err = fmt.Errorf("unknown command %q (want migrate, available or serve)", cmd)
	}
	if err != nil {
		log.Error("command failed", "command", cmd, "error", err)
		os.Exit(1)
	}
}

// printAvailable writes the storefront listing: every product sold by at
// least one restaurant.
func printAvailable(ctx context.Context, w io.Writer) error {
	products, err := services.AvailableProducts(ctx)
	if err != nil {
		return err
	}
	for _, p := range products {
		fmt.Fprintln(w, formatProductLine(p))
	}
	return nil
}

func formatProductLine(p models.Product) string {
	line := fmt.Sprintf("%d\t%s\t%s", p.ID, p.Name, p.Price.StringFixed(services.PriceDecimalPlaces))
	if p.SpecialStatus {
		line += "\t*"
	}
	return line
}

func serve(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	if config.AutoMigrate() {
		if err := db.Migrate(ctx, func(name string) { log.Info("migration applied", "name", name) }); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	if cfg.Telegram.MessageToken != "" {
		n, err := bot.NewNotifier(cfg.Telegram.MessageToken, cfg.Telegram.AdminID, log)
		if err != nil {
			log.Warn("order notifications disabled", "error", err)
		} else {
			services.SetOnOrderCreated(n.OrderCreated)
			services.SetOnOrderUpdated(n.OrderUpdated)
			log.Info("order notifications enabled", "admin_id", cfg.Telegram.AdminID)
		}
	}

	if cfg.Metrics.Addr == "" {
		log.Info("store ready, metrics disabled")
		<-ctx.Done()
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		log.Info("metrics listening", "addr", cfg.Metrics.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
