package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/rl1809/storefront/internal/adapter/handler"
	"github.com/rl1809/storefront/internal/adapter/storage"
	"github.com/rl1809/storefront/internal/core/domain"
	"github.com/rl1809/storefront/internal/core/service"
	"github.com/rl1809/storefront/internal/platform/config"
	"github.com/rl1809/storefront/internal/platform/logger"
	"github.com/rl1809/storefront/internal/platform/metrics"
	"github.com/rl1809/storefront/internal/port"
)

func main() {
	configPath := flag.String("config", "config/storefront.toml", "path to the TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	log = log.With("service", cfg.ServiceName)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.New()

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	store = storage.WithTimeout(storage.Instrument(store, cfg.Store.Driver, m), cfg.Store.Timeout)

	// Load both collections
	catalog, err := service.NewCatalogService(ctx,
		storage.NewJSONCollection[domain.Product](store, storage.ProductsKey, log), log)
	if err != nil {
		return err
	}
	cart, err := service.NewCartService(ctx,
		storage.NewJSONCollection[domain.CartLine](store, storage.CartItemsKey, log), log)
	if err != nil {
		return err
	}
	log.Info("state loaded", "products", len(catalog.List()), "cart_lines", len(cart.List()))

	// Initialize gRPC server
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(handler.UnaryServerInterceptor(metricsOrNil(cfg, m), log)))
	handler.RegisterStorefrontServer(grpcServer, handler.NewGRPCHandler(catalog, cart))

	// Initialize HTTP server
	httpHandler := handler.NewHTTPHandler(catalog, cart, log)
	httpServer := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      httpHandler.Routes(metricsOrNil(cfg, m), cfg.Metrics.Path),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		lis, err := net.Listen("tcp", cfg.GRPC.Addr)
		if err != nil {
			return fmt.Errorf("listen grpc: %w", err)
		}
		log.Info("gRPC server listening", "addr", cfg.GRPC.Addr)
		return grpcServer.Serve(lis)
	})

	g.Go(func() error {
		log.Info("HTTP server listening", "addr", cfg.HTTP.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case <-quit:
			log.Info("shutting down...")
		case <-gctx.Done():
			log.Info("context cancelled, shutting down...")
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Warn("HTTP shutdown incomplete", "error", err)
		}
		log.Info("HTTP server stopped")

		grpcServer.GracefulStop()
		log.Info("gRPC server stopped")
		return nil
	})

	return g.Wait()
}

func metricsOrNil(cfg *config.Config, m *metrics.Metrics) *metrics.Metrics {
	if !cfg.Metrics.Enabled {
		return nil
	}
	return m
}

// openStore connects the configured backend. The returned func releases it.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (port.KeyValueStore, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("failed to connect redis: %w", err)
		}
		log.Info("connected to redis", "addr", cfg.Redis.Addr)
		return storage.NewRedisAdapter(rdb, cfg.Redis.KeyPrefix), func() {
			rdb.Close()
			log.Info("redis connection closed")
		}, nil

	case config.DriverMySQL:
		if cfg.MySQL.Migrate {
			if err := storage.MigrateMySQL(cfg.MySQL.DSN); err != nil {
				return nil, nil, err
			}
			log.Info("mysql migrations applied")
		}

		db, err := sql.Open("mysql", cfg.MySQL.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect mysql: %w", err)
		}
		db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to ping mysql: %w", err)
		}
		log.Info("connected to mysql")
		return storage.NewMySQLAdapter(db), func() {
			db.Close()
			log.Info("mysql connection closed")
		}, nil

	case config.DriverMemory:
		log.Warn("using in-memory store, state is lost on exit")
		return storage.NewMemoryAdapter(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
