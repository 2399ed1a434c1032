package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/storefront/internal/adapter/storage"
	"github.com/rl1809/storefront/internal/core/domain"
	"github.com/rl1809/storefront/internal/core/service"
	"github.com/rl1809/storefront/internal/platform/logger"
)

const (
	keyPrefix         = "stress:"
	managers          = 2
	createsPerManager = 25
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "redis address")
	flag.Parse()

	log, err := logger.New(logger.Config{Level: "info", Format: "text", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Initialize Redis
	rdb := redis.NewClient(&redis.Options{Addr: *redisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error("failed to connect redis", "addr", *redisAddr, "error", err)
		os.Exit(1)
	}
	log.Info("connected to redis", "addr", *redisAddr)
	defer rdb.Close()

	// Clear previous test data
	rdb.Del(ctx, keyPrefix+storage.ProductsKey)

	// Every manager loads the same empty catalog, then writes its own copy back
	store := storage.NewRedisAdapter(rdb, keyPrefix)
	catalogs := make([]*service.CatalogService, managers)
	for i := range catalogs {
		repo := storage.NewJSONCollection[domain.Product](store, storage.ProductsKey, logger.Discard())
		c, err := service.NewCatalogService(ctx, repo, logger.Discard())
		if err != nil {
			log.Error("failed to load catalog", "manager", i, "error", err)
			os.Exit(1)
		}
		catalogs[i] = c
	}

	var successCount atomic.Int32
	var failCount atomic.Int32

	var wg sync.WaitGroup
	start := time.Now()

	for i, catalog := range catalogs {
		for j := 0; j < createsPerManager; j++ {
			wg.Add(1)
			go func(manager, n int) {
				defer wg.Done()

				_, err := catalog.Create(ctx, domain.ProductDraft{
					Name:  fmt.Sprintf("product-%d-%d", manager, n),
					Brand: "stress",
					Price: "1.00",
					Link:  "http://localhost/img.png",
				})
				if err == nil {
					successCount.Add(1)
				} else {
					failCount.Add(1)
				}
			}(i, j)
		}
	}

	wg.Wait()
	elapsed := time.Since(start)

	success := successCount.Load()
	fail := failCount.Load()

	// Reload from the store as a fresh process would
	fresh, err := service.NewCatalogService(ctx,
		storage.NewJSONCollection[domain.Product](store, storage.ProductsKey, logger.Discard()), logger.Discard())
	if err != nil {
		log.Error("failed to reload catalog", "error", err)
		os.Exit(1)
	}
	persisted := len(fresh.List())

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Managers:         %d\n", managers)
	fmt.Printf("Total Creates:    %d\n", managers*createsPerManager)
	fmt.Printf("Successful:       %d\n", success)
	fmt.Printf("Failed:           %d\n", fail)
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Printf("Persisted:        %d\n", persisted)
	fmt.Println("==========================================")

	// Each manager sees only its own creates, so the last save wins
	if persisted == createsPerManager {
		fmt.Printf("EXPECTED: last writer wins, %d creates lost\n", int(success)-persisted)
	} else {
		fmt.Printf("UNEXPECTED: persisted %d products, expected %d\n", persisted, createsPerManager)
	}
}
