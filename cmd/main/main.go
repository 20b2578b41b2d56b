package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"oficina-import/internal/config"
	"oficina-import/internal/invoice/catalog"
	"oficina-import/internal/invoice/classify"
	"oficina-import/internal/invoice/inventory"
	"oficina-import/internal/invoice/match"
	"oficina-import/internal/invoice/service"
	serverhttp "oficina-import/server/http"
)

func main() {
	cfg := config.Load()
	logger := config.SetupLogger(cfg)

	imp, cleanup := buildImporter(cfg, logger)
	defer cleanup()

	r := serverhttp.NewRouter(cfg, logger, imp)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info().Str("addr", cfg.Addr()).Msg("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info().Msg("bye")
}

// buildImporter выбирает источник кандидатов: API склада, файл каталога или пустой
// каталог; при REDIS_ADDR оборачивает поиск кэшем.
func buildImporter(cfg config.Config, logger zerolog.Logger) (*service.Importer, func()) {
	cleanup := func() {}
	var (
		searcher catalog.Searcher
		opts     = []service.Option{service.WithWorkers(cfg.ReviewWorkers)}
	)

	switch {
	case cfg.InventoryURL != "":
		cl := inventory.NewClient(cfg.InventoryURL, cfg.InventoryToken, cfg.InventoryTimeout)
		searcher = cl
		opts = append(opts, service.WithInventory(cl))
		logger.Info().Str("url", cfg.InventoryURL).Msg("inventory api enabled")
	case cfg.CatalogFile != "":
		sheet, err := catalog.OpenSheet(cfg.CatalogFile, cfg.CatalogHeaderRow)
		if err != nil {
			logger.Fatal().Err(err).Str("file", cfg.CatalogFile).Msg("load catalog")
		}
		searcher = sheet
		logger.Info().Str("file", cfg.CatalogFile).Int("products", sheet.Len()).Msg("catalog loaded")
	default:
		searcher = catalog.NewSheet(nil)
		logger.Warn().Msg("no INVENTORY_URL or CATALOG_FILE: duplicate search disabled")
	}

	if cfg.RedisAddr != "" {
		rdb, err := catalog.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, search cache off")
		} else {
			searcher = catalog.NewCached(searcher, rdb, cfg.SearchCacheTTL, logger)
			cleanup = func() { _ = rdb.Close() }
			logger.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.SearchCacheTTL).Msg("search cache enabled")
		}
	}

	imp := service.NewImporter(
		classify.MustNew(classify.DefaultRules()),
		match.NewResolver(cfg.MatchThreshold),
		searcher,
		logger,
		opts...,
	)
	return imp, cleanup
}
